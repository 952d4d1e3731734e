package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultOllamaTimeout = 60 * time.Second
	defaultRemoteTimeout = 30 * time.Second
)

func Load() (*Config, error) {
	memoryPath := os.Getenv("NOVIA_MEMORY")
	if memoryPath == "" {
		memoryPath = "memoria.json"
	}

	historyPath := os.Getenv("NOVIA_HISTORY")
	if historyPath == "" {
		historyPath = "historial.json"
	}

	personaPath := os.Getenv("NOVIA_PERSONA")
	if personaPath == "" {
		personaPath = "persona.yml"
	}

	userName := os.Getenv("NOVIA_USER")
	if userName == "" {
		userName = "usuario"
	}

	windowSize := 20
	if n, err := strconv.Atoi(os.Getenv("NOVIA_WINDOW")); err == nil && n > 0 {
		windowSize = n
	}

	llmConfig, err := loadLLMConfig()
	if err != nil {
		return nil, err
	}

	// Local models get more slack than remote APIs
	timeout := defaultRemoteTimeout
	if llmConfig.Provider == "ollama" {
		timeout = defaultOllamaTimeout
	}
	if secs, err := strconv.Atoi(os.Getenv("NOVIA_TIMEOUT")); err == nil && secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	return &Config{
		MemoryPath:  memoryPath,
		HistoryPath: historyPath,
		PersonaPath: personaPath,
		WindowSize:  windowSize,
		UserName:    userName,
		Timeout:     timeout,
		LLM:         llmConfig,
		Storage:     loadStorageConfig(),
	}, nil
}

func loadLLMConfig() (LLMConfig, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "ollama"
	}

	apiKey, err := getAPIKey(provider)
	if err != nil {
		return LLMConfig{}, err
	}

	return LLMConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    os.Getenv("LLM_MODEL"),
		BaseURL:  os.Getenv("LLM_BASE_URL"),
	}, nil
}

func loadStorageConfig() StorageConfig {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")

	return StorageConfig{
		Enabled:   accessKey != "" && secretKey != "",
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}
}

func getAPIKey(provider string) (string, error) {
	envKey := os.Getenv("LLM_API_KEY")
	if envKey != "" {
		return envKey, nil
	}

	switch provider {
	case "claude":
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return "", fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		return key, nil
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return "", fmt.Errorf("OPENAI_API_KEY not set")
		}
		return key, nil
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			return "", fmt.Errorf("GEMINI_API_KEY not set")
		}
		return key, nil
	case "ollama":
		// Ollama doesn't need an API key
		return "ollama", nil
	default:
		// convention: {PROVIDER}_API_KEY (e.g., MISTRAL_API_KEY, GROQ_API_KEY)
		envName := strings.ToUpper(provider) + "_API_KEY"
		key := os.Getenv(envName)
		if key == "" {
			return "", fmt.Errorf("%s not set", envName)
		}
		return key, nil
	}
}
