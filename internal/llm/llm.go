package llm

import "fmt"

// OpenAI-compatible providers and their base URLs
var openAICompatibleProviders = map[string]string{
	"gemini":     "https://generativelanguage.googleapis.com/v1beta/openai",
	"mistral":    "https://api.mistral.ai/v1",
	"groq":       "https://api.groq.com/openai/v1",
	"together":   "https://api.together.xyz/v1",
	"deepseek":   "https://api.deepseek.com/v1",
	"fireworks":  "https://api.fireworks.ai/inference/v1",
	"perplexity": "https://api.perplexity.ai",
}

func New(cfg Config) (LLM, error) {
	switch cfg.Provider {
	case "claude":
		return newClaude(cfg.APIKey, cfg.Model), nil
	case "openai":
		baseURL := cfg.BaseURL

		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}

		model := cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}

		return newOpenAICompatible(cfg.APIKey, baseURL, model, cfg.JSONMode), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}

		model := cfg.Model
		if model == "" {
			model = "phi3.5:3.8b"
		}

		// Ollama's OpenAI-compatible endpoint
		return newOpenAICompatible("ollama", baseURL+"/v1", model, cfg.JSONMode), nil
	default:
		// check if it's an OpenAI-compatible provider
		if baseURL, ok := openAICompatibleProviders[cfg.Provider]; ok {
			if cfg.BaseURL != "" {
				baseURL = cfg.BaseURL
			}
			return newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model, cfg.JSONMode), nil
		}
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// KnownProviders returns all known provider IDs
func KnownProviders() []string {
	providers := []string{"claude", "openai", "ollama"}
	for p := range openAICompatibleProviders {
		providers = append(providers, p)
	}
	return providers
}

// IsKnownProvider checks if a provider is recognized
func IsKnownProvider(provider string) bool {
	switch provider {
	case "claude", "openai", "ollama":
		return true
	default:
		_, ok := openAICompatibleProviders[provider]
		return ok
	}
}
