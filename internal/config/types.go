package config

import "time"

type Config struct {
	MemoryPath  string
	HistoryPath string
	PersonaPath string
	WindowSize  int
	UserName    string
	Timeout     time.Duration
	LLM         LLMConfig
	Storage     StorageConfig
}

type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}
