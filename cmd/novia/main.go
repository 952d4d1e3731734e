package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/bowerhall/novia/internal/agent"
	"github.com/bowerhall/novia/internal/config"
	"github.com/bowerhall/novia/internal/llm"
	"github.com/bowerhall/novia/internal/logger"
	"github.com/bowerhall/novia/internal/memory"
	"github.com/bowerhall/novia/internal/session"
	"github.com/bowerhall/novia/internal/storage"
	"github.com/bowerhall/novia/internal/tui"
)

func init() {
	godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	persona, err := config.LoadPersona(cfg.PersonaPath)
	if err != nil {
		logger.Fatal("failed to load persona", "error", err)
	}

	model, err := llm.New(llm.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		JSONMode: true,
	})
	if err != nil {
		logger.Fatal("failed to create llm", "error", err)
	}

	store := memory.NewStore(cfg.MemoryPath, cfg.HistoryPath)

	if err := store.Load().Validate(); err != nil {
		logger.Warn("memory inconsistency", "error", err)
	}

	sess := session.New(cfg.WindowSize)
	companion := agent.New(model, store, persona, sess, cfg.UserName)

	// minio backup target (optional)
	var storageClient *storage.Client
	if cfg.Storage.Enabled {
		storageClient, err = storage.NewClient(storage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logger.Error("failed to create storage client", "error", err)
		} else {
			initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := storageClient.Init(initCtx); err != nil {
				logger.Error("failed to init storage bucket", "error", err)
				storageClient = nil
			} else {
				logger.Info("backups enabled", "endpoint", cfg.Storage.Endpoint)
			}
			cancel()
		}
	}

	logger.Info("novia started",
		"persona", persona.Name,
		"user", cfg.UserName,
		"llm", cfg.LLM.Provider,
		"memory", cfg.MemoryPath,
		"window", cfg.WindowSize,
	)

	program := tea.NewProgram(tui.New(tui.Config{
		Agent:       companion,
		Session:     sess,
		Backup:      storageClient,
		Companion:   persona.Name,
		Timeout:     cfg.Timeout,
		BackupPaths: []string{cfg.MemoryPath, cfg.HistoryPath},
	}), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		logger.Fatal("tui crashed", "error", err)
	}

	logger.Info("novia stopped")
}
