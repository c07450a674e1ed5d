// Package main is the entry point for the PackPro application. It
// initializes all components and runs the interactive command loop.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"packpro/pkg/cli"
	"packpro/pkg/config"
	"packpro/pkg/data"
	"packpro/pkg/event"
	"packpro/pkg/log"
	"packpro/pkg/storage"
	"packpro/pkg/store"
	"packpro/pkg/suggest"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := log.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Infow("Application started", "storage", cfg.StorageType, "strictRefs", cfg.StrictRefs)

	slot, err := storage.NewStorage(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if err := slot.Close(); err != nil {
			logger.Errorw("Failed to close storage", "error", err)
		}
	}()

	events := event.NewEventManager(logger)
	st := store.New(store.WithStrictRefs(cfg.StrictRefs))

	manager, err := data.NewManager(st, slot, events, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize data manager: %w", err)
	}

	// Suggestions stay off without an API key.
	var suggester suggest.Client
	if cfg.GeminiAPIKey != "" {
		suggester, err = suggest.NewGeminiClient(context.Background(), cfg)
		if err != nil {
			logger.Warnw("Suggestions disabled", "error", err)
			suggester = nil
		} else {
			defer suggester.Close()
		}
	}

	cliInstance, err := cli.NewCLI(manager, suggester, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize CLI: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Infow("Received interrupt signal, shutting down")
		cliInstance.Stop()
	}()

	if err := cliInstance.Run(); err != nil {
		logger.Errorw("CLI error", "error", err)
		return err
	}

	logger.Infow("Application shutting down")
	return nil
}
