// Package config provides functionality for loading, saving, and managing
// application configuration settings. Settings come from a JSON file under
// the data directory, overlaid with environment variables (a local .env
// file is honored), and are validated before use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"packpro/pkg/model"
)

const configPath = "./data/config.json"

// Default returns the configuration written on first run.
func Default() *model.Config {
	return &model.Config{
		StorageType: "json",
		DataDir:     "./data",
		StorageFile: "packpro_data_v1.json",
		LogDir:      "./logs",
		LogFile:     "packpro.log",
		LogLevel:    "info",
		StrictRefs:  false,
		GeminiModel: "gemini-pro",
	}
}

// Load reads the configuration file, creating it with defaults if missing,
// then applies environment overrides and validates the result.
func Load() (*model.Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := Default()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := json.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error applying environment overrides: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the JSON file.
func Save(cfg *model.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func validateStorageType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "json", "sqlite":
		return true
	}
	return false
}

func validateLogLevel(fl validator.FieldLevel) bool {
	allowed := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return allowed[fl.Field().String()]
}

func validateDirPath(fl validator.FieldLevel) bool {
	_, err := os.Stat(fl.Field().String())
	return err == nil || os.IsNotExist(err)
}

func validate(cfg *model.Config) error {
	v := validator.New()

	if err := v.RegisterValidation("storagetype", validateStorageType); err != nil {
		return err
	}
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}
	if err := v.RegisterValidation("dirpath", validateDirPath); err != nil {
		return err
	}

	return v.Struct(cfg)
}
