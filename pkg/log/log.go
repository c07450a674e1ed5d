// Package log builds the application logger on top of the Uber zap logging
// library. Log output goes to a file under the configured log directory so
// the interactive prompt stays clean; the level comes from configuration.
package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"packpro/pkg/model"
)

// New creates a SugaredLogger writing to the configured log file.
func New(cfg *model.Config) (*zap.SugaredLogger, error) {
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level '%s': %w", cfg.LogLevel, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = lvl
	zapCfg.OutputPaths = []string{filepath.Join(cfg.LogDir, cfg.LogFile)}
	zapCfg.ErrorOutputPaths = zapCfg.OutputPaths

	zl, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return zl.Sugar(), nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
