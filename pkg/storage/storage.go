// Package storage persists the PackPro snapshot in one durable slot. A
// backend holds exactly one serialized AppData document keyed by StorageKey;
// loading falls back to the default empty snapshot when no prior value
// exists or the stored value fails to parse.
package storage

import (
	"fmt"

	"go.uber.org/zap"

	"packpro/pkg/model"
)

// StorageKey is the fixed key of the single durable slot.
const StorageKey = "packpro_data_v1"

// SnapshotStore is the durable slot contract consumed by the data manager.
type SnapshotStore interface {
	Load() (model.AppData, error)
	Save(data model.AppData) error
	Close() error
}

// NewStorage creates the snapshot store selected by the configuration.
func NewStorage(cfg *model.Config, logger *zap.SugaredLogger) (SnapshotStore, error) {
	switch cfg.StorageType {
	case "json":
		return NewJSONStore(cfg.DataDir, cfg.StorageFile, logger)
	case "sqlite":
		return NewSQLiteStore(cfg.DataDir, cfg.StorageFile, logger)
	default:
		return nil, fmt.Errorf("unsupported storage type '%s'", cfg.StorageType)
	}
}
