package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"packpro/pkg/model"
)

// JSONStore keeps the snapshot in one indented JSON file.
type JSONStore struct {
	path   string
	logger *zap.SugaredLogger
}

// NewJSONStore creates a JSON file slot under dataDir.
func NewJSONStore(dataDir, fileName string, logger *zap.SugaredLogger) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &JSONStore{
		path:   filepath.Join(dataDir, fileName),
		logger: logger,
	}, nil
}

// Load reads the stored snapshot. A missing file or unparsable contents
// yield the default empty snapshot.
func (s *JSONStore) Load() (model.AppData, error) {
	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return model.NewAppData(), nil
	}
	if err != nil {
		return model.NewAppData(), fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	var data model.AppData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		s.logger.Warnw("Snapshot file is unparsable, starting from empty data",
			"path", s.path, "error", err)
		return model.NewAppData(), nil
	}
	if data.Users == nil {
		data.Users = []model.User{}
	}
	return data, nil
}

// Save overwrites the slot with the serialized snapshot.
func (s *JSONStore) Save(data model.AppData) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(payload); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *JSONStore) Close() error {
	return nil
}
