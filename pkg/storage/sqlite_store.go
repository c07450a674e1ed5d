package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"packpro/pkg/model"
)

// SQLiteStore keeps the snapshot in a single-row SQLite table keyed by
// StorageKey.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewSQLiteStore opens (creating if needed) the SQLite slot under dataDir.
func NewSQLiteStore(dataDir, fileName string, logger *zap.SugaredLogger) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataDir, fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL
		);
	`)
	return err
}

// Load reads the stored snapshot. A missing row or unparsable contents
// yield the default empty snapshot.
func (s *SQLiteStore) Load() (model.AppData, error) {
	var payload string
	err := s.db.QueryRow("SELECT data FROM snapshots WHERE key = ?", StorageKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return model.NewAppData(), nil
	}
	if err != nil {
		return model.NewAppData(), fmt.Errorf("failed to read snapshot row: %w", err)
	}

	var data model.AppData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		s.logger.Warnw("Stored snapshot is unparsable, starting from empty data",
			"key", StorageKey, "error", err)
		return model.NewAppData(), nil
	}
	if data.Users == nil {
		data.Users = []model.User{}
	}
	return data, nil
}

// Save overwrites the slot row with the serialized snapshot.
func (s *SQLiteStore) Save(data model.AppData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (key, data) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data
	`, StorageKey, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write snapshot row: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
