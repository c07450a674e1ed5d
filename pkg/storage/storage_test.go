package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packpro/pkg/log"
	"packpro/pkg/model"
)

func sample() model.AppData {
	id := "u1"
	return model.AppData{
		Users: []model.User{
			{ID: "u1", Username: "Ana", Lists: []model.PackingList{
				{ID: "l1", Title: "Beach", Duration: 5, CreatedAt: 42, Items: []model.Item{
					{ID: "i1", Name: "Sunscreen", TargetQuantity: 2, PackedQuantity: 2, IsCompleted: true},
				}},
			}},
		},
		CurrentUserID: &id,
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir, "snapshot.json", log.NewNop())
	require.NoError(t, err)
	defer store.Close()

	// A fresh slot yields the default empty snapshot.
	data, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, data.Users)
	assert.Nil(t, data.CurrentUserID)

	want := sample()
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJSONStoreUnparsableFileYieldsDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot.json"), []byte("{broken"), 0644))

	store, err := NewJSONStore(dir, "snapshot.json", log.NewNop())
	require.NoError(t, err)
	defer store.Close()

	data, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, data.Users)
	assert.Nil(t, data.CurrentUserID)
}

func TestJSONStoreSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir, "snapshot.json", log.NewNop())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(sample()))
	require.NoError(t, store.Save(model.NewAppData()))

	data, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, data.Users, "the slot holds exactly one snapshot")
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSQLiteStore(dir, "snapshot.db", log.NewNop())
	require.NoError(t, err)
	defer store.Close()

	data, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, data.Users)

	want := sample()
	require.NoError(t, store.Save(want))
	require.NoError(t, store.Save(want), "saving twice upserts the same row")

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNewStorageDriverSwitch(t *testing.T) {
	cfg := &model.Config{StorageType: "json", DataDir: t.TempDir(), StorageFile: "s.json"}
	store, err := NewStorage(cfg, log.NewNop())
	require.NoError(t, err)
	require.IsType(t, &JSONStore{}, store)
	store.Close()

	cfg = &model.Config{StorageType: "sqlite", DataDir: t.TempDir(), StorageFile: "s.db"}
	store, err = NewStorage(cfg, log.NewNop())
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, store)
	store.Close()

	cfg = &model.Config{StorageType: "redis"}
	_, err = NewStorage(cfg, log.NewNop())
	assert.Error(t, err)
}
