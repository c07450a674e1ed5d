// Package data provides the data management layer for the PackPro
// application. The Manager owns the only mutable reference to the live
// snapshot: every intent goes through the pure store transitions, and each
// accepted transition is persisted to the durable slot and announced on the
// event manager.
package data

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"packpro/pkg/event"
	"packpro/pkg/importer"
	"packpro/pkg/model"
	"packpro/pkg/storage"
	"packpro/pkg/store"
)

// Manager coordinates the store, the durable slot and change notification.
type Manager struct {
	store  *store.Store
	slot   storage.SnapshotStore
	events *event.EventManager
	logger *zap.SugaredLogger
	data   model.AppData
}

// NewManager loads the last saved snapshot and returns a ready manager.
func NewManager(st *store.Store, slot storage.SnapshotStore, events *event.EventManager, logger *zap.SugaredLogger) (*Manager, error) {
	if st == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	if slot == nil {
		return nil, fmt.Errorf("snapshot store not initialized")
	}
	if events == nil {
		return nil, fmt.Errorf("event manager not initialized")
	}

	data, err := slot.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	m := &Manager{
		store:  st,
		slot:   slot,
		events: events,
		logger: logger,
		data:   data,
	}

	// Audit trail of accepted transitions.
	for _, t := range []event.EventType{
		event.UserAdded, event.UserSelected, event.UserDeleted, event.UserLoggedOut,
		event.ListAdded, event.ListUpdated, event.ListDeleted,
		event.ItemsReplaced, event.ItemMoved, event.SnapshotImported,
	} {
		eventType := t
		events.Subscribe(eventType, func(e event.Event) {
			logger.Infow("Transition applied", "event", eventType.String(), "data", e.Data)
		})
	}

	logger.Infow("Data manager initialized",
		"users", len(data.Users), "items", data.ItemCount())
	return m, nil
}

// Data returns the current snapshot. Callers must treat it as immutable.
func (m *Manager) Data() model.AppData {
	return m.data
}

// Events exposes the event manager for observers.
func (m *Manager) Events() *event.EventManager {
	return m.events
}

// Close releases the durable slot.
func (m *Manager) Close() error {
	return m.slot.Close()
}

// commit publishes a new snapshot: persists it, stores it as current, and
// announces the transition. The slot is written before the live snapshot is
// advanced, so a failed save leaves memory and disk in agreement. A snapshot
// identical to the current one is not committed at all; permissive reference
// misses hand the input back untouched and there is nothing to persist or
// announce for them.
func (m *Manager) commit(next model.AppData, eventType event.EventType, payload interface{}) error {
	if reflect.DeepEqual(next, m.data) {
		return nil
	}
	if err := m.slot.Save(next); err != nil {
		m.logger.Errorw("Failed to persist snapshot", "error", err)
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	m.data = next
	m.events.Publish(event.Event{Type: eventType, Data: payload})
	return nil
}

// CreateUser creates a profile and makes it current.
func (m *Manager) CreateUser(username string) (model.User, error) {
	next, user, err := m.store.CreateUser(m.data, username)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, m.commit(next, event.UserAdded, user.ID)
}

// SelectUser switches the current profile.
func (m *Manager) SelectUser(userID string) error {
	next, err := m.store.SelectUser(m.data, userID)
	if err != nil {
		return fmt.Errorf("failed to select user: %w", err)
	}
	return m.commit(next, event.UserSelected, userID)
}

// DeleteUser removes a profile and everything it owns.
func (m *Manager) DeleteUser(userID string) error {
	next, err := m.store.DeleteUser(m.data, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return m.commit(next, event.UserDeleted, userID)
}

// Logout clears the current profile.
func (m *Manager) Logout() error {
	return m.commit(m.store.Logout(m.data), event.UserLoggedOut, nil)
}

// CreateList creates a list for the current user, optionally seeded with
// the default starter items, and returns it.
func (m *Manager) CreateList(title, description string, duration int, withDefaults bool) (model.PackingList, error) {
	next, list, err := m.store.CreateList(m.data, title, description, duration)
	if err != nil {
		return model.PackingList{}, fmt.Errorf("failed to create list: %w", err)
	}

	if withDefaults {
		items := make([]model.Item, 0, len(model.DefaultItems))
		for _, d := range model.DefaultItems {
			items = append(items, store.NewItem(d.Name, d.Target))
		}
		next, err = m.store.ReplaceListItems(next, list.ID, items)
		if err != nil {
			return model.PackingList{}, fmt.Errorf("failed to seed default items: %w", err)
		}
		list.Items = items
	}
	return list, m.commit(next, event.ListAdded, list.ID)
}

// UpdateListMetadata merges partial fields into a list of the current user.
func (m *Manager) UpdateListMetadata(listID string, upd model.ListUpdate) error {
	next, err := m.store.UpdateListMetadata(m.data, listID, upd)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	return m.commit(next, event.ListUpdated, listID)
}

// DeleteList removes a list of the current user.
func (m *Manager) DeleteList(listID string) error {
	next, err := m.store.DeleteList(m.data, listID)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return m.commit(next, event.ListDeleted, listID)
}

// ReplaceListItems swaps a list's item sequence wholesale.
func (m *Manager) ReplaceListItems(listID string, items []model.Item) error {
	next, err := m.store.ReplaceListItems(m.data, listID, items)
	if err != nil {
		return fmt.Errorf("failed to replace items: %w", err)
	}
	return m.commit(next, event.ItemsReplaced, listID)
}

// AddItem appends a new item to a list of the current user.
func (m *Manager) AddItem(listID, name string, target int) (model.Item, error) {
	next, item, err := m.store.AddItem(m.data, listID, name, target)
	if err != nil {
		return model.Item{}, fmt.Errorf("failed to add item: %w", err)
	}
	return item, m.commit(next, event.ItemsReplaced, listID)
}

// UpdateItem applies a partial update to one item.
func (m *Manager) UpdateItem(listID, itemID string, upd model.ItemUpdate) error {
	next, err := m.store.UpdateItem(m.data, listID, itemID, upd)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return m.commit(next, event.ItemsReplaced, listID)
}

// DeleteItem removes one item from a list of the current user.
func (m *Manager) DeleteItem(listID, itemID string) error {
	next, err := m.store.DeleteItem(m.data, listID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return m.commit(next, event.ItemsReplaced, listID)
}

// MarkAllItems packs or unpacks every item of a list.
func (m *Manager) MarkAllItems(listID string, packed bool) error {
	next, err := m.store.MarkAllItems(m.data, listID, packed)
	if err != nil {
		return fmt.Errorf("failed to mark items: %w", err)
	}
	return m.commit(next, event.ItemsReplaced, listID)
}

// MoveItem moves an item to another user's list.
func (m *Manager) MoveItem(itemID, targetUserID, targetListID string) error {
	next, err := m.store.MoveItem(m.data, itemID, targetUserID, targetListID)
	if err != nil {
		return fmt.Errorf("failed to move item: %w", err)
	}
	return m.commit(next, event.ItemMoved, itemID)
}

// Import reconciles a backup or list fragment file into the snapshot.
func (m *Manager) Import(filename string) error {
	next, err := importer.ImportFile(m.data, filename)
	if err != nil {
		return fmt.Errorf("failed to import '%s': %w", filename, err)
	}
	return m.commit(next, event.SnapshotImported, filename)
}

// ImportPayload reconciles raw payload bytes into the snapshot.
func (m *Manager) ImportPayload(payload []byte) error {
	next, err := importer.Reconcile(m.data, payload)
	if err != nil {
		return fmt.Errorf("failed to import payload: %w", err)
	}
	return m.commit(next, event.SnapshotImported, nil)
}

// Export writes the whole snapshot as a backup file and returns the path
// written. The snapshot is not changed.
func (m *Manager) Export(path string) (string, error) {
	written, err := importer.ExportFile(m.data, path)
	if err != nil {
		return "", fmt.Errorf("failed to export: %w", err)
	}
	m.logger.Infow("Snapshot exported", "path", written)
	return written, nil
}
