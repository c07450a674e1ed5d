// Package importer reconciles externally supplied JSON payloads with the
// live snapshot and writes backup exports. A payload is recognized by shape:
// a `users` sequence means a full backup that replaces the whole snapshot, a
// top-level `items` sequence means a single-list fragment that is prepended
// to the current user's lists. Reconciliation either produces a fully valid
// next snapshot or fails with the live snapshot untouched.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"packpro/pkg/id"
	"packpro/pkg/model"
	"packpro/pkg/store"
)

var (
	// ErrUnknownShape rejects payloads that match neither recognized shape.
	ErrUnknownShape = errors.New("payload is neither a full backup nor a single list")
	// ErrNoCurrentUser rejects a list fragment when no user is active to
	// receive it.
	ErrNoCurrentUser = errors.New("importing a single list requires a selected user")
)

// Reconcile validates a JSON payload and merges it into the given snapshot,
// returning the next snapshot. The input snapshot is never modified.
func Reconcile(data model.AppData, payload []byte) (model.AppData, error) {
	var probe struct {
		Users *json.RawMessage `json:"users"`
		Items *json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return data, fmt.Errorf("failed to parse import payload: %w", err)
	}

	switch {
	case probe.Users != nil:
		return reconcileFull(data, payload)
	case probe.Items != nil:
		return reconcileFragment(data, payload)
	default:
		return data, ErrUnknownShape
	}
}

// ImportFile reads a user-selected file and reconciles its contents.
func ImportFile(data model.AppData, filename string) (model.AppData, error) {
	payload, err := os.ReadFile(filename)
	if err != nil {
		return data, fmt.Errorf("failed to read import file: %w", err)
	}
	return Reconcile(data, payload)
}

// reconcileFull decodes a complete AppData payload and replaces the whole
// snapshot with it. No merge with existing data occurs.
func reconcileFull(data model.AppData, payload []byte) (model.AppData, error) {
	var imported model.AppData
	if err := json.Unmarshal(payload, &imported); err != nil {
		return data, fmt.Errorf("failed to parse backup payload: %w", err)
	}
	if err := validateAppData(&imported); err != nil {
		return data, fmt.Errorf("invalid backup payload: %w", err)
	}
	return imported, nil
}

// reconcileFragment decodes a single PackingList payload and prepends it to
// the current user's lists, leaving all other users and lists untouched.
func reconcileFragment(data model.AppData, payload []byte) (model.AppData, error) {
	current := data.CurrentUser()
	if current == nil {
		return data, ErrNoCurrentUser
	}

	var list model.PackingList
	if err := json.Unmarshal(payload, &list); err != nil {
		return data, fmt.Errorf("failed to parse list payload: %w", err)
	}
	if err := normalizeList(&list); err != nil {
		return data, fmt.Errorf("invalid list payload: %w", err)
	}

	next := data
	next.Users = make([]model.User, len(data.Users))
	copy(next.Users, data.Users)
	for i, u := range next.Users {
		if u.ID == current.ID {
			u.Lists = append([]model.PackingList{list}, u.Lists...)
			next.Users[i] = u
		}
	}
	return next, nil
}

// validateAppData checks the decoded snapshot recursively: unique user ids,
// unique list ids per user, unique item ids per list, and a current-user
// pointer that resolves. Item quantities are normalized through the store's
// quantity policy rather than trusted.
func validateAppData(data *model.AppData) error {
	if data.Users == nil {
		data.Users = []model.User{}
	}
	userIDs := make(map[string]bool, len(data.Users))
	for i := range data.Users {
		u := &data.Users[i]
		if u.ID == "" {
			return fmt.Errorf("user %d has no id", i)
		}
		if userIDs[u.ID] {
			return fmt.Errorf("duplicate user id '%s'", u.ID)
		}
		userIDs[u.ID] = true
		if u.Username == "" {
			return fmt.Errorf("user '%s' has an empty username", u.ID)
		}

		if u.Lists == nil {
			u.Lists = []model.PackingList{}
		}
		listIDs := make(map[string]bool, len(u.Lists))
		for j := range u.Lists {
			l := &u.Lists[j]
			if l.ID == "" {
				return fmt.Errorf("list %d of user '%s' has no id", j, u.ID)
			}
			if listIDs[l.ID] {
				return fmt.Errorf("duplicate list id '%s' for user '%s'", l.ID, u.ID)
			}
			listIDs[l.ID] = true
			if err := normalizeList(l); err != nil {
				return err
			}
		}
	}

	if data.CurrentUserID != nil && !userIDs[*data.CurrentUserID] {
		return fmt.Errorf("currentUserId '%s' references no user", *data.CurrentUserID)
	}
	if len(data.Users) == 0 {
		data.CurrentUserID = nil
	}
	return nil
}

// normalizeList fills in a missing list id and creation timestamp, checks
// item id uniqueness, and re-applies the quantity policy to every item.
func normalizeList(l *model.PackingList) error {
	if l.ID == "" {
		l.ID = id.New()
	}
	if l.CreatedAt == 0 {
		l.CreatedAt = time.Now().UnixMilli()
	}
	if l.Items == nil {
		l.Items = []model.Item{}
	}

	itemIDs := make(map[string]bool, len(l.Items))
	for i := range l.Items {
		it := &l.Items[i]
		if it.ID == "" {
			it.ID = id.New()
		}
		if itemIDs[it.ID] {
			return fmt.Errorf("duplicate item id '%s' in list '%s'", it.ID, l.ID)
		}
		itemIDs[it.ID] = true
		*it = store.Normalize(*it)
	}
	return nil
}

// BackupFileName returns the export filename convention for the given day.
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("packpro_backup_%s.json", t.Format("2006-01-02"))
}

// ExportFile writes the snapshot as indented JSON. If path names a
// directory (or is empty), the dated backup filename is appended. The full
// path written is returned.
func ExportFile(data model.AppData, path string) (string, error) {
	if path == "" {
		path = "."
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, BackupFileName(time.Now()))
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}
