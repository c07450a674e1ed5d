// This file holds the item-level quantity policy and the item mutation
// helpers. The helpers are all expressed through ReplaceListItems, so the
// replace path is the single place where a list's item sequence changes.

package store

import (
	"fmt"

	"packpro/pkg/id"
	"packpro/pkg/model"
)

// Normalize enforces the item quantity invariant: the target quantity is at
// least 1, the packed quantity is clamped into [0, target], and the
// completion flag is recomputed from the clamped values. The flag is never
// trusted as stored.
func Normalize(it model.Item) model.Item {
	if it.TargetQuantity < 1 {
		it.TargetQuantity = 1
	}
	if it.PackedQuantity < 0 {
		it.PackedQuantity = 0
	}
	if it.PackedQuantity > it.TargetQuantity {
		it.PackedQuantity = it.TargetQuantity
	}
	it.IsCompleted = it.PackedQuantity >= it.TargetQuantity
	return it
}

// NewItem constructs a fresh unpacked item with a new identifier.
func NewItem(name string, target int) model.Item {
	return Normalize(model.Item{ID: id.New(), Name: name, TargetQuantity: target})
}

// AddItem appends a new item to a list owned by the current user and
// returns it.
func (s *Store) AddItem(data model.AppData, listID, name string, target int) (model.AppData, model.Item, error) {
	if name == "" {
		return data, model.Item{}, ErrEmptyItemName
	}
	current := data.CurrentUser()
	if current == nil {
		return data, model.Item{}, ErrNoCurrentUser
	}
	list := current.FindList(listID)
	if list == nil {
		return data, model.Item{}, s.miss(fmt.Errorf("add item to list '%s': %w", listID, ErrListNotFound))
	}

	item := NewItem(name, target)
	next, err := s.ReplaceListItems(data, listID, append(copyItems(list.Items), item))
	if err != nil {
		return data, model.Item{}, err
	}
	return next, item, nil
}

// UpdateItem applies a partial update to one item. Toggling the completion
// flag without an explicit packed quantity snaps the packed quantity to the
// target (completed) or zero (not completed); afterwards the quantity
// policy is re-applied as for any quantity change.
func (s *Store) UpdateItem(data model.AppData, listID, itemID string, upd model.ItemUpdate) (model.AppData, error) {
	current := data.CurrentUser()
	if current == nil {
		return data, s.miss(ErrNoCurrentUser)
	}
	list := current.FindList(listID)
	if list == nil {
		return data, s.miss(fmt.Errorf("update item in list '%s': %w", listID, ErrListNotFound))
	}

	items := copyItems(list.Items)
	found := false
	for i, it := range items {
		if it.ID != itemID {
			continue
		}
		found = true
		if upd.Name != nil {
			it.Name = *upd.Name
		}
		if upd.TargetQuantity != nil {
			it.TargetQuantity = *upd.TargetQuantity
		}
		if upd.PackedQuantity != nil {
			it.PackedQuantity = *upd.PackedQuantity
		}
		if upd.IsCompleted != nil && upd.PackedQuantity == nil {
			if *upd.IsCompleted {
				it.PackedQuantity = it.TargetQuantity
			} else {
				it.PackedQuantity = 0
			}
		}
		items[i] = it
		break
	}
	if !found {
		return data, s.miss(fmt.Errorf("update item '%s': %w", itemID, ErrItemNotFound))
	}
	return s.ReplaceListItems(data, listID, items)
}

// DeleteItem removes one item from a list owned by the current user.
func (s *Store) DeleteItem(data model.AppData, listID, itemID string) (model.AppData, error) {
	current := data.CurrentUser()
	if current == nil {
		return data, s.miss(ErrNoCurrentUser)
	}
	list := current.FindList(listID)
	if list == nil {
		return data, s.miss(fmt.Errorf("delete item from list '%s': %w", listID, ErrListNotFound))
	}

	items := make([]model.Item, 0, len(list.Items))
	found := false
	for _, it := range list.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		items = append(items, it)
	}
	if !found {
		return data, s.miss(fmt.Errorf("delete item '%s': %w", itemID, ErrItemNotFound))
	}
	return s.ReplaceListItems(data, listID, items)
}

// MarkAllItems sets every item of a list to fully packed (true) or fully
// unpacked (false).
func (s *Store) MarkAllItems(data model.AppData, listID string, packed bool) (model.AppData, error) {
	current := data.CurrentUser()
	if current == nil {
		return data, s.miss(ErrNoCurrentUser)
	}
	list := current.FindList(listID)
	if list == nil {
		return data, s.miss(fmt.Errorf("mark items of list '%s': %w", listID, ErrListNotFound))
	}

	items := copyItems(list.Items)
	for i, it := range items {
		if packed {
			it.PackedQuantity = it.TargetQuantity
		} else {
			it.PackedQuantity = 0
		}
		items[i] = it
	}
	return s.ReplaceListItems(data, listID, items)
}
