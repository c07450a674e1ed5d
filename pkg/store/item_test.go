package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packpro/pkg/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         model.Item
		wantPacked int
		wantTarget int
		wantDone   bool
	}{
		{"fresh item", model.Item{TargetQuantity: 2}, 0, 2, false},
		{"packed over target", model.Item{TargetQuantity: 2, PackedQuantity: 5}, 2, 2, true},
		{"negative packed", model.Item{TargetQuantity: 2, PackedQuantity: -1}, 0, 2, false},
		{"target floor", model.Item{TargetQuantity: 0, PackedQuantity: 0}, 0, 1, false},
		{"exactly full", model.Item{TargetQuantity: 3, PackedQuantity: 3}, 3, 3, true},
		{"stale completion flag", model.Item{TargetQuantity: 3, PackedQuantity: 1, IsCompleted: true}, 1, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.Equal(t, tt.wantPacked, got.PackedQuantity)
			assert.Equal(t, tt.wantTarget, got.TargetQuantity)
			assert.Equal(t, tt.wantDone, got.IsCompleted)
		})
	}
}

func TestAddItem(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)

	data, first, err := s.AddItem(data, list.ID, "Sunscreen", 2)
	require.NoError(t, err)
	data, second, err := s.AddItem(data, list.ID, "Towel", 1)
	require.NoError(t, err)

	items := data.CurrentUser().FindList(list.ID).Items
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID, "items keep insertion order")
	assert.Equal(t, second.ID, items[1].ID)
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.False(t, items[0].IsCompleted)
	assert.Zero(t, items[0].PackedQuantity)

	_, _, err = s.AddItem(data, list.ID, "", 1)
	assert.ErrorIs(t, err, ErrEmptyItemName)
}

func TestUpdateItemClampsQuantities(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)
	data, item, err := s.AddItem(data, list.ID, "Sunscreen", 2)
	require.NoError(t, err)

	// Packing 5 of 2 clamps to the target and completes the item.
	packed := 5
	data, err = s.UpdateItem(data, list.ID, item.ID, model.ItemUpdate{PackedQuantity: &packed})
	require.NoError(t, err)
	got := data.CurrentUser().FindList(list.ID).Items[0]
	assert.Equal(t, 2, got.PackedQuantity)
	assert.True(t, got.IsCompleted)

	// Raising the target reopens the item; the packed amount stays.
	target := 4
	data, err = s.UpdateItem(data, list.ID, item.ID, model.ItemUpdate{TargetQuantity: &target})
	require.NoError(t, err)
	got = data.CurrentUser().FindList(list.ID).Items[0]
	assert.Equal(t, 2, got.PackedQuantity)
	assert.Equal(t, 4, got.TargetQuantity)
	assert.False(t, got.IsCompleted)

	// Lowering the target below the packed amount clamps packed down.
	target = 1
	data, err = s.UpdateItem(data, list.ID, item.ID, model.ItemUpdate{TargetQuantity: &target})
	require.NoError(t, err)
	got = data.CurrentUser().FindList(list.ID).Items[0]
	assert.Equal(t, 1, got.PackedQuantity)
	assert.True(t, got.IsCompleted)
}

func TestUpdateItemCompletionToggle(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)
	data, item, err := s.AddItem(data, list.ID, "Socks", 7)
	require.NoError(t, err)

	done := true
	data, err = s.UpdateItem(data, list.ID, item.ID, model.ItemUpdate{IsCompleted: &done})
	require.NoError(t, err)
	got := data.CurrentUser().FindList(list.ID).Items[0]
	assert.Equal(t, 7, got.PackedQuantity, "checking snaps packed to the target")
	assert.True(t, got.IsCompleted)

	done = false
	data, err = s.UpdateItem(data, list.ID, item.ID, model.ItemUpdate{IsCompleted: &done})
	require.NoError(t, err)
	got = data.CurrentUser().FindList(list.ID).Items[0]
	assert.Zero(t, got.PackedQuantity, "unchecking resets packed to zero")
	assert.False(t, got.IsCompleted)
}

func TestUpdateItemRename(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)
	data, item, err := s.AddItem(data, list.ID, "Sunscreen", 2)
	require.NoError(t, err)
	packed := 1
	data, err = s.UpdateItem(data, list.ID, item.ID, model.ItemUpdate{PackedQuantity: &packed})
	require.NoError(t, err)

	name := "Sunscreen SPF50"
	data, err = s.UpdateItem(data, list.ID, item.ID, model.ItemUpdate{Name: &name})
	require.NoError(t, err)
	got := data.CurrentUser().FindList(list.ID).Items[0]
	assert.Equal(t, "Sunscreen SPF50", got.Name)
	assert.Equal(t, 1, got.PackedQuantity, "a rename leaves quantities alone")
}

func TestDeleteItem(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)
	data, item, err := s.AddItem(data, list.ID, "Sunscreen", 2)
	require.NoError(t, err)
	data, _, err = s.AddItem(data, list.ID, "Towel", 1)
	require.NoError(t, err)

	data, err = s.DeleteItem(data, list.ID, item.ID)
	require.NoError(t, err)
	items := data.CurrentUser().FindList(list.ID).Items
	require.Len(t, items, 1)
	assert.Equal(t, "Towel", items[0].Name)
}

func TestMarkAllItems(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)
	data, _, err = s.AddItem(data, list.ID, "Sunscreen", 2)
	require.NoError(t, err)
	data, _, err = s.AddItem(data, list.ID, "Socks", 7)
	require.NoError(t, err)

	data, err = s.MarkAllItems(data, list.ID, true)
	require.NoError(t, err)
	for _, it := range data.CurrentUser().FindList(list.ID).Items {
		assert.True(t, it.IsCompleted)
		assert.Equal(t, it.TargetQuantity, it.PackedQuantity, "each item packs to its own target")
	}

	data, err = s.MarkAllItems(data, list.ID, false)
	require.NoError(t, err)
	for _, it := range data.CurrentUser().FindList(list.ID).Items {
		assert.False(t, it.IsCompleted)
		assert.Zero(t, it.PackedQuantity)
	}
}
