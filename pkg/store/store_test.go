package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packpro/pkg/model"
)

func TestCreateUser(t *testing.T) {
	s := New()

	next, user, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	require.Len(t, next.Users, 1)
	assert.Equal(t, "Ana", next.Users[0].Username)
	assert.Empty(t, next.Users[0].Lists)
	require.NotNil(t, next.CurrentUserID)
	assert.Equal(t, user.ID, *next.CurrentUserID, "the new user should become current")

	_, _, err = s.CreateUser(next, "")
	assert.ErrorIs(t, err, ErrEmptyUsername)
}

func TestCreateUserDoesNotMutateInput(t *testing.T) {
	s := New()
	base, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)

	next, _, err := s.CreateUser(base, "Bob")
	require.NoError(t, err)

	assert.Len(t, base.Users, 1, "the previous snapshot must be unchanged")
	assert.Len(t, next.Users, 2)
}

func TestSelectUser(t *testing.T) {
	s := New()
	data, ana, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, _, err = s.CreateUser(data, "Bob")
	require.NoError(t, err)

	next, err := s.SelectUser(data, ana.ID)
	require.NoError(t, err)
	require.NotNil(t, next.CurrentUserID)
	assert.Equal(t, ana.ID, *next.CurrentUserID)

	// Permissive mode: a missing id is a silent no-op.
	next, err = s.SelectUser(data, "nope")
	require.NoError(t, err)
	assert.Equal(t, data.CurrentUserID, next.CurrentUserID)
}

func TestSelectUserStrict(t *testing.T) {
	s := New(WithStrictRefs(true))
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)

	_, err = s.SelectUser(data, "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	s := New()
	data, ana, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, bob, err := s.CreateUser(data, "Bob")
	require.NoError(t, err)

	// Bob is current; deleting Bob must fall back to a remaining user.
	next, err := s.DeleteUser(data, bob.ID)
	require.NoError(t, err)
	require.Len(t, next.Users, 1)
	require.NotNil(t, next.CurrentUserID)
	assert.Equal(t, ana.ID, *next.CurrentUserID)

	// Deleting the last user must clear the pointer.
	next, err = s.DeleteUser(next, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, next.Users)
	assert.Nil(t, next.CurrentUserID)
}

func TestDeleteUserKeepsUnrelatedCurrent(t *testing.T) {
	s := New()
	data, ana, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, bob, err := s.CreateUser(data, "Bob")
	require.NoError(t, err)
	data, err = s.SelectUser(data, ana.ID)
	require.NoError(t, err)

	next, err := s.DeleteUser(data, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, next.CurrentUserID)
	assert.Equal(t, ana.ID, *next.CurrentUserID)
}

func TestLogout(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)

	next := s.Logout(data)
	assert.Nil(t, next.CurrentUserID)
	assert.Len(t, next.Users, 1, "logout removes no data")
}

func TestCreateList(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)

	next, beach, err := s.CreateList(data, "Beach", "Sun trip", 5)
	require.NoError(t, err)
	user := next.CurrentUser()
	require.NotNil(t, user)
	require.Len(t, user.Lists, 1)
	assert.Equal(t, beach.ID, user.Lists[0].ID, "returned id must match the stored list")
	assert.Equal(t, "Beach", user.Lists[0].Title)
	assert.Equal(t, 5, user.Lists[0].Duration)
	assert.Empty(t, user.Lists[0].Items)

	// New lists are prepended, newest first.
	next, ski, err := s.CreateList(next, "Ski", "", 3)
	require.NoError(t, err)
	user = next.CurrentUser()
	require.Len(t, user.Lists, 2)
	assert.Equal(t, ski.ID, user.Lists[0].ID)
	assert.Equal(t, beach.ID, user.Lists[1].ID)
}

func TestCreateListRequiresUserAndTitle(t *testing.T) {
	s := New()

	_, _, err := s.CreateList(model.NewAppData(), "Beach", "", 5)
	assert.ErrorIs(t, err, ErrNoCurrentUser)

	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	_, _, err = s.CreateList(data, "", "", 5)
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestUpdateListMetadata(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "Sun trip", 5)
	require.NoError(t, err)
	data, _, err = s.AddItem(data, list.ID, "Sunscreen", 2)
	require.NoError(t, err)

	title := "Beach 2026"
	duration := 10
	next, err := s.UpdateListMetadata(data, list.ID, model.ListUpdate{Title: &title, Duration: &duration})
	require.NoError(t, err)

	got := next.CurrentUser().FindList(list.ID)
	require.NotNil(t, got)
	assert.Equal(t, "Beach 2026", got.Title)
	assert.Equal(t, 10, got.Duration)
	assert.Equal(t, "Sun trip", got.Description, "fields not in the update stay put")
	assert.Len(t, got.Items, 1, "a metadata update never touches items")
}

func TestDeleteListCascades(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)
	data, _, err = s.AddItem(data, list.ID, "Sunscreen", 2)
	require.NoError(t, err)

	next, err := s.DeleteList(data, list.ID)
	require.NoError(t, err)
	assert.Empty(t, next.CurrentUser().Lists)
	assert.Zero(t, next.ItemCount())
}

func TestReplaceListItemsRejectsDuplicateIDs(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)

	items := []model.Item{
		{ID: "dup", Name: "Towel", TargetQuantity: 1},
		{ID: "dup", Name: "Hat", TargetQuantity: 1},
	}
	next, err := s.ReplaceListItems(data, list.ID, items)
	assert.ErrorIs(t, err, ErrDuplicateItemID)
	assert.Empty(t, next.CurrentUser().FindList(list.ID).Items, "nothing may be applied")
}

func TestMoveItem(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, anaList, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)
	data, sunscreen, err := s.AddItem(data, anaList.ID, "Sunscreen", 2)
	require.NoError(t, err)
	data, _, err = s.AddItem(data, anaList.ID, "Towel", 1)
	require.NoError(t, err)

	data, bob, err := s.CreateUser(data, "Bob")
	require.NoError(t, err)
	data, bobList, err := s.CreateList(data, "Ski", "", 3)
	require.NoError(t, err)
	data, _, err = s.AddItem(data, bobList.ID, "Gloves", 1)
	require.NoError(t, err)

	before := data.ItemCount()
	next, err := s.MoveItem(data, sunscreen.ID, bob.ID, bobList.ID)
	require.NoError(t, err)

	assert.Equal(t, before, next.ItemCount(), "a move conserves the item count")

	anaItems := next.FindUser(data.Users[0].ID).FindList(anaList.ID).Items
	require.Len(t, anaItems, 1)
	assert.Equal(t, "Towel", anaItems[0].Name)

	bobItems := next.FindUser(bob.ID).FindList(bobList.ID).Items
	require.Len(t, bobItems, 2)
	assert.Equal(t, sunscreen.ID, bobItems[1].ID, "moved items are appended at the end")
}

func TestMoveItemMissingItemIsNoOp(t *testing.T) {
	s := New(WithStrictRefs(true))
	data, bob, err := s.CreateUser(model.NewAppData(), "Bob")
	require.NoError(t, err)
	data, bobList, err := s.CreateList(data, "Ski", "", 3)
	require.NoError(t, err)

	// Even in strict mode a missing item is a no-op, not an error.
	next, err := s.MoveItem(data, "ghost", bob.ID, bobList.ID)
	require.NoError(t, err)
	assert.Equal(t, data.ItemCount(), next.ItemCount())
}

func TestMoveItemMissingTargetLeavesSourceIntact(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)
	data, item, err := s.AddItem(data, list.ID, "Sunscreen", 2)
	require.NoError(t, err)

	next, err := s.MoveItem(data, item.ID, *data.CurrentUserID, "ghost-list")
	require.NoError(t, err)
	assert.Equal(t, 1, next.ItemCount(), "the item must not be removed when the target is missing")
	assert.Len(t, next.CurrentUser().FindList(list.ID).Items, 1)
}

func TestPermissiveMissesLeaveSnapshotUnchanged(t *testing.T) {
	s := New()
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)
	data, _, err = s.AddItem(data, list.ID, "Sunscreen", 2)
	require.NoError(t, err)

	next, err := s.DeleteList(data, "ghost")
	require.NoError(t, err)
	assert.Equal(t, data, next)

	next, err = s.UpdateItem(data, list.ID, "ghost", model.ItemUpdate{})
	require.NoError(t, err)
	assert.Equal(t, data, next)
}

func TestStrictMissesReturnErrors(t *testing.T) {
	s := New(WithStrictRefs(true))
	data, _, err := s.CreateUser(model.NewAppData(), "Ana")
	require.NoError(t, err)
	data, list, err := s.CreateList(data, "Beach", "", 5)
	require.NoError(t, err)

	_, err = s.DeleteList(data, "ghost")
	assert.ErrorIs(t, err, ErrListNotFound)

	_, err = s.DeleteUser(data, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = s.DeleteItem(data, list.ID, "ghost")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
