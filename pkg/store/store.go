// Package store implements the pure snapshot transitions for PackPro data.
// Every operation takes the current AppData snapshot plus parameters and
// returns the next snapshot; inputs are never mutated in place. Subtrees the
// operation does not touch are shared by reference, since published
// snapshots are treated as immutable.
package store

import (
	"errors"
	"fmt"
	"time"

	"packpro/pkg/id"
	"packpro/pkg/model"
)

// Sentinel errors returned by transitions. Reference misses (a nonexistent
// user/list/item id) surface these only in strict mode; the default
// permissive mode answers a miss with the snapshot unchanged and a nil
// error, matching the original application's behavior.
var (
	ErrEmptyUsername   = errors.New("username must not be empty")
	ErrEmptyTitle      = errors.New("list title must not be empty")
	ErrEmptyItemName   = errors.New("item name must not be empty")
	ErrNoCurrentUser   = errors.New("no user is selected")
	ErrUserNotFound    = errors.New("user not found")
	ErrListNotFound    = errors.New("list not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrDuplicateItemID = errors.New("duplicate item id in list")
)

// Store applies intents to snapshots. It holds no data itself, only the
// reference-miss policy.
type Store struct {
	strict bool
}

// Option configures a Store.
type Option func(*Store)

// WithStrictRefs makes operations on nonexistent ids return an error
// instead of silently returning the snapshot unchanged.
func WithStrictRefs(strict bool) Option {
	return func(s *Store) {
		s.strict = strict
	}
}

// New creates a Store with the given options. The default policy is
// permissive.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// miss resolves a reference miss according to the configured policy.
func (s *Store) miss(err error) error {
	if s.strict {
		return err
	}
	return nil
}

// CreateUser appends a new user with empty lists and makes it the current
// user. The created user is returned for the caller.
func (s *Store) CreateUser(data model.AppData, username string) (model.AppData, model.User, error) {
	if username == "" {
		return data, model.User{}, ErrEmptyUsername
	}

	user := model.User{ID: id.New(), Username: username, Lists: []model.PackingList{}}

	next := data
	next.Users = append(copyUsers(data.Users), user)
	next.CurrentUserID = ref(user.ID)
	return next, user, nil
}

// SelectUser makes the given user the current one. The data is otherwise
// unchanged.
func (s *Store) SelectUser(data model.AppData, userID string) (model.AppData, error) {
	if data.FindUser(userID) == nil {
		return data, s.miss(fmt.Errorf("select user '%s': %w", userID, ErrUserNotFound))
	}

	next := data
	next.CurrentUserID = ref(userID)
	return next, nil
}

// DeleteUser removes a user and cascades to all owned lists and items. If
// the removed user was current, the first remaining user becomes current, or
// no user if none remain.
func (s *Store) DeleteUser(data model.AppData, userID string) (model.AppData, error) {
	if data.FindUser(userID) == nil {
		return data, s.miss(fmt.Errorf("delete user '%s': %w", userID, ErrUserNotFound))
	}

	next := data
	next.Users = make([]model.User, 0, len(data.Users)-1)
	for _, u := range data.Users {
		if u.ID != userID {
			next.Users = append(next.Users, u)
		}
	}

	if data.CurrentUserID != nil && *data.CurrentUserID == userID {
		if len(next.Users) > 0 {
			next.CurrentUserID = ref(next.Users[0].ID)
		} else {
			next.CurrentUserID = nil
		}
	}
	return next, nil
}

// Logout clears the current-user pointer without removing any data.
func (s *Store) Logout(data model.AppData) model.AppData {
	next := data
	next.CurrentUserID = nil
	return next
}

// CreateList prepends a new empty list to the current user's lists, newest
// first. The created list is returned so the caller can activate it.
func (s *Store) CreateList(data model.AppData, title, description string, duration int) (model.AppData, model.PackingList, error) {
	if title == "" {
		return data, model.PackingList{}, ErrEmptyTitle
	}
	current := data.CurrentUser()
	if current == nil {
		return data, model.PackingList{}, ErrNoCurrentUser
	}

	list := model.PackingList{
		ID:          id.New(),
		Title:       title,
		Description: description,
		Duration:    duration,
		Items:       []model.Item{},
		CreatedAt:   time.Now().UnixMilli(),
	}

	next, _ := withUser(data, current.ID, func(u model.User) model.User {
		u.Lists = append([]model.PackingList{list}, u.Lists...)
		return u
	})
	return next, list, nil
}

// UpdateListMetadata shallow-merges the provided fields into a list owned by
// the current user. The items sequence is never touched here.
func (s *Store) UpdateListMetadata(data model.AppData, listID string, upd model.ListUpdate) (model.AppData, error) {
	current := data.CurrentUser()
	if current == nil {
		return data, s.miss(ErrNoCurrentUser)
	}

	next, found := withList(data, current.ID, listID, func(l model.PackingList) model.PackingList {
		if upd.Title != nil {
			l.Title = *upd.Title
		}
		if upd.Description != nil {
			l.Description = *upd.Description
		}
		if upd.Duration != nil {
			l.Duration = *upd.Duration
		}
		if upd.Destination != nil {
			l.Destination = *upd.Destination
		}
		return l
	})
	if !found {
		return data, s.miss(fmt.Errorf("update list '%s': %w", listID, ErrListNotFound))
	}
	return next, nil
}

// DeleteList removes a list owned by the current user, cascading to its
// items.
func (s *Store) DeleteList(data model.AppData, listID string) (model.AppData, error) {
	current := data.CurrentUser()
	if current == nil {
		return data, s.miss(ErrNoCurrentUser)
	}
	if current.FindList(listID) == nil {
		return data, s.miss(fmt.Errorf("delete list '%s': %w", listID, ErrListNotFound))
	}

	next, _ := withUser(data, current.ID, func(u model.User) model.User {
		lists := make([]model.PackingList, 0, len(u.Lists)-1)
		for _, l := range u.Lists {
			if l.ID != listID {
				lists = append(lists, l)
			}
		}
		u.Lists = lists
		return u
	})
	return next, nil
}

// ReplaceListItems replaces the items sequence of a list owned by the
// current user wholesale. Every item is normalized through the quantity
// policy before it is stored. A sequence with duplicate item ids cannot be
// stored and fails without applying anything.
func (s *Store) ReplaceListItems(data model.AppData, listID string, items []model.Item) (model.AppData, error) {
	current := data.CurrentUser()
	if current == nil {
		return data, s.miss(ErrNoCurrentUser)
	}
	if current.FindList(listID) == nil {
		return data, s.miss(fmt.Errorf("replace items of list '%s': %w", listID, ErrListNotFound))
	}

	seen := make(map[string]bool, len(items))
	normalized := make([]model.Item, len(items))
	for i, it := range items {
		if seen[it.ID] {
			return data, fmt.Errorf("item id '%s': %w", it.ID, ErrDuplicateItemID)
		}
		seen[it.ID] = true
		normalized[i] = Normalize(it)
	}

	next, _ := withList(data, current.ID, listID, func(l model.PackingList) model.PackingList {
		l.Items = normalized
		return l
	})
	return next, nil
}

// MoveItem removes an item from whichever list currently holds it and
// appends it to the end of the target list, across user boundaries. A
// missing item is a no-op in either mode. A missing target leaves the
// snapshot fully unchanged: the item is only removed once the destination
// is known to exist.
func (s *Store) MoveItem(data model.AppData, itemID, targetUserID, targetListID string) (model.AppData, error) {
	targetUser := data.FindUser(targetUserID)
	if targetUser == nil {
		return data, s.miss(fmt.Errorf("move item to user '%s': %w", targetUserID, ErrUserNotFound))
	}
	if targetUser.FindList(targetListID) == nil {
		return data, s.miss(fmt.Errorf("move item to list '%s': %w", targetListID, ErrListNotFound))
	}

	var moved *model.Item
	var sourceUserID, sourceListID string
	for _, u := range data.Users {
		for _, l := range u.Lists {
			for _, it := range l.Items {
				if it.ID == itemID {
					moved = &it
					sourceUserID = u.ID
					sourceListID = l.ID
				}
			}
		}
	}
	if moved == nil {
		return data, nil
	}

	next, _ := withList(data, sourceUserID, sourceListID, func(l model.PackingList) model.PackingList {
		items := make([]model.Item, 0, len(l.Items)-1)
		for _, it := range l.Items {
			if it.ID != itemID {
				items = append(items, it)
			}
		}
		l.Items = items
		return l
	})
	next, _ = withList(next, targetUserID, targetListID, func(l model.PackingList) model.PackingList {
		l.Items = append(copyItems(l.Items), *moved)
		return l
	})
	return next, nil
}

// ref returns a pointer to a fresh copy of the given id, so snapshots never
// share pointer cells.
func ref(id string) *string {
	return &id
}

func copyUsers(users []model.User) []model.User {
	out := make([]model.User, len(users))
	copy(out, users)
	return out
}

func copyLists(lists []model.PackingList) []model.PackingList {
	out := make([]model.PackingList, len(lists))
	copy(out, lists)
	return out
}

func copyItems(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	return out
}

// withUser returns a snapshot whose users slice is freshly copied, with the
// matched user replaced by fn's result. Untouched users are shared.
func withUser(data model.AppData, userID string, fn func(model.User) model.User) (model.AppData, bool) {
	next := data
	next.Users = copyUsers(data.Users)
	for i, u := range next.Users {
		if u.ID == userID {
			next.Users[i] = fn(u)
			return next, true
		}
	}
	return data, false
}

// withList is withUser one level down: the owning user's lists slice is
// copied and the matched list replaced by fn's result.
func withList(data model.AppData, userID, listID string, fn func(model.PackingList) model.PackingList) (model.AppData, bool) {
	found := false
	next, ok := withUser(data, userID, func(u model.User) model.User {
		u.Lists = copyLists(u.Lists)
		for i, l := range u.Lists {
			if l.ID == listID {
				u.Lists[i] = fn(l)
				found = true
				break
			}
		}
		return u
	})
	if !ok || !found {
		return data, false
	}
	return next, true
}
