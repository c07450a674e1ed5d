// Package model defines the data structures used throughout the PackPro application.
package model

// Item represents a single packable thing on one packing list.
type Item struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TargetQuantity int    `json:"targetQuantity"`
	PackedQuantity int    `json:"packedQuantity"`
	IsCompleted    bool   `json:"isCompleted"`
}

// PackingList represents a named collection of items owned by one user.
// The item order is display-significant and preserved across mutation.
type PackingList struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Destination string `json:"destination,omitempty"`
	Items       []Item `json:"items"`
	CreatedAt   int64  `json:"createdAt"`
}

// User represents a local profile with its owned packing lists.
type User struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Lists    []PackingList `json:"lists"`
}

// AppData is the whole persisted state: all users plus the active-user pointer.
// CurrentUserID is empty when no user is active.
type AppData struct {
	Users         []User  `json:"users"`
	CurrentUserID *string `json:"currentUserId"`
}

// NewAppData returns the default empty snapshot.
func NewAppData() AppData {
	return AppData{Users: []User{}, CurrentUserID: nil}
}

// CurrentUser returns the active user of the snapshot, or nil if none is set
// or the pointer is dangling.
func (d AppData) CurrentUser() *User {
	if d.CurrentUserID == nil {
		return nil
	}
	for i := range d.Users {
		if d.Users[i].ID == *d.CurrentUserID {
			return &d.Users[i]
		}
	}
	return nil
}

// FindUser returns the user with the given id, or nil.
func (d AppData) FindUser(userID string) *User {
	for i := range d.Users {
		if d.Users[i].ID == userID {
			return &d.Users[i]
		}
	}
	return nil
}

// FindList returns the list with the given id owned by the given user, or nil.
func (u *User) FindList(listID string) *PackingList {
	if u == nil {
		return nil
	}
	for i := range u.Lists {
		if u.Lists[i].ID == listID {
			return &u.Lists[i]
		}
	}
	return nil
}

// Progress reports how many items of the list are completed, the total item
// count, and the completion percentage (rounded).
func (l PackingList) Progress() (packed, total, percent int) {
	total = len(l.Items)
	for _, it := range l.Items {
		if it.IsCompleted {
			packed++
		}
	}
	if total > 0 {
		percent = int(float64(packed)/float64(total)*100 + 0.5)
	}
	return packed, total, percent
}

// ItemCount returns the total number of items across all users and lists.
func (d AppData) ItemCount() int {
	count := 0
	for _, u := range d.Users {
		for _, l := range u.Lists {
			count += len(l.Items)
		}
	}
	return count
}

// Clone returns a deep copy of the snapshot. Used when a fully independent
// copy is needed (persistence round-trips, tests); the store itself only
// copies the subtrees it touches.
func (d AppData) Clone() AppData {
	out := AppData{Users: make([]User, len(d.Users))}
	for i, u := range d.Users {
		out.Users[i] = u.Clone()
	}
	if d.CurrentUserID != nil {
		id := *d.CurrentUserID
		out.CurrentUserID = &id
	}
	return out
}

// Clone returns a deep copy of the user and all owned lists.
func (u User) Clone() User {
	out := u
	out.Lists = make([]PackingList, len(u.Lists))
	for i, l := range u.Lists {
		out.Lists[i] = l.Clone()
	}
	return out
}

// Clone returns a deep copy of the list and its items.
func (l PackingList) Clone() PackingList {
	out := l
	out.Items = make([]Item, len(l.Items))
	copy(out.Items, l.Items)
	return out
}
