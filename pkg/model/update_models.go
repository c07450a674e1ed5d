package model

// ListUpdate describes a partial metadata update for a packing list.
// Nil fields are left untouched; the items sequence is never changed
// through a metadata update.
type ListUpdate struct {
	Title       *string
	Description *string
	Duration    *int
	Destination *string
}

// ItemUpdate describes a partial update for a single item. Nil fields are
// left untouched. Setting IsCompleted without an explicit PackedQuantity
// snaps the packed quantity to the target (true) or zero (false), matching
// the completion toggle behavior.
type ItemUpdate struct {
	Name           *string
	TargetQuantity *int
	PackedQuantity *int
	IsCompleted    *bool
}

// DefaultItem is a starter item offered at list creation.
type DefaultItem struct {
	Name   string
	Target int
}

// DefaultItems are the starter items seeded into a new list on request.
var DefaultItems = []DefaultItem{
	{Name: "T-Shirts", Target: 5},
	{Name: "Socks", Target: 7},
	{Name: "Toothbrush", Target: 1},
	{Name: "Sunscreen", Target: 1},
	{Name: "Passport", Target: 1},
	{Name: "Chargers", Target: 2},
}
