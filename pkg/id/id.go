// Package id generates the short opaque identifiers used for users, lists
// and items. Uniqueness only needs to hold with overwhelming probability
// within one store's lifetime.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a new short opaque identifier.
func New() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
