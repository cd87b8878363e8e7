package utils

import "github.com/google/uuid"

// NewID returns an opaque identifier for players, matches and availability
// records. IDs carry no ordering semantics; display ordering always comes
// from date or creation-time fields.
func NewID() string {
	return uuid.NewString()
}
