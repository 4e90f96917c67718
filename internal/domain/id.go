package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseID parses an externally supplied identifier into a UUID.
// It accepts only the canonical 8-4-4-4-12 hexadecimal textual form,
// case-insensitive. Any identifier arriving from a request path, query
// string, or body must pass through here before being used in a query.
// Returns ErrInvalidID (wrapped with the offending value's length, never
// its content) if the input is not a canonical UUID.
func ParseID(s string) (uuid.UUID, error) {
	// uuid.Parse accepts several non-canonical encodings (URN prefix,
	// braces, bare hex); restrict to the canonical form up front.
	if len(s) != 36 {
		return uuid.Nil, fmt.Errorf("%w: expected 36 characters, got %d", ErrInvalidID, len(s))
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: not a canonical UUID", ErrInvalidID)
	}

	return id, nil
}
