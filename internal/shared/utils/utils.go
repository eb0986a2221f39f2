package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ParseID parses a path id. Anything that is not a canonical UUID is
// reported as not ok so callers can answer NotFound.
func ParseID(s string) (uuid.UUID, bool) {
	s = strings.TrimSpace(s)
	if !IsValidUUID(s) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// IsValidUUID accepts only the 36-character hyphenated form
func IsValidUUID(u string) bool {
	if len(u) != 36 {
		return false
	}
	_, err := uuid.Parse(u)
	return err == nil
}
