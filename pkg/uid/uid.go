// Package uid generates and validates the unique identifiers used for
// request tracing and per-cycle item identity.
package uid

import "github.com/google/uuid"

// New returns a new random identifier.
func New() string {
	return uuid.New().String()
}

// IsValid reports whether id is a well-formed identifier.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
