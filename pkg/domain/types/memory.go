package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// MemoryID is a UUID-based identifier for Memory
type MemoryID string

// NewMemoryID generates a new UUID v4 MemoryID
func NewMemoryID() MemoryID {
	return MemoryID(uuid.New().String())
}

// Validate checks if the MemoryID is valid
func (x MemoryID) Validate() error {
	if x == "" {
		return goerr.New("memory ID cannot be empty")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "memory ID must be a UUID", goerr.V("id", x))
	}
	return nil
}

// String returns the string representation of MemoryID
func (x MemoryID) String() string {
	return string(x)
}
