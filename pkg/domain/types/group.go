package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// GroupID is a UUID-based identifier for Group
type GroupID string

// NewGroupID generates a new UUID v4 GroupID
func NewGroupID() GroupID {
	return GroupID(uuid.New().String())
}

// Validate checks if the GroupID is valid
func (x GroupID) Validate() error {
	if x == "" {
		return goerr.New("group ID cannot be empty")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "group ID must be a UUID", goerr.V("id", x))
	}
	return nil
}

// String returns the string representation of GroupID
func (x GroupID) String() string {
	return string(x)
}
