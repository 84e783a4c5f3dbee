package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by repository implementations when an ID does not
// resolve to a stored record. Callers distinguish it from generic persistence
// failures with errors.Is.
var ErrNotFound = goerr.New("record not found")

// Repository defines the interface for data persistence
type Repository interface {
	Memory() MemoryRepository
	Group() GroupRepository
	Close() error
}
