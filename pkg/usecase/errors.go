package usecase

import "errors"

// Sentinel errors for use case layer. The HTTP layer maps these to status
// codes; everything else is a generic server error.
var (
	ErrImageRequired  = errors.New("image is required")
	ErrMemoryNotFound = errors.New("memory not found")
	ErrGroupNotFound  = errors.New("group not found")
)
