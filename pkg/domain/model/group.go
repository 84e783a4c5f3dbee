package model

import (
	"time"

	"github.com/keepsake-app/keepsake/pkg/domain/types"
)

// Group is a named collection referencing zero or more Memory identifiers.
// MemoryIDs keeps insertion order, may contain duplicates, and is a weak
// reference: deleting a Memory does not touch Groups that reference it.
type Group struct {
	ID          types.GroupID
	Name        string
	Description string
	MemoryIDs   []types.MemoryID
	CreatedAt   time.Time
}
