package interfaces

import (
	"context"

	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
)

type MemoryRepository interface {
	// Create persists a new memory. An empty ID is assigned; a zero
	// CreatedAt is set to the current time.
	Create(ctx context.Context, mem *model.Memory) (*model.Memory, error)

	// Get retrieves a memory by ID
	Get(ctx context.Context, id types.MemoryID) (*model.Memory, error)

	// List retrieves all memories ordered by CreatedAt descending
	List(ctx context.Context) ([]*model.Memory, error)

	// Update replaces an existing memory, preserving its CreatedAt
	Update(ctx context.Context, mem *model.Memory) (*model.Memory, error)

	// Delete deletes a memory by ID
	Delete(ctx context.Context, id types.MemoryID) error
}
