package interfaces

import (
	"context"

	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
)

type GroupRepository interface {
	// Create persists a new group. An empty ID is assigned; a zero
	// CreatedAt is set to the current time.
	Create(ctx context.Context, group *model.Group) (*model.Group, error)

	// Get retrieves a group by ID
	Get(ctx context.Context, id types.GroupID) (*model.Group, error)

	// List retrieves all groups in natural storage order
	List(ctx context.Context) ([]*model.Group, error)

	// Update replaces an existing group, preserving its CreatedAt
	Update(ctx context.Context, group *model.Group) (*model.Group, error)

	// Delete deletes a group by ID
	Delete(ctx context.Context, id types.GroupID) error
}
