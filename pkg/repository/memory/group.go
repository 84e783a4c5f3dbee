package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keepsake-app/keepsake/pkg/domain/interfaces"
	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
)

type groupRepository struct {
	mu     sync.RWMutex
	groups map[types.GroupID]*model.Group
	order  []types.GroupID // insertion order for List
}

var _ interfaces.GroupRepository = &groupRepository{}

func newGroupRepository() *groupRepository {
	return &groupRepository{
		groups: make(map[types.GroupID]*model.Group),
	}
}

func copyGroup(g *model.Group) *model.Group {
	c := *g
	c.MemoryIDs = make([]types.MemoryID, len(g.MemoryIDs))
	copy(c.MemoryIDs, g.MemoryIDs)
	return &c
}

func (r *groupRepository) Create(ctx context.Context, group *model.Group) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyGroup(group)
	if created.ID == "" {
		created.ID = types.NewGroupID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	if created.MemoryIDs == nil {
		created.MemoryIDs = []types.MemoryID{}
	}

	r.groups[created.ID] = copyGroup(created)
	r.order = append(r.order, created.ID)
	return created, nil
}

func (r *groupRepository) Get(ctx context.Context, id types.GroupID) (*model.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, exists := r.groups[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "group not found", goerr.V("id", id))
	}

	return copyGroup(group), nil
}

func (r *groupRepository) List(ctx context.Context) ([]*model.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]*model.Group, 0, len(r.groups))
	for _, id := range r.order {
		if group, exists := r.groups[id]; exists {
			groups = append(groups, copyGroup(group))
		}
	}

	return groups, nil
}

func (r *groupRepository) Update(ctx context.Context, group *model.Group) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.groups[group.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "group not found", goerr.V("id", group.ID))
	}

	updated := copyGroup(group)
	updated.CreatedAt = existing.CreatedAt
	if updated.MemoryIDs == nil {
		updated.MemoryIDs = []types.MemoryID{}
	}

	r.groups[updated.ID] = copyGroup(updated)
	return updated, nil
}

func (r *groupRepository) Delete(ctx context.Context, id types.GroupID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.groups[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "group not found", goerr.V("id", id))
	}

	delete(r.groups, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
