package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keepsake-app/keepsake/pkg/domain/interfaces"
	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
)

type GroupUseCase struct {
	repo interfaces.Repository
}

func NewGroupUseCase(repo interfaces.Repository) *GroupUseCase {
	return &GroupUseCase{repo: repo}
}

type CreateGroupInput struct {
	Name        string
	Description string
	MemoryIDs   []types.MemoryID
}

// CreateGroup persists a group. MemoryIDs are stored as given: duplicates
// and IDs that do not resolve to a live memory are both allowed, the list
// holds weak references. A nil list is stored as an empty one.
func (uc *GroupUseCase) CreateGroup(ctx context.Context, input CreateGroupInput) (*model.Group, error) {
	if input.Name == "" {
		return nil, goerr.New("group name is required")
	}

	grp := &model.Group{
		Name:        input.Name,
		Description: input.Description,
		MemoryIDs:   input.MemoryIDs,
	}
	if grp.MemoryIDs == nil {
		grp.MemoryIDs = []types.MemoryID{}
	}

	created, err := uc.repo.Group().Create(ctx, grp)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create group")
	}

	return created, nil
}

func (uc *GroupUseCase) ListGroups(ctx context.Context) ([]*model.Group, error) {
	groups, err := uc.repo.Group().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list groups")
	}
	return groups, nil
}

// UpdateGroupInput is presence-based: a nil field keeps the stored value.
// A non-nil MemoryIDs replaces the whole list, so a pointer to an empty
// slice clears it.
type UpdateGroupInput struct {
	Name        *string
	Description *string
	MemoryIDs   *[]types.MemoryID
}

func (uc *GroupUseCase) UpdateGroup(ctx context.Context, id types.GroupID, input UpdateGroupInput) (*model.Group, error) {
	existing, err := uc.repo.Group().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrGroupNotFound, "cannot update", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get group", goerr.V("id", id))
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.MemoryIDs != nil {
		ids := make([]types.MemoryID, len(*input.MemoryIDs))
		copy(ids, *input.MemoryIDs)
		existing.MemoryIDs = ids
	}

	updated, err := uc.repo.Group().Update(ctx, existing)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrGroupNotFound, "cannot update", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to update group", goerr.V("id", id))
	}

	return updated, nil
}

// DeleteGroup removes only the group row. Member memories are untouched,
// the list is a weak reference in one direction only.
func (uc *GroupUseCase) DeleteGroup(ctx context.Context, id types.GroupID) error {
	if err := uc.repo.Group().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrGroupNotFound, "cannot delete", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to delete group", goerr.V("id", id))
	}
	return nil
}
