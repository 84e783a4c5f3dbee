package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/keepsake-app/keepsake/pkg/domain/types"
	"github.com/keepsake-app/keepsake/pkg/usecase"
)

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps order and duplicates", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		a := types.NewMemoryID()
		b := types.NewMemoryID()

		created, err := uc.Group.CreateGroup(ctx, usecase.CreateGroupInput{
			Name:        "roadtrip",
			Description: "west coast 2024",
			MemoryIDs:   []types.MemoryID{a, b, a},
		})
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Array(t, created.MemoryIDs).Equal([]types.MemoryID{a, b, a})
	})

	t.Run("nil member list becomes empty", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		created, err := uc.Group.CreateGroup(ctx, usecase.CreateGroupInput{
			Name: "empty start",
		})
		gt.NoError(t, err).Required()
		gt.Array(t, created.MemoryIDs).Length(0)
		gt.B(t, created.MemoryIDs == nil).False()
	})

	t.Run("dangling references are accepted", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		created, err := uc.Group.CreateGroup(ctx, usecase.CreateGroupInput{
			Name:      "ghosts",
			MemoryIDs: []types.MemoryID{types.NewMemoryID()},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, created.MemoryIDs).Length(1)
	})

	t.Run("missing name", func(t *testing.T) {
		uc, _ := newTestUseCases(t)

		_, err := uc.Group.CreateGroup(ctx, usecase.CreateGroupInput{
			Description: "anonymous",
		})
		gt.Error(t, err)
	})
}

func TestUpdateGroup(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, uc *usecase.UseCases, ids []types.MemoryID) types.GroupID {
		t.Helper()
		created, err := uc.Group.CreateGroup(ctx, usecase.CreateGroupInput{
			Name:        "seed group",
			Description: "seed description",
			MemoryIDs:   ids,
		})
		gt.NoError(t, err).Required()
		return created.ID
	}

	t.Run("nil fields keep stored values", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		member := types.NewMemoryID()
		id := seed(t, uc, []types.MemoryID{member})

		name := "renamed"
		updated, err := uc.Group.UpdateGroup(ctx, id, usecase.UpdateGroupInput{
			Name: &name,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Name).Equal("renamed")
		gt.Value(t, updated.Description).Equal("seed description")
		gt.Array(t, updated.MemoryIDs).Equal([]types.MemoryID{member})
	})

	t.Run("explicit empty list clears members", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		id := seed(t, uc, []types.MemoryID{types.NewMemoryID()})

		empty := []types.MemoryID{}
		updated, err := uc.Group.UpdateGroup(ctx, id, usecase.UpdateGroupInput{
			MemoryIDs: &empty,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, updated.MemoryIDs).Length(0)
	})

	t.Run("member list is replaced wholesale", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		id := seed(t, uc, []types.MemoryID{types.NewMemoryID(), types.NewMemoryID()})

		next := []types.MemoryID{types.NewMemoryID()}
		updated, err := uc.Group.UpdateGroup(ctx, id, usecase.UpdateGroupInput{
			MemoryIDs: &next,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, updated.MemoryIDs).Equal(next)
	})

	t.Run("unknown id", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		name := "nobody"
		_, err := uc.Group.UpdateGroup(ctx, types.NewGroupID(), usecase.UpdateGroupInput{
			Name: &name,
		})
		gt.Error(t, err)
		gt.B(t, errors.Is(err, usecase.ErrGroupNotFound)).True()
	})
}

func TestDeleteGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("removes only the group", func(t *testing.T) {
		uc, mediaStore := newTestUseCases(t)

		mem, err := uc.Memory.CreateMemory(ctx, usecase.CreateMemoryInput{
			Title:       "keep me",
			Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Description: "survives group deletion",
			Image:       jpegBlob(),
		})
		gt.NoError(t, err).Required()

		grp, err := uc.Group.CreateGroup(ctx, usecase.CreateGroupInput{
			Name:      "doomed",
			MemoryIDs: []types.MemoryID{mem.ID},
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Group.DeleteGroup(ctx, grp.ID))

		groups, err := uc.Group.ListGroups(ctx)
		gt.NoError(t, err)
		gt.Array(t, groups).Length(0)

		memories, err := uc.Memory.ListMemories(ctx)
		gt.NoError(t, err)
		gt.Array(t, memories).Length(1)
		gt.B(t, mediaStore.Live(mem.ImagePublicID)).True()
	})

	t.Run("unknown id", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		err := uc.Group.DeleteGroup(ctx, types.NewGroupID())
		gt.Error(t, err)
		gt.B(t, errors.Is(err, usecase.ErrGroupNotFound)).True()
	})
}
