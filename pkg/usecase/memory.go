package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keepsake-app/keepsake/pkg/domain/interfaces"
	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
	"github.com/keepsake-app/keepsake/pkg/service/media"
	"github.com/keepsake-app/keepsake/pkg/utils/logging"
)

type MemoryUseCase struct {
	repo  interfaces.Repository
	media media.Store
}

func NewMemoryUseCase(repo interfaces.Repository, mediaStore media.Store) *MemoryUseCase {
	return &MemoryUseCase{
		repo:  repo,
		media: mediaStore,
	}
}

// CreateMemoryInput carries the validated request fields for a create.
// Image is the raw blob; a nil or empty Image is a validation error.
type CreateMemoryInput struct {
	Title       string
	Date        time.Time
	Description string
	Special     string
	Image       []byte
}

// CreateMemory stores the image first, then persists the record referencing
// the returned URL and public ID. The image check runs before any side
// effect: a request without an image never reaches the media host or the
// store. If persistence fails after a successful upload, the blob is left
// orphaned; the failure is logged with the public ID and no compensating
// delete is attempted.
func (uc *MemoryUseCase) CreateMemory(ctx context.Context, input CreateMemoryInput) (*model.Memory, error) {
	if len(input.Image) == 0 {
		return nil, goerr.Wrap(ErrImageRequired, "memory create requires an image")
	}
	if input.Title == "" {
		return nil, goerr.New("memory title is required")
	}
	if input.Date.IsZero() {
		return nil, goerr.New("memory date is required")
	}
	if input.Description == "" {
		return nil, goerr.New("memory description is required")
	}

	obj, err := uc.media.Store(ctx, input.Image)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store image")
	}

	mem := &model.Memory{
		Title:       input.Title,
		Date:        input.Date,
		Description: input.Description,
		Special:     input.Special,
	}
	mem.SetImage(obj.URL, obj.PublicID)

	created, err := uc.repo.Memory().Create(ctx, mem)
	if err != nil {
		logging.From(ctx).Error("memory persist failed after upload, blob is orphaned",
			"imagePublicId", obj.PublicID, "error", err.Error())
		return nil, goerr.Wrap(err, "failed to create memory")
	}

	return created, nil
}

// ListMemories returns all memories ordered by CreatedAt descending.
func (uc *MemoryUseCase) ListMemories(ctx context.Context) ([]*model.Memory, error) {
	memories, err := uc.repo.Memory().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list memories")
	}
	return memories, nil
}

// UpdateMemoryInput carries the partial fields of an update. Empty strings
// and a zero Date mean "not supplied": the stored value is kept. A non-empty
// Image replaces the blob.
type UpdateMemoryInput struct {
	Title       string
	Date        time.Time
	Description string
	Special     string
	Image       []byte
}

// UpdateMemory applies the supplied fields to an existing record. When a new
// image arrives, the old blob is deleted before the new one is stored; a
// failed delete is logged and swallowed so the update still goes through,
// trading a possibly leaked blob for forward progress. imageUrl and
// imagePublicId are always replaced together.
func (uc *MemoryUseCase) UpdateMemory(ctx context.Context, id types.MemoryID, input UpdateMemoryInput) (*model.Memory, error) {
	existing, err := uc.repo.Memory().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrMemoryNotFound, "cannot update", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get memory", goerr.V("id", id))
	}

	if input.Title != "" {
		existing.Title = input.Title
	}
	if !input.Date.IsZero() {
		existing.Date = input.Date
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.Special != "" {
		existing.Special = input.Special
	}

	if len(input.Image) > 0 {
		// Delete-then-store: the previous blob is removed first so updates
		// do not leak a blob each time, at the cost of a brief window where
		// the record points at no live blob.
		if err := uc.media.Remove(ctx, existing.ImagePublicID); err != nil {
			logging.From(ctx).Warn("failed to remove old image blob, continuing",
				"id", id, "imagePublicId", existing.ImagePublicID, "error", err.Error())
		}

		obj, err := uc.media.Store(ctx, input.Image)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to store replacement image", goerr.V("id", id))
		}
		existing.SetImage(obj.URL, obj.PublicID)
	}

	updated, err := uc.repo.Memory().Update(ctx, existing)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrMemoryNotFound, "cannot update", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to update memory", goerr.V("id", id))
	}

	return updated, nil
}

// DeleteMemory removes the blob and then the record. A failed blob delete is
// logged and swallowed; the record is removed regardless, so blob and record
// deletion are not atomic.
func (uc *MemoryUseCase) DeleteMemory(ctx context.Context, id types.MemoryID) error {
	existing, err := uc.repo.Memory().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrMemoryNotFound, "cannot delete", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get memory", goerr.V("id", id))
	}

	if err := uc.media.Remove(ctx, existing.ImagePublicID); err != nil {
		logging.From(ctx).Warn("failed to remove image blob, deleting record anyway",
			"id", id, "imagePublicId", existing.ImagePublicID, "error", err.Error())
	}

	if err := uc.repo.Memory().Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrMemoryNotFound, "cannot delete", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to delete memory", goerr.V("id", id))
	}

	return nil
}
