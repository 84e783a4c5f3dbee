package usecase

import (
	"github.com/keepsake-app/keepsake/pkg/domain/interfaces"
	"github.com/keepsake-app/keepsake/pkg/service/media"
)

type UseCases struct {
	repo   interfaces.Repository
	media  media.Store
	Memory *MemoryUseCase
	Group  *GroupUseCase
}

func New(repo interfaces.Repository, mediaStore media.Store) *UseCases {
	uc := &UseCases{
		repo:  repo,
		media: mediaStore,
	}

	uc.Memory = NewMemoryUseCase(repo, mediaStore)
	uc.Group = NewGroupUseCase(repo)

	return uc
}
