package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keepsake-app/keepsake/pkg/domain/interfaces"
	"github.com/keepsake-app/keepsake/pkg/domain/model"
	"github.com/keepsake-app/keepsake/pkg/domain/types"
)

type memoryRepository struct {
	mu       sync.RWMutex
	memories map[types.MemoryID]*model.Memory
}

var _ interfaces.MemoryRepository = &memoryRepository{}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		memories: make(map[types.MemoryID]*model.Memory),
	}
}

func copyMemory(m *model.Memory) *model.Memory {
	c := *m
	return &c
}

func (r *memoryRepository) Create(ctx context.Context, mem *model.Memory) (*model.Memory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyMemory(mem)
	if created.ID == "" {
		created.ID = types.NewMemoryID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.memories[created.ID] = copyMemory(created)
	return created, nil
}

func (r *memoryRepository) Get(ctx context.Context, id types.MemoryID) (*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mem, exists := r.memories[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "memory not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return copyMemory(mem), nil
}

func (r *memoryRepository) List(ctx context.Context) ([]*model.Memory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memories := make([]*model.Memory, 0, len(r.memories))
	for _, mem := range r.memories {
		memories = append(memories, copyMemory(mem))
	}

	sort.SliceStable(memories, func(i, j int) bool {
		return memories[i].CreatedAt.After(memories[j].CreatedAt)
	})

	return memories, nil
}

func (r *memoryRepository) Update(ctx context.Context, mem *model.Memory) (*model.Memory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.memories[mem.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "memory not found", goerr.V("id", mem.ID))
	}

	updated := copyMemory(mem)
	updated.CreatedAt = existing.CreatedAt

	r.memories[updated.ID] = copyMemory(updated)
	return updated, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id types.MemoryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.memories[id]; !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "memory not found", goerr.V("id", id))
	}

	delete(r.memories, id)
	return nil
}
