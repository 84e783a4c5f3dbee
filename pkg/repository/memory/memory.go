package memory

import (
	"github.com/keepsake-app/keepsake/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	memory *memoryRepository
	group  *groupRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		memory: newMemoryRepository(),
		group:  newGroupRepository(),
	}
}

func (m *Memory) Memory() interfaces.MemoryRepository {
	return m.memory
}

func (m *Memory) Group() interfaces.GroupRepository {
	return m.group
}

func (m *Memory) Close() error {
	return nil
}
