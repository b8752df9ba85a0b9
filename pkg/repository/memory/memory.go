package memory

import (
	"github.com/j4ckxyz/memory-node-mcp/pkg/domain/interfaces"
)

// Memory is an in-memory repository implementation for development and tests
type Memory struct {
	memories      *memoryRepository
	globalSummary *globalSummaryRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		memories:      newMemoryRepository(),
		globalSummary: newGlobalSummaryRepository(),
	}
}

func (m *Memory) Memory() interfaces.MemoryRepository {
	return m.memories
}

func (m *Memory) GlobalSummary() interfaces.GlobalSummaryRepository {
	return m.globalSummary
}

func (m *Memory) Close() error {
	return nil
}
