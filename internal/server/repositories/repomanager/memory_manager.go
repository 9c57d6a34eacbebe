package repomanager

import (
	"context"

	"github.com/dmitrijs2005/libauth/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close(context.Context) error { return nil }
