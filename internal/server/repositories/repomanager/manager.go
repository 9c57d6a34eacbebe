// Package repomanager opens the configured storage backend and vends the
// repositories built on top of it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/libauth/internal/server/config"
	"github.com/dmitrijs2005/libauth/internal/server/repositories/users"
)

// RepositoryManager owns a storage connection and the repositories bound to it.
type RepositoryManager interface {
	Users() users.Repository
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// New opens the backend selected by cfg.StorageDriver and prepares its
// schema (migrations for PostgreSQL, indexes for MongoDB).
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		m, err := NewPostgresRepositoryManager(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return m, nil
	case config.StorageMongo:
		return NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StorageMemory:
		return NewMemoryRepositoryManager(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
