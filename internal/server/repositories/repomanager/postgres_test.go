package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/libauth/internal/server/config"
	"github.com/dmitrijs2005/libauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	return db, mock
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestNewPostgresRepositoryManager_RunsMigrations(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	called := false
	stubGoose(t, func(ctx context.Context, got *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		assert.Same(t, db, got)
		assert.Equal(t, ".", dir)
		assert.Empty(t, opts)
		return nil
	})

	m, err := NewPostgresRepositoryManager(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, called)

	var _ RepositoryManager = m
	var _ users.Repository = m.Users()
	assert.IsType(t, &users.PostgresRepository{}, m.Users())
}

func TestNewPostgresRepositoryManager_MigrationError(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	stubGoose(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	_, err := NewPostgresRepositoryManager(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestPostgresRepositoryManager_PingAndClose(t *testing.T) {
	db, mock := newDB(t)

	stubGoose(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return nil })

	m, err := NewPostgresRepositoryManager(context.Background(), db)
	require.NoError(t, err)

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("down"))
	mock.ExpectClose()

	require.NoError(t, m.Ping(context.Background()))
	require.Error(t, m.Ping(context.Background()))
	require.NoError(t, m.Close(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_Memory(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StorageDriver = config.StorageMemory

	m, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &users.MemoryRepository{}, m.Users())
	assert.NoError(t, m.Ping(context.Background()))
	assert.NoError(t, m.Close(context.Background()))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StorageDriver: "redis"})
	require.Error(t, err)
}
