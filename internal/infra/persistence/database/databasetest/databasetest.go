// Package databasetest opens throwaway SQLite databases with the real schema
// for tests of the persistence and use case layers.
package databasetest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"marketplace/config"
	"marketplace/internal/infra/persistence/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory database private to the test. The pool
// holds a single connection so every session sees the same memory store.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLitePath = "file:" + uuid.NewString() + "?mode=memory&cache=shared"

	db, err := database.Open(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))

	return db
}
