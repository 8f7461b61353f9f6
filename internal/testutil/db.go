// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"property-management/internal/config"
	"property-management/internal/database"
	"property-management/internal/logger"
)

var dbSeq atomic.Int64

// NewSQLiteDB opens a fresh migrated in-memory sqlite database. A single
// connection is used so concurrent transactions queue instead of failing.
func NewSQLiteDB(t testing.TB) *database.GormDB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return openSQLite(t, fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1)), 1)
}

// NewSQLiteFileDB opens a migrated sqlite database file under t.TempDir()
// with up to conns pooled connections, so transactions really overlap.
func NewSQLiteFileDB(t testing.TB, conns int) *database.GormDB {
	t.Helper()
	return openSQLite(t, filepath.Join(t.TempDir(), "pm.db"), conns)
}

func openSQLite(t testing.TB, path string, conns int) *database.GormDB {
	t.Helper()

	cfg := config.DefaultConfig().Database
	cfg.Type = "sqlite"
	cfg.SQLite.Path = path
	cfg.MaxOpenConns = conns
	cfg.MaxIdleConns = conns
	cfg.LogLevel = "silent"

	gdb, err := database.NewGormDB(cfg, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, gdb.InitSchema())
	t.Cleanup(func() { _ = gdb.Close() })
	return gdb
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
