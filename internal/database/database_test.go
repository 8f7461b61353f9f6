package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"property-management/internal/config"
	"property-management/internal/logger"
	"property-management/internal/models"
)

func newSQLite(t *testing.T) *GormDB {
	t.Helper()
	cfg := config.DefaultConfig().Database
	cfg.Type = "sqlite"
	cfg.SQLite.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	cfg.MaxOpenConns = 1
	cfg.LogLevel = "silent"

	gdb, err := NewGormDB(cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = gdb.Close() })
	return gdb
}

func TestInitAndDropSchema(t *testing.T) {
	gdb := newSQLite(t)
	require.NoError(t, gdb.InitSchema())

	for _, m := range models.All() {
		assert.True(t, gdb.DB().Migrator().HasTable(m), "%T", m)
	}

	require.NoError(t, gdb.DropSchema())
	for _, m := range models.All() {
		assert.False(t, gdb.DB().Migrator().HasTable(m), "%T", m)
	}
}

func TestLatencyAndStats(t *testing.T) {
	gdb := newSQLite(t)

	d, err := gdb.Latency(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d.Nanoseconds(), int64(0))
	assert.Equal(t, 1, gdb.Stats().MaxOpenConnections)
}

func TestDialector(t *testing.T) {
	cfg := config.DefaultConfig().Database

	d, err := Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	cfg.Postgres.Driver = "pq"
	d, err = Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	cfg.Type = "mysql"
	d, err = Dialector(cfg)
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	cfg.Type = "oracle"
	_, err = Dialector(cfg)
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "pm.db?_busy_timeout=5000", SQLiteDSN("pm.db"))
	assert.Equal(t, "file:x?mode=memory&_busy_timeout=5000", SQLiteDSN("file:x?mode=memory"))
	assert.Equal(t, "pm.db?_busy_timeout=10", SQLiteDSN("pm.db?_busy_timeout=10"))
}

func TestTxOptionsFor(t *testing.T) {
	assert.Nil(t, TxOptionsFor("sqlite", "serializable"))
	assert.Equal(t, sql.LevelReadCommitted, TxOptionsFor("postgres", "").Isolation)
	assert.Equal(t, sql.LevelReadCommitted, TxOptionsFor("mysql", "read_committed").Isolation)
	assert.Equal(t, sql.LevelSerializable, TxOptionsFor("postgres", "SERIALIZABLE").Isolation)
	assert.Equal(t, sql.LevelRepeatableRead, TxOptionsFor("mysql", "repeatable_read").Isolation)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", fmt.Errorf("boom"), false},
		{"pgx serialization", &pgconn.PgError{Code: "40001"}, true},
		{"pgx deadlock wrapped", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, false},
		{"pq lock not available", &pq.Error{Code: "55P03"}, true},
		{"mysql deadlock", &mysqldriver.MySQLError{Number: 1213}, true},
		{"mysql lock wait", &mysqldriver.MySQLError{Number: 1205}, true},
		{"mysql duplicate", &mysqldriver.MySQLError{Number: 1062}, false},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, true},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicate(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsDuplicate(&pq.Error{Code: "23505"}))
	assert.True(t, IsDuplicate(&mysqldriver.MySQLError{Number: 1062}))
	assert.True(t, IsDuplicate(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, IsDuplicate(&pgconn.PgError{Code: "40001"}))
	assert.False(t, IsDuplicate(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(&mysqldriver.MySQLError{Number: 1451}))
	assert.True(t, IsForeignKeyViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}))
	assert.False(t, IsForeignKeyViolation(&mysqldriver.MySQLError{Number: 1062}))
}
