package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"property-management/internal/config"
	"property-management/internal/logger"
	"property-management/internal/models"
)

type GormDB struct {
	db  *gorm.DB
	cfg config.DatabaseConfig
}

// NewGormDB opens the configured database, applies pool settings and pings it.
func NewGormDB(cfg config.DatabaseConfig, log *logger.Logger) (*GormDB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger:         NewGormLogger(log, cfg.LogLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
	if cfg.Type == "postgres" && cfg.Postgres.Schema != "" {
		gormCfg.NamingStrategy = schema.NamingStrategy{TablePrefix: cfg.Postgres.Schema + "."}
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if lifetime := cfg.GetConnMaxLifetime(); lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Type, err)
	}

	return &GormDB{db: db, cfg: cfg}, nil
}

// NewGormDBFromDB creates a GormDB wrapper from an existing gorm.DB instance
func NewGormDBFromDB(db *gorm.DB, cfg config.DatabaseConfig) *GormDB {
	return &GormDB{db: db, cfg: cfg}
}

// Dialector builds the gorm dialector for the configured database type.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "mysql":
		m := cfg.MySQL
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			m.User, m.Password, m.Host, m.Port, m.Database)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.SQLite.Path)), nil
	case "postgres", "":
		p := cfg.Postgres
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			p.Host, p.Port, p.User, p.Password, p.Database, orDefault(p.SSLMode, "disable"))
		if p.Driver == "pq" {
			return postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn}), nil
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}

// SQLiteDSN adds a busy timeout so concurrent writers wait instead of failing fast.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_busy_timeout") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000"
}

// DB returns the underlying gorm.DB instance
func (gdb *GormDB) DB() *gorm.DB {
	return gdb.db
}

// Config returns the database settings the connection was opened with
func (gdb *GormDB) Config() config.DatabaseConfig {
	return gdb.cfg
}

func (gdb *GormDB) Close() error {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitSchema creates the schema (postgres) and tables using GORM AutoMigrate
func (gdb *GormDB) InitSchema() error {
	if s := gdb.schemaName(); s != "" {
		if err := gdb.db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", s)).Error; err != nil {
			return fmt.Errorf("failed to create schema %s: %w", s, err)
		}
	}
	return gdb.db.AutoMigrate(models.All()...)
}

// DropSchema drops every table, children first
func (gdb *GormDB) DropSchema() error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := gdb.db.Migrator().DropTable(all[i]); err != nil {
			return err
		}
	}
	return nil
}

func (gdb *GormDB) schemaName() string {
	if gdb.db.Dialector.Name() != "postgres" {
		return ""
	}
	return gdb.cfg.Postgres.Schema
}

// Latency pings the database and returns the round trip time.
func (gdb *GormDB) Latency(ctx context.Context) (time.Duration, error) {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return 0, err
	}
	start := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// Stats returns connection pool statistics.
func (gdb *GormDB) Stats() sql.DBStats {
	sqlDB, err := gdb.db.DB()
	if err != nil {
		return sql.DBStats{}
	}
	return sqlDB.Stats()
}

// PoolStats returns open and in-use connection counts.
func (gdb *GormDB) PoolStats() (open, inUse int) {
	st := gdb.Stats()
	return st.OpenConnections, st.InUse
}

// TxOptions returns the isolation level to use for write transactions.
// sqlite rejects explicit isolation levels, so it gets the driver default.
func (gdb *GormDB) TxOptions() *sql.TxOptions {
	return TxOptionsFor(gdb.db.Dialector.Name(), gdb.cfg.Isolation)
}

// TxOptionsFor maps a dialect and configured isolation name to transaction options.
func TxOptionsFor(dialect, isolation string) *sql.TxOptions {
	if dialect == "sqlite" {
		return nil
	}
	level := sql.LevelReadCommitted
	switch strings.ToLower(isolation) {
	case "repeatable_read":
		level = sql.LevelRepeatableRead
	case "serializable":
		level = sql.LevelSerializable
	}
	return &sql.TxOptions{Isolation: level}
}

// SupportsRowLocks reports whether SELECT ... FOR UPDATE is available.
func SupportsRowLocks(db *gorm.DB) bool {
	return db.Dialector.Name() != "sqlite"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
