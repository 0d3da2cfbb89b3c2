package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tensuraworld/gachabot/gachabot/logger"
	querylog "github.com/tensuraworld/gachabot/internal/domain/logger"
	"github.com/tensuraworld/gachabot/internal/gateways/database/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	_ "modernc.org/sqlite"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
	slowQueryThreshold   = 500 * time.Millisecond

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrSnapshotUnsupported = errors.New("snapshots are only supported for sqlite")

type DBConfig struct {
	Driver       string `toml:"driver" env:"DB_DRIVER"`
	Path         string `toml:"path" env:"DB_PATH"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password" env:"DB_PASSWORD"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
	BackupDir    string `toml:"backup_dir" env:"DB_BACKUP_DIR"`
	CacheSize    int    `toml:"catalog_cache_size"`
}

type DB struct {
	pool   *pgxpool.Pool
	bunDB  *bun.DB
	driver string
}

// New opens the configured backend. An empty driver means sqlite.
func New(ctx context.Context, cfg DBConfig) (*DB, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverSQLite:
		return NewSQLite(cfg.Path)
	case DriverPostgres:
		return newPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// NewSQLite opens a single-file database. ":memory:" gives a private
// in-memory database.
func NewSQLite(path string) (*DB, error) {
	if path == "" {
		path = "bot.db"
	}

	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}

	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection serializes writers, which is what keeps Atomic units
	// from interleaving.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	bunDB.AddQueryHook(querylog.NewQueryHook(slowQueryThreshold))
	return &DB{bunDB: bunDB, driver: DriverSQLite}, nil
}

func newPostgres(ctx context.Context, cfg DBConfig) (*DB, error) {
	var err error
	for i := 0; i < defaultMaxRetries; i++ {
		var conn net.Conn
		conn, err = net.DialTimeout("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)), defaultConnTimeout)
		if err == nil {
			conn.Close()
			break
		}
		time.Sleep(defaultRetryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
	}

	poolConfig, err := pgxpool.ParseConfig(buildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = int32(cfg.MaxIdleConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	sslMode := os.Getenv("PG_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, sslMode)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	bunDB.AddQueryHook(querylog.NewQueryHook(slowQueryThreshold))

	return &DB{pool: pool, bunDB: bunDB, driver: DriverPostgres}, nil
}

func buildConnString(cfg DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?connect_timeout=5",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
	)
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Ping(ctx context.Context) error {
	if db.pool != nil {
		if err := db.pool.Ping(ctx); err != nil {
			return err
		}
	}
	return db.bunDB.PingContext(ctx)
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}

func (db *DB) ExecWithLog(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := db.bunDB.ExecContext(ctx, query, args...)
	logger.LogQuery(query, time.Since(start), err)
	return result, err
}

// InitializeSchema creates every table and index the ledger needs. It is
// safe to run on every start.
func (db *DB) InitializeSchema(ctx context.Context) error {
	tables := []any{
		(*models.User)(nil),
		(*models.Character)(nil),
		(*models.InventoryEntry)(nil),
		(*models.Quest)(nil),
		(*models.UserQuest)(nil),
		(*models.Admin)(nil),
	}

	for _, model := range tables {
		q := db.bunDB.NewCreateTable().
			Model(model).
			IfNotExists()
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_rank ON users(level DESC, exp DESC, coins DESC);",
		"CREATE INDEX IF NOT EXISTS idx_characters_rarity ON characters(rarity);",
		"CREATE INDEX IF NOT EXISTS idx_characters_name ON characters(name);",
		"CREATE INDEX IF NOT EXISTS idx_inventory_user ON inventory(user_id, character_id);",
		"CREATE INDEX IF NOT EXISTS idx_user_quests_quest ON user_quests(quest_id);",
	}
	for _, idx := range indexes {
		if _, err := db.ExecWithLog(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	slog.Info("Database schema initialized",
		slog.String("type", "db"),
		slog.String("driver", db.driver))
	return nil
}

// SnapshotName is the file name used for a snapshot taken at t.
func SnapshotName(t time.Time) string {
	return "bot_" + t.UTC().Format("20060102_150405") + ".db"
}

// Snapshot writes a consistent copy of a sqlite database into dir and
// returns its path.
func (db *DB) Snapshot(ctx context.Context, dir string, now time.Time) (string, error) {
	if db.bunDB.Dialect().Name() != dialect.SQLite {
		return "", ErrSnapshotUnsupported
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path := filepath.Join(dir, SnapshotName(now))
	if _, err := db.ExecWithLog(ctx, "VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("failed to snapshot database: %w", err)
	}
	return path, nil
}
