package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"usersvc/shared/logger"
)

//go:embed schema.sql
var schema string

// PoolOptions configures the sql.DB connection pool.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// PostgreSQLDriver implements Driver for PostgreSQL through lib/pq
type PostgreSQLDriver struct {
	db *sqlx.DB
}

// NewPostgreSQLDriver connects to dsn, configures the pool and verifies the
// connection with a ping.
func NewPostgreSQLDriver(ctx context.Context, dsn string, pool PoolOptions) (*PostgreSQLDriver, error) {
	logger.Debug("Initializing PostgreSQL driver")

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	logger.Info("PostgreSQL driver initialized",
		logger.Int("max_open_conns", pool.MaxOpenConns),
		logger.Int("max_idle_conns", pool.MaxIdleConns))

	return &PostgreSQLDriver{db: db}, nil
}

// NewPostgreSQLDriverFromDB wraps an already opened handle.
func NewPostgreSQLDriverFromDB(db *sqlx.DB) *PostgreSQLDriver {
	return &PostgreSQLDriver{db: db}
}

// Select executes a query and scans the rows into dest
func (p *PostgreSQLDriver) Select(ctx context.Context, dest any, sql string, args ...any) error {
	logger.Debug("Executing PostgreSQL query",
		logger.String("sql", sql),
		logger.Int("args", len(args)))

	if err := p.db.SelectContext(ctx, dest, sql, args...); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// Migrate creates the tables the user listing reads from, if missing.
func (p *PostgreSQLDriver) Migrate(ctx context.Context) error {
	logger.Info("Applying PostgreSQL schema")

	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		logger.Error("Failed to apply PostgreSQL schema", logger.Err(err))
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Info("PostgreSQL schema applied")
	return nil
}

// Ping tests the database connection
func (p *PostgreSQLDriver) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the database connection
func (p *PostgreSQLDriver) Close() error {
	return p.db.Close()
}

// DriverName returns the driver name
func (p *PostgreSQLDriver) DriverName() string {
	return "postgresql"
}
