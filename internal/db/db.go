package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/udisondev/zzzcalc/internal/config"
	"github.com/udisondev/zzzcalc/internal/db/migrations"
)

// DB wraps a sql.DB plus the dialect it speaks.
type DB struct {
	sql     *sql.DB
	dialect Dialect
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.Database) (*DB, error) {
	dialect := NewDialect(cfg.Dialect)

	sqlDB, err := sql.Open(dialect.DriverName(), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dialect.Name(), err)
	}
	if dialect.Name() == "sqlite" {
		// modernc.org/sqlite allows one writer; a single pooled connection
		// also keeps in-memory databases on one handle.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging %s database: %w", dialect.Name(), err)
	}
	return &DB{sql: sqlDB, dialect: dialect}, nil
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Migrate applies the embedded goose migrations.
func (d *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(d.dialect.GooseDialect()); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, d.sql, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
