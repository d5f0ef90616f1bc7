// Package database centralises sqlx connection helpers.  Two drivers are
// linked in: go-sql-driver/mysql and the pgx stdlib adapter, registered as
// "mysql" and "pgx".  The hosted deployment runs on Postgres; MySQL stays
// available for self-hosted installs.
//
// Public entry points:
//
//	Open(ctx, driver, dsn)                           – conservative pool sizes.
//	OpenWithOptions(ctx, driver, dsn, maxOpen, maxIdle) – fine-grained control.
//
// Both helpers Ping the database before returning so callers can fail fast
// during bootstrap.  Callers should Close() the returned *sqlx.DB when no
// longer needed.
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Supported driver names.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
)

// Open returns a *sqlx.DB with sane defaults: 15 max open, 5 idle, and a
// 30-minute connection lifetime.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	return OpenWithOptions(ctx, driver, dsn, 15, 5)
}

// OpenWithOptions lets callers tune maxOpen and maxIdle.  Zero keeps the
// defaults of Open.
func OpenWithOptions(ctx context.Context, driver, dsn string, maxOpen, maxIdle int) (*sqlx.DB, error) {
	if driver != DriverMySQL && driver != DriverPostgres {
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}
	if maxOpen <= 0 {
		maxOpen = 15
	}
	if maxIdle <= 0 {
		maxIdle = 5
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", driver, err)
	}
	return db, nil
}
