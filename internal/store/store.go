// Package store provides the PostgreSQL and SQLite implementations of
// book.Store and the schema migrations they share.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookmanager/internal/book"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
)

// ErrUnsupportedDSN is returned by Open for DSNs naming no known engine.
var ErrUnsupportedDSN = errors.New("unsupported database DSN")

// Store is a book.Store backed by a database the process owns.
type Store interface {
	book.Store
	WithMigrator(fn func(*goose.Provider) error) error
	Ping(ctx context.Context) error
	Close() error
}

// Driver names the engine a DSN selects.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// ParseDSN picks the driver for dsn and returns the connection string
// that driver expects.
//
//	postgres://... postgresql://...   PostgreSQL
//	sqlite://<path>                   SQLite file (or :memory:)
//	file:..., :memory:, *.db          SQLite
func ParseDSN(dsn string) (Driver, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("%w: missing sqlite path", ErrUnsupportedDSN)
		}
		return DriverSQLite, path, nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:",
		strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"):
		return DriverSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedDSN, RedactDSN(dsn))
	}
}

// Open connects to the database named by dsn and checks it answers.
// Each query runs with the given timeout.
func Open(ctx context.Context, dsn string, timeout time.Duration) (Store, error) {
	driver, conn, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	var s Store
	switch driver {
	case DriverPostgres:
		pool, err := pgxpool.New(ctx, conn)
		if err != nil {
			return nil, fmt.Errorf("cannot create db pool: %w", err)
		}
		s = NewPGStore(pool, timeout)
	default:
		sqlite, err := OpenSQLite(conn, timeout)
		if err != nil {
			return nil, err
		}
		s = sqlite
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.Ping(pingCtx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("cannot ping database (%s): %w", RedactDSN(dsn), err)
	}
	return s, nil
}

// RedactDSN hides the credentials part of a URL-style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
