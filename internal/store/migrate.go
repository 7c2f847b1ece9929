package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

func newProvider(dialect goose.Dialect, db *sql.DB, dir string) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("migrations %s: %w", dir, err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration. Running it against an
// up-to-date schema is a no-op.
func Migrate(ctx context.Context, s Store) ([]*goose.MigrationResult, error) {
	var results []*goose.MigrationResult
	err := s.WithMigrator(func(p *goose.Provider) error {
		var err error
		results, err = p.Up(ctx)
		return err
	})
	if err != nil {
		return results, fmt.Errorf("apply migrations: %w", err)
	}
	return results, nil
}
