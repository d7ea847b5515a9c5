package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate brings the MySQL schema up to the latest embedded migration.
// Applied versions are recorded in goose_db_version, so it is safe to
// run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	_, err = Up(ctx, db, goose.DialectMySQL, fsys)
	return err
}

// Up applies every pending migration found at the root of fsys and
// returns the versions it applied.
func Up(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) ([]int64, error) {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	results, err := p.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}
