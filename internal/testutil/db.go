// Package testutil provides an in-memory store for package tests.  It is
// only imported from _test.go files.
package testutil

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/iliyamo/fyyur/internal/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

var seq atomic.Int64

// NewDB opens a private in-memory sqlite database with the application
// schema applied.  The database is closed when the test ends.
func NewDB(t testing.TB) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:fyyur_test_%d?mode=memory&cache=shared&_foreign_keys=on", seq.Add(1))
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	fsys, _ := fs.Sub(migrations, "migrations")
	if _, err := database.Up(context.Background(), db, goose.DialectSQLite3, fsys); err != nil {
		_ = db.Close()
		t.Fatalf("apply schema: %v", err)
	}
	// A single connection keeps the shared-cache database alive and
	// serialises writers.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
