package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// withTx runs fn inside a transaction.  The transaction is committed when
// fn returns nil and rolled back otherwise; a panic inside fn rolls back
// before re-panicking so the connection always goes back to the pool.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}

// exists reports whether a row with the given id is present in table.
func exists(ctx context.Context, tx *sql.Tx, table string, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// containsPattern builds a case-insensitive LIKE pattern matching term
// anywhere in the column.  Wildcards in term are escaped with '!', so
// queries must use ESCAPE '!'.  An empty term yields "%%", which matches
// every row.
func containsPattern(term string) string {
	esc := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + esc.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

func joinGenres(genres []string) string { return strings.Join(genres, ",") }

func splitGenres(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// stamp returns the current time in the precision DATETIME columns keep.
func stamp() time.Time { return time.Now().UTC().Truncate(time.Second) }
