package sqlconnect

import (
	"context"
	"fmt"

	"github.com/5w1tchy/bookshelf-api/internal/store/dbx"
)

const booksDDL = `CREATE TABLE IF NOT EXISTS books (
	isbn       TEXT PRIMARY KEY,
	amazon_url TEXT NOT NULL,
	author     TEXT NOT NULL,
	language   TEXT NOT NULL,
	pages      INTEGER NOT NULL,
	publisher  TEXT NOT NULL,
	title      TEXT NOT NULL,
	year       INTEGER NOT NULL
)`

// EnsureSchema creates the books table when it does not exist yet.
func EnsureSchema(ctx context.Context, db dbx.Execer) error {
	if _, err := db.ExecContext(ctx, booksDDL); err != nil {
		return fmt.Errorf("ensure books table: %w", err)
	}
	return nil
}
