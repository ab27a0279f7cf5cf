package dbx

import (
	"context"
	"database/sql"
)

// Queryer/Execer/Getter let the stores work with *sql.DB and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
type Getter interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DB is the handle the book store needs. *sql.DB satisfies it.
type DB interface {
	Queryer
	Execer
	Getter
	Pinger
}

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}
