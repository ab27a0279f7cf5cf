package sqlconnect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/5w1tchy/bookshelf-api/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const pingTimeout = 3 * time.Second

// ConnectDB opens the pgx-backed pool described by cfg and pings it once.
func ConnectDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	Tune(db, cfg)
	return db, nil
}

// Tune applies the pool limits from cfg.
func Tune(db *sql.DB, cfg config.Config) {
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdle)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
}
