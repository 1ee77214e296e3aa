package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "modernc.org/sqlite"

	"github.com/masaki-ito/weldreg/internal/common"
)

// Config holds database-related configuration.
type Config struct {
	Path string // sqlite file path, or ":memory:"
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS licenses (
		id            TEXT PRIMARY KEY,
		source        TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		license_no    TEXT NOT NULL DEFAULT '',
		qualification TEXT NOT NULL DEFAULT '',
		issue_date    TEXT,
		expiry_date   TEXT,
		confidence    REAL NOT NULL DEFAULT 0,
		origins       TEXT NOT NULL DEFAULT '',
		updated_at    TEXT NOT NULL,
		UNIQUE (source, license_no)
	)`,
	`CREATE TABLE IF NOT EXISTS audit_rows (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id     TEXT NOT NULL,
		source     TEXT NOT NULL,
		page       INTEGER NOT NULL,
		line_no    INTEGER NOT NULL,
		candidate  TEXT NOT NULL,
		accepted   INTEGER NOT NULL,
		confidence REAL NOT NULL,
		reason     TEXT NOT NULL,
		line       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS audit_rows_run_id ON audit_rows (run_id)`,
	`CREATE INDEX IF NOT EXISTS licenses_expiry ON licenses (expiry_date)`,
}

// Open opens (or creates) the registry database, wraps it for the ent
// sql builder and applies migrations.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*entsql.Driver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening registry database", "path", cfg.Path)

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, common.NewAppError("DB_OPEN", "open sqlite database", err)
	}
	// modernc sqlite is single-writer; serialize access at the pool
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("DB_PING", "ping sqlite database", err)
	}
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, common.NewAppError("DB_MIGRATE", "apply schema", err)
		}
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	logger.Info("registry database ready")
	return drv, nil
}
