package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"staybook/internal/domain"
	"staybook/internal/logging"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	*sql.DB
	q      querier
	inTx   bool
	retry  RetryPolicy
	logger *zerolog.Logger
}

var _ domain.Store = (*DB)(nil)

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	logger = logging.Component(logger, "database")

	memory := path == ":memory:" || strings.HasPrefix(path, "file::memory:")
	if !memory {
		// Создаем директорию для БД, если её нет
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if memory {
		// every connection to :memory: is its own database
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("database initialized")
	return &DB{DB: sqlDB, q: sqlDB, retry: DefaultRetryPolicy, logger: logger}, nil
}

// dsn turns every write transaction into BEGIN IMMEDIATE so that two
// read-check-write sequences cannot interleave.
func dsn(path string) string {
	params := "_txlock=immediate&_busy_timeout=5000&_foreign_keys=on"
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	if path == ":memory:" {
		return "file::memory:?" + params
	}
	return "file:" + path + "?" + params
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS units (
            id INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            capacity INTEGER NOT NULL CHECK (capacity > 0),
            base_price INTEGER NOT NULL CHECK (base_price >= 0),
            currency TEXT NOT NULL,
            pricing_mode TEXT NOT NULL DEFAULT 'per_night',
            base_guests INTEGER NOT NULL DEFAULT 0,
            surcharge_kind TEXT NOT NULL DEFAULT '',
            surcharge_amount INTEGER NOT NULL DEFAULT 0,
            min_stay INTEGER NOT NULL DEFAULT 1,
            sort_order INTEGER NOT NULL DEFAULT 0,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS date_overrides (
            unit_id INTEGER NOT NULL REFERENCES units(id),
            day INTEGER NOT NULL,
            price INTEGER,
            blocked BOOLEAN NOT NULL DEFAULT 0,
            min_stay INTEGER,
            notes TEXT NOT NULL DEFAULT '',
            PRIMARY KEY (unit_id, day)
        )`,
		`CREATE TABLE IF NOT EXISTS seasons (
            id INTEGER PRIMARY KEY,
            unit_id INTEGER NOT NULL DEFAULT 0,
            name TEXT NOT NULL DEFAULT '',
            start_day INTEGER NOT NULL,
            end_day INTEGER NOT NULL,
            price INTEGER NOT NULL,
            CHECK (start_day < end_day)
        )`,
		// check_in/check_out are day numbers, the stay is [check_in, check_out)
		`CREATE TABLE IF NOT EXISTS reservations (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            group_reference TEXT NOT NULL DEFAULT '',
            unit_id INTEGER NOT NULL REFERENCES units(id),
            guest_name TEXT NOT NULL,
            guest_email TEXT NOT NULL,
            guest_phone TEXT NOT NULL DEFAULT '',
            check_in INTEGER NOT NULL,
            check_out INTEGER NOT NULL,
            guest_count INTEGER NOT NULL,
            children_count INTEGER NOT NULL DEFAULT 0,
            total_price INTEGER NOT NULL,
            currency TEXT NOT NULL,
            status TEXT NOT NULL,
            payment_status TEXT NOT NULL DEFAULT 'pending',
            payment_session_id TEXT NOT NULL DEFAULT '',
            source TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT '',
            refund_required BOOLEAN NOT NULL DEFAULT 0,
            version INTEGER NOT NULL DEFAULT 1,
            created_at DATETIME NOT NULL,
            updated_at DATETIME NOT NULL,
            CHECK (check_in < check_out)
        )`,

		`CREATE INDEX IF NOT EXISTS idx_reservations_unit_dates ON reservations(unit_id, check_in, check_out)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_session ON reservations(payment_session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reservations_group ON reservations(group_reference)`,
		`CREATE INDEX IF NOT EXISTS idx_seasons_unit ON seasons(unit_id, start_day, end_day)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// RunInTx runs fn inside one transaction and retries the whole function when
// SQLite reports the database as busy.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context, tx domain.Store) error) error {
	if db.inTx {
		return fn(ctx, db)
	}

	return db.retry.Do(ctx, func() error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() {
			_ = tx.Rollback()
		}()

		txDB := &DB{DB: db.DB, q: tx, inTx: true, retry: db.retry, logger: db.logger}
		if err := fn(ctx, txDB); err != nil {
			return err
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	})
}

func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

func notFound(err error, what string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", what, id, domain.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %v: %w", what, id, err)
}

// inClause renders "?, ?, ?" for n placeholders.
func inClause(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func int64Args(ids []int64) []any {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

func stringArgs(vals []string) []any {
	args := make([]any, 0, len(vals))
	for _, v := range vals {
		args = append(args, v)
	}
	return args
}
