// Package db maintains the SQLite usage index: a queryable mirror of the
// JSON record tree used for fast series and streak lookups.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// configure sets up database pragmas for optimal performance.
func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-64000", // 64MB cache
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	if err := db.createDailyTotalsTable(); err != nil {
		return err
	}
	if err := db.createWeekRollupsTable(); err != nil {
		return err
	}
	return db.createMonthRollupsTable()
}

func (db *DB) createDailyTotalsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS daily_totals (
		date TEXT PRIMARY KEY,
		total_seconds REAL NOT NULL DEFAULT 0,
		top_language TEXT,
		top_project TEXT,
		fetched_at DATETIME,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_daily_totals_language ON daily_totals(top_language);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createWeekRollupsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS week_rollups (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		week INTEGER NOT NULL,
		week_start TEXT NOT NULL,
		week_end TEXT NOT NULL,
		total_seconds REAL NOT NULL DEFAULT 0,
		days_with_data INTEGER NOT NULL DEFAULT 0,
		generated_at DATETIME,
		PRIMARY KEY (year, month, week)
	);
	CREATE INDEX IF NOT EXISTS idx_week_rollups_start ON week_rollups(week_start);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createMonthRollupsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS month_rollups (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		total_seconds REAL NOT NULL DEFAULT 0,
		days_with_data INTEGER NOT NULL DEFAULT 0,
		total_weeks INTEGER NOT NULL DEFAULT 0,
		generated_at DATETIME,
		PRIMARY KEY (year, month)
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	// Checkpoint WAL before closing
	_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return db.DB.Close()
}

// Vacuum performs database maintenance to reclaim space.
func (db *DB) Vacuum() error {
	_, err := db.ExecContext(context.Background(), "VACUUM")
	return err
}
