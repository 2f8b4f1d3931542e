package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"sector-sim/internal/logger"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection holding saved sessions.
type DB struct {
	sql *sql.DB
}

func defaultPath() string {
	// Prefer working directory so saves survive go run / go build alike.
	// Fall back to executable directory for deployed builds.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "sectors.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "sectors.db")
}

// Open opens (or creates) the save database at path and runs migrations.
// An empty path selects sectors.db in the working directory.
func Open(path string) (*DB, error) {
	if path == "" {
		path = defaultPath()
	}
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// SchemaVersion reports the highest applied migration.
func (d *DB) SchemaVersion() int {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)
	return version
}

func (d *DB) migrate() error {
	version := 0
	// Missing table on a fresh file leaves version at 0.
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS saves (
				id         TEXT PRIMARY KEY,
				name       TEXT NOT NULL,
				created_at TEXT NOT NULL,
				seed       INTEGER NOT NULL,
				sectors    INTEGER NOT NULL,
				time       INTEGER NOT NULL DEFAULT 0,
				day        INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_saves_created ON saves(created_at);

			CREATE TABLE IF NOT EXISTS sectors (
				save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
				id      INTEGER NOT NULL,
				kind    TEXT NOT NULL,
				pirates INTEGER NOT NULL DEFAULT 0,
				PRIMARY KEY (save_id, id)
			);

			CREATE TABLE IF NOT EXISTS lanes (
				save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
				a       INTEGER NOT NULL,
				b       INTEGER NOT NULL,
				PRIMARY KEY (save_id, a, b)
			);

			CREATE TABLE IF NOT EXISTS ports (
				save_id         TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
				sector_id       INTEGER NOT NULL,
				name            TEXT NOT NULL,
				class           INTEGER NOT NULL,
				level_ore       INTEGER NOT NULL,
				level_organics  INTEGER NOT NULL,
				level_equipment INTEGER NOT NULL,
				base_ore        INTEGER NOT NULL,
				base_organics   INTEGER NOT NULL,
				base_equipment  INTEGER NOT NULL,
				PRIMARY KEY (save_id, sector_id)
			);

			CREATE TABLE IF NOT EXISTS ships (
				save_id         TEXT PRIMARY KEY REFERENCES saves(id) ON DELETE CASCADE,
				name            TEXT NOT NULL,
				hull            INTEGER NOT NULL,
				max_hull        INTEGER NOT NULL,
				attack          INTEGER NOT NULL,
				defense         INTEGER NOT NULL,
				max_holds       INTEGER NOT NULL,
				cargo_ore       INTEGER NOT NULL DEFAULT 0,
				cargo_organics  INTEGER NOT NULL DEFAULT 0,
				cargo_equipment INTEGER NOT NULL DEFAULT 0,
				credits         INTEGER NOT NULL,
				bank_balance    INTEGER NOT NULL DEFAULT 0,
				fuel            INTEGER NOT NULL,
				location        INTEGER NOT NULL
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	if version < 2 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS planets (
				save_id         TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
				sector_id       INTEGER NOT NULL,
				name            TEXT NOT NULL,
				goods_ore       INTEGER NOT NULL DEFAULT 0,
				goods_organics  INTEGER NOT NULL DEFAULT 0,
				goods_equipment INTEGER NOT NULL DEFAULT 0,
				treasury        INTEGER NOT NULL DEFAULT 0,
				prod_ore        INTEGER NOT NULL DEFAULT 1,
				prod_organics   INTEGER NOT NULL DEFAULT 1,
				prod_equipment  INTEGER NOT NULL DEFAULT 1,
				PRIMARY KEY (save_id, sector_id)
			);

			INSERT OR IGNORE INTO schema_version (version) VALUES (2);
		`)
		if err != nil {
			return fmt.Errorf("migration v2: %w", err)
		}
		logger.Info("DB", "Applied migration v2 (planets)")
	}

	return nil
}
