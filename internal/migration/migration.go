// Package migration applies versioned SQL migrations from an fs.FS.
// Filenames follow NNN_name.sql; applied versions are tracked in a
// schema_version table.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

type Migration struct {
	Version int
	Name    string
	SQL     string
}

type Runner struct {
	db *sql.DB
	fs fs.FS
}

func NewRunner(db *sql.DB, migrationFS fs.FS) *Runner {
	return &Runner{db: db, fs: migrationFS}
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	return err
}

// CurrentVersion returns the applied schema version, 0 for a fresh database.
func (r *Runner) CurrentVersion() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func (r *Runner) setVersion(tx *sql.Tx, version int) error {
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version)
	return err
}

// ReadMigrations parses the migration files, sorted by version.
func (r *Runner) ReadMigrations() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		parts := strings.SplitN(file.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid migration filename: %s (expected NNN_name.sql)", file.Name())
		}
		version, err := strconv.Atoi(parts[0])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("invalid version in migration filename %s", file.Name())
		}
		content, err := fs.ReadFile(r.fs, file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}
		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}
	return migrations, nil
}

// Apply runs all pending migrations, each in its own transaction, and
// returns the number applied.
func (r *Runner) Apply() (int, error) {
	current, err := r.CurrentVersion()
	if err != nil {
		return 0, err
	}
	migrations, err := r.ReadMigrations()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		tx, err := r.db.Begin()
		if err != nil {
			return applied, err
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("migration %03d_%s failed: %w", m.Version, m.Name, err)
		}
		if err := r.setVersion(tx, m.Version); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("failed to record version %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// ValidateVersion ensures the database schema matches the highest known
// migration, guarding against running new code on an old database or vice
// versa.
func (r *Runner) ValidateVersion() error {
	current, err := r.CurrentVersion()
	if err != nil {
		return err
	}
	migrations, err := r.ReadMigrations()
	if err != nil {
		return err
	}
	if len(migrations) == 0 {
		return nil
	}
	latest := migrations[len(migrations)-1].Version
	if current < latest {
		return fmt.Errorf("database schema is outdated (version %d, expected %d): run 'agendx init'", current, latest)
	}
	if current > latest {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", current, latest)
	}
	return nil
}
