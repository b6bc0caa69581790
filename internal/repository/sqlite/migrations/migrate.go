package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"task-manager/internal/logging"
)

//go:embed *.sql
var migrationsFS embed.FS

// Migration is one numbered schema change read from a NNNNNN_name.up.sql /
// NNNNNN_name.down.sql pair.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

const schemaTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	dirty INTEGER NOT NULL DEFAULT 0
)`

// RunMigrations applies every pending migration in version order. A migration
// that fails is recorded as dirty and blocks later runs until it is repaired by hand.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	applied, dirty, err := state(ctx, db)
	if err != nil {
		return err
	}
	if len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state; failed migration(s): %v", dirty)
	}

	all, err := LoadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		logging.Debugf("applying migration %d (%s)\n", m.Version, m.Name)
		err := inTx(ctx, db, m.Up, "INSERT INTO schema_migrations (version) VALUES (?)", m.Version)
		if err != nil {
			if _, markErr := db.ExecContext(ctx,
				"INSERT OR REPLACE INTO schema_migrations (version, dirty) VALUES (?, 1)", m.Version); markErr != nil {
				logging.Debugf("failed to mark migration %d dirty: %v\n", m.Version, markErr)
			}
			return fmt.Errorf("failed to apply migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// Rollback reverts the most recently applied migration and returns its version,
// or 0 when nothing is applied.
func Rollback(ctx context.Context, db *sql.DB) (int, error) {
	versions, err := AppliedVersions(ctx, db)
	if err != nil || len(versions) == 0 {
		return 0, err
	}
	latest := versions[len(versions)-1]

	all, err := LoadMigrations()
	if err != nil {
		return 0, fmt.Errorf("failed to load migrations: %w", err)
	}
	for _, m := range all {
		if m.Version != latest {
			continue
		}
		logging.Debugf("reverting migration %d (%s)\n", m.Version, m.Name)
		if err := inTx(ctx, db, m.Down, "DELETE FROM schema_migrations WHERE version = ?", m.Version); err != nil {
			return 0, fmt.Errorf("failed to revert migration %d: %w", m.Version, err)
		}
		return latest, nil
	}
	return 0, fmt.Errorf("no down migration for applied version %d", latest)
}

// AppliedVersions returns the versions recorded as applied, in ascending order
func AppliedVersions(ctx context.Context, db *sql.DB) ([]int, error) {
	applied, _, err := state(ctx, db)
	if err != nil {
		return nil, err
	}
	versions := make([]int, 0, len(applied))
	for v := range applied {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions, nil
}

// LoadMigrations reads the embedded migration pairs sorted by version
func LoadMigrations() ([]Migration, error) {
	ups, err := fs.Glob(migrationsFS, "*.up.sql")
	if err != nil {
		return nil, err
	}

	var out []Migration
	for _, up := range ups {
		version, name, ok := parseFilename(up)
		if !ok {
			continue
		}
		upSQL, err := migrationsFS.ReadFile(up)
		if err != nil {
			return nil, err
		}
		downSQL, err := migrationsFS.ReadFile(strings.TrimSuffix(up, ".up.sql") + ".down.sql")
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Version: version, Name: name, Up: string(upSQL), Down: string(downSQL)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// state creates the bookkeeping table if needed and returns the clean versions
// as a set and the dirty ones in ascending order.
func state(ctx context.Context, db *sql.DB) (map[int]bool, []int, error) {
	if _, err := db.ExecContext(ctx, schemaTable); err != nil {
		return nil, nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT version, dirty FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check migration state: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	var dirty []int
	for rows.Next() {
		var version int
		var isDirty bool
		if err := rows.Scan(&version, &isDirty); err != nil {
			return nil, nil, err
		}
		if isDirty {
			dirty = append(dirty, version)
		} else {
			applied[version] = true
		}
	}
	return applied, dirty, rows.Err()
}

// inTx runs a migration script and its bookkeeping statement atomically
func inTx(ctx context.Context, db *sql.DB, script, record string, version int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, record, version); err != nil {
		return err
	}
	return tx.Commit()
}

// parseFilename splits "000001_create_tasks.up.sql" into 1 and "create_tasks"
func parseFilename(filename string) (int, string, bool) {
	prefix, name, ok := strings.Cut(strings.TrimSuffix(filename, ".up.sql"), "_")
	if !ok {
		return 0, "", false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, name, true
}
