package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.sql
var migrationsFS embed.FS

// Migration is one numbered pair of up/down scripts, e.g.
// 000002_add_foreign_key_indexes.{up,down}.sql.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Up applies every embedded migration not yet recorded in schema_migrations,
// oldest first, each in its own transaction. It returns what it applied.
func Up(ctx context.Context, db *sql.DB) ([]Migration, error) {
	if err := ensureTable(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	all, err := Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	done, err := Applied(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	seen := make(map[int]bool, len(done))
	for _, v := range done {
		seen[v] = true
	}

	var applied []Migration
	for _, m := range all {
		if seen[m.Version] {
			continue
		}
		err := inTx(ctx, db, m.Up, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.Version, m.Name)
		if err != nil {
			return applied, fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
		applied = append(applied, m)
	}
	return applied, nil
}

// Down reverts the latest steps applied migrations, newest first.
func Down(ctx context.Context, db *sql.DB, steps int) error {
	if err := ensureTable(ctx, db); err != nil {
		return err
	}
	all, err := Load()
	if err != nil {
		return err
	}
	byVersion := make(map[int]Migration, len(all))
	for _, m := range all {
		byVersion[m.Version] = m
	}

	done, err := Applied(ctx, db)
	if err != nil {
		return err
	}
	for i := len(done) - 1; i >= 0 && steps > 0; i, steps = i-1, steps-1 {
		m, ok := byVersion[done[i]]
		if !ok {
			return fmt.Errorf("migration %d is applied but not embedded", done[i])
		}
		if err := inTx(ctx, db, m.Down, "DELETE FROM schema_migrations WHERE version = ?", m.Version); err != nil {
			return fmt.Errorf("revert %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// Load reads the embedded migrations sorted by version. Every up script
// must have a matching down script.
func Load() ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var all []Migration
	for _, entry := range entries {
		base, ok := strings.CutSuffix(entry.Name(), ".up.sql")
		if !ok {
			continue
		}
		version, name, ok := parseName(base)
		if !ok {
			return nil, fmt.Errorf("malformed migration file name %q", entry.Name())
		}

		up, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}
		down, err := migrationsFS.ReadFile(base + ".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %d has no down script: %w", version, err)
		}
		all = append(all, Migration{Version: version, Name: name, Up: string(up), Down: string(down)})
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Version < all[j].Version })
	return all, nil
}

// Applied lists the recorded versions in ascending order.
func Applied(ctx context.Context, db *sql.DB) ([]int, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

// inTx runs script and then the bookkeeping statement atomically.
func inTx(ctx context.Context, db *sql.DB, script, record string, args ...interface{}) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, script); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// parseName splits "000002_add_indexes" into 2 and "add_indexes".
func parseName(base string) (int, string, bool) {
	prefix, name, ok := strings.Cut(base, "_")
	if !ok || name == "" {
		return 0, "", false
	}
	var version int
	if _, err := fmt.Sscanf(prefix, "%d", &version); err != nil || version <= 0 {
		return 0, "", false
	}
	return version, name, true
}
