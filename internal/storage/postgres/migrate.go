package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigflow/gigflow-backend/internal/storage/postgres/migrations"
)

// Migration is one versioned schema change.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// LoadMigrations reads NNN_name.up.sql (and optional .down.sql) files from
// fsys, sorted by version. Duplicate versions are an error.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	var result []Migration
	seen := map[int]string{}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		matches := upPattern.FindStringSubmatch(path.Base(p))
		if matches == nil {
			return nil
		}

		version, _ := strconv.Atoi(matches[1])
		name := matches[2]
		if prev, dup := seen[version]; dup {
			return fmt.Errorf("duplicate migration version %d: %s and %s", version, prev, name)
		}
		seen[version] = name

		upSQL, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		// Down migration is optional
		downPath := path.Join(path.Dir(p), fmt.Sprintf("%s_%s.down.sql", matches[1], name))
		downSQL, err := fs.ReadFile(fsys, downPath)
		if err != nil {
			downSQL = nil
		}

		result = append(result, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Version < result[j].Version
	})
	return result, nil
}

// Pending returns the migrations with a version above current, in order.
func Pending(all []Migration, current int) []Migration {
	var out []Migration
	for _, m := range all {
		if m.Version > current {
			out = append(out, m)
		}
	}
	return out
}

// Rollback returns the newest steps applied migrations, newest first. Every
// one of them must have a down script.
func Rollback(all []Migration, current, steps int) ([]Migration, error) {
	var out []Migration
	for i := len(all) - 1; i >= 0 && len(out) < steps; i-- {
		m := all[i]
		if m.Version > current {
			continue
		}
		if m.DownSQL == "" {
			return nil, fmt.Errorf("no down migration for version %d", m.Version)
		}
		out = append(out, m)
	}
	return out, nil
}

// Migrator applies the embedded migrations through a pgx pool.
type Migrator struct {
	pool *pgxpool.Pool
	fsys fs.FS
}

func NewMigrator(pool *pgxpool.Pool) *Migrator {
	return &Migrator{pool: pool, fsys: migrations.FS}
}

const ensureMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// CurrentVersion returns the highest applied version, or 0.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	if _, err := m.pool.Exec(ctx, ensureMigrationsTable); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var version int
	err := m.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the versions applied.
func (m *Migrator) Up(ctx context.Context) ([]int, error) {
	all, err := LoadMigrations(m.fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	var applied []int
	for _, mig := range Pending(all, current) {
		if err := m.apply(ctx, mig); err != nil {
			return applied, err
		}
		applied = append(applied, mig.Version)
	}
	return applied, nil
}

// Down reverts the newest steps migrations, each in its own transaction,
// and returns the versions reverted.
func (m *Migrator) Down(ctx context.Context, steps int) ([]int, error) {
	all, err := LoadMigrations(m.fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	current, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	targets, err := Rollback(all, current, steps)
	if err != nil {
		return nil, err
	}

	var reverted []int
	for _, mig := range targets {
		if err := m.revert(ctx, mig); err != nil {
			return reverted, err
		}
		reverted = append(reverted, mig.Version)
	}
	return reverted, nil
}

func (m *Migrator) revert(ctx context.Context, mig Migration) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rollback %d: %w", mig.Version, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, mig.DownSQL); err != nil {
		return fmt.Errorf("rollback %03d_%s failed: %w", mig.Version, mig.Name, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version); err != nil {
		return fmt.Errorf("unrecord migration %d: %w", mig.Version, err)
	}
	return tx.Commit(ctx)
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", mig.Version, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, mig.UpSQL); err != nil {
		return fmt.Errorf("migration %03d_%s failed: %w", mig.Version, mig.Name, err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, mig.Version); err != nil {
		return fmt.Errorf("record migration %d: %w", mig.Version, err)
	}
	return tx.Commit(ctx)
}
