package db

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	_ "github.com/lib/pq"

	"github.com/xyaoaf/flight-route-map/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	migrationsGlobPattern = "migrations/*.sql"
	// Stable advisory lock key so concurrent replicas migrate one at a time.
	migrationsAdvisoryLockID int64 = 7305518246095312417
)

// Migration is one embedded schema change.
type Migration struct {
	Version  string
	Checksum string
	SQL      string
}

// Migrations returns the embedded migrations in apply order.
func Migrations() ([]Migration, error) {
	paths, err := fs.Glob(migrationsFS, migrationsGlobPattern)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(paths)

	out := make([]Migration, 0, len(paths))
	for _, p := range paths {
		body, err := fs.ReadFile(migrationsFS, p)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", p, err)
		}
		sum := sha256.Sum256(body)
		out = append(out, Migration{
			Version:  path.Base(p),
			Checksum: hex.EncodeToString(sum[:]),
			SQL:      string(body),
		})
	}
	return out, nil
}

// RunMigrations applies pending migrations over a lib/pq connection and
// records each in schema_migrations. An applied migration whose file has since
// changed is an error.
func RunMigrations(ctx context.Context, dsn string) error {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open postgres connection for migrations: %w", err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres for migrations: %w", err)
	}

	migrations, err := Migrations()
	if err != nil {
		return err
	}
	return applyMigrations(ctx, conn, migrations)
}

func applyMigrations(ctx context.Context, conn *sql.DB, migrations []Migration) error {
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, migrationsAdvisoryLockID); err != nil {
		return fmt.Errorf("acquire migrations advisory lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationsAdvisoryLockID)
	}()

	if _, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var applied string
		err := conn.QueryRowContext(ctx, `SELECT checksum FROM schema_migrations WHERE version = $1`, m.Version).Scan(&applied)
		switch {
		case err == nil:
			if !strings.EqualFold(applied, m.Checksum) {
				return fmt.Errorf("migration %s checksum mismatch (db=%s file=%s)", m.Version, applied, m.Checksum)
			}
			continue
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("check schema_migrations for %s: %w", m.Version, err)
		}

		if err := applyOne(ctx, conn, m); err != nil {
			return err
		}
		logger.WithField("version", m.Version).Info("Applied migration")
	}
	return nil
}

func applyOne(ctx context.Context, conn *sql.DB, m Migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx for %s: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("execute migration %s: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, checksum, applied_at) VALUES ($1, $2, NOW())`,
		m.Version, m.Checksum,
	); err != nil {
		return fmt.Errorf("record schema_migrations row for %s: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", m.Version, err)
	}
	return nil
}
