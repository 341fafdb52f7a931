package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type Migration struct {
	Name    string
	UpSQL   string
	DownSQL string
}

// ReadMigrations loads every NNN_name.up.sql / NNN_name.down.sql pair in
// fsys, ordered by name.
func ReadMigrations(fsys fs.FS) ([]*Migration, error) {
	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	migrations := map[string]*Migration{}

	withMigration := func(name string) *Migration {
		m, ok := migrations[name]
		if !ok {
			m = &Migration{
				Name: name,
			}
			migrations[name] = m
		}
		return m
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		bytes, err := fs.ReadFile(fsys, file.Name())
		if err != nil {
			return nil, err
		}

		name, isUp := parseMigrationFileName(file.Name())
		migration := withMigration(name)
		if isUp {
			migration.UpSQL = string(bytes)
		} else {
			migration.DownSQL = string(bytes)
		}
	}

	keys := []string{}
	for k := range migrations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []*Migration{}
	for _, k := range keys {
		result = append(result, migrations[k])
	}
	return result, nil
}

func embeddedMigrations() ([]*Migration, error) {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, err
	}
	return ReadMigrations(sub)
}

func parseMigrationFileName(fileName string) (string, bool) {
	return getMigrationName(fileName), getUpness(fileName)
}

func getMigrationName(fileName string) string {
	dotParts := strings.Split(fileName, ".")
	return dotParts[0]
}

func getUpness(fileName string) bool {
	return !strings.HasSuffix(fileName, ".down.sql")
}

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name TEXT PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
)`

func (s *Store) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	if _, err := s.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// Migrate applies every embedded migration not yet recorded in
// schema_migrations, each in its own transaction.
func (s *Store) Migrate(ctx context.Context) error {
	applied, err := s.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	for _, m := range s.migrations {
		if applied[m.Name] {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			s.rebind("INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)"),
			m.Name, time.Now().UTC()); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		s.logger.Info("applied migration", zap.String("name", m.Name))
	}
	return nil
}

// Rollback reverts the most recently applied migration. It does nothing when
// no migration has been applied.
func (s *Store) Rollback(ctx context.Context) error {
	applied, err := s.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	var latest *Migration
	for _, m := range s.migrations {
		if applied[m.Name] {
			latest = m
		}
	}
	if latest == nil {
		s.logger.Info("no migration to roll back")
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, latest.DownSQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("rollback %s: %w", latest.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		s.rebind("DELETE FROM schema_migrations WHERE name = ?"), latest.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("rollback %s: %w", latest.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rollback %s: %w", latest.Name, err)
	}
	s.logger.Info("rolled back migration", zap.String("name", latest.Name))
	return nil
}
