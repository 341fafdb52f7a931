// Package store records check runs in Postgres or SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/graeme-hill/lang-go/lib"
)

var (
	ErrUnknownDriver = errors.New("unknown store driver")
	ErrRunNotFound   = errors.New("check run not found")
)

type Store struct {
	db         *sql.DB
	driver     string
	logger     *zap.Logger
	migrations []*Migration
}

// Run is one invocation of the checker over a set of sources.
type Run struct {
	ID        string
	CreatedAt time.Time
	Total     int
	Failed    int
}

// Record is the stored outcome for one source of a run. Line, Column and
// Message are zero for sources that checked cleanly; Rendered holds the
// rendered expression for those.
type Record struct {
	Position int
	Name     string
	OK       bool
	Stage    string
	Line     int
	Column   int
	Message  string
	Rendered string
}

// Connect opens the database without touching its schema.
func Connect(ctx context.Context, driver string, dsn string, logger *zap.Logger) (*Store, error) {
	if driver != "postgres" && driver != "sqlite3" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	migrations, err := embeddedMigrations()
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return &Store{
		db:         db,
		driver:     driver,
		logger:     logger.With(zap.String("driver", driver)),
		migrations: migrations,
	}, nil
}

// Open connects and applies pending migrations.
func Open(ctx context.Context, driver string, dsn string, logger *zap.Logger) (*Store, error) {
	s, err := Connect(ctx, driver, dsn, logger)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $1, $2, ... for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RecordRun stores results as a new run and returns its id. render produces
// the Rendered column for sources that parsed; it may be nil.
func (s *Store) RecordRun(ctx context.Context, results []lib.Result, render func(lib.Expr) string) (string, error) {
	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Total:     len(results),
	}
	for _, res := range results {
		if !res.OK() {
			run.Failed++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		s.rebind("INSERT INTO check_runs (id, created_at, total, failed) VALUES (?, ?, ?, ?)"),
		run.ID, run.CreatedAt, run.Total, run.Failed)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	insert := s.rebind(`INSERT INTO check_results
		(run_id, position, name, ok, stage, line, col, message, rendered)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for i, res := range results {
		rec := recordFromResult(i, res, render)
		_, err := tx.ExecContext(ctx, insert,
			run.ID, rec.Position, rec.Name, rec.OK, rec.Stage,
			rec.Line, rec.Column, rec.Message, rec.Rendered)
		if err != nil {
			return "", fmt.Errorf("insert result %s: %w", res.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	s.logger.Info("recorded check run",
		zap.String("run", run.ID),
		zap.Int("total", run.Total),
		zap.Int("failed", run.Failed))
	return run.ID, nil
}

func recordFromResult(position int, res lib.Result, render func(lib.Expr) string) Record {
	rec := Record{
		Position: position,
		Name:     res.Name,
		OK:       res.OK(),
		Stage:    res.Stage.String(),
	}
	if res.Err != nil {
		rec.Line = res.Err.Line
		rec.Column = res.Err.Column
		rec.Message = res.Err.Message
	}
	if res.Expr != nil && render != nil {
		rec.Rendered = render(res.Expr)
	}
	return rec
}

// LoadRun reads a run and its records in source order.
func (s *Store) LoadRun(ctx context.Context, id string) (Run, []Record, error) {
	run := Run{}
	err := s.db.QueryRowContext(ctx,
		s.rebind("SELECT id, created_at, total, failed FROM check_runs WHERE id = ?"), id).
		Scan(&run.ID, &run.CreatedAt, &run.Total, &run.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, nil, fmt.Errorf("load run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT
		position, name, ok, stage, line, col, message, rendered
		FROM check_results WHERE run_id = ? ORDER BY position`), id)
	if err != nil {
		return Run{}, nil, fmt.Errorf("load results %s: %w", id, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec := Record{}
		err := rows.Scan(&rec.Position, &rec.Name, &rec.OK, &rec.Stage,
			&rec.Line, &rec.Column, &rec.Message, &rec.Rendered)
		if err != nil {
			return Run{}, nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return Run{}, nil, err
	}

	return run, records, nil
}
