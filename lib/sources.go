package lib

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Source struct {
	Name string
	Text string
}

type Stage int

const (
	StageNone Stage = iota
	StageScan
	StageParse
)

func (s Stage) String() string {
	switch s {
	case StageScan:
		return "scan"
	case StageParse:
		return "parse"
	default:
		return "none"
	}
}

// Result is the outcome of checking one source. Err is nil on success and
// Stage says which step produced it otherwise. Tokens are kept whenever the
// scan succeeded, Expr only when the parse did too.
type Result struct {
	Name   string
	Tokens []Token
	Expr   Expr
	Err    *SyntaxError
	Stage  Stage
}

func (r Result) OK() bool {
	return r.Err == nil
}

func ReadSourceFromFile(filePath string) (Source, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return Source{}, fmt.Errorf("read source %s: %w", filePath, err)
	}
	return Source{
		Name: sourceNameFromPath(filePath),
		Text: string(bytes),
	}, nil
}

// ReadSourcesFromDir reads every file in dir ending in ext, sorted by file
// name. Sub-directories are skipped.
func ReadSourcesFromDir(dir string, ext string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir %s: %w", dir, err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	sources := []Source{}
	for _, name := range names {
		src, err := ReadSourceFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}

	return sources, nil
}

func sourceNameFromPath(filePath string) string {
	_, fileName := filepath.Split(filePath)
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// Check scans and parses a single source.
func Check(src Source, opts ParseOptions) Result {
	res := Result{Name: src.Name}

	tokens, err := Scan(src.Text)
	if err != nil {
		res.Err = asSyntaxError(err)
		res.Stage = StageScan
		return res
	}
	res.Tokens = tokens

	expr, err := ParseWithOptions(tokens, opts)
	if err != nil {
		res.Err = asSyntaxError(err)
		res.Stage = StageParse
		return res
	}
	res.Expr = expr

	return res
}

func asSyntaxError(err error) *SyntaxError {
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return synErr
	}
	return &SyntaxError{Message: err.Error()}
}

// Checker runs Check over many sources at once. Scan and Parse share no
// state between calls, so each source gets its own goroutine.
type Checker struct {
	Options ParseOptions
	Workers int
	Logger  *zap.Logger
}

// CheckAll returns one result per source in input order. Syntax errors are
// reported in the results; the returned error is only set when ctx is done
// before every source was checked.
func (c *Checker) CheckAll(ctx context.Context, sources []Source) ([]Result, error) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range sources {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Check(sources[i], c.Options)
			logger.Debug("checked source",
				zap.String("name", sources[i].Name),
				zap.Bool("ok", results[i].OK()),
				zap.Stringer("stage", results[i].Stage))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}
	logger.Info("check finished",
		zap.Int("sources", len(sources)),
		zap.Int("failed", failed))

	return results, nil
}
