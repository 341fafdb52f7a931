package lib

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeSource(t *testing.T, dir string, name string, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
}

func TestReadSourcesFromDir(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.lg", "1 + 2")
	writeSource(t, dir, "a.lg", "(3)")
	writeSource(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.lg"), 0o755))

	sources, err := ReadSourcesFromDir(dir, ".lg")
	require.NoError(t, err)
	require.Len(t, sources, 2)
	require.Equal(t, Source{Name: "a", Text: "(3)"}, sources[0])
	require.Equal(t, Source{Name: "b", Text: "1 + 2"}, sources[1])
}

func TestReadSourcesFromMissingDir(t *testing.T) {
	_, err := ReadSourcesFromDir(filepath.Join(t.TempDir(), "missing"), ".lg")
	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCheckStages(t *testing.T) {
	res := Check(Source{Name: "ok", Text: "1 + 2"}, ParseOptions{})
	require.True(t, res.OK())
	require.Equal(t, StageNone, res.Stage)
	require.Len(t, res.Tokens, 4)
	require.Equal(t, bin(num(1), BinaryOpAdd, num(2)), res.Expr)

	res = Check(Source{Name: "lex", Text: "1 @"}, ParseOptions{})
	require.False(t, res.OK())
	require.Equal(t, StageScan, res.Stage)
	require.Nil(t, res.Tokens)
	require.Nil(t, res.Expr)
	require.Equal(t, "Unexpected Token: @", res.Err.Message)

	res = Check(Source{Name: "parse", Text: "(1"}, ParseOptions{})
	require.False(t, res.OK())
	require.Equal(t, StageParse, res.Stage)
	require.Len(t, res.Tokens, 3)
	require.Nil(t, res.Expr)
	require.Equal(t, "Expected ')' after expression", res.Err.Message)
}

func TestCheckAllKeepsOrder(t *testing.T) {
	sources := []Source{}
	for i := 0; i < 50; i++ {
		text := "1 + 2"
		if i%7 == 0 {
			text = "1 +"
		}
		sources = append(sources, Source{Name: string(rune('a' + i%26)), Text: text})
	}

	c := &Checker{Workers: 4, Logger: zaptest.NewLogger(t)}
	results, err := c.CheckAll(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, results, len(sources))

	for i, res := range results {
		require.Equal(t, sources[i].Name, res.Name)
		require.Equal(t, i%7 != 0, res.OK(), "source %d", i)
	}
}

func TestCheckAllUsesOptions(t *testing.T) {
	c := &Checker{Options: ParseOptions{RequireEOF: true}}
	results, err := c.CheckAll(context.Background(), []Source{{Name: "cmp", Text: "1 < 2"}})
	require.NoError(t, err)
	require.Equal(t, StageParse, results[0].Stage)

	c.Options.Comparisons = true
	results, err = c.CheckAll(context.Background(), []Source{{Name: "cmp", Text: "1 < 2"}})
	require.NoError(t, err)
	require.True(t, results[0].OK())
}

func TestCheckAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Checker{Workers: 1}
	results, err := c.CheckAll(ctx, []Source{{Name: "a", Text: "1"}})
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, results)
}

func TestStageString(t *testing.T) {
	require.Equal(t, "scan", StageScan.String())
	require.Equal(t, "parse", StageParse.String())
	require.Equal(t, "none", StageNone.String())
}
