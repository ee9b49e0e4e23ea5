package du

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGrandTotal(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "a.bin"), 500*1024)
	writeFile(t, filepath.Join(second, "b.bin"), 700*1024)

	opts := DefaultOptions()
	opts.Apparent = true

	report, err := Run(context.Background(), opts, []string{first, second}, nil)
	require.NoError(t, err)
	require.Len(t, report.Trees, 2)
	assert.Empty(t, report.Failures)
	assert.NoError(t, report.Err())

	assert.Equal(t, first, report.Trees[0].Root.Path)
	assert.Equal(t, second, report.Trees[1].Root.Path)
	assert.Equal(t, report.Trees[0].Root.Total+report.Trees[1].Root.Total, report.GrandTotal)

	files := usageAt(t, opts, filepath.Join(first, "a.bin"), filepath.Join(second, "b.bin"))
	assert.Equal(t, uint64(1200), files.Blocks(opts.BlockSize))
}

func TestRunContinuesAfterRootFailure(t *testing.T) {
	good := t.TempDir()
	writeFile(t, filepath.Join(good, "f"), 100)
	missing := filepath.Join(t.TempDir(), "missing")

	report, err := Run(context.Background(), DefaultOptions(), []string{missing, good}, nil)
	require.NoError(t, err)

	require.Len(t, report.Failures, 1)
	var rootErr *RootAccessError
	require.ErrorAs(t, report.Failures[0], &rootErr)
	assert.Equal(t, missing, rootErr.Path)

	require.Len(t, report.Trees, 1)
	assert.Equal(t, good, report.Trees[0].Root.Path)
	assert.Equal(t, report.Trees[0].Root.Total, report.GrandTotal)
	assert.Error(t, report.Err())
}

func TestRunRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.BlockSize = 0

	report, err := Run(context.Background(), opts, []string{t.TempDir()}, nil)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestRunDefaultsToCurrentDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "f"), 100)
	t.Chdir(root)

	report, err := Run(context.Background(), DefaultOptions(), nil, nil)
	require.NoError(t, err)
	require.Len(t, report.Trees, 1)
	assert.Equal(t, ".", report.Trees[0].Root.Path)
}

func TestRunProgressAndLogging(t *testing.T) {
	root := t.TempDir()
	createTestTree(t, root)
	writeFile(t, filepath.Join(root, ".hidden"), 10)

	var buf bytes.Buffer

	opts := DefaultOptions()
	opts.ProgressInterval = time.Nanosecond
	opts.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var calls int
	var lastEntries int64

	report, err := Run(context.Background(), opts, []string{root}, func(entries int64, _ uint64) {
		calls++
		lastEntries = entries
	})
	require.NoError(t, err)
	require.Len(t, report.Trees, 1)

	assert.Positive(t, calls)
	assert.LessOrEqual(t, lastEntries, int64(8))
	assert.Contains(t, buf.String(), "excluding entry")
	assert.Contains(t, buf.String(), ".hidden")
}

func TestRunCancelled(t *testing.T) {
	root := t.TempDir()
	createTestTree(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, DefaultOptions(), []string{root, root}, nil)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}
