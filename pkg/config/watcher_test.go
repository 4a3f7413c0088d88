package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchConfig_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_iterations": 5}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloadCh := WatchConfig(ctx, path)

	// Give the watcher a moment to arm before touching the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"max_iterations": 7}`), 0o644))

	select {
	case _, ok := <-reloadCh:
		require.True(t, ok, "channel closed before delivering the reload signal")
	case <-time.After(3 * time.Second):
		t.Fatal("no reload signal after config write")
	}
}

func TestWatchConfig_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloadCh := WatchConfig(ctx, path)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-reloadCh:
		t.Fatal("unrelated file triggered a reload signal")
	case <-time.After(reloadDebounce + 500*time.Millisecond):
	}
}

func TestWatchConfig_ClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	reloadCh := WatchConfig(ctx, path)
	cancel()

	select {
	case _, ok := <-reloadCh:
		require.False(t, ok, "channel should close when the context is canceled")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
