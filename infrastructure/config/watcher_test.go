package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "officers.csv")
	require.NoError(t, os.WriteFile(path, []byte("Identity No\n"), 0o600))

	var reloads int32
	watcher, err := NewFileWatcher(path, func(ctx context.Context) error {
		atomic.AddInt32(&reloads, 1)
		return nil
	}, zap.NewNop())
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("Identity No\nIAS-001\n"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("Identity No\nIAS-002\n"), 0o600))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&reloads) == 1
	}, 5*time.Second, 50*time.Millisecond, "writes are debounced into one reload")

	time.Sleep(2 * debounceDelay)
	assert.Equal(t, int32(1), atomic.LoadInt32(&reloads))
}

func TestFileWatcher_CloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "officers.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	watcher, err := NewFileWatcher(path, func(context.Context) error { return nil }, zap.NewNop())
	require.NoError(t, err)

	assert.NoError(t, watcher.Close())
	assert.NoError(t, watcher.Close())
}
