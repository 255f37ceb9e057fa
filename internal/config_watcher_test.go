package internal

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigWatcherFiresOnRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	var fired atomic.Int32
	watcher, err := NewConfigWatcher(path, func() { fired.Add(1) })
	require.NoError(t, err)
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`{"log_level":"debug"}`), 0644))

	require.Eventually(t, func() bool { return fired.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestConfigWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	var fired atomic.Int32
	watcher, err := NewConfigWatcher(path, func() { fired.Add(1) })
	require.NoError(t, err)
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644))
	time.Sleep(time.Second)
	require.Equal(t, int32(0), fired.Load())
}
