package index

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Run(t *testing.T) {
	dir := t.TempDir()
	var builds atomic.Int32
	w := &Watcher{
		Dir:      dir,
		Debounce: 50 * time.Millisecond,
		Build: func(context.Context) error {
			builds.Add(1)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(100 * time.Millisecond) // let watcher register the directory

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("---\ntitle: a\n---\n"), 0o600))
	}

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load(), "burst of changes makes a single build")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_RunMissingDir(t *testing.T) {
	w := &Watcher{Dir: filepath.Join(t.TempDir(), "nope"), Build: func(context.Context) error { return nil }}
	err := w.Run(context.Background())
	assert.Error(t, err)
}
