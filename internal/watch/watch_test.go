package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/leapflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_ReportsTrackedChanges(t *testing.T) {
	dir := t.TempDir()
	tracked := filepath.Join(dir, "pipeline.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(tracked, []byte("nodes: []\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Files(ctx, []string{tracked}, 20*time.Millisecond, testutil.NewTestLogger(t), func(changed []string) {
			changes <- changed
		})
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(tracked, []byte("nodes: []\nedges: []\n"), 0o600))
	}

	select {
	case changed := <-changes:
		abs, err := filepath.Abs(tracked)
		require.NoError(t, err)
		assert.Equal(t, []string{abs}, changed, "writes are debounced into one notification")
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFiles_MissingDirectory(t *testing.T) {
	err := Files(context.Background(), []string{filepath.Join(t.TempDir(), "nope", "p.yaml")}, 0, testutil.NewTestLogger(t), func([]string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
