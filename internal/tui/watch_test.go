package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsWrites(t *testing.T) {
	name := filepath.Join(t.TempDir(), "rec.csv")
	require.NoError(t, os.WriteFile(name, []byte("I\n1\n"), 0o644))

	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Watch(name))

	require.NoError(t, os.WriteFile(name, []byte("I\n2\n"), 0o644))
	select {
	case got := <-w.Changes():
		abs, _ := filepath.Abs(name)
		assert.Equal(t, abs, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherCloseEndsChanges(t *testing.T) {
	w, err := NewWatcher(nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		for range w.Changes() {
		}
		close(done)
	}()
	require.NoError(t, w.Close())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("changes channel left open")
	}
}
