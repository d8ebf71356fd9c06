package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "animals.csv")

	w, err := New(target, time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	tests := []struct {
		name string
		file string
		op   fsnotify.Op
		want bool
	}{
		{"write", target, fsnotify.Write, true},
		{"create", target, fsnotify.Create, true},
		{"rename", target, fsnotify.Rename, true},
		{"remove", target, fsnotify.Remove, true},
		{"chmod only", target, fsnotify.Chmod, false},
		{"write and chmod", target, fsnotify.Write | fsnotify.Chmod, true},
		{"sqlite wal", target + "-wal", fsnotify.Write, true},
		{"other file", filepath.Join(dir, "other.csv"), fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(fsnotify.Event{Name: tt.file, Op: tt.op}))
		})
	}
}

func TestWatch_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "animals.csv")
	require.NoError(t, os.WriteFile(target, []byte("v0"), 0644))

	w, err := New(target, 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func() { calls.Add(1) })
	}()

	// Give the watcher loop time to start.
	time.Sleep(50 * time.Millisecond)
	for i := range 3 {
		require.NoError(t, os.WriteFile(target, []byte{byte('a' + i)}, 0644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 20*time.Millisecond)

	// Unrelated files never trigger.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_StopsOnClose(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "animals.db"), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultDebounce, w.debounce)

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(context.Background(), func() {})
	}()

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after close")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "animals.csv"), 0)
	assert.Error(t, err)
}
