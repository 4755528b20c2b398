package file

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("tools.highlight.color", "#ffeb3b"))

	reloaded := make(chan struct{}, 1)
	w := NewWatcher(store, nil, func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher time to install before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(store.Path(),
		[]byte("[tools.highlight]\ncolor = \"#00ff00\"\n"), 0600))

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not reload after file write")
	}
	assert.Equal(t, "#00ff00", store.GetString("tools.highlight.color"))

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
