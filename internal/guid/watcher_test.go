package guid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := newTestProject(t)
	writeAsset(t, root, "Assets/Scripts/Mover.cs", "aaaabbbbccccddddeeeeffff00001111", "class Mover {}")

	r := NewResolver(root)
	_, ok := r.Resolve("aaaabbbbccccddddeeeeffff00001111")
	require.True(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Watch(ctx) }()

	// Give the watcher time to register its directories, then drop a new
	// meta file and wait for the cache to be invalidated.
	time.Sleep(100 * time.Millisecond)
	writeAsset(t, root, "Assets/Scripts/Jumper.cs", "22223333444455556666777788889999", "class Jumper {}")

	require.Eventually(t, func() bool {
		_, ok := r.Resolve("22223333444455556666777788889999")
		return ok
	}, 3*time.Second, 50*time.Millisecond, "watcher should invalidate the cache on meta changes")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}
