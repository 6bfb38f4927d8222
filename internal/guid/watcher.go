package guid

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"sceneforge/internal/logging"
)

// Watch invalidates the cache whenever a .meta file under Assets/ is
// created, renamed, or removed, so long-lived callers never resolve
// against stale paths. It blocks until the context is cancelled.
func (r *Resolver) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	assets := filepath.Join(r.projectRoot, "Assets")
	err = filepath.WalkDir(assets, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories need their own watch.
				_ = watcher.Add(event.Name)
			}
			if strings.HasSuffix(event.Name, ".meta") {
				logging.GUID("meta change (%s), invalidating cache", event.Name)
				r.invalidate()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Get(logging.CategoryGUID).Error("watch: %v", err)
		}
	}
}

// invalidate forces a rebuild on the next Resolve.
func (r *Resolver) invalidate() {
	r.mu.Lock()
	r.built = false
	r.mu.Unlock()
}
