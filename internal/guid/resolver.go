// Package guid resolves asset GUIDs to project-relative paths by scanning
// the .meta files the editor writes next to every asset.
package guid

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
)

// metaGUIDRe matches the guid line of a .meta file.
var metaGUIDRe = regexp.MustCompile(`^guid:\s*([a-f0-9]{32})`)

// Resolver maps GUIDs to asset paths for one project. It is an explicit
// object constructed with a project root; callers hold and pass it rather
// than reaching for ambient global state. The cache builds lazily on first
// lookup.
type Resolver struct {
	projectRoot string

	mu    sync.RWMutex
	cache map[string]string
	built bool
}

// NewResolver creates a resolver rooted at a project directory.
func NewResolver(projectRoot string) *Resolver {
	return &Resolver{projectRoot: projectRoot}
}

// ProjectRoot returns the root the resolver scans under.
func (r *Resolver) ProjectRoot() string { return r.projectRoot }

// Resolve returns the project-relative path for a GUID. The cache is built
// on the first call.
func (r *Resolver) Resolve(guid string) (string, bool) {
	r.mu.RLock()
	if r.built {
		path, ok := r.cache[guid]
		r.mu.RUnlock()
		return path, ok
	}
	r.mu.RUnlock()

	if err := r.Rebuild(); err != nil {
		logging.Get(logging.CategoryGUID).Error("cache build failed: %v", err)
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.cache[guid]
	return path, ok
}

// Rebuild rescans the Assets tree and replaces the cache. Meta files are
// parsed in parallel; the walk itself stays single-threaded since it is
// directory-bound anyway.
func (r *Resolver) Rebuild() error {
	assets := filepath.Join(r.projectRoot, "Assets")
	if info, err := os.Stat(assets); err != nil || !info.IsDir() {
		return fmt.Errorf("no Assets directory under %s", r.projectRoot)
	}

	var metaFiles []string
	err := filepath.WalkDir(assets, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(path, ".meta") {
			metaFiles = append(metaFiles, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", assets, err)
	}

	type entry struct{ guid, path string }
	results := make(chan entry, len(metaFiles))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for _, metaPath := range metaFiles {
		metaPath := metaPath
		g.Go(func() error {
			guid, err := extractGUID(metaPath)
			if err != nil || guid == "" {
				return nil // unreadable or guid-less meta files are skipped
			}
			assetPath := strings.TrimSuffix(metaPath, ".meta")
			rel, err := filepath.Rel(r.projectRoot, assetPath)
			if err != nil {
				return nil
			}
			results <- entry{guid: guid, path: filepath.ToSlash(rel)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	close(results)

	cache := make(map[string]string, len(metaFiles))
	for e := range results {
		cache[e.guid] = e.path
	}

	r.mu.Lock()
	r.cache = cache
	r.built = true
	r.mu.Unlock()

	logging.GUID("cache rebuilt: %d entries under %s", len(cache), r.projectRoot)
	return nil
}

// extractGUID reads the guid line from one .meta file.
func extractGUID(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := metaGUIDRe.FindStringSubmatch(scanner.Text()); m != nil {
			return m[1], nil
		}
	}
	return "", scanner.Err()
}

// Template implements scene.TemplateSource: it resolves a GUID and loads
// the document it names.
func (r *Resolver) Template(guid string) (*scene.Document, error) {
	rel, ok := r.Resolve(guid)
	if !ok {
		return nil, fmt.Errorf("guid %s has no asset path", guid)
	}
	return scene.Load(filepath.Join(r.projectRoot, rel))
}
