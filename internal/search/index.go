package search

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sceneforge/internal/config"
	"sceneforge/internal/logging"
)

// Indexer walks a directory tree, chunks every markdown file, and keeps
// the store in sync.
type Indexer struct {
	store *Store
	cfg   config.SearchConfig
}

// NewIndexer wraps a store with the search configuration.
func NewIndexer(store *Store, cfg config.SearchConfig) *Indexer {
	return &Indexer{store: store, cfg: cfg}
}

// IndexTree indexes every .md file under root in parallel and returns the
// number of files processed.
func (ix *Indexer) IndexTree(ctx context.Context, root string) (int, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden trees like .git and our own dot-dir.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			chunks := ChunkMarkdown(rel, string(data), ix.cfg.ChunkSize)
			return ix.store.ReplaceFile(rel, chunks)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	logging.Search("indexed %d files under %s", len(paths), root)
	return len(paths), nil
}

// Result is one ranked search hit.
type Result struct {
	Chunk
	Score float64 `json:"score"`
}

// Search ranks stored chunks against a query. Scoring is plain term
// frequency with a bonus when the whole phrase appears verbatim.
func (ix *Indexer) Search(query string) ([]Result, error) {
	chunks, err := ix.store.AllChunks()
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}
	phrase := strings.ToLower(strings.TrimSpace(query))

	var results []Result
	for _, c := range chunks {
		text := strings.ToLower(c.Heading + "\n" + c.Content)
		score := 0.0
		for _, term := range terms {
			score += float64(strings.Count(text, term))
		}
		if score == 0 {
			continue
		}
		if len(terms) > 1 && strings.Contains(text, phrase) {
			score *= 2
		}
		// Normalize by size so long chunks do not win on bulk alone.
		score /= float64(c.Tokens + 1)
		results = append(results, Result{Chunk: c, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	max := ix.cfg.MaxResults
	if max > 0 && len(results) > max {
		results = results[:max]
	}
	return results, nil
}
