// Package main documentation index commands.
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sceneforge/internal/search"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Index and search project documentation",
}

var docsIndexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Index every markdown file under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDocsIndex,
}

var docsSearchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search the documentation index",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocsSearch,
}

// openIndexer opens the chunk store at the configured path, rooted in the
// project when one is found so repeated runs share an index.
func openIndexer() (*search.Indexer, *search.Store, error) {
	sc := activeConfig().Search
	path := sc.IndexPath
	if !filepath.IsAbs(path) {
		if root, err := resolveProject(); err == nil {
			path = filepath.Join(root, path)
		}
	}
	store, err := search.NewStore(path)
	if err != nil {
		return nil, nil, err
	}
	return search.NewIndexer(store, sc), store, nil
}

func runDocsIndex(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	} else if root, err := resolveProject(); err == nil {
		dir = root
	}

	ix, store, err := openIndexer()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	files, err := ix.IndexTree(ctx, dir)
	if err != nil {
		return err
	}
	_, chunks, err := store.Stats()
	if err != nil {
		return err
	}

	result := map[string]interface{}{
		"directory": dir,
		"files":     files,
		"chunks":    chunks,
		"index":     store.Path(),
	}
	return emit(result, func() {
		fmt.Printf("Indexed %d files (%d chunks) into %s\n", files, chunks, store.Path())
	})
}

func runDocsSearch(cmd *cobra.Command, args []string) error {
	ix, store, err := openIndexer()
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := ix.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}

	return emit(results, func() {
		if len(results) == 0 {
			fmt.Println("No results.")
			return
		}
		for i, r := range results {
			heading := r.Heading
			if heading == "" {
				heading = "(no heading)"
			}
			fmt.Printf("%2d. %s  %s (score %.3f)\n", i+1, r.Path, heading, r.Score)
		}
	})
}

func init() {
	docsCmd.AddCommand(docsIndexCmd, docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}
