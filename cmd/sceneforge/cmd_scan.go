// Package main scene inspection commands: scan, find, and inspect.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneforge/internal/guid"
	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
)

var (
	scanProperties bool
	scanVerbose    bool
	scanPageSize   int
	scanCursor     int
	scanMaxDepth   int
	findFuzzy      bool
)

// scanCmd lists every object in a scene file with pagination.
var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "List the objects and prefab instances in a scene file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

// findCmd looks objects up by display name.
var findCmd = &cobra.Command{
	Use:   "find <file> <name>",
	Short: "Find objects by name, optionally with fuzzy matching",
	Args:  cobra.ExactArgs(2),
	RunE:  runFind,
}

// inspectCmd shows one object in detail.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file> [id-or-name]",
	Short: "Inspect a single object by file ID or name",
	Long: `Inspect one object in detail. Without an identifier every object is
inspected, paginated like scan.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInspect,
}

// sceneResolver returns a GUID resolver when a project root is in reach,
// so inspection can translate script GUIDs into asset paths. Outside a
// project the resolver degrades to a no-op.
func sceneResolver() scene.GUIDResolver {
	root, err := resolveProject()
	if err != nil {
		return scene.NopResolver{}
	}
	return guid.NewResolver(root)
}

func inspectOptions() scene.InspectOptions {
	return scene.InspectOptions{
		IncludeProperties: scanProperties,
		Verbose:           scanVerbose,
		PageSize:          scanPageSize,
		Cursor:            scanCursor,
		MaxDepth:          scanMaxDepth,
		Resolver:          sceneResolver(),
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	page := doc.InspectAll(inspectOptions())
	logging.Scan("scan %s: %d objects (cursor %d)", args[0], page.Total, page.Cursor)

	return emit(page, func() {
		fmt.Printf("%s: %d objects, %d prefab instances\n",
			page.File, page.Total, len(page.Instances))
		for _, obj := range page.Objects {
			if g, ok := obj.(scene.GameObjectDetail); ok {
				fmt.Printf("  %s\n", g.Name)
			}
		}
		for _, inst := range page.Instances {
			if p, ok := inst.(scene.PrefabInstanceDetail); ok {
				fmt.Printf("  %s (prefab instance)\n", p.Name)
			}
		}
		if page.NextCursor != nil {
			fmt.Printf("  ... truncated, continue with --cursor %d\n", *page.NextCursor)
		}
	})
}

func runFind(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	matches := doc.FindByName(args[1], findFuzzy)
	logging.Scan("find %q in %s: %d matches", args[1], args[0], len(matches))

	type hit struct {
		FileID int64   `json:"file_id"`
		Name   string  `json:"name"`
		Type   string  `json:"type"`
		Score  float64 `json:"score"`
	}
	hits := make([]hit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, hit{
			FileID: m.Block.FileID,
			Name:   m.Name,
			Type:   m.Block.TypeName(),
			Score:  m.Score,
		})
	}

	return emit(hits, func() {
		if len(hits) == 0 {
			fmt.Println("No matches.")
			return
		}
		for _, h := range hits {
			fmt.Printf("%12d  %-16s  %s (score %.0f)\n", h.FileID, h.Type, h.Name, h.Score)
		}
	})
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return emit(doc.InspectAll(inspectOptions()), nil)
	}
	detail, err := doc.Inspect(args[1], inspectOptions())
	if err != nil {
		return err
	}
	return emit(detail, nil)
}

func init() {
	for _, c := range []*cobra.Command{scanCmd, inspectCmd} {
		c.Flags().BoolVar(&scanProperties, "properties", false, "include raw component properties")
		c.Flags().BoolVar(&scanVerbose, "verbose-detail", false, "include IDs, layers, and hierarchy links")
	}
	scanCmd.Flags().IntVar(&scanPageSize, "page-size", scene.DefaultPageSize, "objects per page")
	scanCmd.Flags().IntVar(&scanCursor, "cursor", 0, "pagination cursor from a previous scan")
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", scene.DefaultMaxDepth, "hierarchy depth cutoff")
	findCmd.Flags().BoolVar(&findFuzzy, "fuzzy", false, "rank partial matches instead of exact equality")

	rootCmd.AddCommand(scanCmd, findCmd, inspectCmd)
}
