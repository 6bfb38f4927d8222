// Package main reference tracing command.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
)

var (
	traceDirection string
	traceDepth     int
)

var traceCmd = &cobra.Command{
	Use:   "trace <file> <id>",
	Short: "Trace fileID references from an object",
	Long: `Walk the in-document reference graph from a starting block.
Direction is outgoing (references the block makes), incoming (references
to it), or both. Cycles terminate; each edge is reported once at its
first-visit depth.`,
	Args: cobra.ExactArgs(2),
	RunE: runTrace,
}

func runTrace(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	startID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid file ID %q", args[1])
	}
	dir, err := scene.ParseDirection(traceDirection)
	if err != nil {
		return err
	}

	edges, err := doc.Trace(startID, dir, traceDepth)
	if err != nil {
		return err
	}
	logging.Scan("trace %d (%s, depth %d): %d edges", startID, dir, traceDepth, len(edges))

	result := map[string]interface{}{
		"start":     startID,
		"direction": string(dir),
		"edges":     edges,
	}
	return emit(result, func() {
		for _, e := range edges {
			fmt.Printf("%*s%d -> %d\n", e.Depth*2, "", e.Source, e.Target)
		}
		fmt.Printf("%d edges\n", len(edges))
	})
}

func init() {
	traceCmd.Flags().StringVar(&traceDirection, "direction", "outgoing", "outgoing, incoming, or both")
	traceCmd.Flags().IntVar(&traceDepth, "depth", 3, "maximum traversal depth")
	rootCmd.AddCommand(traceCmd)
}
