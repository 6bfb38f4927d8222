// Package main field access commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneforge/internal/logging"
)

var fieldByID bool

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Read and write individual fields",
}

var fieldGetCmd = &cobra.Command{
	Use:   "get <file> <target> <path>",
	Short: "Read one field from an object",
	Long: `Read one field from an object. The target is an object name or,
with --by-id, a literal file ID. Paths are dotted with optional list
indices, e.g. m_LocalPosition.x or m_Children[0].`,
	Args: cobra.ExactArgs(3),
	RunE: runFieldGet,
}

var fieldSetCmd = &cobra.Command{
	Use:   "set <file> <target> <path> <value>",
	Short: "Rewrite one field, leaving every other byte untouched",
	Args:  cobra.ExactArgs(4),
	RunE:  runFieldSet,
}

func runFieldGet(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	block, err := doc.ResolveTarget(args[1], fieldByID)
	if err != nil {
		return err
	}
	value, err := doc.GetField(block, args[2])
	if err != nil {
		return err
	}

	result := map[string]interface{}{
		"file_id": block.FileID,
		"path":    args[2],
		"value":   value,
	}
	return emit(result, func() { fmt.Println(value) })
}

func runFieldSet(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	block, err := doc.ResolveTarget(args[1], fieldByID)
	if err != nil {
		return err
	}
	if err := doc.SetField(block, args[2], args[3]); err != nil {
		return err
	}
	if err := saveDocument(doc); err != nil {
		return err
	}
	logging.Mutate("set %s on %d in %s", args[2], block.FileID, args[0])

	result := map[string]interface{}{
		"file_id": block.FileID,
		"path":    args[2],
		"value":   args[3],
	}
	return emit(result, func() {
		fmt.Printf("Set %s = %s on %d\n", args[2], args[3], block.FileID)
	})
}

func init() {
	fieldCmd.PersistentFlags().BoolVar(&fieldByID, "by-id", false, "treat the target as a file ID")
	fieldCmd.AddCommand(fieldGetCmd, fieldSetCmd)
	rootCmd.AddCommand(fieldCmd)
}
