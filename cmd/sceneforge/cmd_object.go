// Package main object lifecycle commands: add, delete, reparent, clone,
// and prefab unpacking.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sceneforge/internal/guid"
	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
)

var (
	objectByID    bool
	objectCascade bool
	objectParent  string
)

var objectCmd = &cobra.Command{
	Use:   "object",
	Short: "Create, delete, move, and clone scene objects",
}

var objectAddCmd = &cobra.Command{
	Use:   "add <file> <class> <name>",
	Short: "Add a new object or component",
	Long: `Add a new block to the scene. The class is a type name (GameObject,
Rigidbody, MonoBehaviour, ...) or a numeric class ID. GameObjects get a
paired Transform; other classes attach as components, in which case
--parent must name a GameObject.`,
	Args: cobra.ExactArgs(3),
	RunE: runObjectAdd,
}

var objectDeleteCmd = &cobra.Command{
	Use:   "delete <file> <target>",
	Short: "Delete an object, its components, and optionally its subtree",
	Args:  cobra.ExactArgs(2),
	RunE:  runObjectDelete,
}

var objectReparentCmd = &cobra.Command{
	Use:   "reparent <file> <child> <parent>",
	Short: "Move an object under a new parent, or \"root\"",
	Args:  cobra.ExactArgs(3),
	RunE:  runObjectReparent,
}

var objectCloneCmd = &cobra.Command{
	Use:   "clone <file> <target>",
	Short: "Duplicate an object subtree with fresh file IDs",
	Args:  cobra.ExactArgs(2),
	RunE:  runObjectClone,
}

var objectUnpackCmd = &cobra.Command{
	Use:   "unpack <file> <target>",
	Short: "Expand a prefab instance into plain scene objects",
	Long: `Expand a prefab instance in place: the template's objects are copied
into the scene with fresh IDs, recorded removals and overrides are
applied, and the instance block is deleted. Requires a resolvable
project so the template can be found by GUID.`,
	Args: cobra.ExactArgs(2),
	RunE: runObjectUnpack,
}

func classIDArg(arg string) (int, error) {
	if id, ok := scene.ClassIDFor(arg); ok {
		return id, nil
	}
	if id, err := strconv.Atoi(arg); err == nil && id > 0 {
		return id, nil
	}
	return 0, fmt.Errorf("unknown class %q (use a type name or numeric ID)", arg)
}

func runObjectAdd(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	classID, err := classIDArg(args[1])
	if err != nil {
		return err
	}

	var parentID int64
	if objectParent != "" {
		parent, err := doc.ResolveTarget(objectParent, objectByID)
		if err != nil {
			return err
		}
		parentID = parent.FileID
	}

	block, err := doc.AddBlock(classID, args[2], parentID)
	if err != nil {
		return err
	}
	if err := saveDocument(doc); err != nil {
		return err
	}
	logging.Mutate("added %s %q as %d in %s", block.TypeName(), args[2], block.FileID, args[0])

	result := map[string]interface{}{
		"file_id": block.FileID,
		"type":    block.TypeName(),
		"name":    args[2],
	}
	return emit(result, func() {
		fmt.Printf("Added %s %q (file ID %d)\n", block.TypeName(), args[2], block.FileID)
	})
}

func runObjectDelete(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	block, err := doc.ResolveTarget(args[1], objectByID)
	if err != nil {
		return err
	}
	if err := doc.DeleteBlock(block.FileID, objectCascade); err != nil {
		return err
	}
	if err := saveDocument(doc); err != nil {
		return err
	}
	logging.Mutate("deleted %d from %s (cascade=%v)", block.FileID, args[0], objectCascade)

	result := map[string]interface{}{"deleted": block.FileID, "cascade": objectCascade}
	return emit(result, func() {
		fmt.Printf("Deleted %d\n", block.FileID)
	})
}

func runObjectReparent(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	if err := doc.Reparent(args[1], args[2], objectByID); err != nil {
		return err
	}
	if err := saveDocument(doc); err != nil {
		return err
	}
	logging.Mutate("reparented %q under %q in %s", args[1], args[2], args[0])

	result := map[string]interface{}{"child": args[1], "parent": args[2]}
	return emit(result, func() {
		fmt.Printf("Moved %s under %s\n", args[1], args[2])
	})
}

func runObjectClone(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	block, err := doc.ResolveTarget(args[1], objectByID)
	if err != nil {
		return err
	}
	clone, err := doc.CloneBlock(block.FileID)
	if err != nil {
		return err
	}
	if err := saveDocument(doc); err != nil {
		return err
	}
	logging.Mutate("cloned %d as %d in %s", block.FileID, clone.FileID, args[0])

	result := map[string]interface{}{
		"source":  block.FileID,
		"file_id": clone.FileID,
		"name":    doc.DisplayName(clone),
	}
	return emit(result, func() {
		fmt.Printf("Cloned %d as %d\n", block.FileID, clone.FileID)
	})
}

func runObjectUnpack(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	block, err := doc.ResolveTarget(args[1], objectByID)
	if err != nil {
		return err
	}

	root, err := resolveProject()
	if err != nil {
		return fmt.Errorf("unpack needs a project for template lookup: %w", err)
	}
	resolver := guid.NewResolver(root)

	unpacked, err := doc.UnpackInstance(block.FileID, resolver)
	if err != nil {
		return err
	}
	if err := saveDocument(doc); err != nil {
		return err
	}
	logging.Mutate("unpacked instance %d into %d in %s", block.FileID, unpacked.FileID, args[0])

	result := map[string]interface{}{
		"instance": block.FileID,
		"root":     unpacked.FileID,
		"name":     doc.DisplayName(unpacked),
	}
	return emit(result, func() {
		fmt.Printf("Unpacked instance %d into %q (file ID %d)\n",
			block.FileID, doc.DisplayName(unpacked), unpacked.FileID)
	})
}

func init() {
	objectCmd.PersistentFlags().BoolVar(&objectByID, "by-id", false, "treat targets as file IDs")
	objectAddCmd.Flags().StringVar(&objectParent, "parent", "", "parent object for the new block")
	objectDeleteCmd.Flags().BoolVar(&objectCascade, "cascade", false, "also delete the object's descendants")
	objectCmd.AddCommand(objectAddCmd, objectDeleteCmd, objectReparentCmd, objectCloneCmd, objectUnpackCmd)
	rootCmd.AddCommand(objectCmd)
}
