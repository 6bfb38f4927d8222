// Package main prefab override commands: modification entries and the
// removed-component and removed-object bookkeeping lists.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sceneforge/internal/logging"
	"sceneforge/internal/scene"
)

var (
	overrideByID      bool
	overrideGUID      string
	overrideObjectRef string
)

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Edit prefab instance overrides",
}

var overrideListCmd = &cobra.Command{
	Use:   "list <file> <instance>",
	Short: "List an instance's modification entries",
	Args:  cobra.ExactArgs(2),
	RunE:  runOverrideList,
}

var overrideSetCmd = &cobra.Command{
	Use:   "set <file> <instance> <target-id> <path> <value>",
	Short: "Add or update a property override",
	Long: `Add or update one modification entry on a prefab instance. The
target ID is the file ID of the object inside the source template. An
existing entry for the same target and path is updated in place.`,
	Args: cobra.ExactArgs(5),
	RunE: runOverrideSet,
}

var overrideRemoveCmd = &cobra.Command{
	Use:   "remove <file> <instance> <target-id> <path>",
	Short: "Remove a property override",
	Args:  cobra.ExactArgs(4),
	RunE:  runOverrideRemove,
}

var removedCmd = &cobra.Command{
	Use:   "removed",
	Short: "Edit an instance's removed component and object lists",
}

var removedComponentCmd = &cobra.Command{
	Use:   "component <add|remove> <file> <instance> <target-id>",
	Short: "Mark or unmark a template component as removed",
	Args:  cobra.ExactArgs(4),
	RunE:  runRemoved("m_RemovedComponents"),
}

var removedObjectCmd = &cobra.Command{
	Use:   "object <add|remove> <file> <instance> <target-id>",
	Short: "Mark or unmark a template object as removed",
	Args:  cobra.ExactArgs(4),
	RunE:  runRemoved("m_RemovedGameObjects"),
}

// resolveInstance finds a prefab instance block by name or ID and checks
// its class.
func resolveInstance(doc *scene.Document, ref string) (*scene.Block, error) {
	block, err := doc.ResolveTarget(ref, overrideByID)
	if err != nil {
		return nil, err
	}
	if block.ClassID != scene.ClassPrefabInstance {
		return nil, fmt.Errorf("%w: %s %d is not a prefab instance",
			scene.ErrValidation, block.TypeName(), block.FileID)
	}
	return block, nil
}

func targetIDArg(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target ID %q", arg)
	}
	return id, nil
}

func runOverrideList(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	instance, err := resolveInstance(doc, args[1])
	if err != nil {
		return err
	}
	mods := doc.Modifications(instance)

	result := map[string]interface{}{
		"instance":           instance.FileID,
		"source_guid":        doc.SourceGUID(instance),
		"modifications":      mods,
		"removed_components": doc.RemovedComponents(instance),
		"removed_objects":    doc.RemovedGameObjects(instance),
	}
	return emit(result, func() {
		fmt.Printf("Instance %d (%d overrides)\n", instance.FileID, len(mods))
		for _, m := range mods {
			fmt.Printf("  %d %s = %s\n", m.TargetFileID, m.PropertyPath, m.Value)
		}
	})
}

func runOverrideSet(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	instance, err := resolveInstance(doc, args[1])
	if err != nil {
		return err
	}
	targetID, err := targetIDArg(args[2])
	if err != nil {
		return err
	}
	if err := doc.UpsertOverride(instance, targetID, overrideGUID, args[3], args[4], overrideObjectRef); err != nil {
		return err
	}
	if err := saveDocument(doc); err != nil {
		return err
	}
	logging.Mutate("override %s on %d/%d in %s", args[3], instance.FileID, targetID, args[0])

	result := map[string]interface{}{
		"instance": instance.FileID,
		"target":   targetID,
		"path":     args[3],
		"value":    args[4],
	}
	return emit(result, func() {
		fmt.Printf("Override %s = %s on %d\n", args[3], args[4], targetID)
	})
}

func runOverrideRemove(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(args[0])
	if err != nil {
		return err
	}
	instance, err := resolveInstance(doc, args[1])
	if err != nil {
		return err
	}
	targetID, err := targetIDArg(args[2])
	if err != nil {
		return err
	}
	if err := doc.RemoveOverride(instance, targetID, args[3]); err != nil {
		return err
	}
	if err := saveDocument(doc); err != nil {
		return err
	}
	logging.Mutate("override removed: %s on %d/%d in %s", args[3], instance.FileID, targetID, args[0])

	result := map[string]interface{}{
		"instance": instance.FileID,
		"target":   targetID,
		"path":     args[3],
	}
	return emit(result, func() {
		fmt.Printf("Removed override %s on %d\n", args[3], targetID)
	})
}

// runRemoved builds the handler for both removal lists; only the field
// name differs.
func runRemoved(field string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		op := args[0]
		doc, err := openDocument(args[1])
		if err != nil {
			return err
		}
		instance, err := resolveInstance(doc, args[2])
		if err != nil {
			return err
		}
		targetID, err := targetIDArg(args[3])
		if err != nil {
			return err
		}

		switch {
		case op == "add" && field == "m_RemovedComponents":
			err = doc.AddRemovedComponent(instance, targetID, overrideGUID)
		case op == "remove" && field == "m_RemovedComponents":
			err = doc.RemoveRemovedComponent(instance, targetID)
		case op == "add" && field == "m_RemovedGameObjects":
			err = doc.AddRemovedGameObject(instance, targetID, overrideGUID)
		case op == "remove" && field == "m_RemovedGameObjects":
			err = doc.RemoveRemovedGameObject(instance, targetID)
		default:
			return fmt.Errorf("unknown operation %q (want add or remove)", op)
		}
		if err != nil {
			return err
		}
		if err := saveDocument(doc); err != nil {
			return err
		}
		logging.Mutate("%s %s %d on %d in %s", field, op, targetID, instance.FileID, args[1])

		result := map[string]interface{}{
			"instance":  instance.FileID,
			"target":    targetID,
			"list":      field,
			"operation": op,
		}
		return emit(result, func() {
			fmt.Printf("%s: %s %d\n", field, op, targetID)
		})
	}
}

func init() {
	overrideCmd.PersistentFlags().BoolVar(&overrideByID, "by-id", false, "treat the instance reference as a file ID")
	overrideCmd.PersistentFlags().StringVar(&overrideGUID, "guid", "", "target GUID (default: derived from the instance)")
	overrideSetCmd.Flags().StringVar(&overrideObjectRef, "object-ref", "", "objectReference value for the entry")

	removedCmd.AddCommand(removedComponentCmd, removedObjectCmd)
	overrideCmd.AddCommand(overrideListCmd, overrideSetCmd, overrideRemoveCmd, removedCmd)
	rootCmd.AddCommand(overrideCmd)
}
