// Package main project settings commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sceneforge/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and edit ProjectSettings files",
	Long: `Read and edit the fixed-schema files under ProjectSettings/.
Known settings: tags, layers, physics, quality.`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Read a settings file as structured data",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <name> <property> [value]",
	Short: "Edit one property of a settings file",
	Long: `Edit one property of a settings file and write it back.

  settings set tags <name> add        append a tag
  settings set tags <name> remove     delete a tag
  settings set layers <slot> <name>   assign a layer slot
  settings set physics <field> <v>    rewrite a physics constant
  settings set quality <tier.field> <v>`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSettingsSet,
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	root, err := resolveProject()
	if err != nil {
		return err
	}
	data, err := settings.ReadSetting(root, args[0])
	if err != nil {
		return err
	}
	return emit(data, nil)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	root, err := resolveProject()
	if err != nil {
		return err
	}
	value := ""
	if len(args) == 3 {
		value = args[2]
	}
	if err := settings.EditSetting(root, args[0], args[1], value); err != nil {
		return err
	}

	result := map[string]string{
		"setting":  args[0],
		"property": args[1],
		"value":    value,
	}
	return emit(result, func() {
		fmt.Printf("Updated %s %s\n", args[0], args[1])
	})
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
