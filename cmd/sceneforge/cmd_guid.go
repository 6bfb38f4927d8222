// Package main GUID cache commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sceneforge/internal/guid"
	"sceneforge/internal/scene"
)

var guidCmd = &cobra.Command{
	Use:   "guid",
	Short: "Resolve asset GUIDs through the .meta cache",
}

var guidResolveCmd = &cobra.Command{
	Use:   "resolve <guid>",
	Short: "Map a GUID to its asset path",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuidResolve,
}

var guidRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rescan the project's .meta files",
	Args:  cobra.NoArgs,
	RunE:  runGuidRebuild,
}

var guidWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the cache fresh as .meta files change",
	Long: `Watch the Assets tree and invalidate the GUID cache whenever a
.meta file changes. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runGuidWatch,
}

func runGuidResolve(cmd *cobra.Command, args []string) error {
	root, err := resolveProject()
	if err != nil {
		return err
	}
	resolver := guid.NewResolver(root)
	path, ok := resolver.Resolve(args[0])
	if !ok {
		return fmt.Errorf("%w: guid %s", scene.ErrNotFound, args[0])
	}

	result := map[string]string{"guid": args[0], "path": path}
	return emit(result, func() { fmt.Println(path) })
}

func runGuidRebuild(cmd *cobra.Command, args []string) error {
	root, err := resolveProject()
	if err != nil {
		return err
	}
	resolver := guid.NewResolver(root)
	if err := resolver.Rebuild(); err != nil {
		return err
	}

	result := map[string]string{"project": root, "status": "rebuilt"}
	return emit(result, func() { fmt.Println("GUID cache rebuilt.") })
}

func runGuidWatch(cmd *cobra.Command, args []string) error {
	root, err := resolveProject()
	if err != nil {
		return err
	}
	resolver := guid.NewResolver(root)
	if err := resolver.Rebuild(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s for .meta changes (ctrl-c to stop)\n", root)
	return resolver.Watch(ctx)
}

func init() {
	guidCmd.AddCommand(guidResolveCmd, guidRebuildCmd, guidWatchCmd)
	rootCmd.AddCommand(guidCmd)
}
