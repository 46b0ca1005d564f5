package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := buildCommandTree().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func buildCommandTree() *cobra.Command {
	rootCmd := buildRootCommand()
	rootCmd.AddCommand(
		buildListCommand(),
		buildStatCommand(),
		buildSearchCommand(),
		buildFavoritesCommand(),
		buildMkdirCommand(),
		buildRenameCommand(),
		buildMoveCommand(),
		buildRemoveCommand(),
		buildUndoCommand(),
		buildLogCommand(),
		buildTrashCommand(),
		buildRootsCommand(),
	)
	return rootCmd
}
