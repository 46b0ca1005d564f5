package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"local-file-manager/internal/app"
)

func buildMkdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir [parent] [name]",
		Short: "Create a directory inside parent",
		Args:  cobra.ExactArgs(2),
		RunE:  runMkdir,
	}
}

func runMkdir(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		result, err := engine.Operations.MakeDir(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, result)
		}
		fmt.Fprintf(out, "CREATED: %s\n", result.Path)
		return nil
	})
}

func buildRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [path] [new-name]",
		Short: "Rename an entry within its directory",
		Long: `Renames path to new-name in the same directory. The new name must be
a plain file name; use "mv" to change directories.

Example:
  fmctl rename ~/Documents/draft.txt final.txt`,
		Args: cobra.ExactArgs(2),
		RunE: runRename,
	}
}

func runRename(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		result, err := engine.Operations.Rename(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, result)
		}
		fmt.Fprintf(out, "RENAME: %s\n    TO: %s\n", result.OldPath, result.NewPath)
		return nil
	})
}

func buildMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mv [source...] [destination]",
		Short: "Move entries into a directory",
		Long: `Moves every source into the destination directory. Items are handled
one by one; a failure on one does not stop the rest. Moves across
filesystems fall back to copy and delete.

Example:
  fmctl mv a.txt b.txt photos/ ~/Archive`,
		Args: cobra.MinimumNArgs(2),
		RunE: runMove,
	}
}

func runMove(cmd *cobra.Command, args []string) error {
	sources, destination := args[:len(args)-1], args[len(args)-1]

	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		outcome, err := engine.Operations.Move(ctx, sources, destination)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), outcome)
		}
		return printBatch(cmd.OutOrStdout(), "MOVE", outcome)
	})
}

func buildRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [path...]",
		Short: "Move entries to the trash",
		Long: `Moves every path into a new trash slot. Nothing is deleted for good;
"fmctl undo" restores the most recent deletion.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		outcome, err := engine.Operations.SoftDelete(ctx, args)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), outcome)
		}
		return printBatch(cmd.OutOrStdout(), "TRASH", outcome)
	})
}

func buildUndoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Reverse the most recent operation",
		Long: `Reverses the newest successful move, rename, directory creation or
deletion found in the journal. An undo is itself journaled, and undoing
right after an undo does nothing.`,
		Args: cobra.NoArgs,
		RunE: runUndo,
	}
}

func runUndo(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		result, err := engine.Operations.Undo(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, result)
		}
		fmt.Fprintf(out, "UNDO %s: %s\n", result.Action, result.Message)
		return nil
	})
}
