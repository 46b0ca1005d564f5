package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"local-file-manager/internal/app"
)

var logLimit int

func buildLogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent journal records, newest first",
		Args:  cobra.NoArgs,
		RunE:  runLog,
	}

	cmd.Flags().IntVarP(&logLimit, "limit", "n", 50, "Number of records to show")

	return cmd
}

func runLog(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		records, err := engine.Operations.RecentLogs(ctx, logLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, records)
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tTIME\tACTION\tSTATUS\tSOURCE\tTARGET")
		for _, r := range records {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.Kind, r.Status, r.SrcPath, r.DstPath)
		}
		return tw.Flush()
	})
}

func buildTrashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trash",
		Short: "List trash slots, newest first",
		Args:  cobra.NoArgs,
		RunE:  runTrash,
	}
}

func runTrash(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		slots, err := engine.Operations.TrashSlots(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, slots)
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "SLOT\tITEMS\tPATH")
		for _, slot := range slots {
			items := "-"
			if slot.Manifest != nil {
				items = fmt.Sprint(len(slot.Manifest.Items))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", slot.ID, items, slot.Path)
		}
		return tw.Flush()
	})
}

func buildRootsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roots",
		Short: "Show the allowed roots",
		Long: `Prints the directories every operation is confined to. An empty list
means no restriction.

Examples:
  fmctl roots
  fmctl roots set ~/Documents ~/Downloads
  fmctl roots clear`,
		Args: cobra.NoArgs,
		RunE: runRootsShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set [root...]",
		Short: "Replace the allowed roots",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRootsSet,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every allowed root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRootsSet(cmd, nil)
		},
	})

	return cmd
}

func runRootsShow(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(_ context.Context, engine *app.Engine) error {
		return printRoots(cmd, engine.Operations.AllowedRoots())
	})
}

func runRootsSet(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		roots, err := engine.Operations.SetAllowedRoots(ctx, args)
		if err != nil {
			return err
		}
		return printRoots(cmd, roots)
	})
}

func printRoots(cmd *cobra.Command, roots []string) error {
	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, map[string][]string{"roots": roots})
	}

	if len(roots) == 0 {
		fmt.Fprintln(out, "(unrestricted)")
		return nil
	}
	for _, root := range roots {
		fmt.Fprintln(out, root)
	}
	return nil
}
