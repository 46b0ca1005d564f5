package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"local-file-manager/internal/app"
	"local-file-manager/internal/service"
)

var (
	listSort  string
	listOrder string
)

func buildListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory",
		Long: `Lists the immediate children of a directory. Hidden entries are
included. Sort by name, size, modified or type.

Examples:
  fmctl ls ~/Documents
  fmctl ls --sort size --order desc ~/Downloads`,
		Args: cobra.ExactArgs(1),
		RunE: runList,
	}

	cmd.Flags().StringVar(&listSort, "sort", "name", "Sort field: name, size, modified, type")
	cmd.Flags().StringVar(&listOrder, "order", "asc", "Sort order: asc or desc")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		data, err := engine.Operations.ListDir(ctx, args[0], service.ListOptions{Sort: listSort, Order: listOrder})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, data)
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "TYPE\tSIZE\tMODIFIED\tNAME")
		for _, item := range data.Items {
			kind := item.Type
			size := item.SizeHuman
			if item.IsDir {
				kind = "dir"
				size = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", kind, size, item.ModifiedAt.Format("2006-01-02 15:04"), item.Name)
		}
		return tw.Flush()
	})
}

func buildStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat [path]",
		Short: "Show details about one file or directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runStat,
	}
}

func runStat(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		stat, err := engine.Operations.Stat(ctx, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, stat)
		}

		tw := newTable(out)
		fmt.Fprintf(tw, "Path:\t%s\n", stat.Path)
		fmt.Fprintf(tw, "Type:\t%s\n", stat.Type)
		fmt.Fprintf(tw, "Size:\t%d (%s)\n", stat.Size, stat.SizeHuman)
		fmt.Fprintf(tw, "Permissions:\t%s\n", stat.Permissions)
		fmt.Fprintf(tw, "Modified:\t%s\n", stat.ModifiedAt.Format("2006-01-02 15:04:05"))
		if stat.MimeType != "" {
			fmt.Fprintf(tw, "MIME:\t%s\n", stat.MimeType)
		}
		if stat.IsSymlink {
			fmt.Fprintf(tw, "Symlink:\tyes\n")
		}
		return tw.Flush()
	})
}

func buildSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search [path] [query]",
		Short: "Find entries of a directory whose name contains query",
		Long: `Prints every child of path whose name contains query, ignoring case.

Example:
  fmctl search ~/Documents invoice`,
		Args: cobra.ExactArgs(2),
		RunE: runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		items, err := engine.Operations.Search(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, items)
		}

		for _, item := range items {
			fmt.Fprintln(out, item.Path)
		}
		return nil
	})
}

func buildFavoritesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List the usual user folders",
		Args:  cobra.NoArgs,
		RunE:  runFavorites,
	}
}

func runFavorites(cmd *cobra.Command, _ []string) error {
	return withEngine(cmd, func(ctx context.Context, engine *app.Engine) error {
		favorites, err := engine.Operations.Favorites(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, favorites)
		}

		tw := newTable(out)
		for _, f := range favorites {
			fmt.Fprintf(tw, "%s\t%s\n", f.Name, f.Path)
		}
		return tw.Flush()
	})
}
