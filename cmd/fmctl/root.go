package main

import (
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	stateDir   string
)

func buildRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmctl",
		Short: "Browse and reorganize local files with a journal and undo",
		Long: `fmctl drives the file manager engine from the command line.

Every mutating command is written to the action journal, and deletions go
to the trash instead of being removed. The most recent operation can be
reversed with "fmctl undo".

Examples:
  fmctl ls ~/Documents --sort size --order desc
  fmctl mkdir ~/Documents reports
  fmctl mv ~/Downloads/a.pdf ~/Downloads/b.pdf ~/Documents/reports
  fmctl rm ~/Documents/reports/b.pdf
  fmctl undo
  fmctl log -n 20

Configuration:
  The same environment as the server applies (STATE_DIR, TRASH_ROOT,
  ALLOWED_ROOTS, JOURNAL_DRIVER, ...). A .env file in the working
  directory is loaded when present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity to stderr")
	cmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Override STATE_DIR (journal and trash location)")

	return cmd
}
