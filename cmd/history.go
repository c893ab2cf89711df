package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"sheetgrid/config"
	"sheetgrid/storage"
)

var (
	historyDBPath      string
	historyLimit       int
	historyPruneBefore time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or prune journaled conversions",
	Long: `Show conversions recorded in the SQLite journal, newest first.

Conversions are only journaled when journal.enabled is true in the config or a
--journal-db path is passed to convert/serve.`,
	Example: `
  # Show the 20 most recent conversions
  sheetgrid history --limit 20

  # Drop entries older than 30 days
  sheetgrid history --prune-before 720h
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		dbPath := historyDBPath
		if strings.TrimSpace(dbPath) == "" {
			dbPath = cfg.Journal.DBPath
		}
		if strings.TrimSpace(dbPath) == "" {
			return fmt.Errorf("no journal database configured (set journal.db_path or --journal-db)")
		}
		store, err := openExistingJournal(*cfg, dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if historyPruneBefore > 0 {
			cutoff := time.Now().Add(-historyPruneBefore)
			deleted, err := store.DeleteConversionsBefore(cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d conversions started before %s\n", deleted, cutoff.Format(time.RFC3339))
			return nil
		}

		entries, err := store.ListConversions(historyLimit)
		if err != nil {
			return err
		}
		return printHistory(cmd.OutOrStdout(), entries)
	},
}

// openExistingJournal refuses to create a journal so a mistyped path is
// reported instead of listing an empty database.
func openExistingJournal(cfg config.Config, dbPath string) (*storage.SQLiteStore, error) {
	info, err := os.Stat(dbPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("journal not found: %s", dbPath)
	case err != nil:
		return nil, fmt.Errorf("stat journal file: %w", err)
	case info.IsDir():
		return nil, fmt.Errorf("journal path is a directory: %s", dbPath)
	}
	return openJournal(cfg, dbPath)
}

func printHistory(w io.Writer, entries []storage.Conversion) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No conversions recorded.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tSOURCE\tOUTCOME\tSHEET\tROWS\tCOLS\tDURATION\tPATH")
	for _, entry := range entries {
		sheet := entry.Sheet
		if sheet != "" && !entry.Matched {
			sheet += " (fallback)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			entry.ID,
			entry.StartedAt.Local().Format("2006-01-02 15:04:05"),
			entry.Source,
			entry.Outcome,
			sheet,
			entry.Rows,
			entry.Cols,
			entry.Duration,
			entry.Path,
		)
		if entry.Error != "" {
			fmt.Fprintf(tw, "\t\t\t\terror: %s\t\t\t\t\n", entry.Error)
		}
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDBPath, "journal-db", "", "Path to the SQLite journal (default: journal.db_path)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of entries to show (0 = all)")
	historyCmd.Flags().DurationVar(&historyPruneBefore, "prune-before", 0, "Delete entries older than this age instead of listing (e.g. 720h)")
}
