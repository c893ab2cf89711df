package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"sheetgrid/config"
)

var historyClearDBPath string

var (
	clearPromptInput  io.Reader = os.Stdin
	clearPromptOutput io.Writer = os.Stdout
)

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the conversion journal database file",
	Long: `Remove the complete SQLite journal file.

An interactive prompt requires typing exactly "Y" before anything is deleted.
Use "history --prune-before" to drop only old entries.`,
	Example: `
  # Delete the configured journal (requires interactive confirmation)
  sheetgrid history clear

  # Delete a specific journal file
  sheetgrid history clear --journal-db ./sheetgrid.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := historyClearDBPath
		if strings.TrimSpace(dbPath) == "" {
			cfg, err := config.LoadAndValidate()
			if err != nil {
				return err
			}
			dbPath = cfg.Journal.DBPath
		}

		confirmed, err := confirmClearPrompt(clearPromptInput, clearPromptOutput, dbPath)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("clear aborted: confirmation was not 'Y'")
		}

		if err := removeJournalFile(dbPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted journal file: %s\n", dbPath)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)

	historyClearCmd.Flags().StringVar(&historyClearDBPath, "journal-db", "", "Journal file to delete (default: journal.db_path)")
}

func confirmClearPrompt(input io.Reader, output io.Writer, path string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("confirmation input is not available")
	}
	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete journal file %q? Type Y to confirm: ", path); err != nil {
		return false, fmt.Errorf("write confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func removeJournalFile(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("journal file not found: %s", path)
	case err != nil:
		return fmt.Errorf("stat journal file: %w", err)
	case info.IsDir():
		return fmt.Errorf("journal path is a directory: %s", path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete journal file: %w", err)
	}
	return nil
}
