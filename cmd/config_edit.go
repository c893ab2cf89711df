package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sheetgrid/config"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active config file in $VISUAL, then $EDITOR, then vi.

A missing file is created from the example template first. The content is
validated after the editor exits.`,
	Example: `
  # Edit active config
  sheetgrid config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configTargetPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		created, err := writeExampleConfig(path, false)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "No config file found. Created example config at: %s\n", path)
		}

		editor, err := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"), path)
		if err != nil {
			return err
		}
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr
		if err := editor.Run(); err != nil {
			return fmt.Errorf("opening editor failed: %w", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading edited config failed: %w", err)
		}
		if _, err := config.ValidateYAMLContent(content); err != nil {
			return fmt.Errorf("config validation failed in %s: %w", path, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved and validated: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
