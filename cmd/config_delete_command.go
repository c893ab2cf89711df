package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Example: `
  # Delete active config
  sheetgrid config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			return fmt.Errorf("no configuration file found")
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("error deleting configuration file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file deleted: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
