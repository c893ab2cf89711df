package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sheetgrid/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Validate and display the effective configuration: file values merged with
defaults and SHEETGRID_* environment variables.`,
	Example: `
  # Show active configuration
  sheetgrid config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		out := cmd.OutOrStdout()
		if path := viper.ConfigFileUsed(); path != "" {
			fmt.Fprintln(out, "Config file loaded from:", path)
		} else {
			fmt.Fprintln(out, "No config file loaded; using defaults.")
		}
		for _, line := range describeConfig(*cfg) {
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
