package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sheetgrid configuration file values.",
	Long: `Create, edit, display, and delete the sheetgrid configuration file.

The configuration stores:
- sheets.candidates (worksheet names tried before the first-sheet fallback)
- convert.address_policy / convert.raw_values
- provider.password / provider.unzip_size_limit / provider.unzip_xml_size_limit
- server.port / server.allowed_roots
- journal.enabled / journal.db_path`,
	Example: `
  # Create default config in $HOME/.sheetgrid.yaml
  sheetgrid config create

  # Show active config and source file
  sheetgrid config show

  # Open active config in editor (creates example if missing)
  sheetgrid config edit

  # Delete active config file
  sheetgrid config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
