package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateForce bool

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Write the example configuration template to the active config path.

An existing file is kept unless --force is given.`,
	Example: `
  # Create default config at $HOME/.sheetgrid.yaml
  sheetgrid config create

  # Reset a custom config file to the template
  sheetgrid --configFile ./sheetgrid.yaml config create --force
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configTargetPath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		written, err := writeExampleConfig(path, configCreateForce)
		if err != nil {
			return err
		}
		if written {
			fmt.Fprintf(cmd.OutOrStdout(), "Config file written: %s\n", path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists at: %s (use --force to overwrite)\n", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().BoolVarP(&configCreateForce, "force", "F", false, "Overwrite an existing config file")
}
