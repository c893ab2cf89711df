/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sheetgrid/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sheetgrid",
	Short: "Convert a spreadsheet worksheet into address-keyed JSON.",
	Long: `
**********************************************
*               SHEET GRID                   *
**********************************************

This CLI opens a spreadsheet document, picks a worksheet by name (falling back to
the first worksheet), and converts every cell of its grid into JSON keyed by cell
address ("A1", "B7", ...). Each worksheet row becomes one object holding all of
that row's cells.

Supported input formats:
- Excel: .xlsx, .xlsm, .xltx, .xltm
`,
	Example: `
  # Create configuration file
  sheetgrid config create

  # Convert a workbook and print JSON to stdout
  sheetgrid convert -i ./proposal.xlsx

  # Prefer a specific worksheet and write CSV
  sheetgrid convert -i ./proposal.xlsx --sheet Summary --output ./proposal.csv

  # Serve conversions over HTTP
  sheetgrid serve --port 8080

  # Show recently journaled conversions
  sheetgrid history --limit 20
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.sheetgrid.yaml, then ./.sheetgrid.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".sheetgrid" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sheetgrid")
	}

	// SHEETGRID_SERVER_PORT overrides server.port, and so on.
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults are usable without a file; only report files that exist but fail to load.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	}
}
