package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"sheetgrid/config"
	"sheetgrid/output"
	"sheetgrid/storage"
)

var (
	convertInput         string
	convertSheets        []string
	convertOutput        string
	convertFormat        string
	convertPretty        bool
	convertAddressPolicy string
	convertJournalDB     string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert one worksheet of a spreadsheet into address-keyed JSON or CSV",
	Long: `Open the input document, pick the worksheet, and convert its full grid.

Worksheet selection: each --sheet value (or sheets.candidates from config when no
--sheet is given) is compared case-insensitively against the worksheet names in
document order. The first match wins; without a match the first worksheet is used.

JSON output has the shape {"resultados": [[{"A1": "...", "B1": "..."}], ...]}:
one entry per worksheet row holding a single object with all of that row's cells.
Empty cells are emitted as "".

When --output is omitted, the result is written to stdout. The format is taken from
--format or inferred from the --output extension (.csv selects CSV, anything else JSON).`,
	Example: `
  # Print JSON to stdout
  sheetgrid convert -i ./proposal.xlsx

  # Try two worksheet names before falling back to the first sheet
  sheetgrid convert -i ./proposal.xlsx --sheet "Proposta_(Uso_Concessionária)" --sheet Summary

  # Write indented JSON to a file
  sheetgrid convert -i ./proposal.xlsx --pretty -o ./proposal.json

  # Allow sheets wider than 26 columns (AA, AB, ...)
  sheetgrid convert -i ./wide.xlsx --address-policy extended -o ./wide.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		format := convertFormat
		if strings.TrimSpace(format) == "" {
			format = detectOutputFormat(convertOutput)
		}
		writer, err := output.WriterForFormat(format, convertPretty)
		if err != nil {
			return err
		}

		converter, err := buildConverter(*cfg, converterOverrides{
			sheets:        convertSheets,
			addressPolicy: convertAddressPolicy,
		})
		if err != nil {
			return err
		}

		journal, err := openJournal(*cfg, convertJournalDB)
		if err != nil {
			return err
		}
		if journal != nil {
			defer journal.Close()
		}

		started := time.Now()
		result, convErr := converter.Convert(convertInput)
		if journal != nil {
			if _, err := journal.InsertConversion(storage.NewConversion("cli", convertInput, started, result, convErr)); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to journal conversion: %v\n", err)
			}
		}
		if convErr != nil {
			return convErr
		}

		if strings.TrimSpace(convertOutput) == "" {
			return writer.Write(cmd.OutOrStdout(), result.Document)
		}
		if err := output.WriteFile(convertOutput, writer, result.Document); err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Conversion completed. Sheet: %s (matched: %t), Rows: %d, Columns: %d, Format: %s, File: %s\n",
			result.Sheet,
			result.Matched,
			result.Rows,
			result.Cols,
			format,
			convertOutput,
		)
		return nil
	},
}

func detectOutputFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	default:
		return "json"
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "Input spreadsheet path")
	convertCmd.Flags().StringArrayVarP(&convertSheets, "sheet", "s", nil, "Worksheet name to look for (repeatable, overrides sheets.candidates)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file path (default: stdout)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Output format: json|csv (optional, inferred from output extension)")
	convertCmd.Flags().BoolVar(&convertPretty, "pretty", false, "Indent JSON output")
	convertCmd.Flags().StringVar(&convertAddressPolicy, "address-policy", "", "Column addressing: single|extended (overrides convert.address_policy)")
	convertCmd.Flags().StringVar(&convertJournalDB, "journal-db", "", "Record the conversion in this SQLite journal (overrides journal.db_path and enables journaling)")

	_ = convertCmd.MarkFlagRequired("input")
}
