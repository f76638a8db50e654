// =============================================================================
// JSON/CSV Converter - Sheet Command
// =============================================================================
//
// This file defines the 'sheet' command, which exports a .json or .csv source
// as an .xlsx workbook. The cells hold the same fields the CSV encoder would
// write, unquoted.
//
// COMMAND USAGE:
//   converter sheet <sourceFile> <target.xlsx> [--sheet name]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/converter"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/xlsxwriter"
)

// sheetName overrides the sheet_name configuration setting.
var sheetName string

// sheetCmd represents the 'sheet' command.
var sheetCmd = &cobra.Command{
	Use:   "sheet <sourceFile> <target.xlsx>",
	Short: "Export a .json or .csv file as an .xlsx workbook",
	Args:  cobra.ExactArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadSettings()
		if err != nil {
			return err
		}
		if sheetName != "" {
			cfg.SheetName = sheetName
		}

		root, err := converter.New(cfg, logger).Load(args[0])
		if err != nil {
			return err
		}
		if err := xlsxwriter.Write(root, args[1], cfg.SheetName); err != nil {
			return err
		}

		logger.Infof("Exported %d record(s) to sheet %q", root.Count(), cfg.SheetName)
		fmt.Fprintf(cmd.OutOrStdout(), "Export complete. Workbook written to %s\n", args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sheetCmd)

	sheetCmd.Flags().StringVar(
		&sheetName,
		"sheet",
		"",
		"Worksheet name (overrides sheet_name in the config file)",
	)
}
