// =============================================================================
// JSON/CSV Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the converter CLI. It hands control to the
// Cobra root command in the cmd package.
//
// USAGE:
//   converter <sourceFile> <targetFile>   - Convert .json -> .csv or .csv -> .json
//   converter batch <dir>                 - Convert every file in a directory
//   converter sheet <source> <out.xlsx>   - Export as a spreadsheet
//   converter version                     - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : conversion core, JSON reader/writer, config, exporters
//   - pkg/       : file handling utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/JSON-CSV-conversion/cmd"
)

func main() {
	cmd.Execute()
}
