// =============================================================================
// JSON/CSV Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Called with two file
// paths, the root command performs a single conversion; subcommands cover the
// extra workflows.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter <sourceFile> <targetFile>)
//   ├── batchCmd   (converter batch <dir>)
//   ├── sheetCmd   (converter sheet <sourceFile> <target.xlsx>)
//   └── versionCmd (converter version)
//
// DISPATCH:
//   .json source -> delimited text target
//   .csv  source -> indented JSON target
//   anything else is a usage error
//
// EXIT STATUS:
//   0 on success, 1 on any failure. Diagnostics go to stderr.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/config"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/converter"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// Empty means config.yaml in the current directory, if present.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// strict makes the decoder reject malformed quoting.
var strict bool

// quotePolicy overrides the quote_policy configuration setting.
var quotePolicy string

// usage is printed with ErrMissingArguments.
const usage = "Usage: converter <sourceFile> <targetFile>"

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd converts one file when called with two arguments.
var rootCmd = &cobra.Command{
	Use:   "converter <sourceFile> <targetFile>",
	Short: "Convert flat JSON to semicolon-delimited CSV and back",
	Long: `converter turns flat JSON into semicolon-delimited CSV and back.

A JSON object becomes "key";"value" lines. A JSON array of objects becomes a
table whose header is the union of all keys in first-seen order. Every field
is quoted and quotes inside fields are doubled.

A CSV file where every line has exactly two fields becomes a single JSON
object. Any other CSV file is read as a header line followed by data rows and
becomes a JSON array of objects.

Example Usage:
  converter data.json data.csv   # JSON -> CSV
  converter data.csv data.json   # CSV -> JSON
  converter batch ./exports      # convert every file in a directory`,

	Args:          requireSourceAndTarget,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0], args[1])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: optional YAML configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is config.yaml if present)",
	)

	// --verbose flag: debug logging to stderr.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// --strict flag: fail on malformed quoting instead of truncating.
	rootCmd.PersistentFlags().BoolVar(
		&strict,
		"strict",
		false,
		"Reject CSV lines with malformed quoting",
	)

	// --quote-policy flag: always (default) or minimal.
	rootCmd.PersistentFlags().StringVar(
		&quotePolicy,
		"quote-policy",
		"",
		"CSV quoting: always or minimal (overrides the config file)",
	)
}

// =============================================================================
// CONVERSION
// =============================================================================

// requireSourceAndTarget rejects fewer than two positional arguments with
// ErrMissingArguments. Extra arguments are ignored.
func requireSourceAndTarget(cmd *cobra.Command, args []string) error {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return fmt.Errorf("%w\n%s", types.ErrMissingArguments, usage)
	}
	return nil
}

// runConvert converts a single file and prints the confirmation line.
func runConvert(cmd *cobra.Command, source, target string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}

	result := converter.New(cfg, logger).Run(source, target)
	if !result.Success {
		return result.Error
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Conversion complete. Output written to %s\n", target)
	return nil
}

// loadSettings loads the configuration, applies flag overrides and builds
// the logger.
func loadSettings() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if strict {
		cfg.StrictQuotes = true
	}
	if quotePolicy != "" {
		cfg.QuotePolicy = quotePolicy
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("--quote-policy: %w", err)
		}
	}

	level := cfg.Level()
	if verbose {
		level = logrus.DebugLevel
	}
	return cfg, converter.NewLogger(level), nil
}
