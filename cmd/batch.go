// =============================================================================
// JSON/CSV Converter - Batch Command
// =============================================================================
//
// This file defines the 'batch' command, which converts every .json and .csv
// file in a directory. Each file goes through the same pipeline as the root
// command; .json files produce .csv targets and .csv files produce .json
// targets with the same base name.
//
// COMMAND USAGE:
//   converter batch <dir> [flags]
//
// FLAGS:
//   --out    : Directory for the targets (default: the source directory)
//   --force  : Overwrite targets that already exist
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover source files in the directory
//   3. Convert files concurrently, at most max_concurrency at a time
//   4. Print one line per file and a summary
//
// A failing file does not stop the others. The command exits non-zero if any
// file failed.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/converter"
	"github.com/ginjaninja78/JSON-CSV-conversion/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// outDir is where targets are written. Empty means next to the sources.
var outDir string

// force overwrites existing targets.
var force bool

// =============================================================================
// BATCH COMMAND DEFINITION
// =============================================================================

// batchCmd represents the 'batch' command.
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Convert every .json and .csv file in a directory",
	Long: `The batch command scans a directory for .json and .csv files and converts
each of them in the direction given by its extension.

Files are converted concurrently. Errors in one file do not affect the others;
the command reports every failure and exits with a non-zero status if there
was at least one. Existing targets are skipped unless --force is given.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(
		&outDir,
		"out",
		"",
		"Directory for converted files (default is the source directory)",
	)

	batchCmd.Flags().BoolVar(
		&force,
		"force",
		false,
		"Overwrite targets that already exist",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// batchOutcome is the per-file line of the summary.
type batchOutcome struct {
	result  converter.Result
	skipped bool
}

// runBatch converts all source files in dir.
func runBatch(ctx context.Context, out io.Writer, dir string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	files, err := utils.DiscoverInputFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No .json or .csv files found.")
		return nil
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outDir, err)
		}
	}

	logger.Debugf("Found %d file(s) to convert", len(files))

	// =========================================================================
	// STEP 2: CONVERT FILES CONCURRENTLY
	// =========================================================================
	// Each goroutine writes only its own slot, so the outcomes need no lock
	// and keep the discovery order.

	conv := converter.New(cfg, logger)
	outcomes := make([]batchOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxConcurrency)

	for i, source := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			target, err := utils.TargetPath(source, outDir)
			if err != nil {
				outcomes[i] = batchOutcome{result: converter.Result{SourceFile: source, Error: err}}
				return nil
			}
			if !force && utils.FileExists(target) {
				outcomes[i] = batchOutcome{result: converter.Result{SourceFile: source, TargetFile: target}, skipped: true}
				return nil
			}

			outcomes[i] = batchOutcome{result: conv.Run(source, target)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: PRINT SUMMARY
	// =========================================================================

	var successCount, skipCount, errorCount int
	for _, o := range outcomes {
		name := filepath.Base(o.result.SourceFile)
		switch {
		case o.skipped:
			skipCount++
			fmt.Fprintf(out, "  - %s: %s exists, skipped\n", name, o.result.TargetFile)
		case o.result.Success:
			successCount++
			fmt.Fprintf(out, "  ✓ %s -> %s\n", name, o.result.TargetFile)
		default:
			errorCount++
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, o.result.Error)
		}
	}

	fmt.Fprintln(out, "\n=== Conversion Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", len(files))
	fmt.Fprintf(out, "Successful:      %d\n", successCount)
	fmt.Fprintf(out, "Skipped:         %d\n", skipCount)
	fmt.Fprintf(out, "Errors:          %d\n", errorCount)
	fmt.Fprintf(out, "Time elapsed:    %s\n", time.Since(startTime).Round(time.Millisecond))

	if errorCount > 0 {
		return fmt.Errorf("%d of %d file(s) failed", errorCount, len(files))
	}
	return nil
}
