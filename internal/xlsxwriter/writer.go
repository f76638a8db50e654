// =============================================================================
// JSON/CSV Converter - XLSX Writer Module
// =============================================================================
//
// This module exports a RootValue as a single-sheet workbook. The cell grid is
// exactly the field grid the delimited encoder writes, without the quoting:
//
//   Single record:          Record set:
//   +------+-------+        +---+---+---+
//   | name | Ada   |        | a | b | c |   <- header (key union)
//   | age  | 36    |        | 1 | 2 |   |
//   +------+-------+        |   | 3 | 4 |
//                           +---+---+---+
//
// All cells are written as text so values such as "0042" keep their leading
// zeros.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/csvwriter"
	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
	"github.com/ginjaninja78/JSON-CSV-conversion/pkg/utils"
)

// DefaultSheet is the worksheet name used when none is given.
const DefaultSheet = "Sheet1"

// Write exports root to a workbook at path.
//
// PARAMETERS:
//   - root: The record or record set to export.
//   - path: The .xlsx file to create.
//   - sheet: The worksheet name. Empty means DefaultSheet.
//
// RETURNS:
//   - types.ErrInvalidRootShape for a scalar root.
//   - An error wrapping types.ErrIOFailure if the workbook cannot be saved.
func Write(root types.RootValue, path, sheet string) error {
	grid, err := csvwriter.Table(root)
	if err != nil {
		return err
	}

	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	// A new workbook always starts with "Sheet1".
	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	for r, row := range grid {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	// Bold header for tables.
	if root.Shape == types.ShapeRecordSet && len(grid) > 0 && len(grid[0]) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(grid[0]), 1)
		if err != nil {
			return fmt.Errorf("failed to address cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: saving workbook: %w", types.ErrIOFailure, err)
	}
	return nil
}

// ReadRows returns the rows of a sheet in a workbook. It exists to check
// exported files.
func ReadRows(path, sheet string) ([][]string, error) {
	if !utils.FileExists(path) {
		return nil, fmt.Errorf("%w: %s does not exist", types.ErrIOFailure, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %w", types.ErrIOFailure, err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
