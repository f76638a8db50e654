// =============================================================================
// JSON/CSV Converter - File Manager Utility
// =============================================================================
//
// This module owns every file handle the converter touches:
//   - Reading source files
//   - Writing target files (optionally atomically)
//   - Discovering convertible files in a directory
//   - Naming targets for batch conversion
//
// Every read or write failure is wrapped in types.ErrIOFailure so the CLI can
// report it as a single error kind.
//
// ATOMIC WRITES:
//   The target is first written to ".<name>.<uuid>.tmp" in the target
//   directory and then renamed over the final path. A failed run never leaves
//   a half-written target behind.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ginjaninja78/JSON-CSV-conversion/internal/types"
)

// Source extensions the converter understands.
const (
	ExtJSON = ".json"
	ExtCSV  = ".csv"
)

// =============================================================================
// READING AND WRITING
// =============================================================================

// ReadSource reads a whole source file.
func ReadSource(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading source file: %w", types.ErrIOFailure, err)
	}
	return data, nil
}

// WriteTarget writes data to path with the given permissions.
//
// PARAMETERS:
//   - path: The target file path.
//   - data: The complete file content.
//   - mode: Permissions for a newly created file.
//   - atomic: Write through a temporary file and rename it into place.
func WriteTarget(path string, data []byte, mode os.FileMode, atomic bool) error {
	if !atomic {
		if err := os.WriteFile(path, data, mode); err != nil {
			return fmt.Errorf("%w: writing target file: %w", types.ErrIOFailure, err)
		}
		return nil
	}

	tmpPath := TempPath(path)
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing target file: %w", types.ErrIOFailure, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: writing target file: %w", types.ErrIOFailure, err)
	}
	return nil
}

// TempPath returns a unique hidden sibling of path used for atomic writes.
func TempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the .json and .csv files directly inside dir,
// sorted by name. Subdirectories and hidden files are skipped.
func DiscoverInputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading directory: %w", types.ErrIOFailure, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		switch Ext(entry.Name()) {
		case ExtJSON, ExtCSV:
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// Ext returns the lower-cased extension of path, including the dot.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// TargetPath returns where the batch command writes the conversion of
// source: the same base name with .json and .csv swapped, inside outDir.
// An empty outDir means the source directory.
func TargetPath(source, outDir string) (string, error) {
	var ext string
	switch Ext(source) {
	case ExtJSON:
		ext = ExtCSV
	case ExtCSV:
		ext = ExtJSON
	default:
		return "", fmt.Errorf("%w: %s", types.ErrUnsupportedExtension, filepath.Base(source))
	}

	if outDir == "" {
		outDir = filepath.Dir(source)
	}
	base := filepath.Base(source)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, name+ext), nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
