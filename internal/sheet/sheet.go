// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet writes merged annotation rows to a single-sheet output file.
// The output format follows the file extension: .xlsx (and anything
// unrecognised) produces an Excel workbook, .csv and .tsv delimited text,
// .json and .yaml an array of row objects, .db and .sqlite a SQLite
// database with one table.
package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/bioannotate/pkg/types"
)

// SheetName is the name of the single worksheet in xlsx output.
const SheetName = "Annotations"

// Format identifies an output file format.
type Format string

const (
	FormatXLSX   Format = "xlsx"
	FormatCSV    Format = "csv"
	FormatTSV    Format = "tsv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// FormatFromPath selects the output format from the path's extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".tsv", ".tab":
		return FormatTSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatXLSX
	}
}

// Header returns the fixed column names of the output table.
func Header() []string {
	return append([]string(nil), types.Columns...)
}

// Write creates or truncates the file at path and writes the header row
// followed by one row per entry of rows, in order. Errors are returned
// as-is to the caller; a partially written file is not cleaned up.
func Write(path string, rows []types.MergedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	// SQLite opens the file itself; the empty file left by os.Create is a
	// valid new database.
	if FormatFromPath(path) == FormatSQLite {
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", path, err)
		}
		if err := writeSQLite(path, rows); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}

	writeErr := writeFormat(f, FormatFromPath(path), rows)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", path, closeErr)
	}
	return nil
}

func writeFormat(f *os.File, format Format, rows []types.MergedRow) error {
	switch format {
	case FormatCSV:
		return writeDelimited(f, rows, ',')
	case FormatTSV:
		return writeDelimited(f, rows, '\t')
	case FormatJSON:
		return writeJSON(f, rows)
	case FormatYAML:
		return writeYAML(f, rows)
	default:
		return writeXLSX(f, rows)
	}
}
