// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bioannotate/pkg/types"
)

// TableName is the table holding the rows in SQLite output.
const TableName = "annotations"

// numericColumns are stored as INTEGER; a blank cell becomes NULL.
var numericColumns = map[string]bool{
	"Sequence Length":       true,
	"Start":                 true,
	"End":                   true,
	"Strand":                true,
	"Molecular Weight (Da)": true,
}

// writeSQLite stores rows in a single table whose columns are the header
// names, plus a position column holding the input order. path must already
// exist as an empty file.
func writeSQLite(path string, rows []types.MergedRow) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	header := Header()
	if _, err := db.ExecContext(ctx, createTableSQL(header)); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(header))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		args := make([]any, 0, len(header)+1)
		args = append(args, i+1)
		for j, c := range r.Cells() {
			if numericColumns[header[j]] && c == "" {
				c = nil
			}
			args = append(args, c)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting row %d (%s): %w", i+1, r.Identifier, err)
		}
	}
	return tx.Commit()
}

func createTableSQL(header []string) string {
	cols := []string{"position INTEGER PRIMARY KEY"}
	for _, h := range header {
		typ := "TEXT"
		if numericColumns[h] {
			typ = "INTEGER"
		}
		cols = append(cols, quoteIdent(h)+" "+typ)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", TableName, strings.Join(cols, ", "))
}

func insertSQL(header []string) string {
	names := []string{"position"}
	for _, h := range header {
		names = append(names, quoteIdent(h))
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", TableName, strings.Join(names, ", "), placeholders)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
