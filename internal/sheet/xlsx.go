// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/bioannotate/pkg/types"
)

const columnWidth = 20

// writeXLSX renders rows as a workbook with one sheet, a bold frozen header
// row, and typed numeric cells.
func writeXLSX(w io.Writer, rows []types.MergedRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := Header()
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := r.Cells()
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d (%s): %w", i+1, r.Identifier, err)
		}
	}

	if err := formatSheet(f, len(header)); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func formatSheet(f *excelize.File, ncols int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	last, err := excelize.ColumnNumberToName(ncols)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", last, columnWidth); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	return f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
