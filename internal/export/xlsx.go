package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/branchreport/internal/model"
)

const sheetName = "Report"

// XLSXWriter writes a report to a single-sheet workbook.
type XLSXWriter struct {
	RightToLeft bool
}

// Format returns the writer name.
func (x *XLSXWriter) Format() string { return "xlsx" }

// Write renders the header and total rows in bold.
func (x *XLSXWriter) Write(w io.Writer, rep *model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if x.RightToLeft {
		rtl := true
		if err := f.SetSheetView(sheetName, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return fmt.Errorf("setting sheet direction: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	table := rep.Table()
	for i, line := range table {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &line); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rep.Columns), len(table))
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(rep.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	totalStart, err := excelize.CoordinatesToCellName(1, len(table))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, totalStart, last, bold); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}
	if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
