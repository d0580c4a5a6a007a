package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads a worksheet of an Excel workbook.
type XLSXParser struct {
	// Sheet names the worksheet to read. Empty means the first sheet.
	Sheet string
}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads all rows of the selected sheet.
//
// Text cells come back as written. Numeric cells come back as their stored
// value rather than their display text, and cells formatted as dates are
// converted from the Excel serial to YYYY-MM-DD. Every row is padded to the
// sheet's declared width, since trailing blank cells are not stored.
func (p *XLSXParser) Parse(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := p.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("no sheets found in workbook")
	}

	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	width := sheetWidth(f, sheet)
	rows := make([][]string, len(raw))
	for i, rawRow := range raw {
		row := make([]string, max(len(rawRow), width))
		for j, v := range rawRow {
			display := v
			if i < len(shown) && j < len(shown[i]) {
				display = shown[i][j]
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			row[j], err = cellText(f, sheet, cell, v, display, date1904)
			if err != nil {
				return nil, fmt.Errorf("reading cell %s: %w", cell, err)
			}
		}
		rows[i] = row
	}
	return &Table{Rows: rows}, nil
}

type numFmtKind int

const (
	fmtNumber numFmtKind = iota
	fmtDate
	fmtTime
)

// cellText picks the text a cell contributes to the table.
func cellText(f *excelize.File, sheet, cell, raw, display string, date1904 bool) (string, error) {
	if raw == display {
		return raw, nil
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return display, nil
	}
	kind, err := cellFormat(f, sheet, cell)
	if err != nil {
		return "", err
	}
	switch kind {
	case fmtDate:
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return "", err
		}
		return t.Format("2006-01-02"), nil
	case fmtTime:
		return display, nil
	default:
		return raw, nil
	}
}

func cellFormat(f *excelize.File, sheet, cell string) (numFmtKind, error) {
	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return fmtNumber, err
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		return fmtNumber, err
	}
	if style.CustomNumFmt != nil {
		return classifyFormat(*style.CustomNumFmt), nil
	}
	return builtinFormat(style.NumFmt), nil
}

// builtinFormat classifies the predefined number formats, including the
// CJK date formats in 27-36 and 50-58.
func builtinFormat(id int) numFmtKind {
	switch {
	case id >= 14 && id <= 17, id == 22, id >= 27 && id <= 36, id >= 50 && id <= 58:
		return fmtDate
	case id >= 18 && id <= 21, id >= 45 && id <= 47:
		return fmtTime
	default:
		return fmtNumber
	}
}

// classifyFormat inspects a custom format code. Quoted literals and
// bracketed sections such as colors or locales are ignored. A year or day
// token makes it a date; an hour or second token alone makes it a time.
func classifyFormat(code string) numFmtKind {
	var b strings.Builder
	quoted, bracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		default:
			b.WriteRune(r)
		}
	}
	tokens := b.String()
	switch {
	case strings.ContainsAny(tokens, "yd"):
		return fmtDate
	case strings.ContainsAny(tokens, "hs"):
		return fmtTime
	default:
		return fmtNumber
	}
}

// sheetWidth is the column count of the sheet's used range, or 0 when the
// sheet declares none.
func sheetWidth(f *excelize.File, sheet string) int {
	width := 0
	if dim, err := f.GetSheetDimension(sheet); err == nil && dim != "" {
		last := dim
		if _, end, ok := strings.Cut(dim, ":"); ok {
			last = end
		}
		if col, _, err := excelize.CellNameToCoordinates(last); err == nil {
			width = col
		}
	}
	if cols, err := f.GetCols(sheet); err == nil && len(cols) > width {
		width = len(cols)
	}
	return width
}
