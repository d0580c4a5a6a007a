package model

import (
	"github.com/shopspring/decimal"
)

// Column describes one report column.
type Column struct {
	Key   string
	Title string
}

// ReportRow is one line of a daily report. Values and Display are aligned
// with Report.Columns[1:]; the first column is the date/label.
type ReportRow struct {
	Date    Date   // zero on the total row
	Label   string // formatted date, or "<N> <unit>" on the total row
	IsTotal bool
	Values  []decimal.Decimal
	Display []string
}

// Report is a finished daily summary. The total row is always last.
type Report struct {
	Columns []Column
	Rows    []ReportRow
	Dropped int // rows discarded for lacking a date
}

// Total returns the total row.
func (r *Report) Total() ReportRow {
	return r.Rows[len(r.Rows)-1]
}

// Days returns the per-date rows, excluding the total.
func (r *Report) Days() []ReportRow {
	return r.Rows[:len(r.Rows)-1]
}

// Index returns the position of key within a row's Values, or -1.
func (r *Report) Index(key string) int {
	for i, c := range r.Columns[1:] {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Table returns the report as display strings, header first.
func (r *Report) Table() [][]string {
	out := make([][]string, 0, len(r.Rows)+1)
	header := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c.Title
	}
	out = append(out, header)
	for _, row := range r.Rows {
		line := make([]string, 0, len(row.Display)+1)
		line = append(line, row.Label)
		line = append(line, row.Display...)
		out = append(out, line)
	}
	return out
}
