package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/branchreport/internal/model"
)

// CSVWriter writes the display form of a report as CSV.
type CSVWriter struct{}

// Format returns the writer name.
func (c *CSVWriter) Format() string { return "csv" }

// Write writes the header and every row, total last.
func (c *CSVWriter) Write(w io.Writer, rep *model.Report) error {
	cw := csv.NewWriter(w)
	for i, line := range rep.Table() {
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
