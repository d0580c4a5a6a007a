// Package export serializes finished reports.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/branchreport/internal/model"
)

// Writer serializes a report.
type Writer interface {
	Write(w io.Writer, rep *model.Report) error
	Format() string
}

// ForFile returns a writer for path's extension. rtl applies to workbooks.
func ForFile(path string, rtl bool) (Writer, error) {
	return ForFormat(strings.TrimPrefix(filepath.Ext(path), "."), rtl)
}

// ForFormat returns a writer by format name.
func ForFormat(format string, rtl bool) (Writer, error) {
	switch strings.ToLower(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "xlsx":
		return &XLSXWriter{RightToLeft: rtl}, nil
	}
	return nil, fmt.Errorf("no writer for %q files", format)
}
