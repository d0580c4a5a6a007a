package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser reads comma-separated exports. Rows may differ in width.
type CSVParser struct{}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads every record of r. A leading UTF-8 byte order mark is dropped.
func (p *CSVParser) Parse(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return &Table{Rows: records}, nil
}
