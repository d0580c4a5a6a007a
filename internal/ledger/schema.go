// Package ledger maps raw branch export tables onto transactions.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/branchreport/internal/importer"
	"github.com/cleared-dev/branchreport/internal/model"
)

// ErrUnmappedColumns is returned when a table's shape does not match the
// branch export layout.
var ErrUnmappedColumns = errors.New("table does not match branch export layout")

// Branch exports carry 13 positional columns.
const (
	numFields     = 13
	colRow        = 0
	colDate       = 1
	colTime       = 2
	colBranchCode = 3
	colBranchName = 4
	colDocument   = 5
	colReceipt    = 6
	colCheck      = 7
	colDesc       = 8
	colWithdrawal = 9
	colDeposit    = 10
	colBalance    = 11
	colNotes      = 12
)

// Columns names the export columns in order.
var Columns = [numFields]string{
	"row", "date", "time", "branch_code", "branch_name", "document_number",
	"receipt_number", "check_number", "description", "withdrawal", "deposit",
	"balance", "notes",
}

// Skip records a source row left out of the mapped transactions.
type Skip struct {
	Row    int
	Reason string
}

// Result is the outcome of mapping a table.
type Result struct {
	Transactions []model.Transaction
	Skipped      []Skip
}

// Map assigns semantic fields to every row of table. The table must be
// exactly numFields columns wide, not counting trailing columns that are
// blank in every row; shorter rows are padded.
//
// Rows without a usable date are kept with a zero Date. Rows whose
// withdrawal or deposit cell is not a number are skipped, since summing them
// as zero would understate the report.
func Map(table *importer.Table) (*Result, error) {
	if w := dataWidth(table); w != numFields {
		return nil, fmt.Errorf("%w: expected %d columns (%s), got %d",
			ErrUnmappedColumns, numFields, strings.Join(Columns[:], ", "), w)
	}

	res := &Result{}
	for i, rec := range table.Rows {
		row := i + 1
		if len(rec) < numFields {
			padded := make([]string, numFields)
			copy(padded, rec)
			rec = padded
		}

		txn, err := mapRow(row, rec)
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{Row: row, Reason: err.Error()})
			continue
		}
		res.Transactions = append(res.Transactions, txn)
	}
	return res, nil
}

// dataWidth is the table width with trailing all-blank columns beyond the
// schema trimmed off.
func dataWidth(table *importer.Table) int {
	w := table.Width()
	for w > numFields && blankColumn(table, w-1) {
		w--
	}
	return w
}

func blankColumn(table *importer.Table, col int) bool {
	for _, rec := range table.Rows {
		if col < len(rec) && strings.TrimSpace(rec[col]) != "" {
			return false
		}
	}
	return true
}

func mapRow(row int, rec []string) (model.Transaction, error) {
	txn := model.Transaction{
		Row:            row,
		Time:           strings.TrimSpace(rec[colTime]),
		BranchCode:     strings.TrimSpace(rec[colBranchCode]),
		BranchName:     strings.TrimSpace(rec[colBranchName]),
		DocumentNumber: strings.TrimSpace(rec[colDocument]),
		ReceiptNumber:  strings.TrimSpace(rec[colReceipt]),
		CheckNumber:    strings.TrimSpace(rec[colCheck]),
		Notes:          strings.TrimSpace(rec[colNotes]),
	}

	// Header and footer rows have no date; the report drops them.
	date, err := model.ParseDate(rec[colDate])
	if err != nil {
		return txn, nil
	}
	txn.Date = date

	if d := strings.TrimSpace(rec[colDesc]); d != "" {
		txn.Description = &d
	}

	if txn.Withdrawal, err = ParseAmount(rec[colWithdrawal]); err != nil {
		return txn, fmt.Errorf("parsing withdrawal %q: %w", rec[colWithdrawal], err)
	}
	if txn.Deposit, err = ParseAmount(rec[colDeposit]); err != nil {
		return txn, fmt.Errorf("parsing deposit %q: %w", rec[colDeposit], err)
	}
	// Balance is passthrough; an unreadable balance leaves it zero.
	txn.Balance, _ = ParseAmount(rec[colBalance])
	return txn, nil
}

// ParseAmount parses a currency cell. Blank cells and "-" are zero. ASCII
// and Persian thousands separators and Persian digits are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(model.NormalizeDigits(s))
	s = strings.NewReplacer(",", "", "٬", "", "،", "", "٫", ".", " ", "").Replace(s)
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
