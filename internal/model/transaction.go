package model

import (
	"github.com/shopspring/decimal"
)

// Transaction is one row of a branch transaction export.
type Transaction struct {
	Row            int  // 1-based row in the source table
	Date           Date // zero when the source cell was blank or unparseable
	Time           string
	BranchCode     string
	BranchName     string
	DocumentNumber string
	ReceiptNumber  string
	CheckNumber    string
	Description    *string // nil when the cell was blank
	Withdrawal     decimal.Decimal
	Deposit        decimal.Decimal
	Balance        decimal.Decimal
	Notes          string
}

// DescriptionText returns the description, or "" when absent.
func (t Transaction) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}
