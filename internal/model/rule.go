package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountField selects which amount column a rule sums.
type AmountField string

const (
	FieldWithdrawal AmountField = "withdrawal"
	FieldDeposit    AmountField = "deposit"
)

// ParseAmountField validates s as an AmountField.
func ParseAmountField(s string) (AmountField, error) {
	switch f := AmountField(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldWithdrawal, FieldDeposit:
		return f, nil
	}
	return "", fmt.Errorf("unknown amount field %q", s)
}

// Of returns the selected amount of txn.
func (f AmountField) Of(txn Transaction) decimal.Decimal {
	if f == FieldDeposit {
		return txn.Deposit
	}
	return txn.Withdrawal
}

// Rule classifies transactions by a keyword in their description.
type Rule struct {
	Name    string      // stable key, e.g. "card_to_card"
	Title   string      // column title in the report
	Keyword string      // plain substring, compared byte for byte
	Field   AmountField // column summed for matching rows
}

// Matches reports whether txn's description contains the rule keyword.
// An absent description never matches.
func (r Rule) Matches(txn Transaction) bool {
	if txn.Description == nil || r.Keyword == "" {
		return false
	}
	return strings.Contains(*txn.Description, r.Keyword)
}
