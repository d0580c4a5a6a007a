package report

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/branchreport/internal/model"
)

// Validate keeps the rows that carry a date and returns how many it dropped.
func Validate(txns []model.Transaction) ([]model.Transaction, int) {
	kept := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.Date.IsZero() {
			continue
		}
		kept = append(kept, txn)
	}
	return kept, len(txns) - len(kept)
}

// Match returns, for each rule, the rows it matches. Rules are evaluated
// independently, so a row can appear under several rules.
func Match(txns []model.Transaction, rules []model.Rule) [][]model.Transaction {
	matched := make([][]model.Transaction, len(rules))
	for i, r := range rules {
		for _, txn := range txns {
			if r.Matches(txn) {
				matched[i] = append(matched[i], txn)
			}
		}
	}
	return matched
}

// Aggregate sums field over txns grouped by date. Only dates present in txns
// appear in the result.
func Aggregate(txns []model.Transaction, field model.AmountField) map[model.Date]decimal.Decimal {
	sums := make(map[model.Date]decimal.Decimal)
	for _, txn := range txns {
		sums[txn.Date] = sums[txn.Date].Add(field.Of(txn))
	}
	return sums
}

// Sum totals field over txns with no grouping.
func Sum(txns []model.Transaction, field model.AmountField) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range txns {
		total = total.Add(field.Of(txn))
	}
	return total
}

// Split divides a tax-inclusive amount into sales and tax. Tax is the
// remainder, so sales+tax equals amount exactly.
func Split(amount, divisor decimal.Decimal) (sales, tax decimal.Decimal) {
	sales = amount.Div(divisor)
	return sales, amount.Sub(sales)
}

// unionDates returns the sorted set of dates across all buckets.
func unionDates(buckets []map[model.Date]decimal.Decimal) []model.Date {
	set := make(map[model.Date]struct{})
	for _, b := range buckets {
		for d := range b {
			set[d] = struct{}{}
		}
	}
	dates := make([]model.Date, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, model.Date.Compare)
	return dates
}

// Format renders d with thousands separators. decimals 0 truncates toward
// zero; decimals 2 rounds half away from zero.
func Format(d decimal.Decimal, decimals int) string {
	var s string
	if decimals == 0 {
		s = d.Truncate(0).StringFixed(0)
	} else {
		s = d.StringFixed(int32(decimals))
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
