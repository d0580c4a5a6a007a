// Package report builds daily branch summaries from classified transactions.
package report

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/branchreport/internal/model"
)

// Engine builds reports for a fixed configuration. It holds no mutable state
// and may be shared between goroutines.
type Engine struct {
	cfg     Config
	columns []model.Column
	basis   int // index of the sales-basis rule, -1 when disabled
}

// New validates cfg and returns an Engine.
func New(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Rules = slices.Clone(cfg.Rules)

	e := &Engine{cfg: cfg, basis: -1}
	e.columns = append(e.columns, model.Column{Key: KeyDate, Title: orDefault(cfg.Labels.Date, KeyDate)})
	for i, r := range cfg.Rules {
		e.columns = append(e.columns, model.Column{Key: r.Name, Title: orDefault(r.Title, r.Name)})
		if r.Name == cfg.SalesBasis {
			e.basis = i
		}
	}
	if e.basis >= 0 {
		e.columns = append(e.columns,
			model.Column{Key: KeySales, Title: orDefault(cfg.Labels.Sales, KeySales)},
			model.Column{Key: KeyTax, Title: orDefault(cfg.Labels.Tax, KeyTax)},
		)
	}
	return e, nil
}

// Columns returns the report columns in output order.
func (e *Engine) Columns() []model.Column {
	return slices.Clone(e.columns)
}

// Build runs the full pipeline over txns. txns is not modified.
func (e *Engine) Build(txns []model.Transaction) (*model.Report, error) {
	valid, dropped := Validate(txns)
	for _, txn := range valid {
		if txn.Withdrawal.IsNegative() || txn.Deposit.IsNegative() {
			return nil, fmt.Errorf("%w: row %d", ErrNegativeAmount, txn.Row)
		}
	}
	matched := Match(valid, e.cfg.Rules)

	buckets := make([]map[model.Date]decimal.Decimal, len(e.cfg.Rules))
	totals := make([]decimal.Decimal, len(e.cfg.Rules))
	for i, r := range e.cfg.Rules {
		buckets[i] = Aggregate(matched[i], r.Field)
		totals[i] = Sum(matched[i], r.Field)
	}

	dates := unionDates(buckets)
	rows := make([]model.ReportRow, 0, len(dates)+1)
	for _, d := range dates {
		sums := make([]decimal.Decimal, len(buckets))
		for i, b := range buckets {
			sums[i] = b[d] // zero when the rule has no rows on d
		}
		rows = append(rows, e.row(d, d.String(), false, sums))
	}
	rows = append(rows, e.row(model.Date{}, e.totalLabel(len(dates)), true, totals))

	return &model.Report{
		Columns: e.Columns(),
		Rows:    rows,
		Dropped: dropped,
	}, nil
}

// row freezes the numeric values of one line, then derives its display form.
func (e *Engine) row(d model.Date, label string, total bool, sums []decimal.Decimal) model.ReportRow {
	values := sums
	if e.basis >= 0 {
		sales, tax := Split(sums[e.basis], e.cfg.Divisor)
		values = append(values, sales, tax)
	}

	display := make([]string, len(values))
	for i, v := range values {
		display[i] = Format(v, e.cfg.Decimals)
	}

	return model.ReportRow{
		Date:    d,
		Label:   label,
		IsTotal: total,
		Values:  values,
		Display: display,
	}
}

func (e *Engine) totalLabel(days int) string {
	if e.cfg.DateCountUnit == "" {
		return fmt.Sprintf("%d", days)
	}
	return fmt.Sprintf("%d %s", days, e.cfg.DateCountUnit)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
