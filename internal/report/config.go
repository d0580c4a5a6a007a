package report

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/branchreport/internal/model"
)

var (
	// ErrInvalidDivisor is returned for a tax divisor that is not positive.
	ErrInvalidDivisor = errors.New("invalid tax divisor")
	// ErrInvalidDecimals is returned for a decimal policy other than 0 or 2.
	ErrInvalidDecimals = errors.New("invalid decimal policy")
	// ErrInvalidRule is returned for an unusable category rule set.
	ErrInvalidRule = errors.New("invalid category rule")
	// ErrNegativeAmount is returned by Build for a row with a negative
	// withdrawal or deposit.
	ErrNegativeAmount = errors.New("negative amount")
)

// Column keys for the derived fields.
const (
	KeyDate  = "date"
	KeySales = "sales"
	KeyTax   = "tax"
)

// DefaultDivisor extracts pre-tax sales from a total that includes 10% tax.
var DefaultDivisor = decimal.RequireFromString("1.1")

// Labels are the column titles that do not come from rules.
type Labels struct {
	Date  string
	Sales string
	Tax   string
}

// Config is the full, immutable input of an Engine besides the rows.
type Config struct {
	Rules         []model.Rule
	SalesBasis    string // rule whose per-date sum is split into sales and tax; "" disables
	Divisor       decimal.Decimal
	Decimals      int // 0 (truncate) or 2
	DateCountUnit string
	Labels        Labels
}

func (c Config) validate() error {
	if !c.Divisor.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", ErrInvalidDivisor, c.Divisor)
	}
	if c.Decimals != 0 && c.Decimals != 2 {
		return fmt.Errorf("%w: %d (want 0 or 2)", ErrInvalidDecimals, c.Decimals)
	}
	if len(c.Rules) == 0 {
		return fmt.Errorf("%w: no rules configured", ErrInvalidRule)
	}

	seen := make(map[string]bool, len(c.Rules))
	for i, r := range c.Rules {
		switch {
		case r.Name == "":
			return fmt.Errorf("%w: rule %d has no name", ErrInvalidRule, i+1)
		case r.Name == KeyDate || r.Name == KeySales || r.Name == KeyTax:
			return fmt.Errorf("%w: rule name %q is reserved", ErrInvalidRule, r.Name)
		case seen[r.Name]:
			return fmt.Errorf("%w: duplicate rule %q", ErrInvalidRule, r.Name)
		case r.Keyword == "":
			return fmt.Errorf("%w: rule %q has no keyword", ErrInvalidRule, r.Name)
		case r.Field != model.FieldWithdrawal && r.Field != model.FieldDeposit:
			return fmt.Errorf("%w: rule %q has unknown amount field %q", ErrInvalidRule, r.Name, r.Field)
		}
		seen[r.Name] = true
	}

	if c.SalesBasis != "" && !seen[c.SalesBasis] {
		return fmt.Errorf("%w: sales basis %q is not a configured rule", ErrInvalidRule, c.SalesBasis)
	}
	return nil
}
