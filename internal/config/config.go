package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/branchreport/internal/model"
	"github.com/cleared-dev/branchreport/internal/report"
)

// FileName is the conventional config file name.
const FileName = "branchreport.yaml"

// Config represents branchreport.yaml. One file describes one report variant.
type Config struct {
	Rules         []RuleConfig `yaml:"rules"`
	SalesBasis    string       `yaml:"sales_basis"`
	TaxDivisor    string       `yaml:"tax_divisor"`
	Decimals      int          `yaml:"decimals"`
	DateCountUnit string       `yaml:"date_count_unit"`
	Labels        LabelsConfig `yaml:"labels"`
	Input         InputConfig  `yaml:"input"`
	Output        OutputConfig `yaml:"output"`
}

// RuleConfig is one category rule.
type RuleConfig struct {
	Name    string `yaml:"name"`
	Title   string `yaml:"title"`
	Keyword string `yaml:"keyword"`
	Field   string `yaml:"field"` // "withdrawal" or "deposit"
}

// LabelsConfig holds titles for the non-rule columns.
type LabelsConfig struct {
	Date  string `yaml:"date"`
	Sales string `yaml:"sales"`
	Tax   string `yaml:"tax"`
}

// InputConfig controls ingestion.
type InputConfig struct {
	Sheet string `yaml:"sheet,omitempty"` // xlsx worksheet; first sheet when empty
}

// OutputConfig controls export.
type OutputConfig struct {
	Format      string `yaml:"format"` // "xlsx" or "csv"
	RightToLeft bool   `yaml:"right_to_left"`
}

// Load reads a branchreport.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the canonical branch report: card-to-card deposits, fees
// and daily withdrawals, sales and tax at a 10% inclusive rate.
func Default() *Config {
	return &Config{
		Rules: []RuleConfig{
			{Name: "card_to_card", Title: "کارت به کارت", Keyword: "انتقال از", Field: string(model.FieldDeposit)},
			{Name: "fee", Title: "کارمزد", Keyword: "کارمزد", Field: string(model.FieldWithdrawal)},
			{Name: "daily_withdrawal", Title: "برداشت روز", Keyword: "انتقال وجه", Field: string(model.FieldWithdrawal)},
		},
		SalesBasis:    "card_to_card",
		TaxDivisor:    "1.1",
		Decimals:      2,
		DateCountUnit: "روز",
		Labels: LabelsConfig{
			Date:  "تاریخ",
			Sales: "فروش",
			Tax:   "مالیات",
		},
		Output: OutputConfig{
			Format:      "xlsx",
			RightToLeft: true,
		},
	}
}

// Engine converts the config into an engine configuration. Semantic checks
// (divisor sign, decimal policy, rule shape) happen in report.New.
func (c *Config) Engine() (report.Config, error) {
	divisor := report.DefaultDivisor
	if c.TaxDivisor != "" {
		d, err := decimal.NewFromString(c.TaxDivisor)
		if err != nil {
			return report.Config{}, fmt.Errorf("%w: %q: %w", report.ErrInvalidDivisor, c.TaxDivisor, err)
		}
		divisor = d
	}

	rules := make([]model.Rule, 0, len(c.Rules))
	for i, rc := range c.Rules {
		field, err := model.ParseAmountField(rc.Field)
		if err != nil {
			return report.Config{}, fmt.Errorf("%w: rule %d (%s): %w", report.ErrInvalidRule, i+1, rc.Name, err)
		}
		rules = append(rules, model.Rule{
			Name:    rc.Name,
			Title:   rc.Title,
			Keyword: rc.Keyword,
			Field:   field,
		})
	}

	return report.Config{
		Rules:         rules,
		SalesBasis:    c.SalesBasis,
		Divisor:       divisor,
		Decimals:      c.Decimals,
		DateCountUnit: c.DateCountUnit,
		Labels: report.Labels{
			Date:  c.Labels.Date,
			Sales: c.Labels.Sales,
			Tax:   c.Labels.Tax,
		},
	}, nil
}
