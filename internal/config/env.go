package config

import (
	"fmt"
	"strconv"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Environment variables that override file settings.
const (
	EnvPrefix        = "BRANCHREPORT_"
	EnvDecimals      = "BRANCHREPORT_DECIMALS"
	EnvTaxDivisor    = "BRANCHREPORT_TAX_DIVISOR"
	EnvDateCountUnit = "BRANCHREPORT_DATE_COUNT_UNIT"
	EnvRightToLeft   = "BRANCHREPORT_RIGHT_TO_LEFT"
	EnvOutputFormat  = "BRANCHREPORT_OUTPUT_FORMAT"
)

// ApplyEnv overlays BRANCHREPORT_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", nil), nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	if k.Exists(EnvDecimals) {
		n, err := strconv.Atoi(k.String(EnvDecimals))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvDecimals, err)
		}
		cfg.Decimals = n
	}
	if k.Exists(EnvTaxDivisor) {
		cfg.TaxDivisor = k.String(EnvTaxDivisor)
	}
	if k.Exists(EnvDateCountUnit) {
		cfg.DateCountUnit = k.String(EnvDateCountUnit)
	}
	if k.Exists(EnvRightToLeft) {
		b, err := strconv.ParseBool(k.String(EnvRightToLeft))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvRightToLeft, err)
		}
		cfg.Output.RightToLeft = b
	}
	if k.Exists(EnvOutputFormat) {
		cfg.Output.Format = k.String(EnvOutputFormat)
	}
	return nil
}
