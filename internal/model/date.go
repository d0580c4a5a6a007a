package model

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Date is a calendar day as written in the source ledger. Bank exports may use
// the Solar Hijri calendar, so no conversion to time.Time is attempted.
// The zero Date means "no date".
type Date struct {
	Year  int
	Month int
	Day   int
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the date as YYYY/MM/DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Compare orders dates chronologically.
func (d Date) Compare(o Date) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

// ParseDate parses "1403/01/05", "2024-01-01" or "2024.01.01", optionally
// followed by a time part ("1403/01/05 10:22"). Persian and Arabic-Indic
// digits are accepted.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(NormalizeDigits(s))
	if i := strings.IndexAny(s, " T"); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return Date{}, fmt.Errorf("empty date")
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}

	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		n[i] = v
	}

	d := Date{Year: n[0], Month: n[1], Day: n[2]}
	if len(parts[0]) != 4 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}

// NormalizeDigits maps Persian (U+06F0..U+06F9) and Arabic-Indic
// (U+0660..U+0669) digits to ASCII.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		}
		return r
	}, s)
}
