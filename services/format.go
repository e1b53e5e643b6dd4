package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatBRL formats an amount as Brazilian Real, e.g. R$ 1.234,56.
// Amounts are rounded half away from zero to whole centavos first, so tiny
// float residues never print as "-R$ 0,00".
func FormatBRL(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	negative := d.IsNegative()

	parts := strings.SplitN(d.Abs().StringFixed(2), ".", 2)
	result := "R$ " + applyThousandsGrouping(parts[0]) + "," + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPercent renders a fraction as a pt-BR percentage: 0.07 -> "7,00%".
func FormatPercent(fraction float64) string {
	d := decimal.NewFromFloat(fraction).Mul(decimal.NewFromInt(100)).Round(2)
	return strings.Replace(d.StringFixed(2), ".", ",", 1) + "%"
}

// FormatAmount renders an amount with two decimals and a dot separator,
// the form used in delimited exports.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).StringFixed(2)
}

// FormatDateBR converts an ISO date (YYYY-MM-DD) to DD/MM/YYYY. Anything
// else is returned as given, and an empty date becomes "-".
func FormatDateBR(iso string) string {
	if iso == "" {
		return "-"
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}

// applyThousandsGrouping inserts a dot every three digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
