package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses user input such as "12.50", "$1,234.56" or "1'234.56"
// into a decimal. The sign is kept; callers decide whether it matters.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, " ", "")
	amount = strings.TrimPrefix(amount, "$")
	amount = strings.ReplaceAll(amount, "'", "")

	// A comma is a thousands separator when a dot is present, a decimal separator otherwise
	if strings.Contains(amount, ".") {
		amount = strings.ReplaceAll(amount, ",", "")
	} else {
		amount = strings.ReplaceAll(amount, ",", ".")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", amountStr, err)
	}
	return dec, nil
}

// FormatAmount renders an amount with two decimals and thousands separators, e.g. "1,234.50"
func FormatAmount(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + frac
	if amount.IsNegative() {
		return "-" + out
	}
	return out
}

// FormatCurrency renders an amount prefixed with the dollar sign, e.g. "-$50.00"
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + FormatAmount(amount.Abs())
	}
	return "$" + FormatAmount(amount)
}

// FormatPercent renders a percentage with one decimal, e.g. "85.0%"
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}
