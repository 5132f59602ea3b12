// Package currencyutils provides amount normalization for locale-formatted
// statement values. Brazilian statements mix comma and dot as decimal and
// thousands separators; the heuristic here disambiguates them.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Sign forces the sign of a normalized amount. Used when a statement carries
// separate debit and credit columns without explicit signs.
type Sign int

const (
	SignAsParsed Sign = iota
	SignPositive
	SignNegative
)

var currencyNoise = regexp.MustCompile(`[R$€£¥\s]|BRL|USD|EUR`)

// NormalizeAmount parses a locale-formatted amount string into a decimal.
// It accepts both "1.234,56" (Brazilian) and "1,234.56" (US) conventions:
// thousands separators are stripped and the last separator followed by at
// most two digits is taken as the decimal point. Returns ok=false for empty
// or unparsable input, which callers must treat as "no amount", never zero.
func NormalizeAmount(amountStr string) (decimal.Decimal, bool) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// NormalizeAmountSigned is NormalizeAmount with sign forcing applied.
func NormalizeAmountSigned(amountStr string, sign Sign) (decimal.Decimal, bool) {
	amount, ok := NormalizeAmount(amountStr)
	if !ok {
		return decimal.Zero, false
	}
	return ApplySign(amount, sign), true
}

// ApplySign forces the sign of an already-parsed amount.
func ApplySign(amount decimal.Decimal, sign Sign) decimal.Decimal {
	switch sign {
	case SignPositive:
		return amount.Abs()
	case SignNegative:
		return amount.Abs().Neg()
	default:
		return amount
	}
}

// StandardizeAmount converts the supported currency string formats into a
// plain form parseable by decimal.NewFromString. Handles "R$ 1.234,56",
// "1,234.56", "1234,56", "1234.56" and apostrophe thousands separators.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyNoise.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")
	if amountStr == "" {
		return ""
	}

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// Brazilian format: 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// US format: 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		// Decimal comma (1234,56) or thousands comma (1,234): the comma is
		// the decimal point when at most two digits follow the last one.
		last := strings.LastIndex(amountStr, ",")
		if len(amountStr)-last-1 <= 2 {
			amountStr = strings.ReplaceAll(amountStr[:last], ",", "") + "." + amountStr[last+1:]
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasDot:
		last := strings.LastIndex(amountStr, ".")
		if len(amountStr)-last-1 > 2 {
			// Trailing group of three or more digits: thousands separator.
			amountStr = strings.ReplaceAll(amountStr, ".", "")
		} else if strings.Count(amountStr, ".") > 1 {
			amountStr = strings.ReplaceAll(amountStr[:last], ".", "") + amountStr[last:]
		}
	}

	return amountStr
}

// IsNegative checks if an amount is negative.
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}
