// Package money formats rupee amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Symbol is the rupee sign
const Symbol = "₹"

// FormatINR rounds half away from zero to whole rupees and groups digits
// the Indian way: the last three digits, then pairs (₹12,34,567).
func FormatINR(d decimal.Decimal) string {
	rounded := d.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + Symbol + GroupIndian(rounded.StringFixed(0))
}

// GroupIndian inserts separators into a string of digits
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var pairs []string
	for len(head) > 2 {
		pairs = append([]string{head[len(head)-2:]}, pairs...)
		head = head[:len(head)-2]
	}
	if head != "" {
		pairs = append([]string{head}, pairs...)
	}

	return strings.Join(pairs, ",") + "," + tail
}

// Lakh formats an amount in lakhs with two decimals, e.g. "12.50 L"
func Lakh(d decimal.Decimal) string {
	return d.Div(decimal.NewFromInt(100000)).StringFixed(2) + " L"
}
