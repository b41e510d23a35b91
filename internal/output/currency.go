package output

import (
	"github.com/rgehrsitz/itrgo/internal/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats rupees with Indian digit grouping and no fraction digits
func FormatCurrency(amount decimal.Decimal) string {
	return money.FormatINR(amount)
}

// FormatPercentage formats a fraction (0.0715) as a percentage ("7.15%")
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
