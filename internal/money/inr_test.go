package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0"},
		{"999", "₹999"},
		{"1000", "₹1,000"},
		{"100000", "₹1,00,000"},
		{"1234567", "₹12,34,567"},
		{"163800", "₹1,63,800"},
		{"123456789", "₹12,34,56,789"},
		{"0.5", "₹1"},
		{"2.4999", "₹2"},
		{"-1500.5", "-₹1,501"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatINR(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestLakh(t *testing.T) {
	assert.Equal(t, "12.00 L", Lakh(decimal.NewFromInt(1200000)))
	assert.Equal(t, "0.50 L", Lakh(decimal.NewFromInt(50000)))
}
