package moneyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", "0"},
		{"plain dot decimal", "123.45", "123.45"},
		{"plain comma decimal", "123,45", "123.45"},
		{"european thousands", "1.234,56", "1234.56"},
		{"anglo thousands", "1,234.56", "1234.56"},
		{"negative european", "-1.234,56", "-1234.56"},
		{"currency symbol", "R$ 1.234,56", "1234.56"},
		{"integer", "1000", "1000"},
		{"lone comma as thousands", "1,234", "1234"},
		{"large european", "1.234.567,89", "1234567.89"},
		{"large anglo", "1,234,567.89", "1234567.89"},
		{"whitespace padded", "  99,90  ", "99.9"},
		{"garbage defaults to zero", "n/d", "0"},
		{"double separator defaults to zero", "12..34", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := decimal.RequireFromString(tt.expected)
			got := ParseAmount(tt.input)
			assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
		})
	}
}

func TestParseAmount_EquivalentLocales(t *testing.T) {
	// The same logical amount in both locale layouts must decode identically;
	// the reimport fingerprint depends on it.
	european := ParseAmount("1.234,56")
	anglo := ParseAmount("1,234.56")
	assert.Equal(t, european.StringFixed(2), anglo.StringFixed(2))
	assert.Equal(t, "1234.56", european.StringFixed(2))
}

func TestParseFixed(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"dot decimal", "1234.56", "1234.56"},
		{"integer", "3", "3"},
		{"whitespace", " 10.5 ", "10.5"},
		{"empty", "", "0"},
		{"garbage", "abc", "0"},
		// The fixed path never applies the statement heuristic.
		{"comma means unparsable", "1,5", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := decimal.RequireFromString(tt.expected)
			got := ParseFixed(tt.input)
			assert.True(t, expected.Equal(got), "expected %s, got %s", expected, got)
		})
	}
}
