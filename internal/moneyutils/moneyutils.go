// Package moneyutils decodes monetary strings into exact decimals.
//
// Two decode paths exist on purpose. ParseAmount handles delimited statement
// exports, where the decimal separator is ambiguous and must be inferred.
// ParseFixed handles the invoice XML schema, which is always dot-decimal.
// Both are lenient: unparsable input decodes to zero, never to an error,
// because source statements legitimately contain noise.
package moneyutils

import (
	"regexp"
	"strings"

	"rlopes/conciliador/internal/logging"

	"github.com/shopspring/decimal"
)

var log = logging.Nop()

// SetLogger sets a custom logger for decode diagnostics.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

var symbolRe = regexp.MustCompile(`[R$€£\s]`)

// ParseAmount decodes a statement amount with locale-tolerant separator
// inference: of the rightmost comma and rightmost dot, whichever appears
// later is the decimal separator and the other is a thousands separator to
// be removed. Empty or unparsable input decodes to zero.
func ParseAmount(amountStr string) decimal.Decimal {
	cleaned := symbolRe.ReplaceAllString(amountStr, "")
	if cleaned == "" {
		return decimal.Zero
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European layout: 1.234,56
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			// Anglo layout: 1,234.56
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		// A lone comma is decimal when it leaves at most two digits behind,
		// thousands otherwise (1234,56 vs 1,234).
		if len(cleaned)-lastComma-1 <= 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		log.Debug("amount did not decode, defaulting to zero",
			logging.Field{Key: "value", Value: amountStr})
		return decimal.Zero
	}
	return amount
}

// ParseFixed decodes a dot-decimal value from the invoice XML schema. Empty
// or unparsable input decodes to zero.
func ParseFixed(value string) decimal.Decimal {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		log.Debug("fixed-format value did not decode, defaulting to zero",
			logging.Field{Key: "value", Value: value})
		return decimal.Zero
	}
	return amount
}
