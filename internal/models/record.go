// Package models provides the data structures shared across the engine.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FingerprintSeparator joins the stable fields of a record into its identity
// key. It never changes: the fingerprint must stay byte-identical across
// reimports of equivalent files.
const FingerprintSeparator = "|"

// CanonicalRecord is the normalized representation of one statement line,
// independent of the source file format.
//
// Date, Label, Description and Amount are the stable fields; they determine
// the record's identity. Category and Status are user-set annotations carried
// across reimports by fingerprint and never part of identity.
type CanonicalRecord struct {
	Date        string
	Label       string
	Description string
	Amount      decimal.Decimal

	Category string
	Status   string

	Fingerprint string
}

// Fingerprint computes the deterministic identity key over a record's stable
// fields. The amount is formatted with exactly two fractional digits from the
// decoded decimal, never from a re-derived float, so equal logical
// transactions always hash to the same bytes.
func Fingerprint(date, label, description string, amount decimal.Decimal) string {
	parts := []string{
		strings.TrimSpace(date),
		strings.TrimSpace(label),
		strings.TrimSpace(description),
		amount.StringFixed(2),
	}
	return strings.Join(parts, FingerprintSeparator)
}

// Identify recomputes and adopts the record's fingerprint from its stable
// fields.
func (r *CanonicalRecord) Identify() {
	r.Fingerprint = Fingerprint(r.Date, r.Label, r.Description, r.Amount)
}

// Annotation is the mutable, user-set part of a record.
type Annotation struct {
	Category string
	Status   string
}

// Annotation returns the record's current annotation values.
func (r *CanonicalRecord) Annotation() Annotation {
	return Annotation{Category: r.Category, Status: r.Status}
}

// Apply attaches annotation values to the record.
func (r *CanonicalRecord) Apply(a Annotation) {
	r.Category = a.Category
	r.Status = a.Status
}
