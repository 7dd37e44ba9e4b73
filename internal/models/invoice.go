package models

import "github.com/shopspring/decimal"

// Direction flag values carried on an invoice. Any other value found in the
// source document is preserved verbatim and treated as unknown by views.
const (
	DirectionInbound  = "0"
	DirectionOutbound = "1"
)

// InvoiceDocument is one immutable, fully extracted invoice. Its identity is
// the authority-issued accession key from the document root; documents are
// append-only and duplicates are rejected, never merged.
type InvoiceDocument struct {
	AccessionKey    string
	Number          string
	Series          string
	OperationNature string
	Direction       string
	IssuedAt        string

	Issuer    Party
	Recipient Party

	Totals Totals
	Items  []LineItem

	// RawXML keeps the original document text for later re-display.
	RawXML string
}

// Party identifies the issuer or recipient of an invoice.
type Party struct {
	LegalName         string `yaml:"legalName"`
	TaxID             string `yaml:"taxId"`
	StateRegistration string `yaml:"stateRegistration"`
	Address           string `yaml:"address"`
	Neighborhood      string `yaml:"neighborhood"`
	PostalCode        string `yaml:"postalCode"`
	Municipality      string `yaml:"municipality"`
	StateCode         string `yaml:"stateCode"`
	Phone             string `yaml:"phone"`
}

// Totals is the invoice totals block.
type Totals struct {
	Products decimal.Decimal
	Discount decimal.Decimal
	Freight  decimal.Decimal
	Invoice  decimal.Decimal
}

// LineItem is one product line of an invoice. Items are order-dependent and
// have no identity of their own.
type LineItem struct {
	Code               string
	Description        string
	ClassificationCode string
	OperationCode      string
	Unit               string
	Quantity           decimal.Decimal
	UnitValue          decimal.Decimal
	TotalValue         decimal.Decimal
}

// IsInbound reports whether the invoice entered the establishment.
func (d *InvoiceDocument) IsInbound() bool { return d.Direction == DirectionInbound }

// IsOutbound reports whether the invoice left the establishment.
func (d *InvoiceDocument) IsOutbound() bool { return d.Direction == DirectionOutbound }
