package invoice

import (
	"fmt"

	"rlopes/conciliador/internal/importerror"
	"rlopes/conciliador/internal/logging"
	"rlopes/conciliador/internal/models"
	"rlopes/conciliador/internal/store"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ArchiveKey is the repository key holding the invoice archive.
const ArchiveKey = "notas"

// Serialized layout, owned by the engine. Decimals travel as exact text.
type documentLayout struct {
	AccessionKey    string           `yaml:"accessionKey"`
	Number          string           `yaml:"number"`
	Series          string           `yaml:"series"`
	OperationNature string           `yaml:"operationNature"`
	Direction       string           `yaml:"direction"`
	IssuedAt        string           `yaml:"issuedAt"`
	Issuer          models.Party     `yaml:"issuer"`
	Recipient       models.Party     `yaml:"recipient"`
	Totals          totalsLayout     `yaml:"totals"`
	Items           []lineItemLayout `yaml:"items"`
	RawXML          string           `yaml:"rawXml"`
}

type totalsLayout struct {
	Products string `yaml:"products"`
	Discount string `yaml:"discount"`
	Freight  string `yaml:"freight"`
	Invoice  string `yaml:"invoice"`
}

type lineItemLayout struct {
	Code               string `yaml:"code"`
	Description        string `yaml:"description"`
	ClassificationCode string `yaml:"classificationCode"`
	OperationCode      string `yaml:"operationCode"`
	Unit               string `yaml:"unit"`
	Quantity           string `yaml:"quantity"`
	UnitValue          string `yaml:"unitValue"`
	TotalValue         string `yaml:"totalValue"`
}

type archiveLayout struct {
	Documents []documentLayout `yaml:"documents"`
}

// Archive is the append-only invoice store. Documents are immutable once
// archived and duplicate accession keys are rejected, never merged.
type Archive struct {
	repo   store.Repository
	logger logging.Logger
}

// NewArchive wraps a repository as the invoice archive.
func NewArchive(repo store.Repository, logger logging.Logger) *Archive {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Archive{repo: repo, logger: logger}
}

// Load reads all archived documents.
func (a *Archive) Load() ([]models.InvoiceDocument, error) {
	data, ok, err := a.repo.Get(ArchiveKey)
	if err != nil {
		return nil, fmt.Errorf("error loading invoice archive: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var layout archiveLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("error decoding invoice archive: %w", err)
	}

	docs := make([]models.InvoiceDocument, len(layout.Documents))
	for i, row := range layout.Documents {
		doc, err := decodeDocument(row)
		if err != nil {
			return nil, err
		}
		docs[i] = doc
	}
	return docs, nil
}

// Add archives one document after checking its accession key against the
// existing archive. A duplicate leaves the archive untouched.
func (a *Archive) Add(doc models.InvoiceDocument) error {
	existing, err := a.Load()
	if err != nil {
		return err
	}

	for _, archived := range existing {
		if archived.AccessionKey == doc.AccessionKey {
			return &importerror.DuplicateDocumentError{AccessionKey: doc.AccessionKey}
		}
	}

	return a.persist(append(existing, doc))
}

func (a *Archive) persist(docs []models.InvoiceDocument) error {
	layout := archiveLayout{Documents: make([]documentLayout, len(docs))}
	for i, doc := range docs {
		layout.Documents[i] = encodeDocument(doc)
	}

	data, err := yaml.Marshal(layout)
	if err != nil {
		return fmt.Errorf("error encoding invoice archive: %w", err)
	}
	if err := a.repo.Put(ArchiveKey, data); err != nil {
		return fmt.Errorf("error persisting invoice archive: %w", err)
	}

	a.logger.Debug("invoice archive persisted",
		logging.Field{Key: "count", Value: len(docs)})
	return nil
}

func encodeDocument(doc models.InvoiceDocument) documentLayout {
	row := documentLayout{
		AccessionKey:    doc.AccessionKey,
		Number:          doc.Number,
		Series:          doc.Series,
		OperationNature: doc.OperationNature,
		Direction:       doc.Direction,
		IssuedAt:        doc.IssuedAt,
		Issuer:          doc.Issuer,
		Recipient:       doc.Recipient,
		Totals: totalsLayout{
			Products: doc.Totals.Products.String(),
			Discount: doc.Totals.Discount.String(),
			Freight:  doc.Totals.Freight.String(),
			Invoice:  doc.Totals.Invoice.String(),
		},
		RawXML: doc.RawXML,
	}
	for _, item := range doc.Items {
		row.Items = append(row.Items, lineItemLayout{
			Code:               item.Code,
			Description:        item.Description,
			ClassificationCode: item.ClassificationCode,
			OperationCode:      item.OperationCode,
			Unit:               item.Unit,
			Quantity:           item.Quantity.String(),
			UnitValue:          item.UnitValue.String(),
			TotalValue:         item.TotalValue.String(),
		})
	}
	return row
}

func decodeDocument(row documentLayout) (models.InvoiceDocument, error) {
	totals := models.Totals{}
	var err error
	if totals.Products, err = storedDecimal(row.Totals.Products); err != nil {
		return models.InvoiceDocument{}, err
	}
	if totals.Discount, err = storedDecimal(row.Totals.Discount); err != nil {
		return models.InvoiceDocument{}, err
	}
	if totals.Freight, err = storedDecimal(row.Totals.Freight); err != nil {
		return models.InvoiceDocument{}, err
	}
	if totals.Invoice, err = storedDecimal(row.Totals.Invoice); err != nil {
		return models.InvoiceDocument{}, err
	}

	doc := models.InvoiceDocument{
		AccessionKey:    row.AccessionKey,
		Number:          row.Number,
		Series:          row.Series,
		OperationNature: row.OperationNature,
		Direction:       row.Direction,
		IssuedAt:        row.IssuedAt,
		Issuer:          row.Issuer,
		Recipient:       row.Recipient,
		Totals:          totals,
		RawXML:          row.RawXML,
	}

	for _, item := range row.Items {
		decoded := models.LineItem{
			Code:               item.Code,
			Description:        item.Description,
			ClassificationCode: item.ClassificationCode,
			OperationCode:      item.OperationCode,
			Unit:               item.Unit,
		}
		if decoded.Quantity, err = storedDecimal(item.Quantity); err != nil {
			return models.InvoiceDocument{}, err
		}
		if decoded.UnitValue, err = storedDecimal(item.UnitValue); err != nil {
			return models.InvoiceDocument{}, err
		}
		if decoded.TotalValue, err = storedDecimal(item.TotalValue); err != nil {
			return models.InvoiceDocument{}, err
		}
		doc.Items = append(doc.Items, decoded)
	}
	return doc, nil
}

func storedDecimal(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error decoding stored value '%s': %w", value, err)
	}
	return d, nil
}
