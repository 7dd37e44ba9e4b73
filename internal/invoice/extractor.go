// Package invoice extracts fixed-schema invoice XML documents and archives
// them append-only, keyed by the authority-issued accession identifier.
package invoice

import (
	"bytes"
	"strings"

	"rlopes/conciliador/internal/importerror"
	"rlopes/conciliador/internal/logging"
	"rlopes/conciliador/internal/models"
	"rlopes/conciliador/internal/moneyutils"

	"gopkg.in/xmlpath.v2"
)

// Group paths at fixed schema positions. Leaf lookups are deliberately
// scoped to their immediate parent group: a tag name reused across the
// header and the line items is never misread from the wrong subtree.
var (
	documentPath  = xmlpath.MustCompile("//infNFe")
	accessionPath = xmlpath.MustCompile("@Id")

	headerPath       = xmlpath.MustCompile("ide")
	issuerPath       = xmlpath.MustCompile("emit")
	issuerAddrPath   = xmlpath.MustCompile("enderEmit")
	recipientPath    = xmlpath.MustCompile("dest")
	recipientAddr    = xmlpath.MustCompile("enderDest")
	totalsPath       = xmlpath.MustCompile("total/ICMSTot")
	lineItemPath     = xmlpath.MustCompile("det")
	lineItemProdPath = xmlpath.MustCompile("prod")
)

// leafPaths holds one compiled child-axis path per leaf tag of the schema.
var leafPaths = func() map[string]*xmlpath.Path {
	tags := []string{
		"nNF", "serie", "natOp", "tpNF", "dhEmi",
		"xNome", "CNPJ", "IE",
		"xLgr", "xBairro", "CEP", "xMun", "UF", "fone",
		"vProd", "vDesc", "vFrete", "vNF",
		"cProd", "xProd", "NCM", "CFOP", "uCom", "qCom", "vUnCom",
	}
	paths := make(map[string]*xmlpath.Path, len(tags))
	for _, tag := range tags {
		paths[tag] = xmlpath.MustCompile(tag)
	}
	return paths
}()

// Extractor walks one invoice tree per call into an immutable document.
type Extractor struct {
	logger logging.Logger
}

// NewExtractor creates an invoice extractor.
func NewExtractor(logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Extractor{logger: logger}
}

// Extract parses one invoice document. Every leaf tolerates absence with an
// empty-string default; the accession identifier on the document element is
// the single mandatory value and its absence is fatal for this document.
// The raw document text is retained for later re-display.
func (e *Extractor) Extract(name string, data []byte) (models.InvoiceDocument, error) {
	root, err := xmlpath.Parse(bytes.NewReader(data))
	if err != nil {
		return models.InvoiceDocument{}, &importerror.MalformedDocumentError{
			File:   name,
			Reason: "not well-formed XML: " + err.Error(),
		}
	}

	element, ok := firstNode(documentPath, root)
	if !ok {
		return models.InvoiceDocument{}, &importerror.MalformedDocumentError{
			File:   name,
			Reason: "document element not found",
		}
	}

	key, ok := accessionPath.String(element)
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return models.InvoiceDocument{}, &importerror.MalformedDocumentError{
			File:   name,
			Reason: "missing accession key attribute",
		}
	}

	doc := models.InvoiceDocument{
		AccessionKey: key,
		RawXML:       string(data),
	}

	if header, ok := firstNode(headerPath, element); ok {
		doc.Number = leaf(header, "nNF")
		doc.Series = leaf(header, "serie")
		doc.OperationNature = leaf(header, "natOp")
		// The raw flag is kept verbatim; anything besides 0/1 is for the
		// view layer to treat as unknown.
		doc.Direction = leaf(header, "tpNF")
		doc.IssuedAt = leaf(header, "dhEmi")
	}

	if issuer, ok := firstNode(issuerPath, element); ok {
		doc.Issuer = extractParty(issuer, issuerAddrPath)
	}
	if recipient, ok := firstNode(recipientPath, element); ok {
		doc.Recipient = extractParty(recipient, recipientAddr)
	}

	if totals, ok := firstNode(totalsPath, element); ok {
		doc.Totals = models.Totals{
			Products: moneyutils.ParseFixed(leaf(totals, "vProd")),
			Discount: moneyutils.ParseFixed(leaf(totals, "vDesc")),
			Freight:  moneyutils.ParseFixed(leaf(totals, "vFrete")),
			Invoice:  moneyutils.ParseFixed(leaf(totals, "vNF")),
		}
	}

	iter := lineItemPath.Iter(element)
	for iter.Next() {
		prod, ok := firstNode(lineItemProdPath, iter.Node())
		if !ok {
			continue
		}
		doc.Items = append(doc.Items, models.LineItem{
			Code:               leaf(prod, "cProd"),
			Description:        leaf(prod, "xProd"),
			ClassificationCode: leaf(prod, "NCM"),
			OperationCode:      leaf(prod, "CFOP"),
			Unit:               leaf(prod, "uCom"),
			Quantity:           moneyutils.ParseFixed(leaf(prod, "qCom")),
			UnitValue:          moneyutils.ParseFixed(leaf(prod, "vUnCom")),
			TotalValue:         moneyutils.ParseFixed(leaf(prod, "vProd")),
		})
	}

	e.logger.Debug("extracted invoice document",
		logging.Field{Key: "accessionKey", Value: doc.AccessionKey},
		logging.Field{Key: "items", Value: len(doc.Items)})
	return doc, nil
}

func extractParty(node *xmlpath.Node, addressPath *xmlpath.Path) models.Party {
	party := models.Party{
		LegalName:         leaf(node, "xNome"),
		TaxID:             leaf(node, "CNPJ"),
		StateRegistration: leaf(node, "IE"),
	}

	// The address sub-group is optional on the recipient side.
	if address, ok := firstNode(addressPath, node); ok {
		party.Address = leaf(address, "xLgr")
		party.Neighborhood = leaf(address, "xBairro")
		party.PostalCode = leaf(address, "CEP")
		party.Municipality = leaf(address, "xMun")
		party.StateCode = leaf(address, "UF")
		party.Phone = leaf(address, "fone")
	}
	return party
}

func firstNode(path *xmlpath.Path, context *xmlpath.Node) (*xmlpath.Node, bool) {
	iter := path.Iter(context)
	if iter.Next() {
		return iter.Node(), true
	}
	return nil, false
}

func leaf(node *xmlpath.Node, tag string) string {
	path, ok := leafPaths[tag]
	if !ok {
		return ""
	}
	value, ok := path.String(node)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
