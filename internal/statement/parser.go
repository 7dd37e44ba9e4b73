// Package statement parses delimited bank statement exports into canonical
// records and merges reimports against the persisted store.
package statement

import (
	"strings"
	"unicode/utf8"

	"rlopes/conciliador/internal/dateutils"
	"rlopes/conciliador/internal/delimited"
	"rlopes/conciliador/internal/importerror"
	"rlopes/conciliador/internal/logging"
	"rlopes/conciliador/internal/models"
	"rlopes/conciliador/internal/moneyutils"

	"golang.org/x/text/encoding/charmap"
)

// Column positions within the required canonical column list.
const (
	columnDate = iota
	columnLabel
	columnDescription
	columnAmount
	columnCount
)

// DefaultColumns are the canonical header names of a Brazilian bank extrato
// export: date, statement label, description, amount.
var DefaultColumns = []string{"Data", "Lançamento", "Descrição", "Valor"}

// Parser turns raw statement bytes into canonical records.
type Parser struct {
	columns []string
	logger  logging.Logger
}

// NewParser creates a statement parser requiring the given canonical columns
// (date, label, description, amount — in that order). Nil or short column
// lists fall back to DefaultColumns.
func NewParser(columns []string, logger logging.Logger) *Parser {
	if len(columns) != columnCount {
		columns = DefaultColumns
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Parser{columns: columns, logger: logger}
}

// Parse tokenizes and decodes one whole statement file. The delimiter is
// inferred from the first non-empty line; the header row is resolved against
// the canonical columns before any row is extracted.
func (p *Parser) Parse(data []byte) ([]models.CanonicalRecord, error) {
	text := decodeCharset(data)
	lines := delimited.Lines(text)
	if len(lines) == 0 {
		// No header at all: every required column is absent.
		return nil, missingAll(p.columns)
	}

	delimiter := delimited.DetectDelimiter(lines[0])
	headers := delimited.SplitFields(lines[0], delimiter)

	mapping, err := delimited.ResolveHeader(headers, p.columns)
	if err != nil {
		return nil, err
	}

	records := make([]models.CanonicalRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := delimited.SplitFields(line, delimiter)

		record := models.CanonicalRecord{
			Date:        dateutils.Normalize(fieldAt(fields, mapping[p.columns[columnDate]])),
			Label:       fieldAt(fields, mapping[p.columns[columnLabel]]),
			Description: fieldAt(fields, mapping[p.columns[columnDescription]]),
			Amount:      moneyutils.ParseAmount(fieldAt(fields, mapping[p.columns[columnAmount]])),
		}
		record.Identify()
		records = append(records, record)
	}

	p.logger.Debug("parsed statement file",
		logging.Field{Key: "rows", Value: len(records)})
	return records, nil
}

func fieldAt(fields []string, index int) string {
	if index < len(fields) {
		return strings.TrimSpace(fields[index])
	}
	return ""
}

func missingAll(columns []string) error {
	missing := make([]string, len(columns))
	copy(missing, columns)
	return &importerror.MissingColumnsError{Columns: missing}
}

// decodeCharset interprets the raw bytes as UTF-8 when they already are, and
// as the legacy Windows-1252 export codepage otherwise.
func decodeCharset(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
