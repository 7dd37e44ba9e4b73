package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"rlopes/conciliador/internal/logging"
	"rlopes/conciliador/internal/models"

	"github.com/gocarina/gocsv"
)

// csvRow is the CSV cell layout. Amounts are formatted here, at the writer
// boundary, with two fractional digits from the exact decimal.
type csvRow struct {
	Date        string `csv:"Data"`
	Label       string `csv:"Lançamento"`
	Description string `csv:"Descrição"`
	Amount      string `csv:"Valor"`
	Category    string `csv:"Categoria"`
	Status      string `csv:"Situação"`
}

// WriteCSV writes the records to a semicolon-delimited CSV file.
func (w *Writer) WriteCSV(records []models.CanonicalRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]csvRow, len(records))
	for i, record := range records {
		rows[i] = csvRow{
			Date:        record.Date,
			Label:       record.Label,
			Description: record.Description,
			Amount:      record.Amount.StringFixed(2),
			Category:    record.Category,
			Status:      record.Status,
		}
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = ';'
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	w.logger.Info("exported records to CSV",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "count", Value: len(records)})
	return nil
}
