package export

import (
	"fmt"

	"rlopes/conciliador/internal/logging"
	"rlopes/conciliador/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Extrato"

// WriteXLSX writes the records to an Excel workbook. Amount cells are
// numeric with a currency number format applied by the writer.
func (w *Writer) WriteXLSX(records []models.CanonicalRecord, path string) error {
	book := excelize.NewFile()
	defer func() {
		if err := book.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	index, err := book.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	book.SetActiveSheet(index)
	if err := book.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("error removing default sheet: %w", err)
	}

	headers := []string{"Data", "Lançamento", "Descrição", "Valor", "Categoria", "Situação"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := book.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}

	numberFormat := "#,##0.00"
	amountStyle, err := book.NewStyle(&excelize.Style{CustomNumFmt: &numberFormat})
	if err != nil {
		return fmt.Errorf("error creating amount style: %w", err)
	}

	for i, record := range records {
		row := i + 2
		values := []interface{}{
			record.Date,
			record.Label,
			record.Description,
			record.Amount.InexactFloat64(),
			record.Category,
			record.Status,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := book.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("error writing row %d: %w", row, err)
			}
		}
		amountCell, _ := excelize.CoordinatesToCellName(4, row)
		if err := book.SetCellStyle(sheetName, amountCell, amountCell, amountStyle); err != nil {
			return fmt.Errorf("error styling row %d: %w", row, err)
		}
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	w.logger.Info("exported records to XLSX",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "count", Value: len(records)})
	return nil
}
