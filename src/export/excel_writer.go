// backend/src/export/excel_writer.go
package export

import (
	"fmt"
	"io"

	"github.com/username/viesgen/backend/src/models"
	"github.com/username/viesgen/backend/src/security/validation"
	"github.com/xuri/excelize/v2"
)

// WriteReviewWorkbook renders a processing result as an XLSX workbook with
// one worksheet per review bucket. Free-text cells are guarded against
// formula injection before being handed to the spreadsheet.
func WriteReviewWorkbook(w io.Writer, result *models.ProcessResult) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	if err := writeAggregatedSheet(workbook, "Aggregated", result.Aggregated); err != nil {
		return err
	}
	if err := writeTransactionSheet(workbook, "Blank VAT", result.BlankVAT); err != nil {
		return err
	}
	if err := writeTransactionSheet(workbook, "Suspicious", result.Suspicious); err != nil {
		return err
	}

	// The default sheet is replaced by the buckets above.
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("excel writer: %w", err)
	}
	if err := workbook.Write(w); err != nil {
		return fmt.Errorf("excel writer: %w", err)
	}
	return nil
}

func writeAggregatedSheet(workbook *excelize.File, name string, records []models.AggregatedTransaction) error {
	if _, err := workbook.NewSheet(name); err != nil {
		return fmt.Errorf("excel writer: %w", err)
	}
	header := []interface{}{"Country", "VAT Number", "Amount", "Type", "Customer", "Lines", "Suspicious", "Reason"}
	if err := workbook.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("excel writer: %w", err)
	}
	for i, record := range records {
		amount, _ := record.Amount.Float64()
		row := []interface{}{
			record.CountryCode,
			record.VATNumber,
			amount,
			string(record.TransactionType),
			validation.SanitizeForFormulaInjection(record.Customer),
			validation.SanitizeForFormulaInjection(record.LineNumbers),
			record.IsSuspicious,
			record.SuspicionReason,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excel writer: %w", err)
		}
		if err := workbook.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("excel writer: %w", err)
		}
	}
	return nil
}

func writeTransactionSheet(workbook *excelize.File, name string, txs []models.Transaction) error {
	if _, err := workbook.NewSheet(name); err != nil {
		return fmt.Errorf("excel writer: %w", err)
	}
	header := []interface{}{"Line", "Customer", "Country", "VAT Number", "Amount", "Type", "Reason"}
	if err := workbook.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("excel writer: %w", err)
	}
	for i, tx := range txs {
		amount, _ := tx.Amount.Float64()
		row := []interface{}{
			validation.SanitizeForFormulaInjection(tx.LineNumber),
			validation.SanitizeForFormulaInjection(tx.Customer),
			tx.CountryCode,
			tx.VATNumber,
			amount,
			string(tx.TransactionType),
			tx.SuspicionReason,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excel writer: %w", err)
		}
		if err := workbook.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("excel writer: %w", err)
		}
	}
	return nil
}
