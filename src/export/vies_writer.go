// backend/src/export/vies_writer.go
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/viesgen/backend/src/models"
)

// The declaration format is a downstream regulatory contract and must be
// reproduced bit for bit: semicolon delimiter, decimal comma with exactly
// two fraction digits, CRLF line endings, no quoting. That rules out
// encoding/csv, which quotes fields containing the delimiter.

// WriteDeclaration renders the declaration record set: one header line
// [Finanzamt, company, tax number, MM/YYYY] followed by one line per
// transaction [country code + VAT number, amount, type code].
func WriteDeclaration(w io.Writer, d *models.Declaration) error {
	month, year, err := splitPeriod(d.ReportingPeriod)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("Finanzamt;")
	b.WriteString(d.CompanyName)
	b.WriteByte(';')
	b.WriteString(d.TaxNumber)
	b.WriteByte(';')
	b.WriteString(month + "/" + year)
	b.WriteString("\r\n")

	for _, row := range d.Rows {
		b.WriteString(row.CountryCode + row.VATNumber)
		b.WriteByte(';')
		b.WriteString(FormatAmount(row.Amount))
		b.WriteByte(';')
		b.WriteString(string(row.TransactionType))
		b.WriteString("\r\n")
	}

	_, err = io.WriteString(w, b.String())
	return err
}

// DeclarationFilename derives the download filename from the reporting
// period, e.g. VIES_2023_09.csv.
func DeclarationFilename(reportingPeriod string) (string, error) {
	month, year, err := splitPeriod(reportingPeriod)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("VIES_%s_%s.csv", year, month), nil
}

// FormatAmount renders an amount with exactly two fraction digits and the
// decimal comma the German format requires.
func FormatAmount(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1)
}

func splitPeriod(period string) (month, year string, err error) {
	parts := strings.SplitN(period, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return "", "", fmt.Errorf("invalid reporting period %q, expected YYYY-MM", period)
	}
	return parts[1], parts[0], nil
}
