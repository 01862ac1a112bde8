package models

import "github.com/shopspring/decimal"

// DeclarationRow is one reportable line of the VIES declaration file.
type DeclarationRow struct {
	CountryCode     string          `json:"country_code"`
	VATNumber       string          `json:"vat_number"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transaction_type"`
}

// Declaration is the output unit handed to the file emitter: company
// identification, the reporting period in YYYY-MM form, and the ordered
// record set. It is constructed fresh per generation request.
type Declaration struct {
	CompanyName     string           `json:"company_name"`
	TaxNumber       string           `json:"tax_number"`
	ReportingPeriod string           `json:"reporting_period"`
	Rows            []DeclarationRow `json:"rows"`
}

// NewDeclaration builds a declaration from the aggregated record set,
// preserving the caller's ordering.
func NewDeclaration(companyName, taxNumber, reportingPeriod string, aggregated []AggregatedTransaction) *Declaration {
	rows := make([]DeclarationRow, 0, len(aggregated))
	for _, agg := range aggregated {
		rows = append(rows, DeclarationRow{
			CountryCode:     agg.CountryCode,
			VATNumber:       agg.VATNumber,
			Amount:          agg.Amount,
			TransactionType: agg.TransactionType,
		})
	}
	return &Declaration{
		CompanyName:     companyName,
		TaxNumber:       taxNumber,
		ReportingPeriod: reportingPeriod,
		Rows:            rows,
	}
}
