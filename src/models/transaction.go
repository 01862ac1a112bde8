package models

import "github.com/shopspring/decimal"

// TransactionType is the goods/services code required by the declaration
// format: "L" for intra-community supplies of goods, "S" for services.
type TransactionType string

const (
	TypeGoods    TransactionType = "L"
	TypeServices TransactionType = "S"
)

// Classification labels the outcome of processing a single row. Exactly one
// classification applies per row.
type Classification string

const (
	ClassNormal     Classification = "NORMAL"
	ClassBlankVAT   Classification = "BLANK_VAT"
	ClassTotal      Classification = "TOTAL"
	ClassSuspicious Classification = "SUSPICIOUS"
	ClassInvalid    Classification = "INVALID"
)

// Transaction is the canonical per-row fact produced by field extraction and
// row classification. It is immutable once classified, except through the
// interactive correction flow which re-classifies it in place.
type Transaction struct {
	LineNumber      string          `json:"line_number"`
	Customer        string          `json:"customer"`
	CountryCode     string          `json:"country_code"`
	VATNumber       string          `json:"vat_number"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transaction_type"`
	Triangular      bool            `json:"triangular,omitempty"`
	Classification  Classification  `json:"classification"`
	SuspicionReason string          `json:"suspicion_reason,omitempty"`
}

// IsSuspicious reports whether the row failed VAT validation but is still
// carried into the aggregate.
func (t *Transaction) IsSuspicious() bool { return t.Classification == ClassSuspicious }

// Aggregatable reports whether the row contributes to the aggregated output.
// Blank-VAT, total and invalid rows never do; suspicious rows do.
func (t *Transaction) Aggregatable() bool {
	return t.Classification == ClassNormal || t.Classification == ClassSuspicious
}

// CounterpartyKey identifies a unique reportable counterparty. Using a value
// struct instead of a concatenated string avoids separator collisions with
// legitimate field content.
type CounterpartyKey struct {
	CountryCode string
	VATNumber   string
}

// Less orders keys by country code, then VAT number.
func (k CounterpartyKey) Less(other CounterpartyKey) bool {
	if k.CountryCode != other.CountryCode {
		return k.CountryCode < other.CountryCode
	}
	return k.VATNumber < other.VATNumber
}

// AggregatedTransaction is one record per unique (country code, VAT number)
// pair observed among aggregatable rows.
type AggregatedTransaction struct {
	CountryCode       string          `json:"country_code"`
	VATNumber         string          `json:"vat_number"`
	Amount            decimal.Decimal `json:"amount"`
	Customer          string          `json:"customer"`
	LineNumbers       string          `json:"line_numbers"`
	TransactionType   TransactionType `json:"transaction_type"`
	MultipleCustomers bool            `json:"multiple_customers"`
	Triangular        bool            `json:"triangular,omitempty"`
	IsSuspicious      bool            `json:"is_suspicious"`
	SuspicionReason   string          `json:"suspicion_reason,omitempty"`
}

// Key returns the aggregation key of the record.
func (a *AggregatedTransaction) Key() CounterpartyKey {
	return CounterpartyKey{CountryCode: a.CountryCode, VATNumber: a.VATNumber}
}
