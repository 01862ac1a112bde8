package models

import "github.com/shopspring/decimal"

// InvalidRow records a row that was excluded for missing essential data.
type InvalidRow struct {
	LineNumber string `json:"line_number"`
	Reason     string `json:"reason"`
}

// Metrics holds the derived counts and totals of a pipeline run. They are
// recomputed from the classified rows on every run, never cached
// incrementally.
type Metrics struct {
	TotalRows       int             `json:"total_rows"`
	ValidCount      int             `json:"valid_count"`
	BlankVATCount   int             `json:"blank_vat_count"`
	SuspiciousCount int             `json:"suspicious_count"`
	InvalidCount    int             `json:"invalid_count"`
	AggregatedCount int             `json:"aggregated_count"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// ProcessResult is the full output of one pipeline run over an uploaded
// spreadsheet.
type ProcessResult struct {
	Aggregated []AggregatedTransaction `json:"aggregated"`
	BlankVAT   []Transaction           `json:"blankVat"`
	Suspicious []Transaction           `json:"suspicious"`
	Invalid    []InvalidRow            `json:"invalid"`
	Errors     []string                `json:"errors"`
	Warnings   []string                `json:"warnings"`
	Metrics    Metrics                 `json:"metrics"`
}

// NewProcessResult returns a result with all slices initialized, so JSON
// responses render empty arrays instead of null.
func NewProcessResult() *ProcessResult {
	return &ProcessResult{
		Aggregated: []AggregatedTransaction{},
		BlankVAT:   []Transaction{},
		Suspicious: []Transaction{},
		Invalid:    []InvalidRow{},
		Errors:     []string{},
		Warnings:   []string{},
	}
}
