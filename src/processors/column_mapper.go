// backend/src/processors/column_mapper.go
package processors

import (
	"fmt"
	"strings"
)

// Field is a canonical spreadsheet field name.
type Field string

const (
	FieldLine            Field = "line"
	FieldCustomer        Field = "customer"
	FieldCountryCode     Field = "country_code"
	FieldVATNumber       Field = "vat_number"
	FieldAmount          Field = "amount"
	FieldTransactionType Field = "transaction_type"
	FieldTriangular      Field = "triangular"
)

// fieldOrder is significant: fields claim columns in this order, and the
// first six positions double as the positional fallback layout.
var fieldOrder = []Field{
	FieldLine,
	FieldCustomer,
	FieldCountryCode,
	FieldVATNumber,
	FieldAmount,
	FieldTransactionType,
	FieldTriangular,
}

// fieldSynonyms lists the accepted header spellings per canonical field.
// Matching is case-insensitive exact, no fuzzy or partial matching.
var fieldSynonyms = map[Field][]string{
	FieldLine:            {"line", "line no", "line number", "row", "nr", "no"},
	FieldCustomer:        {"customer", "name", "customer name", "company", "company name", "client"},
	FieldCountryCode:     {"country", "country code", "country indicator", "country_indicator"},
	FieldVATNumber:       {"vat", "vat number", "vat no", "customer's vat number", "customer vat"},
	FieldAmount:          {"amount", "value", "eur", "euro", "value of supplies", "value of supplies eur"},
	FieldTransactionType: {"type", "transaction type", "service type", "other services"},
	FieldTriangular:      {"triangular", "triangular transaction", "triangular transactions"},
}

var requiredFields = []Field{FieldVATNumber, FieldAmount}

// ColumnMap resolves canonical fields to zero-based column indexes.
type ColumnMap map[Field]int

// Index returns the column index for a field, or -1 when the field is
// unmapped.
func (m ColumnMap) Index(f Field) int {
	if idx, ok := m[f]; ok {
		return idx
	}
	return -1
}

// MissingColumnsError reports required canonical columns that could not be
// resolved, by name.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ColumnMapper resolves arbitrary spreadsheet headers to the canonical
// schema.
type ColumnMapper struct{}

func NewColumnMapper() *ColumnMapper { return &ColumnMapper{} }

// Map resolves the given header row. Each source column can be claimed by at
// most one canonical field; fields claim in fieldOrder and within a field the
// leftmost matching column wins. When the required fields are still
// unresolved and the sheet has at least six columns, the first six columns
// are assigned positionally, filling only fields not already mapped by name.
func (m *ColumnMapper) Map(headers []string) (ColumnMap, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	mapping := make(ColumnMap)
	claimed := make(map[int]bool)

	for _, field := range fieldOrder {
		for idx, header := range normalized {
			if claimed[idx] {
				continue
			}
			if matchesSynonym(field, header) {
				mapping[field] = idx
				claimed[idx] = true
				break
			}
		}
	}

	if missingRequired(mapping) && len(headers) >= 6 {
		for pos, field := range fieldOrder[:6] {
			if _, ok := mapping[field]; ok {
				continue
			}
			if claimed[pos] {
				continue
			}
			mapping[field] = pos
			claimed[pos] = true
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := mapping[field]; !ok {
			missing = append(missing, string(field))
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	return mapping, nil
}

func matchesSynonym(field Field, header string) bool {
	for _, synonym := range fieldSynonyms[field] {
		if header == synonym {
			return true
		}
	}
	return false
}

func missingRequired(mapping ColumnMap) bool {
	for _, field := range requiredFields {
		if _, ok := mapping[field]; !ok {
			return true
		}
	}
	return false
}
