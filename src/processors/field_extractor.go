// backend/src/processors/field_extractor.go
package processors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/viesgen/backend/src/models"
)

// vatPrefixPattern matches a combined VAT identifier: a two-letter country
// prefix followed by the national number.
var vatPrefixPattern = regexp.MustCompile(`^([A-Z]{2})([A-Z0-9]+)$`)

// servicesTokens and goodsTokens classify free-text transaction type values.
// Unmatched text leaves the default (goods).
var (
	servicesTokens = tokenSet("1", "yes", "y", "true", "s", "service", "services", "other services", "other service")
	goodsTokens    = tokenSet("0", "no", "n", "false", "l", "goods", "good", "supply", "supplies")
	truthyTokens   = tokenSet("1", "yes", "y", "true", "x")
)

func tokenSet(tokens ...string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// SkipRowError marks a row that could not be extracted and is skipped with a
// warning rather than aborting the run.
type SkipRowError struct {
	LineNumber string
	Reason     string
}

func (e *SkipRowError) Error() string {
	return fmt.Sprintf("line %s skipped: %s", e.LineNumber, e.Reason)
}

// FieldExtractor parses the mapped cells of a single row into a canonical
// transaction.
type FieldExtractor struct{}

func NewFieldExtractor() *FieldExtractor { return &FieldExtractor{} }

// Extract builds a Transaction from one sheet row. position is the 1-based
// row position, used as the line number fallback. A *SkipRowError is
// returned when the amount cell cannot be parsed under any supported
// convention.
func (e *FieldExtractor) Extract(sheet *models.Sheet, row []string, cols ColumnMap, position int) (models.Transaction, error) {
	tx := models.Transaction{
		LineNumber:      strconv.Itoa(position),
		TransactionType: models.TypeGoods,
	}

	if raw := strings.TrimSpace(sheet.Cell(row, cols.Index(FieldLine))); raw != "" {
		tx.LineNumber = raw
	}
	tx.Customer = strings.TrimSpace(sheet.Cell(row, cols.Index(FieldCustomer)))

	countryCode, vatNumber := ExtractCountryCode(sheet.Cell(row, cols.Index(FieldVATNumber)))
	tx.VATNumber = vatNumber
	tx.CountryCode = countryCode
	// The dedicated column never overrides a prefix extracted from the VAT
	// field itself.
	if tx.CountryCode == "" {
		tx.CountryCode = strings.ToUpper(strings.TrimSpace(sheet.Cell(row, cols.Index(FieldCountryCode))))
	}

	amount, err := ParseAmount(sheet.Cell(row, cols.Index(FieldAmount)))
	if err != nil {
		return models.Transaction{}, &SkipRowError{LineNumber: tx.LineNumber, Reason: err.Error()}
	}
	tx.Amount = amount.Round(2)

	if raw := sheet.Cell(row, cols.Index(FieldTransactionType)); raw != "" {
		tx.TransactionType = ClassifyTransactionType(raw)
	}
	if raw := sheet.Cell(row, cols.Index(FieldTriangular)); raw != "" {
		tx.Triangular = truthyTokens[strings.ToLower(strings.TrimSpace(raw))]
	}

	return tx, nil
}

// ExtractCountryCode splits a combined VAT identifier into its two-letter
// country prefix and the remaining number. Values without a recognizable
// prefix are returned whole as the VAT number with an empty country code.
func ExtractCountryCode(rawVAT string) (countryCode, vatNumber string) {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(rawVAT), " ", ""))
	if cleaned == "" {
		return "", ""
	}
	if match := vatPrefixPattern.FindStringSubmatch(cleaned); match != nil {
		return match[1], match[2]
	}
	return "", cleaned
}

// ParseAmount parses a spreadsheet amount cell. Blank cells are zero.
// Values using the European decimal comma are retried with the comma as the
// decimal separator; values carrying both separators treat the last one as
// the decimal point and drop the other as a thousands separator.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.Trim(strings.TrimSpace(raw), "\"")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return decimal.Zero, nil
	}

	if amount, err := decimal.NewFromString(cleaned); err == nil {
		return amount, nil
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")
	retry := cleaned
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		retry = strings.ReplaceAll(retry, ".", "")
		retry = strings.Replace(retry, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		retry = strings.ReplaceAll(retry, ",", "")
	default:
		retry = strings.ReplaceAll(retry, ",", ".")
	}
	if amount, err := decimal.NewFromString(retry); err == nil {
		return amount, nil
	}
	return decimal.Zero, fmt.Errorf("unparsable amount %q", raw)
}

// ClassifyTransactionType maps a free-text type cell onto the L/S code.
func ClassifyTransactionType(raw string) models.TransactionType {
	text := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case servicesTokens[text]:
		return models.TypeServices
	case goodsTokens[text]:
		return models.TypeGoods
	default:
		return models.TypeGoods
	}
}
