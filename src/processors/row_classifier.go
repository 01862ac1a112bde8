// backend/src/processors/row_classifier.go
package processors

import (
	"strings"

	"github.com/username/viesgen/backend/src/models"
)

// RowClassifier routes each extracted transaction into exactly one bucket:
// total line, blank VAT, suspicious, invalid or normal.
type RowClassifier struct {
	validator *VATValidator
}

func NewRowClassifier(validator *VATValidator) *RowClassifier {
	return &RowClassifier{validator: validator}
}

// Classify sets the transaction's classification in precedence order:
//
//  1. total/summary line (the word "total" in the line or customer field);
//     excluded from everything downstream,
//  2. blank VAT; tracked separately, never aggregated,
//  3. missing country code; excluded with a reason,
//  4. VAT validation failure; tracked separately but still aggregated,
//  5. zero amount; excluded with a reason,
//  6. normal.
//
// The TOTAL heuristic is known to false-positive on customer names that
// legitimately contain "total"; such rows surface in the review UI rather
// than silently disappearing from a bucket the reviewer checks.
//
// A row with no country code is routed to the invalid bucket instead of the
// suspicious one: the validator would only report the country as missing,
// and a keyless row must never reach the aggregate.
func (c *RowClassifier) Classify(tx *models.Transaction) {
	if isTotalMarker(tx.LineNumber) || isTotalMarker(tx.Customer) {
		tx.Classification = models.ClassTotal
		tx.SuspicionReason = ""
		return
	}

	if tx.VATNumber == "" {
		tx.Classification = models.ClassBlankVAT
		tx.SuspicionReason = ""
		return
	}

	if tx.CountryCode == "" {
		tx.Classification = models.ClassInvalid
		tx.SuspicionReason = "missing country code"
		return
	}
	if valid, reason := c.validator.Validate(tx.CountryCode, tx.VATNumber); !valid {
		tx.Classification = models.ClassSuspicious
		tx.SuspicionReason = reason
		return
	}

	if tx.Amount.IsZero() {
		tx.Classification = models.ClassInvalid
		tx.SuspicionReason = "zero amount"
		return
	}

	tx.Classification = models.ClassNormal
	tx.SuspicionReason = ""
}

func isTotalMarker(value string) bool {
	return strings.Contains(strings.ToLower(value), "total")
}
