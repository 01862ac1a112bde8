package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/username/viesgen/backend/src/models"
)

func classify(t *testing.T, tx models.Transaction) models.Transaction {
	t.Helper()
	NewRowClassifier(NewVATValidator()).Classify(&tx)
	return tx
}

func TestClassifyNormal(t *testing.T) {
	tx := classify(t, models.Transaction{
		LineNumber:  "1",
		Customer:    "Acme GmbH",
		CountryCode: "DE",
		VATNumber:   "811907980",
		Amount:      decimal.NewFromInt(100),
	})
	assert.Equal(t, models.ClassNormal, tx.Classification)
	assert.Empty(t, tx.SuspicionReason)
}

func TestClassifyTotalLine(t *testing.T) {
	byCustomer := classify(t, models.Transaction{
		LineNumber: "99",
		Customer:   "Grand Total",
		VATNumber:  "811907980",
	})
	assert.Equal(t, models.ClassTotal, byCustomer.Classification)

	byLine := classify(t, models.Transaction{
		LineNumber: "Total",
		VATNumber:  "811907980",
	})
	assert.Equal(t, models.ClassTotal, byLine.Classification)
}

func TestClassifyBlankVAT(t *testing.T) {
	tx := classify(t, models.Transaction{
		LineNumber:  "2",
		Customer:    "Acme GmbH",
		CountryCode: "DE",
		Amount:      decimal.NewFromInt(100),
	})
	assert.Equal(t, models.ClassBlankVAT, tx.Classification)
}

func TestClassifyMissingCountryIsInvalid(t *testing.T) {
	tx := classify(t, models.Transaction{
		LineNumber: "3",
		VATNumber:  "811907980",
		Amount:     decimal.NewFromInt(100),
	})
	assert.Equal(t, models.ClassInvalid, tx.Classification)
	assert.Equal(t, "missing country code", tx.SuspicionReason)
}

func TestClassifySuspicious(t *testing.T) {
	tx := classify(t, models.Transaction{
		LineNumber:  "4",
		CountryCode: "DE",
		VATNumber:   "811110980",
		Amount:      decimal.NewFromInt(100),
	})
	assert.Equal(t, models.ClassSuspicious, tx.Classification)
	assert.Contains(t, tx.SuspicionReason, "repeated")
}

func TestClassifyZeroAmountIsInvalid(t *testing.T) {
	tx := classify(t, models.Transaction{
		LineNumber:  "5",
		CountryCode: "DE",
		VATNumber:   "811907980",
	})
	assert.Equal(t, models.ClassInvalid, tx.Classification)
	assert.Equal(t, "zero amount", tx.SuspicionReason)
}

func TestClassifyNegativeAmountStaysNormal(t *testing.T) {
	// Credit notes carry negative amounts and must remain reportable.
	tx := classify(t, models.Transaction{
		LineNumber:  "6",
		CountryCode: "DE",
		VATNumber:   "811907980",
		Amount:      decimal.NewFromInt(-250),
	})
	assert.Equal(t, models.ClassNormal, tx.Classification)
}

func TestClassifyCorrectionClearsStaleReason(t *testing.T) {
	tx := models.Transaction{
		LineNumber:      "7",
		CountryCode:     "DE",
		VATNumber:       "811110980",
		Amount:          decimal.NewFromInt(100),
		Classification:  models.ClassSuspicious,
		SuspicionReason: "digit '1' repeated 4 times in a row",
	}
	tx.VATNumber = "811907980"
	NewRowClassifier(NewVATValidator()).Classify(&tx)

	assert.Equal(t, models.ClassNormal, tx.Classification)
	assert.Empty(t, tx.SuspicionReason)
}
