package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/viesgen/backend/src/models"
)

func aggTx(line, customer, country, vat string, amount float64, txType models.TransactionType, class models.Classification) models.Transaction {
	return models.Transaction{
		LineNumber:      line,
		Customer:        customer,
		CountryCode:     country,
		VATNumber:       vat,
		Amount:          decimal.NewFromFloat(amount),
		TransactionType: txType,
		Classification:  class,
	}
}

func TestAggregatorMergesByCounterparty(t *testing.T) {
	aggregator := NewAggregator()
	aggregator.Add(aggTx("1", "Acme", "FR", "12345678901", 1000, models.TypeGoods, models.ClassNormal))
	aggregator.Add(aggTx("2", "Acme", "FR", "12345678901", 500, models.TypeServices, models.ClassNormal))
	aggregator.Add(aggTx("3", "Beta", "DE", "811907980", 99.95, models.TypeGoods, models.ClassNormal))

	records := aggregator.Result()
	require.Len(t, records, 2)

	// Sorted by country code, then VAT number.
	assert.Equal(t, "DE", records[0].CountryCode)
	assert.Equal(t, "FR", records[1].CountryCode)

	fr := records[1]
	assert.True(t, fr.Amount.Equal(decimal.NewFromInt(1500)), "got %s", fr.Amount)
	assert.Equal(t, models.TypeServices, fr.TransactionType)
	assert.Equal(t, "Acme", fr.Customer)
	assert.Equal(t, "1, 2", fr.LineNumbers)
	assert.False(t, fr.MultipleCustomers)
}

func TestAggregatorServicesIsSticky(t *testing.T) {
	aggregator := NewAggregator()
	aggregator.Add(aggTx("1", "Acme", "FR", "12345678901", 100, models.TypeServices, models.ClassNormal))
	aggregator.Add(aggTx("2", "Acme", "FR", "12345678901", 100, models.TypeGoods, models.ClassNormal))

	records := aggregator.Result()
	require.Len(t, records, 1)
	assert.Equal(t, models.TypeServices, records[0].TransactionType)
}

func TestAggregatorMultipleCustomers(t *testing.T) {
	aggregator := NewAggregator()
	aggregator.Add(aggTx("1", "Acme", "FR", "12345678901", 100, models.TypeGoods, models.ClassNormal))
	aggregator.Add(aggTx("2", "Beta", "FR", "12345678901", 100, models.TypeGoods, models.ClassNormal))
	aggregator.Add(aggTx("3", "", "FR", "12345678901", 100, models.TypeGoods, models.ClassNormal))

	records := aggregator.Result()
	require.Len(t, records, 1)
	assert.True(t, records[0].MultipleCustomers)
	assert.Equal(t, "Acme, Beta", records[0].Customer)
}

func TestAggregatorSuspicionPropagatesFirstReason(t *testing.T) {
	first := aggTx("1", "Acme", "DE", "811110980", 100, models.TypeGoods, models.ClassSuspicious)
	first.SuspicionReason = "digit '1' repeated 4 times in a row"
	second := aggTx("2", "Acme", "DE", "811110980", 100, models.TypeGoods, models.ClassSuspicious)
	second.SuspicionReason = "another reason"

	aggregator := NewAggregator()
	aggregator.Add(first)
	aggregator.Add(aggTx("3", "Acme", "DE", "811110980", 100, models.TypeGoods, models.ClassNormal))
	aggregator.Add(second)

	records := aggregator.Result()
	require.Len(t, records, 1)
	assert.True(t, records[0].IsSuspicious)
	assert.Equal(t, "digit '1' repeated 4 times in a row", records[0].SuspicionReason)
}

func TestAggregatorOrderIndependent(t *testing.T) {
	txs := []models.Transaction{
		aggTx("1", "Acme", "FR", "12345678901", 100.10, models.TypeGoods, models.ClassNormal),
		aggTx("2", "Beta", "FR", "12345678901", 200.20, models.TypeServices, models.ClassNormal),
		aggTx("3", "Gamma", "DE", "811907980", 300.30, models.TypeGoods, models.ClassNormal),
	}

	forward := NewAggregator()
	for _, tx := range txs {
		forward.Add(tx)
	}
	backward := NewAggregator()
	for i := len(txs) - 1; i >= 0; i-- {
		backward.Add(txs[i])
	}

	assert.Equal(t, forward.Result(), backward.Result())
}

func TestAggregatorKeyCollisionSafety(t *testing.T) {
	// Two distinct counterparties whose concatenated identifiers would
	// collide under naive string keys.
	aggregator := NewAggregator()
	aggregator.Add(aggTx("1", "Acme", "FR", "12345", 100, models.TypeGoods, models.ClassNormal))
	aggregator.Add(aggTx("2", "Beta", "FR", "1234", 100, models.TypeGoods, models.ClassNormal))

	records := aggregator.Result()
	assert.Len(t, records, 2)
}
