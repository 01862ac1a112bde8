// backend/src/processors/aggregator.go
package processors

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/viesgen/backend/src/models"
)

// aggregateState is the mutable accumulator for one counterparty key while a
// pass is running. It is frozen into an AggregatedTransaction by Result.
type aggregateState struct {
	amount          decimal.Decimal
	customers       map[string]bool
	lineNumbers     map[string]bool
	transactionType models.TransactionType
	triangular      bool
	suspicious      bool
	suspicionReason string
}

// Aggregator folds normal and suspicious transactions into one record per
// unique (country code, VAT number) key. Blank-VAT and total rows must never
// be added.
type Aggregator struct {
	groups map[models.CounterpartyKey]*aggregateState
}

func NewAggregator() *Aggregator {
	return &Aggregator{groups: make(map[models.CounterpartyKey]*aggregateState)}
}

// Add merges one transaction into its counterparty group. Merging is
// commutative and associative: amounts sum, customer and line references
// union, services wins over goods and is never demoted, and any suspicious
// contributor marks the whole group suspicious with the first reason kept.
func (a *Aggregator) Add(tx models.Transaction) {
	key := models.CounterpartyKey{CountryCode: tx.CountryCode, VATNumber: tx.VATNumber}
	state, ok := a.groups[key]
	if !ok {
		state = &aggregateState{
			amount:          decimal.Zero,
			customers:       make(map[string]bool),
			lineNumbers:     make(map[string]bool),
			transactionType: models.TypeGoods,
		}
		a.groups[key] = state
	}

	state.amount = state.amount.Add(tx.Amount)
	if tx.Customer != "" {
		state.customers[tx.Customer] = true
	}
	if tx.LineNumber != "" {
		state.lineNumbers[tx.LineNumber] = true
	}
	if tx.TransactionType == models.TypeServices {
		state.transactionType = models.TypeServices
	}
	if tx.Triangular {
		state.triangular = true
	}
	if tx.IsSuspicious() && !state.suspicious {
		state.suspicious = true
		state.suspicionReason = tx.SuspicionReason
	}
}

// Result freezes the accumulated groups into records ordered by key.
func (a *Aggregator) Result() []models.AggregatedTransaction {
	records := make([]models.AggregatedTransaction, 0, len(a.groups))
	for key, state := range a.groups {
		records = append(records, models.AggregatedTransaction{
			CountryCode:       key.CountryCode,
			VATNumber:         key.VATNumber,
			Amount:            state.amount.Round(2),
			Customer:          joinSorted(state.customers),
			LineNumbers:       joinSorted(state.lineNumbers),
			TransactionType:   state.transactionType,
			MultipleCustomers: len(state.customers) > 1,
			Triangular:        state.triangular,
			IsSuspicious:      state.suspicious,
			SuspicionReason:   state.suspicionReason,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Key().Less(records[j].Key())
	})
	return records
}

func joinSorted(set map[string]bool) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}
