// backend/src/processors/metrics_builder.go
package processors

import (
	"github.com/shopspring/decimal"
	"github.com/username/viesgen/backend/src/models"
)

// MetricsBuilder derives summary counts and totals from a classified row
// stream. It is a pure function of its inputs and is recomputed on every
// run.
type MetricsBuilder struct{}

func NewMetricsBuilder() *MetricsBuilder { return &MetricsBuilder{} }

// Build tallies the classified transactions. totalRows is the number of data
// rows seen in the sheet, including rows skipped during extraction;
// aggregatedCount is the size of the aggregated record set.
func (b *MetricsBuilder) Build(txs []models.Transaction, totalRows, aggregatedCount int) models.Metrics {
	metrics := models.Metrics{
		TotalRows:       totalRows,
		AggregatedCount: aggregatedCount,
		TotalAmount:     decimal.Zero,
	}
	for _, tx := range txs {
		switch tx.Classification {
		case models.ClassNormal:
			metrics.ValidCount++
			metrics.TotalAmount = metrics.TotalAmount.Add(tx.Amount)
		case models.ClassSuspicious:
			metrics.ValidCount++
			metrics.SuspiciousCount++
			metrics.TotalAmount = metrics.TotalAmount.Add(tx.Amount)
		case models.ClassBlankVAT:
			metrics.BlankVATCount++
		case models.ClassInvalid:
			metrics.InvalidCount++
		}
	}
	metrics.TotalAmount = metrics.TotalAmount.Round(2)
	return metrics
}
