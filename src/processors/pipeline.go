// backend/src/processors/pipeline.go
package processors

import (
	"errors"
	"fmt"

	"github.com/username/viesgen/backend/src/logger"
	"github.com/username/viesgen/backend/src/models"
)

// PipelineOutput carries both the caller-facing result and the full
// classified transaction list the interactive correction flow needs.
type PipelineOutput struct {
	Result       *models.ProcessResult
	Transactions []models.Transaction
	TotalRows    int
}

// Pipeline runs the full normalization and aggregation pass over a parsed
// sheet: column mapping once, then per-row extraction, classification and
// aggregation, and finally metrics. A run either completes a full pass over
// all rows or fails before processing any (schema errors); malformed
// individual rows are skipped and recorded, never retried.
type Pipeline struct {
	mapper     *ColumnMapper
	extractor  *FieldExtractor
	classifier *RowClassifier
	metrics    *MetricsBuilder
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		mapper:     NewColumnMapper(),
		extractor:  NewFieldExtractor(),
		classifier: NewRowClassifier(NewVATValidator()),
		metrics:    NewMetricsBuilder(),
	}
}

// Run processes every row of the sheet. The only error it returns is a
// *MissingColumnsError for unresolvable required columns; every other
// condition is captured as data on the result.
func (p *Pipeline) Run(sheet *models.Sheet) (*PipelineOutput, error) {
	cols, err := p.mapper.Map(sheet.Headers)
	if err != nil {
		return nil, err
	}

	out := &PipelineOutput{
		Result:    models.NewProcessResult(),
		TotalRows: len(sheet.Rows),
	}

	for i, row := range sheet.Rows {
		tx, err := p.extractor.Extract(sheet, row, cols, i+1)
		if err != nil {
			var skip *SkipRowError
			if errors.As(err, &skip) {
				logger.L.Warn("Skipping row", "line", skip.LineNumber, "reason", skip.Reason)
				out.Result.Warnings = append(out.Result.Warnings, skip.Error())
				continue
			}
			return nil, fmt.Errorf("extracting row %d: %w", i+1, err)
		}
		p.classifier.Classify(&tx)
		out.Transactions = append(out.Transactions, tx)
	}

	p.Rebuild(out)
	return out, nil
}

// Rebuild recomputes the buckets, aggregate and metrics from the classified
// transactions, keeping any accumulated warnings. The correction flow uses
// it to refresh a stored result without re-reading the source file.
func (p *Pipeline) Rebuild(out *PipelineOutput) {
	refreshed := models.NewProcessResult()
	refreshed.Warnings = out.Result.Warnings
	refreshed.Errors = out.Result.Errors

	aggregator := NewAggregator()
	for _, tx := range out.Transactions {
		switch tx.Classification {
		case models.ClassBlankVAT:
			refreshed.BlankVAT = append(refreshed.BlankVAT, tx)
		case models.ClassSuspicious:
			refreshed.Suspicious = append(refreshed.Suspicious, tx)
			aggregator.Add(tx)
		case models.ClassInvalid:
			refreshed.Invalid = append(refreshed.Invalid, models.InvalidRow{
				LineNumber: tx.LineNumber,
				Reason:     tx.SuspicionReason,
			})
		case models.ClassNormal:
			aggregator.Add(tx)
		}
	}

	refreshed.Aggregated = aggregator.Result()
	refreshed.Metrics = p.metrics.Build(out.Transactions, out.TotalRows, len(refreshed.Aggregated))
	out.Result = refreshed
}

// Reclassify re-runs classification for a single corrected transaction.
func (p *Pipeline) Reclassify(tx *models.Transaction) {
	p.classifier.Classify(tx)
}
