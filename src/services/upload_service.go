// backend/src/services/upload_service.go
package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/username/viesgen/backend/src/config"
	"github.com/username/viesgen/backend/src/export"
	"github.com/username/viesgen/backend/src/logger"
	"github.com/username/viesgen/backend/src/models"
	"github.com/username/viesgen/backend/src/parsers"
	"github.com/username/viesgen/backend/src/processors"
	"github.com/username/viesgen/backend/src/security/validation"
	"github.com/username/viesgen/backend/src/store"
)

type uploadServiceImpl struct {
	pipeline     *processors.Pipeline
	sessionStore store.ResultStore
}

func NewUploadService(pipeline *processors.Pipeline, sessionStore store.ResultStore) UploadService {
	return &uploadServiceImpl{
		pipeline:     pipeline,
		sessionStore: sessionStore,
	}
}

func (s *uploadServiceImpl) ProcessUpload(fileReader io.Reader, filename string) (string, *models.ProcessResult, error) {
	startTime := time.Now()

	parser, err := parsers.GetParser(filename)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	sheet, err := parser.Parse(fileReader)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	out, err := s.pipeline.Run(sheet)
	if err != nil {
		// Schema errors (missing required columns) surface as-is so the
		// handler can report the missing field names.
		return "", nil, err
	}

	session := &Session{
		ID:           uuid.New().String(),
		Filename:     filename,
		CreatedAt:    time.Now(),
		TotalRows:    out.TotalRows,
		Transactions: out.Transactions,
		Result:       out.Result,
	}
	s.sessionStore.Put(session.ID, session)

	logger.L.Info("Upload processed",
		"sessionID", session.ID,
		"filename", filename,
		"rows", out.TotalRows,
		"aggregated", len(out.Result.Aggregated),
		"duration", time.Since(startTime))
	return session.ID, out.Result, nil
}

func (s *uploadServiceImpl) GetResult(sessionID string) (*models.ProcessResult, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Result, nil
}

func (s *uploadServiceImpl) CorrectTransaction(sessionID, lineNumber, countryCode, vatNumber string) (*models.ProcessResult, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	tx := findCorrectable(session.Transactions, lineNumber)
	if tx == nil {
		return nil, fmt.Errorf("%w: line %s", ErrTransactionNotFound, lineNumber)
	}

	// A combined identifier in the VAT field still splits into prefix and
	// number, exactly as during extraction.
	if strings.TrimSpace(vatNumber) != "" {
		extractedCC, extractedVAT := processors.ExtractCountryCode(vatNumber)
		tx.VATNumber = extractedVAT
		if extractedCC != "" {
			tx.CountryCode = extractedCC
		}
	}
	if countryCode != "" {
		tx.CountryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	}

	s.pipeline.Reclassify(tx)

	out := &processors.PipelineOutput{
		Result:       session.Result,
		Transactions: session.Transactions,
		TotalRows:    session.TotalRows,
	}
	s.pipeline.Rebuild(out)
	session.Result = out.Result
	s.sessionStore.Put(session.ID, session)

	logger.L.Info("Transaction corrected",
		"sessionID", sessionID,
		"line", lineNumber,
		"countryCode", tx.CountryCode,
		"classification", tx.Classification)
	return session.Result, nil
}

func (s *uploadServiceImpl) BuildDeclaration(sessionID, companyName, taxNumber, reportingPeriod string) (*models.Declaration, error) {
	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.Result.Aggregated) == 0 {
		return nil, ErrNoTransactions
	}

	if strings.TrimSpace(companyName) == "" {
		companyName = config.Cfg.DefaultCompanyName
	}
	if strings.TrimSpace(taxNumber) == "" {
		taxNumber = config.Cfg.DefaultTaxNumber
	}
	if strings.TrimSpace(reportingPeriod) == "" {
		reportingPeriod = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", reportingPeriod); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, reportingPeriod)
	}

	companyName = validation.SanitizeText(companyName)
	taxNumber = validation.SanitizeText(taxNumber)
	return models.NewDeclaration(companyName, taxNumber, reportingPeriod, session.Result.Aggregated), nil
}

func (s *uploadServiceImpl) WriteReviewWorkbook(sessionID string, w io.Writer) error {
	session, err := s.getSession(sessionID)
	if err != nil {
		return err
	}
	return export.WriteReviewWorkbook(w, session.Result)
}

func (s *uploadServiceImpl) RemoveSession(sessionID string) {
	s.sessionStore.Remove(sessionID)
}

func (s *uploadServiceImpl) getSession(sessionID string) (*Session, error) {
	value, found := s.sessionStore.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	session, ok := value.(*Session)
	if !ok {
		return nil, fmt.Errorf("unexpected session type for id %s", sessionID)
	}
	return session, nil
}

// findCorrectable locates a blank-VAT or suspicious transaction by line
// number. Other classifications are not correctable through the review flow.
func findCorrectable(txs []models.Transaction, lineNumber string) *models.Transaction {
	for i := range txs {
		tx := &txs[i]
		if tx.LineNumber != lineNumber {
			continue
		}
		if tx.Classification == models.ClassBlankVAT || tx.Classification == models.ClassSuspicious {
			return tx
		}
	}
	return nil
}
