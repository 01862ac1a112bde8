// backend/src/services/interfaces.go
package services

import (
	"errors"
	"io"
	"time"

	"github.com/username/viesgen/backend/src/models"
)

// Common service errors.
var (
	ErrParsingFailed       = errors.New("spreadsheet parsing failed")
	ErrSessionNotFound     = errors.New("session not found or expired")
	ErrTransactionNotFound = errors.New("transaction not found or not correctable")
	ErrNoTransactions      = errors.New("no reportable transactions in session")
	ErrInvalidPeriod       = errors.New("invalid reporting period")
)

// Session is the unit stored per upload: the classified transactions plus
// the derived result, kept so corrections can refresh the result without
// re-reading the source file.
type Session struct {
	ID           string               `json:"id"`
	Filename     string               `json:"filename"`
	CreatedAt    time.Time            `json:"created_at"`
	TotalRows    int                  `json:"total_rows"`
	Transactions []models.Transaction `json:"transactions"`
	Result       *models.ProcessResult
}

// UploadService is the core upload processing surface exposed to handlers.
type UploadService interface {
	// ProcessUpload parses and processes one uploaded spreadsheet and
	// stores the result under a fresh session id.
	ProcessUpload(fileReader io.Reader, filename string) (string, *models.ProcessResult, error)

	// GetResult returns the stored result for a session.
	GetResult(sessionID string) (*models.ProcessResult, error)

	// CorrectTransaction applies a reviewed (country code, VAT number)
	// pair to a previously blank or suspicious transaction and refreshes
	// the stored result in place.
	CorrectTransaction(sessionID, lineNumber, countryCode, vatNumber string) (*models.ProcessResult, error)

	// BuildDeclaration assembles the declaration for a session. Empty
	// company or tax number fall back to the configured defaults; an
	// empty period falls back to the current month.
	BuildDeclaration(sessionID, companyName, taxNumber, reportingPeriod string) (*models.Declaration, error)

	// WriteReviewWorkbook streams the session's review workbook.
	WriteReviewWorkbook(sessionID string, w io.Writer) error

	// RemoveSession evicts a session from the store.
	RemoveSession(sessionID string)
}
