// backend/src/handlers/declaration_handler.go
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/viesgen/backend/src/export"
	"github.com/username/viesgen/backend/src/logger"
	"github.com/username/viesgen/backend/src/security/validation"
	"github.com/username/viesgen/backend/src/services"
	"github.com/username/viesgen/backend/src/utils"
)

// DeclarationRequest carries the declaration header fields. All fields are
// optional, empty values fall back to configured defaults and the current
// month.
type DeclarationRequest struct {
	CompanyName     string `json:"company_name"`
	TaxNumber       string `json:"tax_number"`
	ReportingPeriod string `json:"reporting_period"`
}

type DeclarationHandler struct {
	uploadService services.UploadService
}

func NewDeclarationHandler(service services.UploadService) *DeclarationHandler {
	return &DeclarationHandler{
		uploadService: service,
	}
}

// HandleGenerateDeclaration renders the declaration file for a session and
// streams it as a download.
func (h *DeclarationHandler) HandleGenerateDeclaration(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	var req DeclarationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}
	if err := validation.ValidateStringMaxLength(req.CompanyName, 200, "company_name"); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateStringMaxLength(req.TaxNumber, 50, "tax_number"); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateReportingPeriod(req.ReportingPeriod); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	declaration, err := h.uploadService.BuildDeclaration(sessionID, req.CompanyName, req.TaxNumber, req.ReportingPeriod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, services.ErrNoTransactions):
			utils.SendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, services.ErrInvalidPeriod):
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			ctxLogger.Error("Declaration build failed", "sessionID", sessionID, "error", err)
			utils.SendJSONError(w, "error building declaration", http.StatusInternalServerError)
		}
		return
	}

	filename, err := export.DeclarationFilename(declaration.ReportingPeriod)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Render to a buffer first so a write failure cannot leave a partial
	// download behind a 200 status.
	var buf bytes.Buffer
	if err := export.WriteDeclaration(&buf, declaration); err != nil {
		ctxLogger.Error("Declaration render failed", "sessionID", sessionID, "error", err)
		utils.SendJSONError(w, "error rendering declaration", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		ctxLogger.Warn("Declaration download interrupted", "sessionID", sessionID, "error", err)
	}
}

// HandleExportWorkbook streams the review workbook with the aggregated,
// blank VAT and suspicious buckets as separate sheets.
func (h *DeclarationHandler) HandleExportWorkbook(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")

	var buf bytes.Buffer
	if err := h.uploadService.WriteReviewWorkbook(sessionID, &buf); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		ctxLogger.Error("Workbook export failed", "sessionID", sessionID, "error", err)
		utils.SendJSONError(w, "error exporting workbook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="vies_review.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		ctxLogger.Warn("Workbook download interrupted", "sessionID", sessionID, "error", err)
	}
}
