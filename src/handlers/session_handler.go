// backend/src/handlers/session_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/viesgen/backend/src/logger"
	"github.com/username/viesgen/backend/src/security/validation"
	"github.com/username/viesgen/backend/src/services"
	"github.com/username/viesgen/backend/src/utils"
)

// CorrectionRequest carries a reviewed (country code, VAT number) pair for a
// blank or suspicious transaction.
type CorrectionRequest struct {
	CountryCode string `json:"country_code"`
	VATNumber   string `json:"vat_number"`
}

type SessionHandler struct {
	uploadService services.UploadService
}

func NewSessionHandler(service services.UploadService) *SessionHandler {
	return &SessionHandler{
		uploadService: service,
	}
}

func (h *SessionHandler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	result, err := h.uploadService.GetResult(sessionID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *SessionHandler) HandleCorrectTransaction(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")
	lineNumber := chi.URLParam(r, "line")

	var req CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateCountryCodeInput(req.CountryCode); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateVATNumberInput(req.VATNumber); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CountryCode == "" && req.VATNumber == "" {
		utils.SendJSONError(w, "correction requires a country code or VAT number", http.StatusBadRequest)
		return
	}

	result, err := h.uploadService.CorrectTransaction(sessionID, lineNumber, req.CountryCode, req.VATNumber)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, services.ErrTransactionNotFound):
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		default:
			ctxLogger.Error("Correction failed", "sessionID", sessionID, "line", lineNumber, "error", err)
			utils.SendJSONError(w, "error applying correction", http.StatusInternalServerError)
		}
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *SessionHandler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.uploadService.RemoveSession(sessionID)
	w.WriteHeader(http.StatusNoContent)
}
