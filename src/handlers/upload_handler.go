// backend/src/handlers/upload_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/username/viesgen/backend/src/config"
	"github.com/username/viesgen/backend/src/logger"
	"github.com/username/viesgen/backend/src/models"
	"github.com/username/viesgen/backend/src/processors"
	"github.com/username/viesgen/backend/src/security/validation"
	"github.com/username/viesgen/backend/src/services"
	"github.com/username/viesgen/backend/src/utils"
)

var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
	".txt":  true,
}

// UploadResponse pairs the generated session id with the processing result.
type UploadResponse struct {
	SessionID string                `json:"session_id"`
	Result    *models.ProcessResult `json:"result"`
}

type UploadHandler struct {
	uploadService services.UploadService
}

func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: service,
	}
}

func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("failed to read upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "failed to retrieve file from request; ensure the 'file' field is used", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("file too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	extension := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[extension] {
		ctxLogger.Warn("Disallowed file extension", "filename", fileHeader.Filename)
		utils.SendJSONError(w, fmt.Sprintf("invalid file type '%s'; only .xlsx, .xls and .csv files are allowed", extension), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateClientContentType(fileHeader.Header.Get("Content-Type")); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateFileContent(file, extension); err != nil {
		ctxLogger.Warn("File content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctxLogger.Info("Processing upload request", "filename", fileHeader.Filename, "size", fileHeader.Size)

	sessionID, result, err := h.uploadService.ProcessUpload(file, fileHeader.Filename)
	if err != nil {
		var missingCols *processors.MissingColumnsError
		switch {
		case errors.As(err, &missingCols):
			utils.SendJSONError(w, missingCols.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, services.ErrParsingFailed):
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			ctxLogger.Error("Upload processing failed", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "error processing uploaded file", http.StatusInternalServerError)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, UploadResponse{SessionID: sessionID, Result: result})
}
