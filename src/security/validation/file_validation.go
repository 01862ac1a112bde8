package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/username/viesgen/backend/src/logger"
)

// Magic byte signatures of the accepted container formats.
var (
	zipSignature = []byte{0x50, 0x4B, 0x03, 0x04}                         // XLSX (OOXML zip container)
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1} // legacy XLS (OLE2)
)

// AllowedClientContentTypes is a lookup of accepted client-declared MIME
// types for spreadsheet uploads.
var AllowedClientContentTypes = map[string]bool{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // .xlsx
	"application/vnd.ms-excel":                                          true, // .xls, and CSV from older Excel
	"text/csv":                                                          true,
	"application/csv":                                                   true,
	"text/plain":                                                        true,
	"application/octet-stream":                                          true, // some browsers for .xlsx; magic bytes decide
}

// ValidateClientContentType checks the Content-Type header declared by the
// client. The authoritative check is ValidateFileContent.
func ValidateClientContentType(contentType string) error {
	normalized := strings.ToLower(strings.Split(contentType, ";")[0])
	if !AllowedClientContentTypes[strings.TrimSpace(normalized)] {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for spreadsheet upload", contentType)
	}
	return nil
}

// ValidateFileContent inspects the actual file signature against the
// extension the client claims, and rejects binary garbage posing as CSV.
// The read pointer is reset so the parser can read the full file afterwards.
func ValidateFileContent(file io.ReadSeeker, extension string) error {
	if file == nil {
		return fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for content checking: %w", err)
	}
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}
	if n == 0 {
		return fmt.Errorf("file is empty")
	}
	head := buffer[:n]

	switch strings.ToLower(extension) {
	case ".xlsx":
		if !bytes.HasPrefix(head, zipSignature) {
			logger.L.Warn("File rejected: not an OOXML workbook", "extension", extension)
			return fmt.Errorf("file does not look like a valid .xlsx workbook")
		}
	case ".xls":
		if !bytes.HasPrefix(head, oleSignature) {
			logger.L.Warn("File rejected: not an OLE2 workbook", "extension", extension)
			return fmt.Errorf("file does not look like a valid .xls workbook")
		}
	case ".csv", ".txt":
		if isBinaryContent(head) {
			logger.L.Warn("File rejected: binary content in text upload")
			return fmt.Errorf("file appears to be binary, not delimited text")
		}
	default:
		return fmt.Errorf("unsupported file extension '%s'", extension)
	}
	return nil
}

// isBinaryContent checks a buffer for binary control characters that a
// text-based upload should never contain.
func isBinaryContent(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return true
	}
	if !utf8.Valid(buf) {
		return true
	}
	return false
}
