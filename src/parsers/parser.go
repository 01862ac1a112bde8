// backend/src/parsers/parser.go
package parsers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/username/viesgen/backend/src/models"
	"github.com/username/viesgen/backend/src/security/validation"
)

// Parser reads an uploaded spreadsheet into the normalized Sheet form.
type Parser interface {
	Parse(file io.Reader) (*models.Sheet, error)
}

// GetParser selects a parser by file extension.
func GetParser(filename string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return NewXLSXParser(), nil
	case ".csv", ".txt":
		return NewCSVParser(), nil
	case ".xls":
		return nil, fmt.Errorf("legacy .xls workbooks are not supported; save the file as .xlsx and retry")
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

// newSheet normalizes a raw record grid: the first non-empty row becomes the
// header row (lower-cased, trimmed), remaining rows are the data. Cells are
// stripped of unprintable characters at this boundary so the core never sees
// them.
func newSheet(records [][]string) (*models.Sheet, error) {
	start := 0
	for start < len(records) && rowIsEmpty(records[start]) {
		start++
	}
	if start >= len(records) {
		return nil, fmt.Errorf("file contains no data")
	}

	headers := make([]string, len(records[start]))
	for i, h := range records[start] {
		headers[i] = strings.ToLower(strings.TrimSpace(validation.StripUnprintable(h)))
	}

	sheet := &models.Sheet{Headers: headers}
	for _, record := range records[start+1:] {
		if rowIsEmpty(record) {
			continue
		}
		row := make([]string, len(headers))
		for i := range row {
			if i < len(record) {
				row[i] = validation.StripUnprintable(record[i])
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func rowIsEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
