// backend/src/parsers/xlsx.go
package parsers

import (
	"fmt"
	"io"

	"github.com/username/viesgen/backend/src/models"
	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first worksheet of an XLSX workbook.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser { return &XLSXParser{} }

func (p *XLSXParser) Parse(file io.Reader) (*models.Sheet, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx parser: workbook has no worksheets")
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: failed to read worksheet %q: %w", sheets[0], err)
	}

	sheet, err := newSheet(records)
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: %w", err)
	}
	return sheet, nil
}
