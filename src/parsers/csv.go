// backend/src/parsers/csv.go
package parsers

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/username/viesgen/backend/src/models"
)

// CSVParser reads delimited text exports. The delimiter is sniffed from the
// header line (semicolon, tab or comma).
type CSVParser struct{}

func NewCSVParser() *CSVParser { return &CSVParser{} }

func (p *CSVParser) Parse(file io.Reader) (*models.Sheet, error) {
	buffered := bufio.NewReader(file)
	headerLine, err := buffered.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("csv parser: failed to read header: %w", err)
	}

	reader := csv.NewReader(buffered)
	reader.Comma = sniffDelimiter(string(headerLine))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parser: failed to read records: %w", err)
	}

	sheet, err := newSheet(records)
	if err != nil {
		return nil, fmt.Errorf("csv parser: %w", err)
	}
	return sheet, nil
}

// sniffDelimiter picks the delimiter with the most occurrences on the first
// line, defaulting to comma.
func sniffDelimiter(sample string) rune {
	if idx := strings.IndexByte(sample, '\n'); idx >= 0 {
		sample = sample[:idx]
	}
	delimiter := ','
	best := strings.Count(sample, ",")
	if n := strings.Count(sample, ";"); n > best {
		delimiter, best = ';', n
	}
	if n := strings.Count(sample, "\t"); n > best {
		delimiter = '\t'
	}
	return delimiter
}
