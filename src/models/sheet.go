package models

// Sheet is the normalized form of an uploaded spreadsheet: one header row
// plus a grid of string cells. Parsers lower-case and trim the headers so
// the column mapper can match them without caring about the source format.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value at the given row/column, or "" when the row is
// shorter than the header row.
func (s *Sheet) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
