package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParserCommaDelimited(t *testing.T) {
	input := "Customer,VAT Number,Amount\nAcme,DE123456789,100.50\nBeta,FR40303265045,200\n"

	sheet, err := NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"customer", "vat number", "amount"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"Acme", "DE123456789", "100.50"}, sheet.Rows[0])
}

func TestCSVParserSniffsSemicolon(t *testing.T) {
	input := "Customer;VAT Number;Amount\nAcme;DE123456789;100,50\n"

	sheet, err := NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"customer", "vat number", "amount"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "100,50", sheet.Rows[0][2])
}

func TestCSVParserSniffsTab(t *testing.T) {
	input := "Customer\tVAT Number\tAmount\nAcme\tDE123456789\t100\n"

	sheet, err := NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"customer", "vat number", "amount"}, sheet.Headers)
}

func TestCSVParserSkipsEmptyRowsAndPadsShortOnes(t *testing.T) {
	input := "customer,vat number,amount\n\n,,\nAcme,DE123456789\n"

	sheet, err := NewCSVParser().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, []string{"Acme", "DE123456789", ""}, sheet.Rows[0])
}

func TestCSVParserEmptyFile(t *testing.T) {
	_, err := NewCSVParser().Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data")
}

func TestGetParserSelection(t *testing.T) {
	parser, err := GetParser("report.CSV")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, parser)

	parser, err = GetParser("report.xlsx")
	require.NoError(t, err)
	assert.IsType(t, &XLSXParser{}, parser)

	parser, err = GetParser("report.txt")
	require.NoError(t, err)
	assert.IsType(t, &CSVParser{}, parser)

	_, err = GetParser("report.xls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save the file as .xlsx")

	_, err = GetParser("report.pdf")
	assert.Error(t, err)
}
