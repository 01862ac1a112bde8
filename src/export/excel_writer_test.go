package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/viesgen/backend/src/models"
	"github.com/xuri/excelize/v2"
)

func TestWriteReviewWorkbook(t *testing.T) {
	result := models.NewProcessResult()
	result.Aggregated = []models.AggregatedTransaction{
		{
			CountryCode:     "FR",
			VATNumber:       "40303265045",
			Amount:          decimal.RequireFromString("1500.00"),
			Customer:        "Acme SARL",
			LineNumbers:     "1, 2",
			TransactionType: models.TypeServices,
		},
	}
	result.BlankVAT = []models.Transaction{
		{LineNumber: "4", Customer: "=cmd|'/c calc'!A0", Amount: decimal.NewFromInt(250)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReviewWorkbook(&buf, result))

	workbook, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer workbook.Close()

	assert.ElementsMatch(t, []string{"Aggregated", "Blank VAT", "Suspicious"}, workbook.GetSheetList())

	vat, err := workbook.GetCellValue("Aggregated", "B2")
	require.NoError(t, err)
	assert.Equal(t, "40303265045", vat)

	// The formula-looking customer cell must come back neutralized.
	customer, err := workbook.GetCellValue("Blank VAT", "B2")
	require.NoError(t, err)
	assert.Equal(t, "'=cmd|'/c calc'!A0", customer)
}
