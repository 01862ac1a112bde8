package validation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/viesgen/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	m.Run()
}

func TestValidateClientContentType(t *testing.T) {
	allowed := []string{
		"text/csv",
		"text/csv; charset=utf-8",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/octet-stream",
	}
	for _, contentType := range allowed {
		assert.NoError(t, ValidateClientContentType(contentType), contentType)
	}

	for _, contentType := range []string{"application/pdf", "text/html", ""} {
		assert.Error(t, ValidateClientContentType(contentType), contentType)
	}
}

func TestValidateFileContent(t *testing.T) {
	xlsxHead := append([]byte{0x50, 0x4B, 0x03, 0x04}, bytes.Repeat([]byte{0}, 16)...)

	testCases := []struct {
		name      string
		content   []byte
		extension string
		wantErr   bool
	}{
		{"xlsx with zip signature", xlsxHead, ".xlsx", false},
		{"xlsx without signature", []byte("plain text"), ".xlsx", true},
		{"csv text", []byte("a;b;c\n1;2;3\n"), ".csv", false},
		{"csv with null bytes", []byte{'a', 0x00, 'b'}, ".csv", true},
		{"csv invalid utf8", []byte{0xff, 0xfe, 0x41}, ".csv", true},
		{"empty file", nil, ".csv", true},
		{"unknown extension", []byte("a;b\n"), ".pdf", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFileContent(bytes.NewReader(tc.content), tc.extension)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateFileContentResetsReadPointer(t *testing.T) {
	content := []byte("a;b;c\n1;2;3\n")
	reader := bytes.NewReader(content)
	require.NoError(t, ValidateFileContent(reader, ".csv"))

	rest := make([]byte, len(content))
	n, _ := reader.Read(rest)
	assert.Equal(t, content, rest[:n])
}

func TestValidateReportingPeriod(t *testing.T) {
	assert.NoError(t, ValidateReportingPeriod(""))
	assert.NoError(t, ValidateReportingPeriod("2023-09"))
	assert.Error(t, ValidateReportingPeriod("09/2023"))
	assert.Error(t, ValidateReportingPeriod("2023-9"))
	assert.Error(t, ValidateReportingPeriod("september"))
}

func TestValidateCountryCodeInput(t *testing.T) {
	assert.NoError(t, ValidateCountryCodeInput(""))
	assert.NoError(t, ValidateCountryCodeInput("DE"))
	assert.NoError(t, ValidateCountryCodeInput("fr"))
	assert.Error(t, ValidateCountryCodeInput("DEU"))
	assert.Error(t, ValidateCountryCodeInput("D1"))
}

func TestValidateVATNumberInput(t *testing.T) {
	assert.NoError(t, ValidateVATNumberInput(""))
	assert.NoError(t, ValidateVATNumberInput("DE123456789"))
	assert.NoError(t, ValidateVATNumberInput("123 456 789"))
	assert.Error(t, ValidateVATNumberInput("123;456"))
	assert.Error(t, ValidateVATNumberInput("<script>"))
}

func TestSanitizeForFormulaInjection(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"+1234", "'+1234"},
		{"-1234", "'-1234"},
		{"@cmd", "'@cmd"},
		{"Acme GmbH", "Acme GmbH"},
		{"", ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, SanitizeForFormulaInjection(tc.in), tc.in)
	}
}

func TestStripUnprintable(t *testing.T) {
	assert.Equal(t, "Acme GmbH", StripUnprintable("Acme\x00 Gmb\x01H"))
	assert.Equal(t, "a\tb\nc", StripUnprintable("a\tb\nc"))
}
