package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapResolvesSynonymHeaders(t *testing.T) {
	mapper := NewColumnMapper()

	mapping, err := mapper.Map([]string{"Line No", "Customer Name", "Country", "Customer's VAT Number", "Value of Supplies EUR", "Other Services"})
	require.NoError(t, err)

	assert.Equal(t, 0, mapping.Index(FieldLine))
	assert.Equal(t, 1, mapping.Index(FieldCustomer))
	assert.Equal(t, 2, mapping.Index(FieldCountryCode))
	assert.Equal(t, 3, mapping.Index(FieldVATNumber))
	assert.Equal(t, 4, mapping.Index(FieldAmount))
	assert.Equal(t, 5, mapping.Index(FieldTransactionType))
	assert.Equal(t, -1, mapping.Index(FieldTriangular))
}

func TestMapIsCaseInsensitiveExact(t *testing.T) {
	mapper := NewColumnMapper()

	mapping, err := mapper.Map([]string{"  VAT NUMBER  ", "AMOUNT"})
	require.NoError(t, err)

	assert.Equal(t, 0, mapping.Index(FieldVATNumber))
	assert.Equal(t, 1, mapping.Index(FieldAmount))
}

func TestMapEachColumnClaimedOnce(t *testing.T) {
	mapper := NewColumnMapper()

	// "company" is a customer synonym; the leftmost match wins and the
	// second candidate stays unclaimed rather than double-mapping.
	mapping, err := mapper.Map([]string{"company", "client", "vat", "amount"})
	require.NoError(t, err)

	assert.Equal(t, 0, mapping.Index(FieldCustomer))
	assert.Equal(t, 2, mapping.Index(FieldVATNumber))
	assert.Equal(t, 3, mapping.Index(FieldAmount))
}

func TestMapPositionalFallback(t *testing.T) {
	mapper := NewColumnMapper()

	mapping, err := mapper.Map([]string{"A", "B", "C", "D", "E", "F"})
	require.NoError(t, err)

	assert.Equal(t, 0, mapping.Index(FieldLine))
	assert.Equal(t, 1, mapping.Index(FieldCustomer))
	assert.Equal(t, 2, mapping.Index(FieldCountryCode))
	assert.Equal(t, 3, mapping.Index(FieldVATNumber))
	assert.Equal(t, 4, mapping.Index(FieldAmount))
	assert.Equal(t, 5, mapping.Index(FieldTransactionType))
}

func TestMapPositionalFallbackKeepsNamedMatches(t *testing.T) {
	mapper := NewColumnMapper()

	// "vat" resolves by name at index 2; the fallback fills the rest
	// without reassigning the claimed column.
	mapping, err := mapper.Map([]string{"A", "B", "vat", "D", "E", "F"})
	require.NoError(t, err)

	assert.Equal(t, 2, mapping.Index(FieldVATNumber))
	assert.Equal(t, 0, mapping.Index(FieldLine))
	assert.Equal(t, 1, mapping.Index(FieldCustomer))
	assert.Equal(t, 4, mapping.Index(FieldAmount))
}

func TestMapMissingRequiredColumns(t *testing.T) {
	mapper := NewColumnMapper()

	testCases := []struct {
		name        string
		headers     []string
		wantMissing []string
	}{
		{"too few columns for fallback", []string{"foo", "bar", "baz"}, []string{"vat_number", "amount"}},
		{"amount only missing", []string{"vat number", "something"}, []string{"amount"}},
		{"empty header row", []string{}, []string{"vat_number", "amount"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mapper.Map(tc.headers)
			require.Error(t, err)

			var missingErr *MissingColumnsError
			require.ErrorAs(t, err, &missingErr)
			assert.Equal(t, tc.wantMissing, missingErr.Missing)
		})
	}
}
