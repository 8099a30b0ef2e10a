package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_WithHeader(t *testing.T) {
	in := "provider_code,provider_name\nRGT, Cambridge University Hospitals NHS Foundation Trust \nR1H,Barts Health NHS Trust\n"

	header, rows, err := ReadCSV(strings.NewReader(in), CSVOptions{HasHeader: true, TrimSpace: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"provider_code", "provider_name"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"RGT", "Cambridge University Hospitals NHS Foundation Trust"}, rows[0])
}

func TestReadCSV_NoHeader(t *testing.T) {
	header, rows, err := ReadCSV(strings.NewReader("a,b\nc,d\n"), CSVOptions{})
	require.NoError(t, err)
	assert.Nil(t, header)
	assert.Len(t, rows, 2)
}

func TestReadCSV_DelimiterAndComments(t *testing.T) {
	in := "# registry export\nRGT|Cambridge\nR1H|Barts\n"

	_, rows, err := ReadCSV(strings.NewReader(in), CSVOptions{Delimiter: '|', Comment: '#'})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"R1H", "Barts"}, rows[1])
}

func TestReadCSV_VariableFieldCounts(t *testing.T) {
	_, rows, err := ReadCSV(strings.NewReader("a,b,c\nd,e\n"), CSVOptions{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 2)
}

func TestReadCSV_Empty(t *testing.T) {
	header, rows, err := ReadCSV(strings.NewReader(""), CSVOptions{HasHeader: true})
	require.NoError(t, err)
	assert.Nil(t, header)
	assert.Nil(t, rows)
}

func TestReadCSV_MalformedQuote(t *testing.T) {
	_, _, err := ReadCSV(strings.NewReader("a,\"b\nc,d\n"), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: read row")
}
