package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSheet(t *testing.T) {
	body, err := WriteSheet(Sheet{
		Name:    "Ranking",
		Title:   "5S Ranking 2024-06",
		Headers: []string{"Rank", "Department", "Total"},
		Rows: [][]any{
			{1, "Warehouse", 80},
			{2, "Finance", 50},
		},
		Widths: []float64{8, 30, 10},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Ranking", "A1")
	require.NoError(t, err)
	assert.Equal(t, "5S Ranking 2024-06", title)

	header, _ := f.GetCellValue("Ranking", "B3")
	assert.Equal(t, "Department", header)

	dept, _ := f.GetCellValue("Ranking", "B5")
	assert.Equal(t, "Finance", dept)
}

func TestBuildTextPDF(t *testing.T) {
	lines := make([]string, 0, 70)
	lines = append(lines, "Report (June)")
	for i := 0; i < 69; i++ {
		lines = append(lines, "row")
	}

	body, err := BuildTextPDF(lines)
	require.NoError(t, err)

	out := string(body)
	assert.True(t, strings.HasPrefix(out, "%PDF-1.4"))
	assert.Contains(t, out, "/Count 2")
	assert.Contains(t, out, `Report \(June\)`)
	assert.True(t, strings.HasSuffix(out, "%%EOF"))
}

func TestBuildTextPDF_Empty(t *testing.T) {
	body, err := BuildTextPDF(nil)
	require.NoError(t, err)
	assert.Contains(t, string(body), "(Report) Tj")
}

func TestBuildTextPDF_WinAnsiText(t *testing.T) {
	body, err := BuildTextPDF([]string{"Café กข 5€"})
	require.NoError(t, err)

	assert.Contains(t, string(body), "/Encoding /WinAnsiEncoding")
	assert.True(t, bytes.Contains(body, []byte("(Caf\xe9 ?? 5\x80) Tj")))
}
