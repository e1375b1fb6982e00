package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseCSV(t *testing.T) {
	t.Run("strips utf-8 bom", func(t *testing.T) {
		records, _, err := parseCSV(strings.NewReader("\ufeffGEO_ID,Texas\nx,1\n"))
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"GEO_ID", "Texas"}, {"x", "1"}}, records)
	})

	t.Run("quoted values with separators", func(t *testing.T) {
		records, _, err := parseCSV(strings.NewReader("\"GEO_ID\",\"Texas\"\n\"x\",\"29,145,505\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "29,145,505", records[1][1])
	})

	t.Run("ragged rows", func(t *testing.T) {
		records, _, err := parseCSV(strings.NewReader("a,b,c\n1\n1,2,3,4\n"))
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Len(t, records[1], 1)
		assert.Len(t, records[2], 4)
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		records, lines, err := parseCSV(strings.NewReader("a,b\n\n1,2\n"))
		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, []int{1, 3}, lines)
	})

	t.Run("quoted field spanning lines", func(t *testing.T) {
		records, lines, err := parseCSV(strings.NewReader("a,b\n1,\"two\nlines\"\n3,4\n"))
		require.NoError(t, err)
		assert.Equal(t, "two\nlines", records[1][1])
		assert.Equal(t, []int{1, 2, 4}, lines)
	})

	t.Run("quote inside unquoted field", func(t *testing.T) {
		records, _, err := parseCSV(strings.NewReader("GEO_ID, \"California\", \"Texas\"\nx,\"39,000,000\",\"29,000,000\"\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"GEO_ID", ` "California"`, ` "Texas"`}, records[0])
		assert.Equal(t, []string{"x", "39,000,000", "29,000,000"}, records[1])
	})

	t.Run("unterminated quote runs to end of input", func(t *testing.T) {
		records, _, err := parseCSV(strings.NewReader("a,b\n\"1,2\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"1,2\n"}, records[1])
	})
}

func TestTable_Line(t *testing.T) {
	table := Table{Rows: [][]string{{"a"}, {"b"}}, Lines: []int{2, 5}}
	assert.Equal(t, 5, table.Line(1))

	bare := Table{Rows: [][]string{{"a"}, {"b"}}}
	assert.Equal(t, 3, bare.Line(1))
}

func TestRead(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		path := writeFile(t, "census.csv", "GEO_ID,California,Texas\nx,39000000,29000000\n")

		table, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"GEO_ID", "California", "Texas"}, table.Header)
		assert.Equal(t, [][]string{{"x", "39000000", "29000000"}}, table.Rows)
		assert.Equal(t, []int{2}, table.Lines)
	})

	t.Run("unknown extension is csv", func(t *testing.T) {
		path := writeFile(t, "fema.txt", "stateCode\nTX\n")

		table, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"stateCode"}, table.Header)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.csv", "")

		table, err := Read(path)
		require.NoError(t, err)
		assert.Empty(t, table.Header)
		assert.Empty(t, table.Rows)
	})

	t.Run("xlsx first sheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "census.xlsx")
		wb := excelize.NewFile()
		require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]any{"GEO_ID", "California", "Texas"}))
		require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]any{"x", "39,000,000", "29,000,000"}))
		require.NoError(t, wb.SaveAs(path))
		require.NoError(t, wb.Close())

		table, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"GEO_ID", "California", "Texas"}, table.Header)
		assert.Equal(t, [][]string{{"x", "39,000,000", "29,000,000"}}, table.Rows)
		assert.Equal(t, 2, table.Line(0))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "missing.csv"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "missing.csv")
	})
}
