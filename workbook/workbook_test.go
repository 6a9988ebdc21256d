package workbook

import (
	"github.com/dasnellings/argTools/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"path/filepath"
	"testing"
)

func TestWriteRead(t *testing.T) {
	scores := table.New("", "PC1", "PC2")
	scores.Append("River", "1.5", "-0.25")
	scores.Append("Sea", "-1.5", "0.25")
	loadings := table.New("", "PC1")
	loadings.Append("tet(A)", "0.9")
	loadings.Append("note", "n/a")

	file := filepath.Join(t.TempDir(), "pca.xlsx")
	require.NoError(t, Write(file, []Sheet{{"PC scores", scores}, {"loadings", loadings}}))

	names, err := Sheets(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"PC scores", "loadings"}, names)

	back, err := Read(file, "PC scores")
	require.NoError(t, err)
	assert.Equal(t, scores.Header, back.Header)
	assert.Equal(t, scores.Rows, back.Rows)

	back, err = Read(file, "loadings")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"tet(A)", "0.9"}, {"note", "n/a"}}, back.Rows)

	_, err = Read(file, "missing")
	assert.Error(t, err)
}

func TestWriteIndexAsText(t *testing.T) {
	scores := table.New("", "2020", "PC2")
	scores.Append("001", "1.50", "-0.25")

	file := filepath.Join(t.TempDir(), "pca.xlsx")
	require.NoError(t, Write(file, []Sheet{{"PC scores", scores}}))

	f, err := excelize.OpenFile(file)
	require.NoError(t, err)
	defer f.Close()
	index, err := f.GetCellValue("PC scores", "A2")
	require.NoError(t, err)
	assert.Equal(t, "001", index)
	year, err := f.GetCellValue("PC scores", "B1")
	require.NoError(t, err)
	assert.Equal(t, "2020", year)

	kind, err := f.GetCellType("PC scores", "A2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, kind)
	value, err := f.GetCellValue("PC scores", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1.5", value)
}

func TestWriteNoSheets(t *testing.T) {
	assert.Error(t, Write(filepath.Join(t.TempDir(), "empty.xlsx"), nil))
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, 0.5, cellValue("0.5"))
	assert.Equal(t, "", cellValue(""))
	assert.Equal(t, "NaN", cellValue("NaN"))
	assert.Equal(t, "ARO:3000873", cellValue("ARO:3000873"))
}
