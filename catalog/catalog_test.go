package catalog

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestReadCARD(t *testing.T) {
	file := filepath.Join(t.TempDir(), "aro_index.tsv")
	data := "ARO Accession\tModel Name\tAMR Gene Family\tDrug Class\tResistance Mechanism\tCARD Short Name\n" +
		"ARO:3000318\tmphB\tmacrolide phosphotransferase (MPH)\tmacrolide antibiotic\tantibiotic inactivation\tmphB\n" +
		"ARO:3000318\tduplicate\tx\tx\tx\tx\n" +
		"ARO:3000873\tTEM-1\tTEM beta-lactamase\tmonobactam;cephalosporin;penam\tantibiotic inactivation\tTEM-1\n"
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))

	c, err := ReadCARD(file)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "mphB", c.Field("ARO:3000318", CARDShortName))
	assert.Equal(t, "monobactam;cephalosporin;penam", c.Field("ARO:3000873", DrugClass))
	assert.Equal(t, "", c.Field("ARO:0", DrugClass))
	_, found := c.Lookup("ARO:0")
	assert.False(t, found)
}

func TestReadCARDMissingColumn(t *testing.T) {
	file := filepath.Join(t.TempDir(), "aro_index.tsv")
	require.NoError(t, os.WriteFile(file, []byte("ARO Accession\tDrug Class\nARO:1\tx\n"), 0644))
	_, err := ReadCARD(file)
	assert.Error(t, err)
}

func TestReadMGE(t *testing.T) {
	file := filepath.Join(t.TempDir(), "MGE_tax_table_trim.txt")
	data := "1001_IS26_IS6\t\tIS\tIS26\n" +
		"1002_intI1_int\t\tintegrase\tintI1\n"
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))

	c, err := ReadMGE(file, false)
	require.NoError(t, err)
	assert.Equal(t, MGEColumns, c.Header)
	assert.Equal(t, "integrase", c.Field("1002_intI1_int", "Function"))
	assert.Equal(t, "IS26", c.Field("1001_IS26_IS6", "gene name"))
}
