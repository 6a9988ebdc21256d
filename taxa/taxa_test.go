package taxa

import (
	"github.com/dasnellings/argTools/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"Bacteria", "-", "-", "-", "-", "-"}, Split("d__Bacteria"))
	assert.Equal(t, []string{"Bacteria", "Proteobacteria", "Gammaproteobacteria", "-", "-", "-"},
		Split("d__Bacteria|p__Proteobacteria|c__Gammaproteobacteria"))
	assert.Equal(t, []string{"Bacteria", "Proteobacteria", "Gammaproteobacteria", "Enterobacterales", "Enterobacteriaceae", "Escherichia|s__Escherichia coli"},
		Split("d__Bacteria|p__Proteobacteria|c__Gammaproteobacteria|o__Enterobacterales|f__Enterobacteriaceae|g__Escherichia|s__Escherichia coli"))
}

func TestReadMPA(t *testing.T) {
	file := filepath.Join(t.TempDir(), "S1.mpa.tsv")
	data := "d__Bacteria\t50\n" +
		"d__Eukaryota|p__Chordata\t900\n" +
		"d__Bacteria|p__Proteobacteria\t49.5\n" +
		"d__Bacteria|p__Firmicutes\t0.5\n"
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))

	m, err := ReadMPA(file, 0.01)
	require.NoError(t, err)
	assert.Equal(t, []string{Taxonomy, Abundance}, m.Header)
	require.Equal(t, 2, m.Len())
	assert.Equal(t, "d__Bacteria", m.Rows[0][0])
	assert.Equal(t, "0.5", m.Rows[0][1])
	assert.Equal(t, "d__Bacteria|p__Proteobacteria", m.Rows[1][0])
}

func TestCurate16S(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "S1.mpa.tsv"), []byte(
		"d__Bacteria\t50\n"+
			"d__Bacteria|p__Proteobacteria\t25\n"+
			"d__Bacteria|p__Firmicutes|c__Bacilli\t25\n"+
			"d__Eukaryota\t1000\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "S2.mpa.tsv"), []byte(
		"d__Bacteria|p__Proteobacteria\t1\n"+
			"d__Bacteria|p__Actinobacteria\t3\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "_sample_names.tsv"), []byte("S1\tLake\n"), 0644))

	written, err := Curate16S(in, out, 1e-5, 0)
	require.NoError(t, err)
	assert.Len(t, written, 7)

	merged, err := table.ReadTSV(filepath.Join(out, "_merged.16S.abundance.tsv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"domain", "phylum", "class", "order", "family", "genus", Taxonomy, "Lake", "S2"}, merged.Header)
	assert.Equal(t, 4, merged.Len())
	tax, err := merged.Column(Taxonomy)
	require.NoError(t, err)
	assert.Equal(t, []string{"d__Bacteria", "d__Bacteria|p__Actinobacteria", "d__Bacteria|p__Firmicutes|c__Bacilli", "d__Bacteria|p__Proteobacteria"}, tax)
	assert.Equal(t, []string{"Bacteria", "Firmicutes", "Bacilli", "-", "-", "-"}, merged.Rows[2][:6])

	mpa, err := table.ReadCSV(filepath.Join(out, "16S.abundance.mpa.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "d__Bacteria|p__Actinobacteria", "d__Bacteria", "d__Bacteria|p__Proteobacteria", "d__Bacteria|p__Firmicutes|c__Bacilli"}, mpa.Header)
	assert.Equal(t, "Lake", mpa.Rows[0][0])

	phylum, err := table.ReadCSV(filepath.Join(out, "16S.abundance.1_phylum.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Actinobacteria", "Proteobacteria", "Firmicutes"}, phylum.Header)
	assert.Equal(t, [][]string{{"Lake", "0", "0.5", "0.5"}, {"S2", "0.75", "0.25", "0"}}, phylum.Rows)

	class, err := table.ReadCSV(filepath.Join(out, "16S.abundance.2_class.csv"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Lake", "1"}, {"S2", "0"}}, class.Rows)

	assert.FileExists(t, filepath.Join(out, "16S.abundance.5_genus.csv"))
}
