package reads

import (
	"github.com/dasnellings/argTools/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

const fastpJSON = `{
	"summary": {
		"fastp_version": "0.23.2",
		"before_filtering": {"total_reads": 2000, "total_bases": 300000},
		"after_filtering": {"total_reads": 1800, "total_bases": 260000}
	},
	"filtering_result": {"passed_filter_reads": 1800}
}`

const brackenDomain = "name\ttaxonomy_id\ttaxonomy_lvl\tkraken_assigned_reads\tadded_reads\tnew_est_reads\tfraction_total_reads\n" +
	"Archaea\t2157\tD\t3\t0\t3\t0.01\n" +
	"Bacteria\t2\tD\t1500\t41\t1541\t0.99\n"

func writeFile(t *testing.T, file, data string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	require.NoError(t, os.WriteFile(file, []byte(data), 0644))
}

func TestReadInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "S1.report.json"), fastpJSON)
	before, after, err := ReadFastp(filepath.Join(dir, "S1.report.json"))
	require.NoError(t, err)
	assert.Equal(t, int64(2000), before)
	assert.Equal(t, int64(1800), after)

	writeFile(t, filepath.Join(dir, "S1_0.domain.tsv"), brackenDomain)
	n, err := ReadBracken(filepath.Join(dir, "S1_0.domain.tsv"))
	require.NoError(t, err)
	assert.Equal(t, 1541.0, n)

	writeFile(t, filepath.Join(dir, "bad_0.domain.tsv"), "name\tnew_est_reads\nArchaea\t3\n")
	_, err = ReadBracken(filepath.Join(dir, "bad_0.domain.tsv"))
	assert.Error(t, err)
}

func setup(t *testing.T) (qt, s16, arg, mge string) {
	root := t.TempDir()
	qt, s16, arg, mge = filepath.Join(root, "qt"), filepath.Join(root, "16S"), filepath.Join(root, "arg"), filepath.Join(root, "mge")
	writeFile(t, filepath.Join(qt, "S1.report.json"), fastpJSON)
	writeFile(t, filepath.Join(qt, "S2.report.json"), fastpJSON)
	writeFile(t, filepath.Join(s16, "S1_0.domain.tsv"), brackenDomain)
	writeFile(t, filepath.Join(arg, "S1.ARG_profile.tsv"), "sseqid\treads\tRPK\nA\t3\t2\nB\t1\t0.5\n")
	writeFile(t, filepath.Join(arg, "S2.ARG_profile.tsv"), "sseqid\treads\tRPK\nA\t2\t4\n")
	writeFile(t, filepath.Join(mge, "S1.MGE_profile.tsv"), "sseqid\treads\tRPK\nM\t5\t0.25\n")
	return qt, s16, arg, mge
}

func TestSummarize(t *testing.T) {
	qt, s16, arg, mge := setup(t)
	outDir := t.TempDir()
	out, err := Summarize(qt, s16, arg, mge, outDir, 1541, 1)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, SummaryFile), out)

	s, err := table.ReadCSV(out)
	require.NoError(t, err)
	assert.Equal(t, append([]string{""}, Columns(true)...), s.Header)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"S1", "2000", "1800", "1541", "4", "5", "1000", "2.5", "0.0025", "0.25", "0.00025"}, s.Rows[0])
	assert.Equal(t, []string{"S2", "2000", "1800", "", "2", "", "", "4", "", "", ""}, s.Rows[1])

	sum, err := ReadSummary(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, sum.Samples())
	v, found, err := sum.Value("S1", RPK16S)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1000.0, v)
	_, found, err = sum.Value("S2", RPK16S)
	require.NoError(t, err)
	assert.False(t, found)
	_, found, _ = sum.Value("S9", RPK16S)
	assert.False(t, found)
}

func TestSummarizeWithoutMGE(t *testing.T) {
	qt, s16, arg, _ := setup(t)
	outDir := t.TempDir()
	out, err := Summarize(qt, s16, arg, "", outDir, 1541, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, SummaryFileARG), out)

	s, err := table.ReadCSV(out)
	require.NoError(t, err)
	assert.Equal(t, append([]string{""}, Columns(false)...), s.Header)
	assert.Equal(t, []string{"S1", "2000", "1800", "1541", "4", "1000", "2.5", "0.0025"}, s.Rows[0])
}
