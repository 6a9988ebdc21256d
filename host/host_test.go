package host

import (
	"github.com/dasnellings/argTools/blast"
	"github.com/dasnellings/argTools/profile"
	"github.com/dasnellings/argTools/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const namesDmp = "1\t|\troot\t|\t\t|\tscientific name\t|\n" +
	"562\t|\tEscherichia coli\t|\t\t|\tscientific name\t|\n" +
	"562\t|\tBacillus coli\t|\t\t|\tsynonym\t|\n" +
	"573\t|\tKlebsiella pneumoniae\t|\t\t|\tscientific name\t|\n"

const inspect = "# Database options: nucleotide db, k = 35, l = 31\n" +
	"# Spaced mask = 11111111111111111111111111111111111111001100110011001100110011\n" +
	"# Toggle mask = 1110001101111110001010001100010000100111000110110101101000101101\n" +
	"# Total taxonomy nodes: 3\n" +
	"# Table size: 100\n" +
	"# Table capacity: 200\n" +
	"# Min clear hash value = 0\n" +
	"100.00\t100\t0\tR\t1\troot\n" +
	" 60.00\t60\t60\tS\t562\t            Escherichia coli\n" +
	" 40.00\t40\t40\tS\t573\t            Klebsiella pneumoniae\n"

const kraken = "C\tk141_1\t562\t5000\t562:100\n" +
	"U\tk141_2\t0\t3000\t0:80\n" +
	"C\tk141_3\t9999\t2000\t9999:50\n"

func writeFile(t *testing.T, dir, name, content string) string {
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestReadNamesDump(t *testing.T) {
	names, err := ReadNamesDump(writeFile(t, t.TempDir(), "names.dmp", namesDmp))
	require.NoError(t, err)
	assert.Len(t, names, 3)
	assert.Equal(t, Taxon{Name: "Escherichia coli"}, names["562"])

	_, err = ReadNamesDump(writeFile(t, t.TempDir(), "bad.dmp", "562\t|\tEscherichia coli\n"))
	assert.Error(t, err)
}

func TestReadInspectAndKraken(t *testing.T) {
	dir := t.TempDir()
	names, err := ReadInspect(writeFile(t, dir, "inspect.txt", inspect))
	require.NoError(t, err)
	assert.Equal(t, Taxon{Rank: "S", Name: "Escherichia coli"}, names["562"])
	assert.Equal(t, Taxon{Rank: "R", Name: "root"}, names["1"])

	contigs, err := ReadKraken(writeFile(t, dir, "S1.kraken2.tsv", kraken), names)
	require.NoError(t, err)
	assert.Equal(t, []Contig{
		{ID: "k141_1", TaxID: "562", Taxon: Taxon{Rank: "S", Name: "Escherichia coli"}},
		{ID: "k141_3", TaxID: "9999", Taxon: Taxon{Name: Unknown}},
	}, contigs)
}

func TestSummary(t *testing.T) {
	hits := table.New(ContigID, profile.GeneSymbol)
	hits.Append("k141_3", "sul1")
	hits.Append("k141_1", "tet(A)")
	hits.Append("k141_1", "TEM")
	hits.Append("k141_1", "tet(A)")
	got, err := Summary(hits)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"k141_1", "TEM,tet(A)", "2"}, {"k141_3", "sul1", "1"}}, got.Rows)
}

func TestBlastHost(t *testing.T) {
	dir := t.TempDir()
	blastFile := writeFile(t, dir, "S1.ARGI.txt",
		"k141_1\tgb|AF038993|+|0-1509|ARO:3000318|mphB\t99.5\t1200\t1\t0\t1\t1200\t1\t1200\t0\t2000\t5000\t1509\n"+
			"k141_1\tgb|AY458016|+|0-1275|ARO:3000165|tet(A)\t95\t1000\t10\t0\t1\t1000\t1\t1000\t0\t1500\t5000\t1275\n"+
			"k141_2\tgb|AY458016|+|0-1275|ARO:3000165|tet(A)\t80\t1000\t10\t0\t1\t1000\t1\t1000\t0\t1500\t3000\t1275\n"+
			"k141_4\tgb|X|+|0-861|ARO:3000873|TEM-1\t100\t861\t0\t0\t1\t861\t1\t861\t0\t1500\t900\t861\n")
	out := filepath.Join(dir, "out")
	written, err := BlastHost(writeFile(t, dir, "names.dmp", namesDmp), blastFile, writeFile(t, dir, "S1.kraken2.tsv", kraken), out, blast.Filter{MinPident: 90, MinLength: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "S1"+TaxonSuffix),
		filepath.Join(out, "S1"+HostSuffix),
		filepath.Join(out, "S1"+SummarySuffix),
	}, written)

	taxa, err := table.ReadTSV(written[0])
	require.NoError(t, err)
	assert.Equal(t, []string{ContigID, Species}, taxa.Header)
	assert.Equal(t, [][]string{{"k141_1", "Escherichia coli"}, {"k141_3", Unknown}}, taxa.Rows)

	hosts, err := table.ReadTSV(written[1])
	require.NoError(t, err)
	require.Equal(t, 3, hosts.Len())
	assert.Equal(t, "mphB", hosts.Get(0, profile.GeneSymbol))
	assert.Equal(t, "ARO:3000318", hosts.Get(0, "ARO Accession"))
	assert.Equal(t, "Escherichia coli", hosts.Get(1, Species))
	assert.Equal(t, "TEM", hosts.Get(2, profile.GeneSymbol))
	assert.Equal(t, Unknown, hosts.Get(2, Species))

	sum, err := table.ReadTSV(written[2])
	require.NoError(t, err)
	assert.Equal(t, []string{ContigID, ARGs, NumARG, TaxID, Species}, sum.Header)
	assert.Equal(t, [][]string{
		{"k141_1", "mphB,tet(A)", "2", "562", "Escherichia coli"},
		{"k141_4", "TEM", "1", "", Unknown},
	}, sum.Rows)
}

func TestRGIHost(t *testing.T) {
	dir := t.TempDir()
	rgi := strings.Join([]string{
		"ORF_ID\tContig\tBest_Hit_ARO\tCut_Off",
		"k141_1_2 # 10 # 900\tk141_1_2\tTEM-1 beta-lactamase\tStrict",
		"k141_1_5 # 1000 # 2000\tk141_1_5\ttetA\tPerfect",
		"k141_3_1 # 1 # 700\tk141_3_1\tsul1\tLoose",
	}, "\n") + "\n"
	out := filepath.Join(dir, "out")
	written, err := RGIHost(writeFile(t, dir, "inspect.txt", inspect), writeFile(t, dir, "S2._ARGI.txt", rgi), writeFile(t, dir, "S2.kraken2.tsv", kraken), out)
	require.NoError(t, err)
	require.Len(t, written, 3)
	assert.Equal(t, filepath.Join(out, "S2"+HostSuffix), written[1])

	taxa, err := table.ReadTSV(written[0])
	require.NoError(t, err)
	assert.Equal(t, []string{ContigID, Rank, Species}, taxa.Header)

	hosts, err := table.ReadTSV(written[1])
	require.NoError(t, err)
	assert.Equal(t, "k141_1", hosts.Get(0, ContigID))
	assert.Equal(t, "TEM-1", hosts.Get(0, profile.GeneSymbol))
	assert.Equal(t, "S", hosts.Get(0, Rank))
	assert.Equal(t, Unknown, hosts.Get(2, Species))

	sum, err := table.ReadTSV(written[2])
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"k141_1", "TEM-1,tetA", "2", "562", "S", "Escherichia coli"},
		{"k141_3", "sul1", "1", "9999", "", Unknown},
	}, sum.Rows)
}
