package assembly

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	s, err := Compute([]int{2, 10, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, Stats{Sequences: 4, Total: 20, Mean: 5, N50: 10, L50: 1, Min: 2, Max: 10}, s)

	s, err = Compute([]int{4, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, 3.33, s.Mean)
	assert.Equal(t, 3, s.N50)
	assert.Equal(t, 2, s.L50)

	_, err = Compute(nil)
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "contigs.fa")
	require.NoError(t, os.WriteFile(file, []byte(">k141_1\nACGTACGTAC\n>k141_2\nACG\nTA\n>k141_3\nAC\n"), 0644))
	s, lengths, err := Read(file)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 5, 2}, lengths)
	assert.Equal(t, 17, s.Total)
	assert.Equal(t, 5.67, s.Mean)
	assert.Equal(t, 10, s.N50)

	var buf bytes.Buffer
	s.Render(&buf, "contigs.fa")
	assert.Contains(t, buf.String(), "N50 (bp)")
	assert.Contains(t, buf.String(), "5.67")

	out := filepath.Join(dir, "stats.csv")
	require.NoError(t, s.WriteCSV(out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Metric,Value\nNumber of sequences,3\nTotal length (bp),17\nMean length (bp),5.67\nN50 (bp),10\nL50 (count),1\n", string(b))

	empty := filepath.Join(dir, "empty.fa")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, _, err = Read(empty)
	assert.Error(t, err)
}

func TestBins(t *testing.T) {
	assert.Equal(t, []float64{2, 0, 1}, Bins([]int{1, 2, 9}, 3))
	assert.Equal(t, []float64{3}, Bins([]int{5, 5, 5}, 1))
	assert.Nil(t, Bins(nil, 3))
	assert.True(t, strings.Contains(Histogram([]int{1, 2, 9}, 3), "1 to 9 bp"))
}

func TestReadIndex(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "contigs.fa.fai")
	require.NoError(t, os.WriteFile(file, []byte("k141_1\t10\t8\t10\t11\nk141_2\t5\t27\t3\t4\n"), 0644))
	contigs, err := ReadIndex(file)
	require.NoError(t, err)
	assert.Equal(t, Contig{Name: "k141_2", Len: 5, Offset: 27, BasesPerLine: 3, BytesPerLine: 4}, contigs[1])
	assert.Equal(t, "k141_1\t10\t8\t10\t11", contigs[0].String())

	s, lengths, err := Read(file)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 5}, lengths)
	assert.Equal(t, 15, s.Total)

	bad := filepath.Join(dir, "bad.fai")
	require.NoError(t, os.WriteFile(bad, []byte("k141_1\t10\t8\n"), 0644))
	_, err = ReadIndex(bad)
	assert.Error(t, err)
}
