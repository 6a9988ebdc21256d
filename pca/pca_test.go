package pca

import (
	"github.com/dasnellings/argTools/table"
	"github.com/dasnellings/argTools/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestWard(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{0, 1, 5})
	merges := Ward(x)
	require.Len(t, merges, 2)
	assert.Equal(t, Merge{A: 0, B: 1, Dist: 1, Size: 2}, merges[0])
	assert.Equal(t, 2, merges[1].A)
	assert.Equal(t, 3, merges[1].B)
	assert.InDelta(t, math.Sqrt(27), merges[1].Dist, 1e-12)
	assert.Equal(t, 3, merges[1].Size)
	assert.Equal(t, []int{2, 0, 1}, Leaves(merges))

	assert.Nil(t, Ward(mat.NewDense(1, 1, []float64{3})))
	assert.Equal(t, []int{0}, Leaves(nil))
}

func TestProportionAndScale(t *testing.T) {
	p := Proportion(mat.NewDense(2, 2, []float64{1, 3, 0, 0}))
	assert.Equal(t, []float64{0.25, 0.75, 0, 0}, p.RawMatrix().Data)

	s := Scale(mat.NewDense(3, 2, []float64{1, 4, 2, 4, 3, 4}))
	want := math.Sqrt(1.5)
	assert.InDelta(t, -want, s.At(0, 0), 1e-12)
	assert.InDelta(t, 0, s.At(1, 0), 1e-12)
	assert.InDelta(t, want, s.At(2, 0), 1e-12)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, s.At(i, 1))
	}
}

func TestPCA(t *testing.T) {
	r, err := PCA(mat.NewDense(3, 2, []float64{1, 2, 2, 4, 3, 6}))
	require.NoError(t, err)
	require.Len(t, r.Ratio, 2)
	assert.InDelta(t, 1, r.Ratio[0], 1e-9)
	assert.InDelta(t, 5, r.Vars[0], 1e-9)
	assert.InDelta(t, 1, r.Cumulative()[1], 1e-9)

	root5 := math.Sqrt(5)
	assert.InDelta(t, -root5, r.Scores.At(0, 0), 1e-9)
	assert.InDelta(t, 0, r.Scores.At(1, 0), 1e-9)
	assert.InDelta(t, root5, r.Scores.At(2, 0), 1e-9)
	assert.InDelta(t, 1, r.Loadings.At(0, 0), 1e-9)
	assert.InDelta(t, 2, r.Loadings.At(1, 0), 1e-9)

	_, err = PCA(mat.NewDense(1, 2, []float64{1, 2}))
	assert.Error(t, err)
}

func TestFromTable(t *testing.T) {
	tb := table.New("", "a", "group", "b")
	tb.Append("S1", "1", "x", "2")
	tb.Append("S2", "3", "y", "4")
	d, err := FromTable(tb)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, d.Samples)
	assert.Equal(t, []string{"a", "b"}, d.Vars)
	assert.Equal(t, []float64{1, 2, 3, 4}, d.X.RawMatrix().Data)

	_, err = FromTable(table.New("", "group"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "ARG.gene_symbol.prop_RPK.csv")
	require.NoError(t, os.WriteFile(in, []byte(",tetA,TEM,sul1\nS1,0.5,0.3,0.2\nS2,0.1,0.6,0.3\nS3,0.4,0.4,0.2\nS4,0.2,0.2,0.6\n"), 0644))

	out := filepath.Join(dir, "pca")
	written, err := Run(in, out, Options{Scaling: true}, 1)
	require.NoError(t, err)
	name := "ARG.gene_symbol.prop_RPK.scaling"
	assert.Equal(t, []string{
		filepath.Join(out, "pca_scores."+name+".csv"),
		filepath.Join(out, "pca_loadings."+name+".csv"),
		filepath.Join(out, "pca."+name+".xlsx"),
		filepath.Join(out, "hc.dendrogram.ARG.gene_symbol.prop_RPK.pdf"),
	}, written)
	for _, f := range written {
		assert.FileExists(t, f)
	}

	scores, err := table.ReadCSV(written[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"", "PC1", "PC2", "PC3"}, scores.Header)
	require.Equal(t, 6, scores.Len())
	assert.Equal(t, "S1", scores.Rows[0][0])
	assert.Equal(t, ExplainedRow, scores.Rows[4][0])
	assert.Equal(t, CumulativeRow, scores.Rows[5][0])
	total, err := table.ParseFloat(scores.Get(5, "PC3"))
	require.NoError(t, err)
	assert.InDelta(t, 1, total, 1e-9)

	loadings, err := table.ReadCSV(written[1])
	require.NoError(t, err)
	pc1, err := loadings.Floats("PC1")
	require.NoError(t, err)
	require.Len(t, pc1, 3)
	for i := 1; i < len(pc1); i++ {
		assert.GreaterOrEqual(t, pc1[i-1], pc1[i])
	}

	sheets, err := workbook.Sheets(written[2])
	require.NoError(t, err)
	assert.Equal(t, []string{"PC scores", "loadings"}, sheets)

	written, err = Run(in, out, Options{Proportion: true}, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "pca_scores.ARG.gene_symbol.prop_RPK.no_scaling.csv"), written[0])
}

func TestScree(t *testing.T) {
	s := Scree(Result{Ratio: []float64{0.7, 0.2, 0.1}})
	assert.Contains(t, s, "explained variance")
}

func TestDendrogramErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "d.pdf")
	assert.Error(t, Dendrogram(nil, []string{"a"}, file))
	assert.Error(t, Dendrogram([]Merge{{A: 0, B: 1, Dist: 1, Size: 2}}, []string{"a"}, file))
}
