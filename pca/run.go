package pca

import (
	"fmt"
	"github.com/dasnellings/argTools/samples"
	"github.com/dasnellings/argTools/table"
	"github.com/dasnellings/argTools/workbook"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"
	"log"
	"path/filepath"
	"strconv"
)

// Row names of the variance rows appended to the score table.
const (
	ExplainedRow  = "Explained Variance Ratio"
	CumulativeRow = "Cumulative Variance Ratio"
)

// Options selects the transforms applied before PCA.
type Options struct {
	Scaling    bool // standardize variables
	Proportion bool // divide every sample by its total first
}

func (o Options) suffix() string {
	if o.Scaling {
		return ".scaling"
	}
	return ".no_scaling"
}

func componentNames(k int) []string {
	ans := make([]string, k)
	for i := range ans {
		ans[i] = "PC" + strconv.Itoa(i+1)
	}
	return ans
}

func matrixTable(rowNames []string, m mat.Matrix) *table.Table {
	_, k := m.Dims()
	ans := table.New(append([]string{""}, componentNames(k)...)...)
	for i := range rowNames {
		row := []string{rowNames[i]}
		for j := 0; j < k; j++ {
			row = append(row, table.FormatFloat(m.At(i, j)))
		}
		ans.Append(row...)
	}
	return ans
}

func vectorRow(name string, v []float64) []string {
	ans := []string{name}
	for i := range v {
		ans = append(ans, table.FormatFloat(v[i]))
	}
	return ans
}

// ScoreTable lists the sample scores followed by the explained and cumulative
// variance ratio rows.
func ScoreTable(d Data, r Result) *table.Table {
	ans := matrixTable(d.Samples, r.Scores)
	ans.Append(vectorRow(ExplainedRow, r.Ratio)...)
	ans.Append(vectorRow(CumulativeRow, r.Cumulative())...)
	return ans
}

// LoadingTable lists the variable loadings ordered by PC1, largest first.
func LoadingTable(d Data, r Result) (*table.Table, error) {
	ans := matrixTable(d.Vars, r.Loadings)
	return ans, ans.SortByColumn("PC1", true)
}

// Scree renders the explained variance ratio of each component as a terminal plot.
func Scree(r Result) string {
	pct := make([]float64, len(r.Ratio))
	for i := range r.Ratio {
		pct[i] = r.Ratio[i] * 100
	}
	return asciigraph.Plot(pct, asciigraph.Height(8), asciigraph.Precision(1), asciigraph.Caption("explained variance (%) by component"))
}

// Run reads a sample by variable csv file, runs PCA and Ward clustering and
// writes the scores, loadings, a workbook of both and a dendrogram PDF to outDir.
// The dendrogram is drawn from the unscaled data. The written files are returned.
func Run(csvFile, outDir string, opts Options, verbose int) ([]string, error) {
	d, err := ReadCSV(csvFile)
	if err != nil {
		return nil, err
	}
	err = samples.MakeDir(outDir)
	if err != nil {
		return nil, err
	}
	if opts.Proportion {
		d.X = Proportion(d.X)
	}
	x := d.X
	if opts.Scaling {
		x = Scale(d.X)
	}
	r, err := PCA(x)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", csvFile, err)
	}
	if verbose > 0 {
		fmt.Println(Scree(r))
	}

	base := samples.Stem(csvFile, "")
	name := base + opts.suffix()
	var written []string

	scores := ScoreTable(d, r)
	out := filepath.Join(outDir, "pca_scores."+name+".csv")
	if err = scores.WriteCSV(out); err != nil {
		return written, err
	}
	written = append(written, out)

	loadings, err := LoadingTable(d, r)
	if err != nil {
		return written, err
	}
	out = filepath.Join(outDir, "pca_loadings."+name+".csv")
	if err = loadings.WriteCSV(out); err != nil {
		return written, err
	}
	written = append(written, out)

	out = filepath.Join(outDir, "pca."+name+".xlsx")
	err = workbook.Write(out, []workbook.Sheet{{Name: "PC scores", Table: scores}, {Name: "loadings", Table: loadings}})
	if err != nil {
		return written, err
	}
	written = append(written, out)

	out = filepath.Join(outDir, "hc.dendrogram."+base+".pdf")
	if err = Dendrogram(Ward(d.X), d.Samples, out); err != nil {
		return written, err
	}
	written = append(written, out)

	if verbose > 0 {
		for _, f := range written {
			log.Printf("%s was created.", f)
		}
	}
	return written, nil
}
