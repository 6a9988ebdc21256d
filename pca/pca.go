// Package pca runs principal component analysis and Ward hierarchical clustering
// on a sample by variable table.
package pca

import (
	"fmt"
	"github.com/dasnellings/argTools/table"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"math"
)

// Data is a sample by variable matrix.
type Data struct {
	Samples []string
	Vars    []string
	X       *mat.Dense // one row per sample
}

// FromTable builds Data from a table whose first column names the samples. Only
// columns where every cell is a number are kept.
func FromTable(t *table.Table) (Data, error) {
	if len(t.Header) < 2 || t.Len() == 0 {
		return Data{}, fmt.Errorf("no data")
	}
	var cols []int
	var d Data
	for c := 1; c < len(t.Header); c++ {
		numeric := true
		for i := range t.Rows {
			if !table.IsNumeric(t.Rows[i][c]) {
				numeric = false
				break
			}
		}
		if numeric {
			cols = append(cols, c)
			d.Vars = append(d.Vars, t.Header[c])
		}
	}
	if len(cols) == 0 {
		return Data{}, fmt.Errorf("no numeric columns")
	}
	d.X = mat.NewDense(t.Len(), len(cols), nil)
	for i := range t.Rows {
		d.Samples = append(d.Samples, t.Rows[i][0])
		for j, c := range cols {
			v, err := table.ParseFloat(t.Rows[i][c])
			if err != nil {
				return Data{}, err
			}
			d.X.Set(i, j, v)
		}
	}
	return d, nil
}

// ReadCSV loads a sample by variable csv file with sample names in the first column.
func ReadCSV(file string) (Data, error) {
	t, err := table.ReadCSV(file)
	if err != nil {
		return Data{}, err
	}
	d, err := FromTable(t)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", file, err)
	}
	return d, nil
}

// Proportion returns x with every row divided by its sum. Rows summing to 0 are kept.
func Proportion(x mat.Matrix) *mat.Dense {
	n, p := x.Dims()
	ans := mat.DenseCopyOf(x)
	for i := 0; i < n; i++ {
		sum := mat.Sum(ans.RowView(i))
		if sum == 0 {
			continue
		}
		for j := 0; j < p; j++ {
			ans.Set(i, j, ans.At(i, j)/sum)
		}
	}
	return ans
}

// Scale standardizes every column of x to mean 0 and unit population standard
// deviation. Constant columns are only centred.
func Scale(x mat.Matrix) *mat.Dense {
	n, p := x.Dims()
	ans := mat.DenseCopyOf(x)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, ans)
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for i := 0; i < n; i++ {
			ans.Set(i, j, (col[i]-mean)/std)
		}
	}
	return ans
}

// Result is the outcome of PCA with k = min(samples, variables) components.
type Result struct {
	Scores   *mat.Dense // samples × k
	Loadings *mat.Dense // variables × k, component vectors scaled by the root of their variance
	Vars     []float64  // variance explained by each component
	Ratio    []float64  // share of the total variance explained by each component
}

// Cumulative returns the running sum of r.Ratio.
func (r Result) Cumulative() []float64 {
	ans := make([]float64, len(r.Ratio))
	var sum float64
	for i := range r.Ratio {
		sum += r.Ratio[i]
		ans[i] = sum
	}
	return ans
}

// PCA computes the principal components of x, observations in rows. The sign of
// every component is chosen so that its largest coefficient is positive.
func PCA(x mat.Matrix) (Result, error) {
	n, p := x.Dims()
	if n < 2 {
		return Result{}, fmt.Errorf("PCA needs at least 2 samples, found %d", n)
	}
	k := n
	if p < k {
		k = p
	}

	centered := mat.DenseCopyOf(x)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, centered)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			centered.Set(i, j, col[i]-mean)
		}
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(centered, nil); !ok {
		return Result{}, fmt.Errorf("PCA did not converge")
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	vars := pc.VarsTo(nil)

	v := mat.NewDense(p, k, nil)
	v.Copy(vecs.Slice(0, p, 0, k))
	for j := 0; j < k; j++ {
		var big float64
		for i := 0; i < p; i++ {
			if math.Abs(v.At(i, j)) > math.Abs(big) {
				big = v.At(i, j)
			}
		}
		if big < 0 {
			for i := 0; i < p; i++ {
				v.Set(i, j, -v.At(i, j))
			}
		}
	}

	ans := Result{Vars: append([]float64(nil), vars[:k]...)}
	for j := range ans.Vars {
		if ans.Vars[j] < 0 {
			ans.Vars[j] = 0
		}
	}
	ans.Scores = mat.NewDense(n, k, nil)
	ans.Scores.Mul(centered, v)

	var total float64
	for _, s := range ans.Vars {
		total += s
	}
	ans.Ratio = make([]float64, k)
	for j := range ans.Vars {
		if total > 0 {
			ans.Ratio[j] = ans.Vars[j] / total
		}
	}

	ans.Loadings = mat.NewDense(p, k, nil)
	for j := 0; j < k; j++ {
		s := math.Sqrt(ans.Vars[j])
		for i := 0; i < p; i++ {
			ans.Loadings.Set(i, j, v.At(i, j)*s)
		}
	}
	return ans, nil
}
