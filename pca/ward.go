package pca

import (
	"fmt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"image/color"
	"math"
)

// Merge is one step of agglomerative clustering. Clusters 0..n-1 are the
// observations and the cluster made at step i is n+i.
type Merge struct {
	A, B int     // merged clusters, A < B
	Dist float64 // Ward distance between A and B
	Size int     // observations under the new cluster
}

// Ward clusters the rows of x by Ward's minimum variance method on Euclidean
// distances, updating distances with the Lance-Williams formula.
func Ward(x mat.Matrix) []Merge {
	n, _ := x.Dims()
	if n < 2 {
		return nil
	}
	d := make([][]float64, n)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, x)
	}
	for i := range d {
		d[i] = make([]float64, n)
		for j := 0; j < i; j++ {
			d[i][j] = floats.Distance(rows[i], rows[j], 2)
			d[j][i] = d[i][j]
		}
	}

	// slot i holds cluster id[i] of size size[i] while active[i]
	id := make([]int, n)
	size := make([]int, n)
	active := make([]bool, n)
	for i := range id {
		id[i] = i
		size[i] = 1
		active[i] = true
	}

	ans := make([]Merge, 0, n-1)
	for step := 0; step < n-1; step++ {
		a, b := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if active[j] && d[i][j] < best {
					best, a, b = d[i][j], i, j
				}
			}
		}

		m := Merge{A: id[a], B: id[b], Dist: best, Size: size[a] + size[b]}
		if m.A > m.B {
			m.A, m.B = m.B, m.A
		}
		ans = append(ans, m)

		// the merged cluster takes slot a
		for k := 0; k < n; k++ {
			if !active[k] || k == a || k == b {
				continue
			}
			t := float64(size[a] + size[b] + size[k])
			v := (float64(size[a]+size[k])*d[a][k]*d[a][k] +
				float64(size[b]+size[k])*d[b][k]*d[b][k] -
				float64(size[k])*best*best) / t
			if v < 0 {
				v = 0
			}
			d[a][k] = math.Sqrt(v)
			d[k][a] = d[a][k]
		}
		id[a] = n + step
		size[a] = m.Size
		active[b] = false
	}
	return ans
}

// Leaves returns the observations in dendrogram order, the A side of every
// merge before its B side.
func Leaves(merges []Merge) []int {
	n := len(merges) + 1
	if len(merges) == 0 {
		return []int{0}
	}
	var ans []int
	var walk func(c int)
	walk = func(c int) {
		if c < n {
			ans = append(ans, c)
			return
		}
		walk(merges[c-n].A)
		walk(merges[c-n].B)
	}
	walk(2*n - 2)
	return ans
}

type sampleTicks []string

func (s sampleTicks) Ticks(min, max float64) []plot.Tick {
	var ans []plot.Tick
	for i := range s {
		if float64(i) >= min && float64(i) <= max {
			ans = append(ans, plot.Tick{Value: float64(i), Label: s[i]})
		}
	}
	return ans
}

// Dendrogram draws merges with the leaves stacked on the left, labelled by
// names, and merge distance along the x axis. The format follows the file
// extension.
func Dendrogram(merges []Merge, names []string, file string) error {
	n := len(merges) + 1
	if n < 2 {
		return fmt.Errorf("a dendrogram needs at least 2 observations")
	}
	if len(names) != n {
		return fmt.Errorf("%d names for %d observations", len(names), n)
	}
	order := Leaves(merges)
	labels := make([]string, n)
	x := make([]float64, 2*n-1)
	y := make([]float64, 2*n-1)
	for pos, leaf := range order {
		labels[pos] = names[leaf]
		y[leaf] = float64(pos)
	}

	p := plot.New()
	p.X.Label.Text = "Distance"
	p.X.Min = 0
	p.Y.Tick.Marker = sampleTicks(labels)
	p.Y.Tick.Label.Font.Size = 8
	p.Y.Tick.LineStyle.Width = 0
	p.Y.LineStyle.Width = 0
	p.Y.Padding = vg.Millimeter * 2

	style := draw.LineStyle{Color: color.Black, Width: vg.Points(1)}
	for i, m := range merges {
		c := n + i
		x[c] = m.Dist
		y[c] = (y[m.A] + y[m.B]) / 2
		line, err := plotter.NewLine(plotter.XYs{
			{X: x[m.A], Y: y[m.A]},
			{X: m.Dist, Y: y[m.A]},
			{X: m.Dist, Y: y[m.B]},
			{X: x[m.B], Y: y[m.B]},
		})
		if err != nil {
			return err
		}
		line.LineStyle = style
		p.Add(line)
	}

	height := vg.Length(n)*6*vg.Millimeter + 4*vg.Centimeter
	return p.Save(20*vg.Centimeter, height, file)
}
