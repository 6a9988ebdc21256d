// Package assembly reports the length distribution of assembled contigs.
package assembly

import (
	"fmt"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/gocarina/gocsv"
	"github.com/guptarohit/asciigraph"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/vertgenlab/gonomics/fileio"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Stats summarizes the contig lengths of one fasta file, in bp.
type Stats struct {
	Sequences int
	Total     int
	Mean      float64 // rounded to 2 decimals
	N50       int
	L50       int // fewest contigs whose lengths add up to half the total
	Min       int
	Max       int
}

// Metric is one line of the statistics table.
type Metric struct {
	Metric string `csv:"Metric"`
	Value  string `csv:"Value"`
}

// Lengths returns the length of every sequence of a fasta file in file order.
func Lengths(filename string) ([]int, error) {
	file := fileio.EasyOpen(filename)
	r := fasta.NewReader(file, linear.NewSeq("", nil, alphabet.DNA))
	sc := seqio.NewScanner(r)
	var ans []int
	for sc.Next() {
		ans = append(ans, sc.Seq().Len())
	}
	err := sc.Error()
	closeErr := file.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ans, closeErr
}

// Compute calculates the statistics of lengths. N50 is the length of the contig at
// which the running total of contigs sorted longest first reaches half the total.
func Compute(lengths []int) (Stats, error) {
	if len(lengths) == 0 {
		return Stats{}, fmt.Errorf("no contigs found")
	}
	sorted := append([]int(nil), lengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	ans := Stats{Sequences: len(sorted), Max: sorted[0], Min: sorted[len(sorted)-1]}
	for _, l := range sorted {
		ans.Total += l
	}
	var sum int
	for i, l := range sorted {
		sum += l
		if 2*sum >= ans.Total {
			ans.N50 = l
			ans.L50 = i + 1
			break
		}
	}
	ans.Mean = math.Round(float64(ans.Total)/float64(ans.Sequences)*100) / 100
	return ans, nil
}

// Read computes the statistics of a fasta file, or of a fai index when filename
// ends in FaiSuffix. The contig lengths are returned as well.
func Read(filename string) (Stats, []int, error) {
	var lengths []int
	var err error
	if strings.HasSuffix(filename, FaiSuffix) {
		lengths, err = IndexLengths(filename)
	} else {
		lengths, err = Lengths(filename)
	}
	if err != nil {
		return Stats{}, nil, err
	}
	s, err := Compute(lengths)
	if err != nil {
		return Stats{}, nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, lengths, nil
}

// Metrics lists the statistics in report order.
func (s Stats) Metrics() []Metric {
	return []Metric{
		{"Number of sequences", strconv.Itoa(s.Sequences)},
		{"Total length (bp)", strconv.Itoa(s.Total)},
		{"Mean length (bp)", strconv.FormatFloat(s.Mean, 'f', -1, 64)},
		{"N50 (bp)", strconv.Itoa(s.N50)},
		{"L50 (count)", strconv.Itoa(s.L50)},
	}
}

// Render writes the statistics as a console table to w.
func (s Stats) Render(w io.Writer, title string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(table.Row{"Metric", "Value"})
	for _, m := range s.Metrics() {
		t.AppendRow(table.Row{m.Metric, m.Value})
	}
	t.Render()
}

// WriteCSV stores the statistics as a Metric,Value csv file.
func (s Stats) WriteCSV(filename string) error {
	out := fileio.EasyCreate(filename)
	metrics := s.Metrics()
	err := gocsv.Marshal(&metrics, out)
	closeErr := out.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return closeErr
}

// Bins counts lengths in n equal width bins between the shortest and longest.
func Bins(lengths []int, n int) []float64 {
	if len(lengths) == 0 || n < 1 {
		return nil
	}
	lo, hi := lengths[0], lengths[0]
	for _, l := range lengths {
		if l < lo {
			lo = l
		}
		if l > hi {
			hi = l
		}
	}
	ans := make([]float64, n)
	width := float64(hi-lo+1) / float64(n)
	for _, l := range lengths {
		b := int(float64(l-lo) / width)
		if b >= n {
			b = n - 1
		}
		ans[b]++
	}
	return ans
}

// Histogram plots the number of contigs in n length bins for the terminal.
func Histogram(lengths []int, n int) string {
	bins := Bins(lengths, n)
	if len(bins) == 0 {
		return ""
	}
	s, _ := Compute(lengths)
	return asciigraph.Plot(bins, asciigraph.Height(10), asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("contigs per length bin, %d to %d bp", s.Min, s.Max)))
}
