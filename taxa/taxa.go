// Package taxa merges per-sample 16S taxonomy abundance tables in mpa format and
// summarizes them for each taxonomic rank.
package taxa

import (
	"fmt"
	"github.com/dasnellings/argTools/samples"
	"github.com/dasnellings/argTools/table"
	"log"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	Suffix     = ".mpa.tsv"
	Taxonomy   = "taxonomy"
	Abundance  = "abundance"
	Eukaryota  = "d__Eukaryota"
	Unassigned = "-"
)

// Ranks are the taxonomy levels of an mpa string, in order.
var Ranks = []string{"domain", "phylum", "class", "order", "family", "genus"}

var rankPrefix = regexp.MustCompile(`^[dpcofg]__`)

// Split breaks an mpa taxonomy string into the six Ranks. Rank prefixes are
// removed and missing levels are Unassigned.
func Split(taxonomy string) []string {
	ans := make([]string, len(Ranks))
	words := strings.SplitN(taxonomy, "|", len(Ranks))
	for i := range ans {
		if i < len(words) {
			ans[i] = rankPrefix.ReplaceAllString(words[i], "")
		} else {
			ans[i] = Unassigned
		}
	}
	return ans
}

// ReadMPA loads a headerless taxonomy and read count table. Eukaryote rows are
// dropped, counts are converted to relative abundance and taxa at or below
// threshold are removed.
func ReadMPA(file string, threshold float64) (*table.Table, error) {
	raw, err := table.Read(file, table.Tab, false)
	if err != nil {
		return nil, err
	}
	if len(raw.Header) < 2 {
		return nil, fmt.Errorf("%s: expected taxonomy and abundance columns", file)
	}
	raw.Header[0], raw.Header[1] = Taxonomy, Abundance
	raw = raw.Where(func(r []string) bool { return !strings.Contains(r[0], Eukaryota) })

	vals, err := raw.Floats(Abundance)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	var total float64
	for _, v := range vals {
		total += v
	}
	ans := table.New(Taxonomy, Abundance)
	if total == 0 {
		return ans, nil
	}
	for i := range raw.Rows {
		rel := vals[i] / total
		if rel > threshold {
			ans.Append(raw.Rows[i][0], table.FormatFloat(rel))
		}
	}
	return ans, nil
}

// Curate16S merges every *.mpa.tsv file of inDir and writes the merged table,
// a sample by taxonomy table and one sample by taxon table per rank below domain.
// The written files are returned.
func Curate16S(inDir, outDir string, threshold float64, verbose int) ([]string, error) {
	files, err := samples.Glob(inDir, Suffix)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no *%s files in %s", Suffix, inDir)
	}
	names, _, _, err := samples.FindNames(inDir)
	if err != nil {
		return nil, err
	}

	var joined *table.Table
	for _, f := range files {
		t, err := ReadMPA(f, threshold)
		if err != nil {
			return nil, err
		}
		t.Header[1] = samples.SequenceName(f, Suffix)
		if joined == nil {
			joined = t
		} else if joined, err = table.OuterJoin(joined, t, []string{Taxonomy}, ""); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		if verbose > 0 {
			log.Printf("%s merged.", f)
		}
	}
	sampleCols := append([]string(nil), joined.Header[1:]...)
	joined.Fill("0", sampleCols...)

	// rank columns, then taxonomy, then samples
	full := table.New(append(append([]string(nil), Ranks...), joined.Header...)...)
	for _, r := range joined.Rows {
		full.Append(append(Split(r[0]), r...)...)
	}

	err = samples.MakeDir(outDir)
	if err != nil {
		return nil, err
	}
	var written []string
	write := func(t *table.Table, name string, delim rune) error {
		out := filepath.Join(outDir, name)
		if err := t.Write(out, delim); err != nil {
			return err
		}
		written = append(written, out)
		if verbose > 0 {
			log.Printf("%s was created.", name)
		}
		return nil
	}

	merged := table.New(full.Header...)
	merged.Rows = full.Rows
	merged.Rename(names.Map())
	if err = write(merged, "_merged.16S."+Abundance+".tsv", table.Tab); err != nil {
		return written, err
	}

	if err = full.SortByRowSum(sampleCols); err != nil {
		return written, err
	}
	mpa := full.Select(append([]string{Taxonomy}, sampleCols...)...)
	mpa.Rename(names.Map())
	if err = write(mpa.Transpose(""), "16S."+Abundance+".mpa.csv", table.Comma); err != nil {
		return written, err
	}

	for i, rank := range Ranks[1:] {
		byRank, err := RankTable(full, rank, sampleCols)
		if err != nil {
			return written, err
		}
		byRank.Rename(names.Map())
		name := "16S." + Abundance + "." + strconv.Itoa(i+1) + "_" + rank + ".csv"
		if err = write(byRank.Transpose(""), name, table.Comma); err != nil {
			return written, err
		}
	}
	return written, nil
}

// RankTable sums the sample columns of t by the rank column, leaving out
// Unassigned taxa, and rescales each sample to a total of 1. Taxa are ordered by
// their total over samples, largest first.
func RankTable(t *table.Table, rank string, sampleCols []string) (*table.Table, error) {
	c := t.Col(rank)
	if c == -1 {
		return nil, fmt.Errorf("missing column %q", rank)
	}
	assigned := t.Where(func(r []string) bool { return r[c] != Unassigned })
	ans, err := assigned.GroupSum(rank, sampleCols)
	if err != nil {
		return nil, err
	}
	for j := 1; j < len(ans.Header); j++ {
		vals, err := ans.Floats(ans.Header[j])
		if err != nil {
			return nil, err
		}
		var total float64
		for _, v := range vals {
			total += v
		}
		if total == 0 {
			continue
		}
		for i := range ans.Rows {
			ans.Rows[i][j] = table.FormatFloat(vals[i] / total)
		}
	}
	return ans, ans.SortByRowSum(sampleCols)
}
