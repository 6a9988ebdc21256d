// Package samples finds per-sample input files and maps sequence names to sample names.
package samples

import (
	"fmt"
	"github.com/dasnellings/argTools/table"
	"github.com/gocarina/gocsv"
	"github.com/vertgenlab/gonomics/fileio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// NameFiles are the accepted names of the sequence-to-sample table, in lookup order.
var NameFiles = []string{"_sample_names.tsv", "sample_names.tsv", "_sample_name.tsv", "sample_name.tsv"}

// DuplicatesFile is written to the output directory when two sequences share a sample name.
const DuplicatesFile = "duplicated_sample_names.csv"

// Names maps sequence names (file name stems) to sample names.
type Names struct {
	order []string          // sequence names in file order
	m     map[string]string // sequence name -> sample name
}

// Rename returns the sample name for seq, or seq itself when it is not listed.
func (n Names) Rename(seq string) string {
	if s, found := n.m[seq]; found {
		return s
	}
	return seq
}

// Map returns the sequence to sample mapping for table.Rename.
func (n Names) Map() map[string]string {
	return n.m
}

// Len returns the number of listed sequences.
func (n Names) Len() int {
	return len(n.m)
}

// Pair is one line of the sequence-to-sample table.
type Pair struct {
	Sequence string `csv:"sequence"`
	Sample   string `csv:"sample"`
}

// Duplicates returns every pair whose sample name is shared with another
// sequence, sorted by sample name.
func (n Names) Duplicates() []Pair {
	count := make(map[string]int)
	for _, seq := range n.order {
		count[n.m[seq]]++
	}
	var ans []Pair
	for _, seq := range n.order {
		if count[n.m[seq]] > 1 {
			ans = append(ans, Pair{Sequence: seq, Sample: n.m[seq]})
		}
	}
	sort.SliceStable(ans, func(i, j int) bool { return ans[i].Sample < ans[j].Sample })
	return ans
}

// WriteDuplicates writes pairs without a header line.
func WriteDuplicates(filename string, pairs []Pair) error {
	out := fileio.EasyCreate(filename)
	err := gocsv.MarshalWithoutHeaders(&pairs, out)
	closeErr := out.Close()
	if err != nil {
		return err
	}
	return closeErr
}

// ReadNames loads a headerless table of sequence and sample names.
func ReadNames(filename string) (Names, error) {
	t, err := table.Read(filename, table.Tab, false)
	if err != nil {
		return Names{}, err
	}
	if len(t.Header) < 2 {
		return Names{}, fmt.Errorf("%s: expected sequence and sample name columns", filename)
	}
	ans := Names{m: make(map[string]string, t.Len())}
	for _, r := range t.Rows {
		seq := strings.TrimSpace(r[0])
		if seq == "" {
			continue
		}
		if _, found := ans.m[seq]; !found {
			ans.order = append(ans.order, seq)
		}
		ans.m[seq] = strings.TrimSpace(r[1])
	}
	return ans, nil
}

// FindNames loads the first of NameFiles present in dir. found is false when none exists.
func FindNames(dir string) (names Names, file string, found bool, err error) {
	for _, f := range NameFiles {
		file = filepath.Join(dir, f)
		if _, statErr := os.Stat(file); statErr == nil {
			names, err = ReadNames(file)
			return names, file, true, err
		}
	}
	return Names{m: map[string]string{}}, "", false, nil
}

// Glob returns the files in dir ending with suffix, sorted by name.
func Glob(dir, suffix string) ([]string, error) {
	ans, err := filepath.Glob(filepath.Join(dir, "*"+suffix))
	if err != nil {
		return nil, err
	}
	sort.Strings(ans)
	return ans, nil
}

// SequenceName strips the directory and suffix from a per-sample file name.
func SequenceName(file, suffix string) string {
	return strings.TrimSuffix(filepath.Base(file), suffix)
}

// Stem strips the directory, the last extension and then trim from a file name,
// e.g. Stem("out/S1.blast.txt", ".blast") == "S1".
func Stem(file, trim string) string {
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, trim)
}

// Exists reports whether file is present.
func Exists(file string) bool {
	_, err := os.Stat(file)
	return err == nil
}

// MakeDir creates dir and its parents when missing.
func MakeDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
