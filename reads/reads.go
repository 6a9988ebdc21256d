// Package reads summarizes sequence read counts per sample: raw and quality
// trimmed reads, 16S reads and the reads and abundance of ARG and MGE profiles.
package reads

import (
	"encoding/json"
	"fmt"
	"github.com/dasnellings/argTools/profile"
	"github.com/dasnellings/argTools/samples"
	"github.com/dasnellings/argTools/table"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
	"path/filepath"
	"strconv"
)

// Input file suffixes.
const (
	FastpSuffix   = ".report.json"
	BrackenSuffix = "_0.domain.tsv"
)

// Output file names.
const (
	SummaryFile    = "_summary_reads_16S_ARG_MGE.csv"
	SummaryFileARG = "_summary_sequence_reads_16S_ARG.csv"
)

// Summary columns.
const (
	RawReads     = "Raw sequence reads"
	QualityReads = "Quality sequence reads"
	Reads16S     = "Total 16S reads"
	ReadsARG     = "Total ARG reads"
	ReadsMGE     = "Total MGE reads"
	RPK16S       = "Total RPK of 16S"
	RPKARG       = "Total RPK of ARG"
	AbundanceARG = "Total ARG abundance (RPK/RPK-16S)"
	RPKMGE       = "Total RPK of MGE"
	AbundanceMGE = "Total MGE abundance (RPK/RPK-16S)"
)

// Columns returns the summary columns after the sample name column.
func Columns(withMGE bool) []string {
	if withMGE {
		return []string{RawReads, QualityReads, Reads16S, ReadsARG, ReadsMGE, RPK16S, RPKARG, AbundanceARG, RPKMGE, AbundanceMGE}
	}
	return []string{RawReads, QualityReads, Reads16S, ReadsARG, RPK16S, RPKARG, AbundanceARG}
}

type fastpReport struct {
	Summary struct {
		BeforeFiltering struct {
			TotalReads int64 `json:"total_reads"`
		} `json:"before_filtering"`
		AfterFiltering struct {
			TotalReads int64 `json:"total_reads"`
		} `json:"after_filtering"`
	} `json:"summary"`
}

// ReadFastp returns the total reads before and after filtering of a fastp JSON report.
func ReadFastp(file string) (before, after int64, err error) {
	in := fileio.EasyOpen(file)
	var r fastpReport
	err = json.NewDecoder(in).Decode(&r)
	closeErr := in.Close()
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", file, err)
	}
	return r.Summary.BeforeFiltering.TotalReads, r.Summary.AfterFiltering.TotalReads, closeErr
}

// ReadBracken returns the new_est_reads of the Bacteria row of a domain level
// bracken report.
func ReadBracken(file string) (float64, error) {
	t, err := table.ReadTSV(file)
	if err != nil {
		return 0, err
	}
	c := t.Col("new_est_reads")
	if c == -1 {
		return 0, fmt.Errorf("%s: missing column %q", file, "new_est_reads")
	}
	for _, r := range t.Rows {
		if r[0] == "Bacteria" {
			v, err := table.ParseFloat(r[c])
			if err != nil {
				return 0, fmt.Errorf("%s: %w", file, err)
			}
			return v, nil
		}
	}
	return 0, fmt.Errorf("%s: no Bacteria row", file)
}

// ProfileTotals returns the summed reads and RPK of a profile.
func ProfileTotals(file string) (reads, rpk float64, err error) {
	t, err := table.ReadTSV(file)
	if err != nil {
		return 0, 0, err
	}
	reads, err = t.Sum(profile.Reads)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", file, err)
	}
	rpk, err = t.Sum(profile.RPK)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", file, err)
	}
	return reads, rpk, nil
}

// cell holds a value that may be missing.
type cell struct {
	v  float64
	ok bool
}

func (c cell) String() string {
	if !c.ok {
		return ""
	}
	return table.FormatFloat(c.v)
}

func abundance(rpk, rpk16S cell) cell {
	if !rpk.ok || !rpk16S.ok || rpk16S.v == 0 {
		return cell{}
	}
	return cell{rpk.v / rpk16S.v, true}
}

func totals(file string) (reads, rpk cell, err error) {
	if !samples.Exists(file) {
		return cell{}, cell{}, nil
	}
	r, k, err := ProfileTotals(file)
	return cell{r, true}, cell{k, true}, err
}

// Summarize writes one summary row for every fastp report of qtDir. Files of the
// other directories are matched by sequence name and cells with no input file are
// left empty. MGE columns are written only when mgeDir is not empty. len16S is
// the 16S gene length used for the RPK of 16S reads.
func Summarize(qtDir, s16Dir, argDir, mgeDir, outDir string, len16S int, verbose int) (string, error) {
	files, err := samples.Glob(qtDir, FastpSuffix)
	if err != nil {
		return "", err
	}
	withMGE := mgeDir != ""
	ans := table.New(append([]string{""}, Columns(withMGE)...)...)
	if verbose > 0 {
		log.Printf("started. (0/%d)", len(files))
	}
	for i, f := range files {
		name := samples.SequenceName(f, FastpSuffix)
		before, after, err := ReadFastp(f)
		if err != nil {
			return "", err
		}

		var reads16S, rpk16S cell
		if f16S := filepath.Join(s16Dir, name+BrackenSuffix); samples.Exists(f16S) {
			v, err := ReadBracken(f16S)
			if err != nil {
				return "", err
			}
			reads16S = cell{v, true}
			rpk16S = cell{v / float64(len16S) * 1000, true}
		}

		readsARG, rpkARG, err := totals(filepath.Join(argDir, name+profile.ARGSuffix))
		if err != nil {
			return "", err
		}
		row := []string{name, strconv.FormatInt(before, 10), strconv.FormatInt(after, 10), reads16S.String(), readsARG.String()}
		if withMGE {
			readsMGE, rpkMGE, err := totals(filepath.Join(mgeDir, name+profile.MGESuffix))
			if err != nil {
				return "", err
			}
			row = append(row, readsMGE.String(), rpk16S.String(), rpkARG.String(), abundance(rpkARG, rpk16S).String(),
				rpkMGE.String(), abundance(rpkMGE, rpk16S).String())
		} else {
			row = append(row, rpk16S.String(), rpkARG.String(), abundance(rpkARG, rpk16S).String())
		}
		ans.Append(row...)
		if verbose > 0 {
			log.Printf("%s is done. (%d/%d)", name, i+1, len(files))
		}
	}

	err = samples.MakeDir(outDir)
	if err != nil {
		return "", err
	}
	out := filepath.Join(outDir, SummaryFileARG)
	if withMGE {
		out = filepath.Join(outDir, SummaryFile)
	}
	return out, ans.WriteCSV(out)
}

// Summary is a read summary table indexed by sample.
type Summary struct {
	t   *table.Table
	row map[string]int
}

// ReadSummary loads a summary written by Summarize. The first column names the sample.
func ReadSummary(file string) (Summary, error) {
	t, err := table.ReadCSV(file)
	if err != nil {
		return Summary{}, err
	}
	if len(t.Header) == 0 {
		return Summary{}, fmt.Errorf("%s: empty summary", file)
	}
	s := Summary{t: t, row: make(map[string]int, t.Len())}
	for i := range t.Rows {
		if _, found := s.row[t.Rows[i][0]]; !found {
			s.row[t.Rows[i][0]] = i
		}
	}
	return s, nil
}

// Value returns the named column of sample. found is false when the sample or
// column is absent or the cell is empty.
func (s Summary) Value(sample, column string) (v float64, found bool, err error) {
	i, found := s.row[sample]
	if !found {
		return 0, false, nil
	}
	c := s.t.Col(column)
	if c == -1 || s.t.Rows[i][c] == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(s.t.Rows[i][c], 64)
	return v, err == nil, err
}

// Samples returns the sample names in file order.
func (s Summary) Samples() []string {
	ans := make([]string, len(s.t.Rows))
	for i := range s.t.Rows {
		ans[i] = s.t.Rows[i][0]
	}
	return ans
}
