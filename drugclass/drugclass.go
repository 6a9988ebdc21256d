// Package drugclass aggregates ARG profiles by drug class, in RPK per RPK of 16S
// reads.
package drugclass

import (
	"fmt"
	"github.com/dasnellings/argTools/catalog"
	"github.com/dasnellings/argTools/profile"
	"github.com/dasnellings/argTools/reads"
	"github.com/dasnellings/argTools/samples"
	"github.com/dasnellings/argTools/seqid"
	"github.com/dasnellings/argTools/table"
	"github.com/dasnellings/argTools/workbook"
	"golang.org/x/exp/slices"
	"log"
	"path/filepath"
	"sort"
)

const (
	PerRPK16S    = "RPK/RPK-16S"
	EachSuffix   = ".ARG_profile+drug_class.tsv"
	WorkbookFile = "ARG.drug_class.per_16S.xlsx"
	efflux       = "efflux"
)

// Subset selects the profile rows summed into one output table.
type Subset struct {
	Sheet string // workbook sheet name
	File  string // csv output name
	Keep  func(mar, mechanism string) bool
}

// Subsets are the output tables in order.
var Subsets = []Subset{
	{"all", "ARG.drug_class.all.per_16S.csv", func(mar, mech string) bool { return true }},
	{"single_ARG", "ARG.drug_class.single.per_16S.csv", func(mar, mech string) bool { return single(mar) }},
	{"non-efflux", "ARG.drug_class.nonefflux.per_16S.csv", func(mar, mech string) bool { return mech != efflux }},
	{"efflux", "ARG.drug_class.efflux.per_16S.csv", func(mar, mech string) bool { return mech == efflux }},
}

func single(mar string) bool {
	n, err := table.ParseFloat(mar)
	return err == nil && n == 1
}

// Options selects the outputs of Aggregate.
type Options struct {
	CSV  bool // write one csv per subset instead of a workbook
	Each bool // also write every profile with its drug class columns
}

// Profile is one ARG profile with values in RPK per RPK of 16S reads.
type Profile struct {
	Sample  string
	Drugs   []string   // drug classes in order of first appearance
	Value   []float64  // RPK/RPK-16S of each row
	Classes [][]string // drug classes of each row
	MAR     []string
	Mech    []string
	Table   *table.Table
}

// ReadProfile loads an ARG profile and rescales prop_RPK by rrpk, the ratio of
// total ARG RPK to 16S RPK of the sample.
func ReadProfile(file, sample string, rrpk float64) (Profile, error) {
	t, err := table.ReadTSV(file)
	if err != nil {
		return Profile{}, err
	}
	prop, err := t.Floats(profile.PropRPK)
	if err != nil {
		return Profile{}, fmt.Errorf("%s: %w", file, err)
	}
	if _, err = t.Cols(catalog.DrugClass, profile.MAR, catalog.ResistanceMechanism); err != nil {
		return Profile{}, fmt.Errorf("%s: %w", file, err)
	}
	p := Profile{Sample: sample, Table: t}
	p.Value = make([]float64, t.Len())
	p.Classes = make([][]string, t.Len())
	p.MAR, _ = t.Column(profile.MAR)
	p.Mech, _ = t.Column(catalog.ResistanceMechanism)
	for i := range t.Rows {
		p.Value[i] = prop[i] * rrpk
		p.Classes[i] = seqid.DrugClasses(t.Get(i, catalog.DrugClass))
		for _, d := range p.Classes[i] {
			if !slices.Contains(p.Drugs, d) {
				p.Drugs = append(p.Drugs, d)
			}
		}
	}
	return p, nil
}

// Sum returns the total of every drug class of p over the rows kept by s. Every
// drug class of the profile is present, with 0 when no kept row confers it.
func (p Profile) Sum(s Subset) map[string]float64 {
	ans := make(map[string]float64, len(p.Drugs))
	for _, d := range p.Drugs {
		ans[d] = 0
	}
	for i := range p.Value {
		if !s.Keep(p.MAR[i], p.Mech[i]) {
			continue
		}
		for _, d := range p.Classes[i] {
			ans[d] += p.Value[i]
		}
	}
	return ans
}

// WithDrugClasses returns the profile with the RPK/RPK-16S column and one column
// per drug class holding the row value when the row confers the class.
func (p Profile) WithDrugClasses() *table.Table {
	ans := table.New(append(append(append([]string(nil), p.Table.Header...), PerRPK16S), p.Drugs...)...)
	for i, r := range p.Table.Rows {
		row := append(append([]string(nil), r...), table.FormatFloat(p.Value[i]))
		for _, d := range p.Drugs {
			if slices.Contains(p.Classes[i], d) {
				row = append(row, table.FormatFloat(p.Value[i]))
			} else {
				row = append(row, "0")
			}
		}
		ans.Append(row...)
	}
	return ans
}

// SampleTable lays out per-sample sums as one row per sample and one column per drug
// class, sorted by name. Drug classes missing from a sample are 0.
func SampleTable(sums []map[string]float64, names []string) *table.Table {
	var drugs []string
	for _, s := range sums {
		for d := range s {
			if !slices.Contains(drugs, d) {
				drugs = append(drugs, d)
			}
		}
	}
	sort.Strings(drugs)
	ans := table.New(append([]string{""}, drugs...)...)
	for i, s := range sums {
		row := []string{names[i]}
		for _, d := range drugs {
			row = append(row, table.FormatFloat(s[d]))
		}
		ans.Append(row...)
	}
	return ans
}

// Aggregate sums the ARG profiles of argDir by drug class for every Subset and
// writes the tables to outDir. summaryFile is a read summary giving the total
// RPK of ARGs and of 16S reads of each sample. The written files are returned.
func Aggregate(summaryFile, argDir, outDir string, opts Options, verbose int) ([]string, error) {
	files, err := samples.Glob(argDir, profile.ARGSuffix)
	if err != nil {
		return nil, err
	}
	if verbose > 0 {
		log.Printf("started. (%d profiles are found.)", len(files))
	}
	err = samples.MakeDir(outDir)
	if err != nil {
		return nil, err
	}
	summary, err := reads.ReadSummary(summaryFile)
	if err != nil {
		return nil, err
	}
	names, _, found, err := samples.FindNames(argDir)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Printf("WARNING: no sample name table in %s.", argDir)
	}

	var written []string
	sums := make([][]map[string]float64, len(Subsets))
	var sampleNames []string
	for i, f := range files {
		name := samples.SequenceName(f, profile.ARGSuffix)
		rrpk, err := ratio(summary, name)
		if err != nil {
			return written, fmt.Errorf("%s: %w", summaryFile, err)
		}
		p, err := ReadProfile(f, name, rrpk)
		if err != nil {
			return written, err
		}
		if opts.Each {
			out := filepath.Join(outDir, name+EachSuffix)
			if err = p.WithDrugClasses().WriteTSV(out); err != nil {
				return written, err
			}
			written = append(written, out)
			if verbose > 0 {
				log.Printf("%s was created. (%d/%d)", out, i+1, len(files))
			}
		}
		for j := range Subsets {
			sums[j] = append(sums[j], p.Sum(Subsets[j]))
		}
		sampleNames = append(sampleNames, names.Rename(name))
	}

	tables := make([]*table.Table, len(Subsets))
	for j := range Subsets {
		tables[j] = SampleTable(sums[j], sampleNames)
	}

	if opts.CSV {
		for j, s := range Subsets {
			out := filepath.Join(outDir, s.File)
			if err = tables[j].WriteCSV(out); err != nil {
				return written, err
			}
			written = append(written, out)
			if verbose > 0 {
				log.Printf("%s was created.", out)
			}
		}
	} else {
		sheets := make([]workbook.Sheet, len(Subsets))
		for j, s := range Subsets {
			sheets[j] = workbook.Sheet{Name: s.Sheet, Table: tables[j]}
		}
		out := filepath.Join(outDir, WorkbookFile)
		if err = workbook.Write(out, sheets); err != nil {
			return written, err
		}
		written = append(written, out)
		if verbose > 0 {
			log.Printf("%s was created.", out)
		}
	}
	return written, nil
}

// ratio is the total RPK of ARGs over the total RPK of 16S reads of sample.
func ratio(summary reads.Summary, sample string) (float64, error) {
	arg, found, err := summary.Value(sample, reads.RPKARG)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("no %q for %s", reads.RPKARG, sample)
	}
	s16, found, err := summary.Value(sample, reads.RPK16S)
	if err != nil {
		return 0, err
	}
	if !found || s16 == 0 {
		return 0, fmt.Errorf("no %q for %s", reads.RPK16S, sample)
	}
	return arg / s16, nil
}
