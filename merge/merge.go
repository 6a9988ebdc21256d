// Package merge combines per-sample profiles into one table with a column per
// sample and sums the samples by profile category.
package merge

import (
	"fmt"
	"github.com/dasnellings/argTools/catalog"
	"github.com/dasnellings/argTools/profile"
	"github.com/dasnellings/argTools/samples"
	"github.com/dasnellings/argTools/table"
	"log"
	"path/filepath"
	"strings"
)

// Config describes one kind of profile to merge.
type Config struct {
	Prefix     string   // first word of category output names, e.g. ARG
	Suffix     string   // profile file suffix, removed to name samples
	Param      string   // value column copied from each profile
	Key        []string // columns identifying a row across samples
	Categories []string // columns summed into category tables

	SortMerged       bool            // order merged rows by total over samples
	SortMergedKeys   []string        // key columns added to the SortMerged total
	SortCategory     map[string]bool // categories ordered by total over samples
	SortSamples      bool            // order sample columns by name, descending
	ReportDuplicates bool            // write samples.DuplicatesFile when sample names collide
}

// ARGPreset merges ARG profiles.
var ARGPreset = Config{
	Prefix:       "ARG",
	Suffix:       profile.ARGSuffix,
	Param:        profile.PropRPK,
	Key:          []string{catalog.AROAccession, profile.GeneSymbol, catalog.CARDShortName, catalog.DrugClass, profile.MAR, catalog.ResistanceMechanism, profile.Slen},
	Categories:   []string{profile.MAR, catalog.ResistanceMechanism, profile.GeneSymbol, catalog.CARDShortName},
	SortCategory: map[string]bool{profile.GeneSymbol: true},
}

// MGEPreset merges MGE profiles.
var MGEPreset = Config{
	Prefix:           "MGE",
	Suffix:           profile.MGESuffix,
	Param:            profile.PropRPK,
	Key:              []string{profile.Sseqid, profile.MGEDBID, profile.GeneSymbol, profile.Function, profile.Slen},
	Categories:       []string{profile.GeneSymbol, profile.Function},
	SortMerged:       true,
	SortMergedKeys:   []string{profile.Slen},
	SortCategory:     map[string]bool{profile.GeneSymbol: true, profile.Function: true},
	SortSamples:      true,
	ReportDuplicates: true,
}

// Result summarizes a curation run.
type Result struct {
	Files    int      // profiles merged
	Warnings int      // problems worth a look that did not stop the run
	Outputs  []string // files written
}

// MergedName is the name of the merged table written for cfg.
func (cfg Config) MergedName() string {
	ext := filepath.Ext(cfg.Suffix)
	return "_merged" + strings.TrimSuffix(cfg.Suffix, ext) + "." + cfg.Param + ext
}

// CategoryName is the name of the category table written for cat.
func (cfg Config) CategoryName(cat string) string {
	return cfg.Prefix + "." + strings.ReplaceAll(cat, " ", "_") + "." + cfg.Param + ".csv"
}

// Join reads the Key and Param columns of every file and outer joins them on Key.
// The Param column of each file is named after the file with suffix removed.
// Rows are ordered by key and missing sample values are set to 0.
func Join(files []string, key []string, param, suffix string, verbose int) (*table.Table, error) {
	var joined *table.Table
	for _, f := range files {
		t, err := table.ReadTSV(f)
		if err != nil {
			return nil, err
		}
		cols := append(append([]string(nil), key...), param)
		t = t.Select(cols...)
		t.Header[len(key)] = samples.SequenceName(f, suffix)
		if joined == nil {
			joined = t
		} else {
			joined, err = table.OuterJoin(joined, t, key, "")
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f, err)
			}
		}
		if verbose > 0 {
			log.Printf("%s merged.", f)
		}
	}
	if joined == nil {
		return nil, fmt.Errorf("no profiles to merge")
	}
	joined.Fill("0", joined.Header[len(key):]...)
	return joined, nil
}

// Curate merges every profile in inDir ending with cfg.Suffix and writes the
// merged table and one table per category to outDir. Samples are renamed with
// the sample name table of inDir when there is one.
func Curate(cfg Config, inDir, outDir string, verbose int) (Result, error) {
	var res Result
	files, err := samples.Glob(inDir, cfg.Suffix)
	if err != nil {
		return res, err
	}
	if len(files) == 0 {
		return res, fmt.Errorf("no *%s files in %s", cfg.Suffix, inDir)
	}
	err = samples.MakeDir(outDir)
	if err != nil {
		return res, err
	}

	names, namesFile, found, err := samples.FindNames(inDir)
	if err != nil {
		return res, err
	}
	if found && verbose > 0 {
		log.Printf("'%s' is found. The results will be output with sample names.", filepath.Base(namesFile))
	}
	if found && cfg.ReportDuplicates {
		if dup := names.Duplicates(); len(dup) > 0 {
			out := filepath.Join(outDir, samples.DuplicatesFile)
			log.Printf("WARNING: There are duplicated sample names. Check the list in '%s'", samples.DuplicatesFile)
			if err = samples.WriteDuplicates(out, dup); err != nil {
				return res, err
			}
			res.Outputs = append(res.Outputs, out)
			res.Warnings++
		}
	}

	joined, err := Join(files, cfg.Key, cfg.Param, cfg.Suffix, verbose)
	if err != nil {
		return res, err
	}
	res.Files = len(files)
	sampleCols := append([]string(nil), joined.Header[len(cfg.Key):]...)
	if cfg.SortMerged {
		total := append(append([]string(nil), cfg.SortMergedKeys...), sampleCols...)
		if err = joined.SortByRowSum(total); err != nil {
			return res, err
		}
	}

	merged := table.New(joined.Header...)
	merged.Rows = joined.Rows
	merged.Rename(names.Map())
	out := filepath.Join(outDir, cfg.MergedName())
	if err = merged.WriteTSV(out); err != nil {
		return res, err
	}
	res.Outputs = append(res.Outputs, out)
	if verbose > 0 {
		log.Printf("Merged profile was created.")
	}

	for _, cat := range cfg.Categories {
		sum, err := joined.GroupSum(cat, sampleCols)
		if err != nil {
			return res, err
		}
		if cfg.SortCategory[cat] {
			if err = sum.SortByRowSum(sampleCols); err != nil {
				return res, err
			}
		}
		sum.Rename(names.Map())
		if cfg.SortSamples {
			sum.SortColumns(1, true)
		}
		out = filepath.Join(outDir, cfg.CategoryName(cat))
		if err = sum.Transpose("").WriteCSV(out); err != nil {
			return res, err
		}
		res.Outputs = append(res.Outputs, out)
		if verbose > 0 {
			log.Printf("%s was created.", filepath.Base(out))
		}
	}
	return res, nil
}

// MergeFiles outer joins the param column of files, given relative to inDir, on
// a single key column and writes the table to outFile.
func MergeFiles(key, param, suffix, inDir string, files []string, outFile string, verbose int) error {
	paths := make([]string, len(files))
	for i := range files {
		paths[i] = filepath.Join(inDir, files[i])
	}
	joined, err := Join(paths, []string{key}, param, suffix, verbose)
	if err != nil {
		return err
	}
	return joined.WriteTSV(outFile)
}
