// Package profile builds per-sample ARG and MGE abundance profiles from read
// alignments against reference catalogs.
package profile

import (
	"fmt"
	"github.com/dasnellings/argTools/blast"
	"github.com/dasnellings/argTools/catalog"
	"github.com/dasnellings/argTools/samples"
	"github.com/dasnellings/argTools/seqid"
	"github.com/dasnellings/argTools/table"
	"path/filepath"
	"strconv"
)

// File suffixes of the profiles written by this package.
const (
	ARGSuffix        = ".ARG_profile.tsv"
	MGESuffix        = ".MGE_profile.tsv"
	MGESummarySuffix = ".MGE_profile.summary.tsv"
	RGISuffix        = ".ARGIprof.tsv"
)

// Column names shared by the profiles.
const (
	Sseqid     = "sseqid"
	GeneSymbol = "gene symbol"
	MGEDBID    = "MGEDB ID"
	Function   = "Function"
	GeneName   = "gene name"
	MAR        = "MAR"
	Slen       = "slen"
	Reads      = "reads"
	RPK        = "RPK"
	PropRPK    = "prop_RPK"
)

// ARGColumns is the column order of an ARG profile.
var ARGColumns = []string{Sseqid, catalog.AROAccession, GeneSymbol, catalog.CARDShortName, catalog.AMRGeneFamily, catalog.DrugClass, MAR, catalog.ResistanceMechanism, Slen, Reads, RPK, PropRPK}

// MGEColumns is the column order of an MGE profile.
var MGEColumns = []string{Sseqid, MGEDBID, GeneSymbol, Function, GeneName, Slen, Reads, RPK, PropRPK}

// MGESummaryColumns is the column order of an MGE profile summary.
var MGESummaryColumns = []string{GeneSymbol, Function, Reads, RPK, PropRPK}

// ARG counts hits of blastFile against CARD, annotates them from the catalog and
// writes <stem>.ARG_profile.tsv to outDir. The output filename is returned.
func ARG(card catalog.Catalog, blastFile, outDir string, f blast.Filter) (string, error) {
	hits := blast.Count(blast.Read(blastFile, f))
	t, err := ARGTable(card, hits)
	if err != nil {
		return "", fmt.Errorf("%s: %w", blastFile, err)
	}
	err = samples.MakeDir(outDir)
	if err != nil {
		return "", err
	}
	out := filepath.Join(outDir, samples.Stem(blastFile, ".blast")+ARGSuffix)
	return out, t.WriteTSV(out)
}

// ARGTable converts counted CARD hits into profile rows.
func ARGTable(card catalog.Catalog, hits []blast.Hit) (*table.Table, error) {
	t := table.New(ARGColumns...)
	for _, h := range hits {
		aro, gene, err := seqid.CARD(h.Sseqid)
		if err != nil {
			return nil, err
		}
		drug := seqid.SlimDrugClass(card.Field(aro, catalog.DrugClass))
		t.Append(
			h.Sseqid,
			aro,
			gene,
			card.Field(aro, catalog.CARDShortName),
			card.Field(aro, catalog.AMRGeneFamily),
			drug,
			marString(drug),
			seqid.SlimMechanism(card.Field(aro, catalog.ResistanceMechanism)),
			strconv.Itoa(h.Slen),
			strconv.Itoa(h.Reads),
			table.FormatFloat(h.RPK),
			table.FormatFloat(h.PropRPK))
	}
	return t, nil
}

func marString(drugClass string) string {
	if n, ok := seqid.MAR(drugClass); ok {
		return strconv.Itoa(n)
	}
	return ""
}

// MGE counts hits of blastFile against MGEDB and writes <stem>.MGE_profile.tsv and
// <stem>.MGE_profile.summary.tsv to outDir.
func MGE(mgedb catalog.Catalog, blastFile, outDir string, f blast.Filter) (profileFile, summaryFile string, err error) {
	hits := blast.Count(blast.Read(blastFile, f))
	t, err := MGETable(mgedb, hits)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", blastFile, err)
	}
	sum, err := MGESummary(t)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", blastFile, err)
	}
	err = samples.MakeDir(outDir)
	if err != nil {
		return "", "", err
	}
	stem := samples.Stem(blastFile, ".blast")
	profileFile = filepath.Join(outDir, stem+MGESuffix)
	summaryFile = filepath.Join(outDir, stem+MGESummarySuffix)
	if err = t.WriteTSV(profileFile); err != nil {
		return "", "", err
	}
	return profileFile, summaryFile, sum.WriteTSV(summaryFile)
}

// MGETable converts counted MGEDB hits into profile rows.
func MGETable(mgedb catalog.Catalog, hits []blast.Hit) (*table.Table, error) {
	t := table.New(MGEColumns...)
	for _, h := range hits {
		id, gene, err := seqid.MGE(h.Sseqid)
		if err != nil {
			return nil, err
		}
		t.Append(
			h.Sseqid,
			id,
			gene,
			mgedb.Field(h.Sseqid, Function),
			mgedb.Field(h.Sseqid, GeneName),
			strconv.Itoa(h.Slen),
			strconv.Itoa(h.Reads),
			table.FormatFloat(h.RPK),
			table.FormatFloat(h.PropRPK))
	}
	return t, nil
}

type mgeKey struct {
	gene     string
	function string
}

// MGESummary sums reads, RPK and prop_RPK of an MGE profile by gene symbol and
// Function. Missing functions are reported as NA. Rows are sorted by RPK, largest first.
func MGESummary(t *table.Table) (*table.Table, error) {
	reads, err := t.Floats(Reads)
	if err != nil {
		return nil, err
	}
	rpk, err := t.Floats(RPK)
	if err != nil {
		return nil, err
	}
	prop, err := t.Floats(PropRPK)
	if err != nil {
		return nil, err
	}
	genes, err := t.Column(GeneSymbol)
	if err != nil {
		return nil, err
	}
	functions, err := t.Column(Function)
	if err != nil {
		return nil, err
	}

	idx := make(map[mgeKey]int)
	var keys []mgeKey
	var sums [][3]float64
	for i := range genes {
		k := mgeKey{genes[i], functions[i]}
		if k.function == "" {
			k.function = "NA"
		}
		j, found := idx[k]
		if !found {
			j = len(keys)
			idx[k] = j
			keys = append(keys, k)
			sums = append(sums, [3]float64{})
		}
		sums[j][0] += reads[i]
		sums[j][1] += rpk[i]
		sums[j][2] += prop[i]
	}

	ans := table.New(MGESummaryColumns...)
	for j, k := range keys {
		ans.Append(k.gene, k.function, table.FormatFloat(sums[j][0]), table.FormatFloat(sums[j][1]), table.FormatFloat(sums[j][2]))
	}
	return ans, ans.SortByColumn(RPK, true)
}
