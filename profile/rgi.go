package profile

import (
	"fmt"
	"github.com/dasnellings/argTools/blast"
	"github.com/dasnellings/argTools/catalog"
	"github.com/dasnellings/argTools/samples"
	"github.com/dasnellings/argTools/seqid"
	"github.com/dasnellings/argTools/table"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Columns of an RGI main output table used to build a profile.
const (
	RGIContig         = "Contig"
	RGIStart          = "Start"
	RGIStop           = "Stop"
	RGICutOff         = "Cut_Off"
	RGIBestIdentities = "Best_Identities"
	RGIBestHitARO     = "Best_Hit_ARO"
	RGIARO            = "ARO"
	RGIModelID        = "Model_ID"
	RGIPredictedDNA   = "Predicted_DNA"
	RGIDrugClass      = "Drug Class"
	RGIMechanism      = "Resistance Mechanism"
	RGIAMRGeneFamily  = "AMR Gene Family"
)

// rgiTrim is removed from RGI output names along with the extension.
const rgiTrim = "._ARGI"

// RGIColumns is the column order of an RGI profile.
var RGIColumns = []string{RGIContig, catalog.AROAccession, GeneSymbol, catalog.CARDShortName, catalog.AMRGeneFamily, catalog.DrugClass, MAR, catalog.ResistanceMechanism, Slen, Reads, RPK, PropRPK}

// RGIPass reports whether row i of an RGI table is kept. Perfect and Strict hits
// always pass. Loose hits need Best_Identities >= f.MinPident and a query
// length of at least f.MinLength.
func RGIPass(t *table.Table, i int, f blast.Filter) (bool, error) {
	switch t.Get(i, RGICutOff) {
	case "Perfect", "Strict":
		return true, nil
	case "Loose":
	default:
		return false, nil
	}
	ident, err := table.ParseFloat(t.Get(i, RGIBestIdentities))
	if err != nil {
		return false, fmt.Errorf("row %d: %w", i+1, err)
	}
	qlen, err := rgiQueryLength(t, i)
	if err != nil {
		return false, err
	}
	return ident >= f.MinPident && qlen >= f.MinLength, nil
}

func rgiQueryLength(t *table.Table, i int) (int, error) {
	start, err := strconv.Atoi(strings.TrimSpace(t.Get(i, RGIStart)))
	if err != nil {
		return 0, fmt.Errorf("row %d: %w", i+1, err)
	}
	stop, err := strconv.Atoi(strings.TrimSpace(t.Get(i, RGIStop)))
	if err != nil {
		return 0, fmt.Errorf("row %d: %w", i+1, err)
	}
	return stop - start + 1, nil
}

type rgiGroup struct {
	first  int // row of the first hit
	reads  int
	length int // summed Predicted_DNA length
}

// RGITable builds a profile of an RGI main output table. Hits are grouped by
// Model_ID; slen is the mean predicted gene length of a group and the
// annotations come from its first hit.
func RGITable(rgi *table.Table, f blast.Filter) (*table.Table, error) {
	_, err := rgi.Cols(RGIContig, RGIStart, RGIStop, RGICutOff, RGIBestIdentities, RGIBestHitARO, RGIARO, RGIModelID, RGIPredictedDNA)
	if err != nil {
		return nil, err
	}

	// strict hits are counted before loose ones
	var strict, loose []int
	var pass bool
	for i := range rgi.Rows {
		pass, err = RGIPass(rgi, i, f)
		if err != nil {
			return nil, err
		}
		switch {
		case !pass:
		case rgi.Get(i, RGICutOff) == "Loose":
			loose = append(loose, i)
		default:
			strict = append(strict, i)
		}
	}

	groups := make(map[string]*rgiGroup)
	var models []string
	for _, i := range append(strict, loose...) {
		m := rgi.Get(i, RGIModelID)
		g, found := groups[m]
		if !found {
			g = &rgiGroup{first: i}
			groups[m] = g
			models = append(models, m)
		}
		g.reads++
		g.length += len(rgi.Get(i, RGIPredictedDNA))
	}
	sort.SliceStable(models, func(i, j int) bool { return table.KeyLess(models[i], models[j]) })

	slen := make([]float64, len(models))
	rpk := make([]float64, len(models))
	var total float64
	for j, m := range models {
		g := groups[m]
		slen[j] = float64(g.length) / float64(g.reads)
		if slen[j] > 0 {
			rpk[j] = float64(g.reads) / slen[j] * 1000
		}
		total += rpk[j]
	}

	ans := table.New(RGIColumns...)
	for j, m := range models {
		g := groups[m]
		var prop float64
		if total > 0 {
			prop = rpk[j] / total
		}
		short := rgi.Get(g.first, RGIBestHitARO)
		drug := seqid.SlimDrugClass(rgi.Get(g.first, RGIDrugClass))
		ans.Append(
			rgi.Get(g.first, RGIContig),
			rgi.Get(g.first, RGIARO),
			seqid.FirstWord(short),
			short,
			rgi.Get(g.first, RGIAMRGeneFamily),
			drug,
			marString(drug),
			seqid.SlimMechanism(rgi.Get(g.first, RGIMechanism)),
			table.FormatFloat(slen[j]),
			strconv.Itoa(g.reads),
			table.FormatFloat(rpk[j]),
			table.FormatFloat(prop))
	}
	return ans, ans.SortByColumn(RPK, true)
}

// RGI reads an RGI main output table and writes <stem>.ARGIprof.tsv to outDir.
func RGI(rgiFile, outDir string, f blast.Filter) (string, error) {
	rgi, err := table.ReadTSV(rgiFile)
	if err != nil {
		return "", err
	}
	t, err := RGITable(rgi, f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", rgiFile, err)
	}
	err = samples.MakeDir(outDir)
	if err != nil {
		return "", err
	}
	out := filepath.Join(outDir, samples.Stem(rgiFile, rgiTrim)+RGISuffix)
	return out, t.WriteTSV(out)
}
