// Package host links ARGs found on assembled contigs to the taxonomy kraken2
// assigned to those contigs.
package host

import (
	"fmt"
	"github.com/dasnellings/argTools/blast"
	"github.com/dasnellings/argTools/catalog"
	"github.com/dasnellings/argTools/profile"
	"github.com/dasnellings/argTools/samples"
	"github.com/dasnellings/argTools/seqid"
	"github.com/dasnellings/argTools/table"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Output file suffixes.
const (
	TaxonSuffix   = ".ctg.taxon.tsv"
	HostSuffix    = ".ctg.ARGhost.tsv"
	SummarySuffix = ".ctg.ARGhost.summary.tsv"
)

// Output columns.
const (
	ContigID = "contig_id"
	TaxID    = "taxid"
	Rank     = "rank"
	Species  = "Species"
	ARGs     = "ARGs"
	NumARG   = "num_ARG"
)

// Unknown names contigs that are unclassified or whose taxid has no name.
const Unknown = "Unknown"

// Taxon is the rank and name of a taxid. Rank is empty when the source has none.
type Taxon struct {
	Rank string
	Name string
}

// ReadNamesDump loads the scientific names of an NCBI taxdump names.dmp file,
// keyed by taxid.
func ReadNamesDump(filename string) (map[string]Taxon, error) {
	file := fileio.EasyOpen(filename)
	ans := make(map[string]Taxon)
	var lineNum int
	var err error
	for line, done := fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		line = strings.TrimSuffix(strings.TrimRight(line, "\r"), "\t|")
		if line == "" {
			continue
		}
		words := strings.Split(line, "\t|\t")
		if len(words) != 4 {
			err = fmt.Errorf("%s: line %d: expected 4 fields, found %d", filename, lineNum, len(words))
			break
		}
		if strings.TrimSpace(words[3]) != "scientific name" {
			continue
		}
		ans[strings.TrimSpace(words[0])] = Taxon{Name: strings.TrimSpace(words[1])}
	}
	closeErr := file.Close()
	if err != nil {
		return nil, err
	}
	return ans, closeErr
}

// ReadInspect loads the report of kraken2-inspect for a kraken2 index, keyed by
// taxid. Comment lines are skipped.
func ReadInspect(filename string) (map[string]Taxon, error) {
	file := fileio.EasyOpen(filename)
	ans := make(map[string]Taxon)
	var lineNum int
	var err error
	for line, done := fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		if strings.TrimSpace(line) == "" {
			continue
		}
		words := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(words) != 6 {
			err = fmt.Errorf("%s: line %d: expected 6 fields, found %d", filename, lineNum, len(words))
			break
		}
		ans[strings.TrimSpace(words[4])] = Taxon{Rank: strings.TrimSpace(words[3]), Name: strings.TrimSpace(words[5])}
	}
	closeErr := file.Close()
	if err != nil {
		return nil, err
	}
	return ans, closeErr
}

// Contig is one classified contig of kraken2 standard output.
type Contig struct {
	ID    string
	TaxID string
	Taxon
}

// ReadKraken loads the classified contigs of kraken2 standard output and names
// them with lookup. Taxids missing from lookup are Unknown.
func ReadKraken(filename string, lookup map[string]Taxon) ([]Contig, error) {
	file := fileio.EasyOpen(filename)
	var ans []Contig
	var lineNum int
	var err error
	for line, done := fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		if strings.TrimSpace(line) == "" {
			continue
		}
		words := strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(words) < 3 {
			err = fmt.Errorf("%s: line %d: expected at least 3 fields, found %d", filename, lineNum, len(words))
			break
		}
		if words[0] != "C" {
			continue
		}
		c := Contig{ID: strings.TrimSpace(words[1]), TaxID: strings.TrimSpace(words[2])}
		t, found := lookup[c.TaxID]
		if !found || t.Name == "" {
			t.Name = Unknown
		}
		c.Taxon = t
		ans = append(ans, c)
	}
	closeErr := file.Close()
	if err != nil {
		return nil, err
	}
	return ans, closeErr
}

// taxonomy is the per-contig taxonomy joined onto hit tables.
type taxonomy struct {
	header []string
	rows   map[string][]string
}

func newTaxonomy(contigs []Contig, withRank bool) taxonomy {
	ans := taxonomy{header: []string{TaxID, Species}, rows: make(map[string][]string, len(contigs))}
	if withRank {
		ans.header = []string{TaxID, Rank, Species}
	}
	for _, c := range contigs {
		if _, found := ans.rows[c.ID]; found {
			continue
		}
		if withRank {
			ans.rows[c.ID] = []string{c.TaxID, c.Rank, c.Name}
		} else {
			ans.rows[c.ID] = []string{c.TaxID, c.Name}
		}
	}
	return ans
}

// join attaches the taxonomy to t by contig id. Contigs without one are Unknown.
func (tx taxonomy) join(t *table.Table) (*table.Table, error) {
	ans, err := t.LeftJoin(ContigID, tx.rows, tx.header)
	if err != nil {
		return nil, err
	}
	for i := range ans.Rows {
		if ans.Get(i, Species) == "" {
			ans.Set(i, Species, Unknown)
		}
	}
	return ans, nil
}

func (tx taxonomy) table(contigs []Contig) *table.Table {
	header := []string{ContigID, Species}
	if slices.Contains(tx.header, Rank) {
		header = []string{ContigID, Rank, Species}
	}
	ans := table.New(header...)
	for _, c := range contigs {
		if len(header) == 3 {
			ans.Append(c.ID, c.Rank, c.Name)
		} else {
			ans.Append(c.ID, c.Name)
		}
	}
	return ans
}

// Summary lists every contig of hits once with its sorted, distinct gene
// symbols joined by ',' and their number. Contigs are sorted by id.
func Summary(hits *table.Table) (*table.Table, error) {
	_, err := hits.Cols(ContigID, profile.GeneSymbol)
	if err != nil {
		return nil, err
	}
	genes := make(map[string][]string)
	var contigs []string
	for i := range hits.Rows {
		c := hits.Get(i, ContigID)
		g := hits.Get(i, profile.GeneSymbol)
		if _, found := genes[c]; !found {
			contigs = append(contigs, c)
		}
		if !slices.Contains(genes[c], g) {
			genes[c] = append(genes[c], g)
		}
	}
	sort.Strings(contigs)
	ans := table.New(ContigID, ARGs, NumARG)
	for _, c := range contigs {
		sort.Strings(genes[c])
		ans.Append(c, strings.Join(genes[c], ","), strconv.Itoa(len(genes[c])))
	}
	return ans, nil
}

// BlastHitTable lists the blast hits of contigs with the ARO accession and gene
// symbol parsed from each CARD sseqid.
func BlastHitTable(records []blast.Record) (*table.Table, error) {
	ans := table.New(append([]string{ContigID, catalog.AROAccession, profile.GeneSymbol}, blast.Columns[1:]...)...)
	for _, r := range records {
		aro, gene, err := seqid.CARD(r.Sseqid)
		if err != nil {
			return nil, err
		}
		ans.Append(append([]string{r.Qseqid, aro, gene}, r.Strings()[1:]...)...)
	}
	return ans, nil
}

// RGIHitTable prefixes an RGI main output table with the contig id of each ORF
// and the first word of its best hit as gene symbol.
func RGIHitTable(rgi *table.Table) (*table.Table, error) {
	_, err := rgi.Cols(profile.RGIContig, profile.RGIBestHitARO)
	if err != nil {
		return nil, err
	}
	ans := table.New(append([]string{ContigID, profile.GeneSymbol}, rgi.Header...)...)
	for i := range rgi.Rows {
		ans.Append(append([]string{
			seqid.ORFContig(strings.TrimSpace(rgi.Get(i, profile.RGIContig))),
			seqid.FirstWord(rgi.Get(i, profile.RGIBestHitARO)),
		}, rgi.Rows[i]...)...)
	}
	return ans, nil
}

// hostStem is the sample part of a hit file name.
func hostStem(file string) string {
	ans := samples.Stem(file, "")
	for _, trim := range []string{"._ARGI", ".ARGI", ".ARG_profile"} {
		ans = strings.TrimSuffix(ans, trim)
	}
	return ans
}

// write stores the taxonomy, host and summary tables in outDir.
func write(tx taxonomy, contigs []Contig, hits *table.Table, krakenFile, hitFile, outDir string) ([]string, error) {
	err := samples.MakeDir(outDir)
	if err != nil {
		return nil, err
	}
	var written []string
	out := filepath.Join(outDir, samples.Stem(krakenFile, ".kraken2")+TaxonSuffix)
	if err = tx.table(contigs).WriteTSV(out); err != nil {
		return written, err
	}
	written = append(written, out)

	joined, err := tx.join(hits)
	if err != nil {
		return written, err
	}
	out = filepath.Join(outDir, hostStem(hitFile)+HostSuffix)
	if err = joined.WriteTSV(out); err != nil {
		return written, err
	}
	written = append(written, out)

	sum, err := Summary(hits)
	if err != nil {
		return written, err
	}
	if sum, err = tx.join(sum); err != nil {
		return written, err
	}
	out = filepath.Join(outDir, hostStem(hitFile)+SummarySuffix)
	if err = sum.WriteTSV(out); err != nil {
		return written, err
	}
	return append(written, out), nil
}

// BlastHost builds the ARG-host tables of blast hits of contigs against CARD,
// with contig taxonomy from kraken2 output named by an NCBI names.dmp file. Hits
// failing f are dropped. The written files are returned.
func BlastHost(namesDmp, blastFile, krakenFile, outDir string, f blast.Filter) ([]string, error) {
	names, err := ReadNamesDump(namesDmp)
	if err != nil {
		return nil, err
	}
	contigs, err := ReadKraken(krakenFile, names)
	if err != nil {
		return nil, err
	}
	hits, err := BlastHitTable(blast.Read(blastFile, f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", blastFile, err)
	}
	return write(newTaxonomy(contigs, false), contigs, hits, krakenFile, blastFile, outDir)
}

// RGIHost builds the ARG-host tables of an RGI main output table, with contig
// taxonomy and rank from kraken2 output named by a kraken2-inspect report. The
// written files are returned.
func RGIHost(inspect, rgiFile, krakenFile, outDir string) ([]string, error) {
	names, err := ReadInspect(inspect)
	if err != nil {
		return nil, err
	}
	contigs, err := ReadKraken(krakenFile, names)
	if err != nil {
		return nil, err
	}
	rgi, err := table.ReadTSV(rgiFile)
	if err != nil {
		return nil, err
	}
	hits, err := RGIHitTable(rgi)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rgiFile, err)
	}
	return write(newTaxonomy(contigs, true), contigs, hits, krakenFile, rgiFile, outDir)
}
