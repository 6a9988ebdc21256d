// Package catalog loads the reference catalogs used to annotate BLAST hits.
package catalog

import (
	"fmt"
	"github.com/dasnellings/argTools/table"
)

// Column names of the CARD aro_index.tsv catalog used by the profiles.
const (
	AROAccession        = "ARO Accession"
	CARDShortName       = "CARD Short Name"
	AMRGeneFamily       = "AMR Gene Family"
	DrugClass           = "Drug Class"
	ResistanceMechanism = "Resistance Mechanism"
)

// MGEColumns names the three non-empty columns of an MGEDB catalog.
var MGEColumns = []string{"sseqid", "Function", "gene name"}

// Catalog is a reference table indexed by one of its columns.
type Catalog struct {
	Header []string
	rows   map[string][]string
}

// Lookup returns the row for key.
func (c Catalog) Lookup(key string) (row []string, found bool) {
	row, found = c.rows[key]
	return row, found
}

// Field returns a named field of the row for key, or "" when either is missing.
func (c Catalog) Field(key, name string) string {
	row, found := c.rows[key]
	if !found {
		return ""
	}
	for i := range c.Header {
		if c.Header[i] == name {
			return row[i]
		}
	}
	return ""
}

// Rows exposes the index for table.LeftJoin.
func (c Catalog) Rows() map[string][]string {
	return c.rows
}

// Len returns the number of distinct keys.
func (c Catalog) Len() int {
	return len(c.rows)
}

func index(t *table.Table, key string) (Catalog, error) {
	k := t.Col(key)
	if k == -1 {
		return Catalog{}, fmt.Errorf("catalog has no %q column", key)
	}
	ans := Catalog{Header: t.Header, rows: make(map[string][]string, t.Len())}
	for _, r := range t.Rows {
		// first entry wins so duplicated accessions cannot multiply profile rows
		if _, found := ans.rows[r[k]]; !found {
			ans.rows[r[k]] = r
		}
	}
	return ans, nil
}

// ReadCARD loads aro_index.tsv indexed by ARO Accession.
func ReadCARD(file string) (Catalog, error) {
	t, err := table.ReadTSV(file)
	if err != nil {
		return Catalog{}, err
	}
	for _, name := range []string{CARDShortName, AMRGeneFamily, DrugClass, ResistanceMechanism} {
		if t.Col(name) == -1 {
			return Catalog{}, fmt.Errorf("%s: catalog has no %q column", file, name)
		}
	}
	return index(t, AROAccession)
}

// ReadMGE loads an MGEDB catalog indexed by sseqid. Columns with no values are
// dropped and the three that remain are named sseqid, Function and gene name.
func ReadMGE(file string, header bool) (Catalog, error) {
	t, err := table.Read(file, table.Tab, header)
	if err != nil {
		return Catalog{}, err
	}
	t = dropEmptyColumns(t)
	if len(t.Header) != len(MGEColumns) {
		return Catalog{}, fmt.Errorf("%s: expected %d non-empty columns in MGEDB catalog, found %d", file, len(MGEColumns), len(t.Header))
	}
	t.Header = append([]string(nil), MGEColumns...)
	return index(t, MGEColumns[0])
}

func dropEmptyColumns(t *table.Table) *table.Table {
	var keep []string
	used := make([]bool, len(t.Header))
	for _, r := range t.Rows {
		for c := range r {
			if r[c] != "" {
				used[c] = true
			}
		}
	}
	var idx []int
	for c := range t.Header {
		if used[c] {
			keep = append(keep, t.Header[c])
			idx = append(idx, c)
		}
	}
	ans := table.New(keep...)
	for _, r := range t.Rows {
		row := make([]string, len(idx))
		for i, c := range idx {
			row[i] = r[c]
		}
		ans.Rows = append(ans.Rows, row)
	}
	return ans
}
