// Package seqid extracts accessions and gene symbols from reference sequence ids.
package seqid

import (
	"fmt"
	"regexp"
	"strings"
)

// allele suffix: lower case letters and numbers after a '-', '.' or '|' at the end of the symbol.
var alleleSuffix = regexp.MustCompile(`[-|.][0-9a-z]+$`)

// orf suffix added by prodigal to the contig name, e.g. "k141_22_3".
var orfSuffix = regexp.MustCompile(`_[0-9 ]+$`)

// CARD parses a CARD nucleotide sseqid, e.g.
// gb|AF038993|+|0-1509|ARO:3000318|mphB [Escherichia coli]
// The ARO accession is field 4 and the gene symbol field 5 without its allele suffix.
func CARD(sseqid string) (aro string, gene string, err error) {
	words := strings.Split(sseqid, "|")
	if len(words) < 6 {
		return "", "", fmt.Errorf("malformed CARD sseqid %q: expected at least 6 '|' delimited fields", sseqid)
	}
	return words[4], GeneSymbol(words[5]), nil
}

// GeneSymbol removes the allele suffix from a CARD gene name.
func GeneSymbol(s string) string {
	return alleleSuffix.ReplaceAllString(s, "")
}

// MGE parses an MGEDB sseqid, e.g. 1001_IS26_IS6. The id is field 0 and the gene symbol field 1.
func MGE(sseqid string) (id string, gene string, err error) {
	words := strings.Split(sseqid, "_")
	if len(words) < 2 {
		return "", "", fmt.Errorf("malformed MGEDB sseqid %q: expected at least 2 '_' delimited fields", sseqid)
	}
	return words[0], words[1], nil
}

// ORFContig recovers the contig id from an ORF id.
func ORFContig(orf string) string {
	return orfSuffix.ReplaceAllString(orf, "")
}

// FirstWord returns s up to the first space.
func FirstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i != -1 {
		return s[:i]
	}
	return s
}

// SlimDrugClass shortens "tetracycline antibiotic" to "tetracycline".
func SlimDrugClass(s string) string {
	return strings.ReplaceAll(s, " antibiotic", "")
}

// SlimMechanism shortens "antibiotic efflux" to "efflux".
func SlimMechanism(s string) string {
	return strings.ReplaceAll(s, "antibiotic ", "")
}

// MAR counts the drug classes of a ';' delimited class list. ok is false for an empty list.
func MAR(drugClass string) (n int, ok bool) {
	if drugClass == "" {
		return 0, false
	}
	return strings.Count(drugClass, ";") + 1, true
}

// DrugClasses splits a ';' delimited list of drug classes.
func DrugClasses(drugClass string) []string {
	if drugClass == "" {
		return nil
	}
	words := strings.Split(drugClass, ";")
	ans := words[:0]
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			ans = append(ans, w)
		}
	}
	return ans
}
