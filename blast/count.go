package blast

import (
	"sort"
)

// Hit is the read count of one reference sequence.
type Hit struct {
	Sseqid  string
	Slen    int
	Reads   int
	RPK     float64 // reads per kilobase of reference
	PropRPK float64 // RPK over total RPK of the sample
}

type hitKey struct {
	sseqid string
	slen   int
}

// Count groups records by reference sequence and length, and normalizes the read
// counts to RPK and proportion of RPK. Hits are ordered by RPK, largest first, and
// by reference id within equal RPK.
func Count(records []Record) []Hit {
	idx := make(map[hitKey]int)
	var ans []Hit
	for _, r := range records {
		k := hitKey{r.Sseqid, r.Slen}
		i, found := idx[k]
		if !found {
			i = len(ans)
			idx[k] = i
			ans = append(ans, Hit{Sseqid: r.Sseqid, Slen: r.Slen})
		}
		ans[i].Reads++
	}
	Normalize(ans)
	return ans
}

// Normalize fills RPK and PropRPK from Reads and Slen and sorts hits.
func Normalize(hits []Hit) {
	var total float64
	for i := range hits {
		if hits[i].Slen > 0 {
			hits[i].RPK = float64(hits[i].Reads) / float64(hits[i].Slen) * 1000
		}
		total += hits[i].RPK
	}
	for i := range hits {
		if total > 0 {
			hits[i].PropRPK = hits[i].RPK / total
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].RPK != hits[j].RPK {
			return hits[i].RPK > hits[j].RPK
		}
		if hits[i].Sseqid != hits[j].Sseqid {
			return hits[i].Sseqid < hits[j].Sseqid
		}
		return hits[i].Slen < hits[j].Slen
	})
}
