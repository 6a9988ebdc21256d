package assembly

import (
	"fmt"
	"github.com/vertgenlab/gonomics/fileio"
	"strconv"
	"strings"
)

// FaiSuffix marks a samtools faidx index, read in place of the fasta it indexes.
const FaiSuffix = ".fai"

// Contig is one line of a fai index.
type Contig struct {
	Name         string // name of this sequence
	Len          int    // total length of this sequence, in bases
	Offset       int    // offset within the fasta file of the first base
	BasesPerLine int    // number of bases on each line
	BytesPerLine int    // number of bytes in each line, including the newline
}

// String method for Contig enables easy writing with the fmt package.
func (c Contig) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d", c.Name, c.Len, c.Offset, c.BasesPerLine, c.BytesPerLine)
}

// ReadIndex reads the contigs of a fai index file in order.
func ReadIndex(filename string) ([]Contig, error) {
	file := fileio.EasyOpen(filename)
	var answer []Contig
	var curr Contig
	var col []string
	var lineNum int
	var err error
	for line, done := fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		col = strings.Split(strings.TrimRight(line, "\r"), "\t")
		if len(col) != 5 {
			err = fmt.Errorf("%s: malformed index on line %d: %s", filename, lineNum, line)
			break
		}
		curr.Name = col[0]
		ints := []*int{&curr.Len, &curr.Offset, &curr.BasesPerLine, &curr.BytesPerLine}
		for i := range ints {
			if *ints[i], err = strconv.Atoi(col[i+1]); err != nil {
				break
			}
		}
		if err != nil {
			err = fmt.Errorf("%s: line %d: %w", filename, lineNum, err)
			break
		}
		answer = append(answer, curr)
	}
	closeErr := file.Close()
	if err != nil {
		return nil, err
	}
	return answer, closeErr
}

// IndexLengths returns the contig lengths of a fai index file in order.
func IndexLengths(filename string) ([]int, error) {
	contigs, err := ReadIndex(filename)
	if err != nil {
		return nil, err
	}
	ans := make([]int, len(contigs))
	for i := range contigs {
		ans[i] = contigs[i].Len
	}
	return ans, nil
}
