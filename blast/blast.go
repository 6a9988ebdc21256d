package blast

import (
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
	"strconv"
	"strings"
)

// Columns of the tabular output produced with
// -outfmt "6 qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore qlen slen"
var Columns = []string{"qseqid", "sseqid", "pident", "length", "mismatch", "gapopen", "qstart", "qend", "sstart", "send", "evalue", "bitscore", "qlen", "slen"}

// Record is a single line of BLAST tabular output.
type Record struct {
	Qseqid   string
	Sseqid   string
	Pident   float64
	Length   int
	Mismatch int
	Gapopen  int
	Qstart   int
	Qend     int
	Sstart   int
	Send     int
	Evalue   float64
	Bitscore float64
	Qlen     int
	Slen     int
}

// Strings returns the record fields in column order.
func (r Record) Strings() []string {
	return []string{
		r.Qseqid,
		r.Sseqid,
		strconv.FormatFloat(r.Pident, 'g', -1, 64),
		strconv.Itoa(r.Length),
		strconv.Itoa(r.Mismatch),
		strconv.Itoa(r.Gapopen),
		strconv.Itoa(r.Qstart),
		strconv.Itoa(r.Qend),
		strconv.Itoa(r.Sstart),
		strconv.Itoa(r.Send),
		strconv.FormatFloat(r.Evalue, 'g', -1, 64),
		strconv.FormatFloat(r.Bitscore, 'g', -1, 64),
		strconv.Itoa(r.Qlen),
		strconv.Itoa(r.Slen),
	}
}

// String method for Record enables easy writing with the fmt package.
func (r Record) String() string {
	return strings.Join(r.Strings(), "\t")
}

// ParseLine parses one line of tabular output.
func ParseLine(line string) (Record, error) {
	var ans Record
	var err error
	words := strings.Split(strings.TrimRight(line, "\r"), "\t")
	if len(words) != len(Columns) {
		return ans, fmt.Errorf("expected %d columns, found %d", len(Columns), len(words))
	}
	ans.Qseqid = words[0]
	ans.Sseqid = words[1]
	if ans.Pident, err = strconv.ParseFloat(words[2], 64); err != nil {
		return ans, err
	}
	ints := []*int{&ans.Length, &ans.Mismatch, &ans.Gapopen, &ans.Qstart, &ans.Qend, &ans.Sstart, &ans.Send}
	for i := range ints {
		if *ints[i], err = strconv.Atoi(words[3+i]); err != nil {
			return ans, err
		}
	}
	if ans.Evalue, err = strconv.ParseFloat(words[10], 64); err != nil {
		return ans, err
	}
	if ans.Bitscore, err = strconv.ParseFloat(words[11], 64); err != nil {
		return ans, err
	}
	if ans.Qlen, err = strconv.Atoi(words[12]); err != nil {
		return ans, err
	}
	if ans.Slen, err = strconv.Atoi(words[13]); err != nil {
		return ans, err
	}
	return ans, nil
}

// GoReadToChan reads a BLAST tabular file in a separate goroutine. Malformed lines are fatal.
func GoReadToChan(file string) <-chan Record {
	ans := make(chan Record, 1000)
	go readToChan(file, ans)
	return ans
}

func readToChan(file string, c chan<- Record) {
	input := fileio.EasyOpen(file)
	var line string
	var done bool
	var r Record
	var err error
	var lineNum int
	for line, done = fileio.EasyNextRealLine(input); !done; line, done = fileio.EasyNextRealLine(input) {
		lineNum++
		if strings.TrimSpace(line) == "" {
			continue
		}
		r, err = ParseLine(line)
		if err != nil {
			log.Fatalf("ERROR: malformed blast output: %s\nerror on line %d: %s\n%s\n", file, lineNum, err, line)
		}
		c <- r
	}
	err = input.Close()
	exception.PanicOnErr(err)
	close(c)
}

// Filter holds the cutoffs applied to hits before counting.
type Filter struct {
	MinPident float64 // percent identity below this value is excluded
	MinLength int     // alignment length in bp below this value is excluded
}

// Pass reports whether r is at or above both cutoffs.
func (f Filter) Pass(r Record) bool {
	return r.Pident >= f.MinPident && r.Length >= f.MinLength
}

// Read returns every record in file that passes f.
func Read(file string, f Filter) []Record {
	var ans []Record
	for r := range GoReadToChan(file) {
		if f.Pass(r) {
			ans = append(ans, r)
		}
	}
	return ans
}
