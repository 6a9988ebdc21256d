package table

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"io"
	"strconv"
	"strings"
)

const (
	Tab   rune = '\t'
	Comma rune = ','
)

// Table is an in-memory table of string cells. Numeric columns are parsed on demand
// so that key columns survive a round trip exactly as written.
type Table struct {
	Header []string
	Rows   [][]string
}

// New returns an empty table with the given column names.
func New(header ...string) *Table {
	return &Table{Header: append([]string(nil), header...)}
}

// Col returns the index of the first column called name, or -1.
func (t *Table) Col(name string) int {
	for i := range t.Header {
		if t.Header[i] == name {
			return i
		}
	}
	return -1
}

// Cols maps each name to a column index and errors on the first missing column.
func (t *Table) Cols(names ...string) ([]int, error) {
	ans := make([]int, len(names))
	for i := range names {
		ans[i] = t.Col(names[i])
		if ans[i] == -1 {
			return nil, fmt.Errorf("missing column %q", names[i])
		}
	}
	return ans, nil
}

// Append adds a row. Short rows are padded and long rows are truncated to the header width.
func (t *Table) Append(row ...string) {
	r := make([]string, len(t.Header))
	copy(r, row)
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Get returns the cell of row i in the named column, or "" if the column is absent.
func (t *Table) Get(i int, name string) string {
	c := t.Col(name)
	if c == -1 {
		return ""
	}
	return t.Rows[i][c]
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]string, error) {
	c := t.Col(name)
	if c == -1 {
		return nil, fmt.Errorf("missing column %q", name)
	}
	ans := make([]string, len(t.Rows))
	for i := range t.Rows {
		ans[i] = t.Rows[i][c]
	}
	return ans, nil
}

// Floats parses the named column. Empty cells are read as 0.
func (t *Table) Floats(name string) ([]float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	ans := make([]float64, len(col))
	for i := range col {
		ans[i], err = ParseFloat(col[i])
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i+1, err)
		}
	}
	return ans, nil
}

// Sum returns the total of the named column.
func (t *Table) Sum(name string) (float64, error) {
	vals, err := t.Floats(name)
	if err != nil {
		return 0, err
	}
	var ans float64
	for _, v := range vals {
		ans += v
	}
	return ans, nil
}

// Set writes value into row i of the named column, adding the column if absent.
func (t *Table) Set(i int, name, value string) {
	c := t.Col(name)
	if c == -1 {
		c = t.AddColumn(name, "")
	}
	t.Rows[i][c] = value
}

// AddColumn appends a column filled with value and returns its index.
func (t *Table) AddColumn(name, value string) int {
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], value)
	}
	return len(t.Header) - 1
}

// ParseFloat parses a numeric cell. Empty, "NA" and "nan" cells are 0.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NA", "NaN", "nan":
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// IsNumeric reports whether s parses as a number. Empty cells are not numeric.
func IsNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// FormatFloat writes v in the shortest form that reads back exactly.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Read loads a delimited file. When header is false the columns are named by
// their 0-based position.
func Read(filename string, delim rune, header bool) (*Table, error) {
	file := fileio.EasyOpen(filename)
	t, err := read(file, delim, header)
	closeErr := file.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, closeErr
}

// ReadTSV loads a tab delimited file with a header line.
func ReadTSV(filename string) (*Table, error) {
	return Read(filename, Tab, true)
}

// ReadCSV loads a comma delimited file with a header line.
func ReadCSV(filename string) (*Table, error) {
	return Read(filename, Comma, true)
}

func read(r io.Reader, delim rune, header bool) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false
	var t *Table
	var width int
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rec[len(rec)-1] = strings.TrimRight(rec[len(rec)-1], "\r")
		if t == nil {
			if header {
				t = New(rec...)
				width = len(rec)
				continue
			}
			t = New()
		}
		if !header && len(rec) > width {
			for i := width; i < len(rec); i++ {
				t.AddColumn(strconv.Itoa(i), "")
			}
			width = len(rec)
		}
		t.Append(rec...)
	}
	if t == nil {
		t = New()
	}
	return t, nil
}

// Write stores the table as a delimited file. The header line is always written.
func (t *Table) Write(filename string, delim rune) error {
	out := fileio.EasyCreate(filename)
	err := t.write(out, delim)
	closeErr := out.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return closeErr
}

// WriteTSV stores the table tab delimited.
func (t *Table) WriteTSV(filename string) error {
	return t.Write(filename, Tab)
}

// WriteCSV stores the table comma delimited.
func (t *Table) WriteCSV(filename string) error {
	return t.Write(filename, Comma)
}

func (t *Table) write(w io.Writer, delim rune) error {
	bw := bufio.NewWriter(w)
	writeRecord(bw, t.Header, delim)
	for i := range t.Rows {
		writeRecord(bw, t.Rows[i], delim)
	}
	return bw.Flush()
}

// writeRecord quotes only the cells holding the delimiter, a quote or a line break.
// Other cells, including those with leading spaces, are written as they are.
func writeRecord(w *bufio.Writer, rec []string, delim rune) {
	for i := range rec {
		if i > 0 {
			w.WriteRune(delim)
		}
		if strings.ContainsRune(rec[i], delim) || strings.ContainsAny(rec[i], "\"\r\n") {
			w.WriteByte('"')
			w.WriteString(strings.ReplaceAll(rec[i], `"`, `""`))
			w.WriteByte('"')
		} else {
			w.WriteString(rec[i])
		}
	}
	w.WriteByte('\n')
}

// String renders the table tab delimited for debugging and logging.
func (t *Table) String() string {
	s := new(strings.Builder)
	err := t.write(s, Tab)
	exception.PanicOnErr(err)
	return s.String()
}
