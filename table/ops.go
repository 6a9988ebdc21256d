package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Select returns a table with only the named columns, in order. Columns that are
// absent from t are added empty.
func (t *Table) Select(names ...string) *Table {
	idx := make([]int, len(names))
	for i := range names {
		idx[i] = t.Col(names[i])
	}
	ans := New(names...)
	ans.Rows = make([][]string, len(t.Rows))
	for i := range t.Rows {
		r := make([]string, len(names))
		for j := range idx {
			if idx[j] != -1 {
				r[j] = t.Rows[i][idx[j]]
			}
		}
		ans.Rows[i] = r
	}
	return ans
}

// Rename changes column names in place according to m. Unmapped names are kept.
func (t *Table) Rename(m map[string]string) {
	for i := range t.Header {
		if n, found := m[t.Header[i]]; found {
			t.Header[i] = n
		}
	}
}

// Where returns the rows for which keep is true.
func (t *Table) Where(keep func(row []string) bool) *Table {
	ans := New(t.Header...)
	for i := range t.Rows {
		if keep(t.Rows[i]) {
			ans.Rows = append(ans.Rows, t.Rows[i])
		}
	}
	return ans
}

// Fill replaces empty cells of the named columns with value.
func (t *Table) Fill(value string, names ...string) {
	for _, name := range names {
		c := t.Col(name)
		if c == -1 {
			continue
		}
		for i := range t.Rows {
			if t.Rows[i][c] == "" {
				t.Rows[i][c] = value
			}
		}
	}
}

func joinKey(row []string, idx []int) string {
	s := new(strings.Builder)
	for i := range idx {
		if i > 0 {
			s.WriteByte(0)
		}
		s.WriteString(row[idx[i]])
	}
	return s.String()
}

// OuterJoin merges left and right on the key columns, keeping every key found in
// either table. The result has the columns of left followed by the non-key columns
// of right, and its rows are ordered by key with sortByKey. Cells with no source
// are set to fill.
func OuterJoin(left, right *Table, key []string, fill string) (*Table, error) {
	lk, err := left.Cols(key...)
	if err != nil {
		return nil, fmt.Errorf("left table: %w", err)
	}
	rk, err := right.Cols(key...)
	if err != nil {
		return nil, fmt.Errorf("right table: %w", err)
	}

	isKey := make(map[int]bool)
	for _, c := range rk {
		isKey[c] = true
	}
	var rv []int
	header := append([]string(nil), left.Header...)
	for c := range right.Header {
		if !isKey[c] {
			rv = append(rv, c)
			header = append(header, right.Header[c])
		}
	}

	rightRows := make(map[string][]int)
	for i := range right.Rows {
		k := joinKey(right.Rows[i], rk)
		rightRows[k] = append(rightRows[k], i)
	}

	ans := New(header...)
	matched := make([]bool, len(right.Rows))
	width := len(left.Header)
	for i := range left.Rows {
		k := joinKey(left.Rows[i], lk)
		matches := rightRows[k]
		if len(matches) == 0 {
			r := make([]string, len(header))
			copy(r, left.Rows[i])
			for j := width; j < len(r); j++ {
				r[j] = fill
			}
			ans.Rows = append(ans.Rows, r)
			continue
		}
		for _, m := range matches {
			matched[m] = true
			r := make([]string, len(header))
			copy(r, left.Rows[i])
			for j, c := range rv {
				r[width+j] = right.Rows[m][c]
			}
			ans.Rows = append(ans.Rows, r)
		}
	}

	for i := range right.Rows {
		if matched[i] {
			continue
		}
		r := make([]string, len(header))
		for j := 0; j < width; j++ {
			r[j] = fill
		}
		for j := range lk {
			r[lk[j]] = right.Rows[i][rk[j]]
		}
		for j, c := range rv {
			r[width+j] = right.Rows[i][c]
		}
		ans.Rows = append(ans.Rows, r)
	}
	sortByKey(ans, lk)
	return ans, nil
}

// sortByKey orders rows by the key columns in turn. A key column is compared
// numerically when all of its cells are numbers and lexically otherwise. Rows
// with equal keys keep their order.
func sortByKey(t *Table, key []int) {
	numeric := make([]bool, len(key))
	for j, c := range key {
		numeric[j] = true
		for i := range t.Rows {
			if !IsNumeric(t.Rows[i][c]) {
				numeric[j] = false
				break
			}
		}
	}
	sort.SliceStable(t.Rows, func(a, b int) bool {
		for j, c := range key {
			x, y := t.Rows[a][c], t.Rows[b][c]
			if x == y {
				continue
			}
			if numeric[j] {
				fx, _ := ParseFloat(x)
				fy, _ := ParseFloat(y)
				if fx == fy {
					continue
				}
				return fx < fy
			}
			return x < y
		}
		return false
	})
}

// LeftJoin attaches the columns of lookup to t where the by column matches the
// lookup row key. Columns already present in t are not duplicated. Rows without a
// match get empty cells.
func (t *Table) LeftJoin(by string, lookup map[string][]string, header []string) (*Table, error) {
	c := t.Col(by)
	if c == -1 {
		return nil, fmt.Errorf("missing column %q", by)
	}
	var add []int
	newHeader := append([]string(nil), t.Header...)
	for j := range header {
		if t.Col(header[j]) == -1 {
			add = append(add, j)
			newHeader = append(newHeader, header[j])
		}
	}
	ans := New(newHeader...)
	ans.Rows = make([][]string, len(t.Rows))
	for i := range t.Rows {
		r := make([]string, len(newHeader))
		copy(r, t.Rows[i])
		if vals, found := lookup[t.Rows[i][c]]; found {
			for k, j := range add {
				if j < len(vals) {
					r[len(t.Header)+k] = vals[j]
				}
			}
		}
		ans.Rows[i] = r
	}
	return ans, nil
}

// GroupSum sums the value columns grouped by the by column. Rows with an empty key
// are dropped. Groups are ordered by KeyLess.
func (t *Table) GroupSum(by string, values []string) (*Table, error) {
	c := t.Col(by)
	if c == -1 {
		return nil, fmt.Errorf("missing column %q", by)
	}
	vc, err := t.Cols(values...)
	if err != nil {
		return nil, err
	}
	sums := make(map[string][]float64)
	var keys []string
	var v float64
	for i := range t.Rows {
		k := t.Rows[i][c]
		if k == "" {
			continue
		}
		s, found := sums[k]
		if !found {
			s = make([]float64, len(vc))
			sums[k] = s
			keys = append(keys, k)
		}
		for j := range vc {
			v, err = ParseFloat(t.Rows[i][vc[j]])
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", t.Header[vc[j]], i+1, err)
			}
			s[j] += v
		}
	}
	sort.SliceStable(keys, func(i, j int) bool { return KeyLess(keys[i], keys[j]) })

	ans := New(append([]string{by}, values...)...)
	for _, k := range keys {
		r := make([]string, len(vc)+1)
		r[0] = k
		for j := range sums[k] {
			r[j+1] = FormatFloat(sums[k][j])
		}
		ans.Rows = append(ans.Rows, r)
	}
	return ans, nil
}

// KeyLess orders group keys. Numbers come first in numeric order, followed by
// all other keys in lexical order.
func KeyLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return fa < fb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// RowSums returns the total of the named columns for every row.
func (t *Table) RowSums(values []string) ([]float64, error) {
	vc, err := t.Cols(values...)
	if err != nil {
		return nil, err
	}
	ans := make([]float64, len(t.Rows))
	var v float64
	for i := range t.Rows {
		for _, c := range vc {
			v, err = ParseFloat(t.Rows[i][c])
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", t.Header[c], i+1, err)
			}
			ans[i] += v
		}
	}
	return ans, nil
}

// SortByRowSum orders rows by the total of the value columns, largest first.
// Rows with equal totals keep their order.
func (t *Table) SortByRowSum(values []string) error {
	sums, err := t.RowSums(values)
	if err != nil {
		return err
	}
	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return sums[order[i]] > sums[order[j]] })
	rows := make([][]string, len(t.Rows))
	for i := range order {
		rows[i] = t.Rows[order[i]]
	}
	t.Rows = rows
	return nil
}

// SortByColumn orders rows by the numeric value of the named column. Ties keep
// their order.
func (t *Table) SortByColumn(name string, descending bool) error {
	vals, err := t.Floats(name)
	if err != nil {
		return err
	}
	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if descending {
			return vals[order[i]] > vals[order[j]]
		}
		return vals[order[i]] < vals[order[j]]
	})
	rows := make([][]string, len(t.Rows))
	for i := range order {
		rows[i] = t.Rows[order[i]]
	}
	t.Rows = rows
	return nil
}

// SortColumns reorders the columns after the first fixed columns by name.
func (t *Table) SortColumns(fixed int, descending bool) {
	if fixed >= len(t.Header) {
		return
	}
	order := make([]int, len(t.Header)-fixed)
	for i := range order {
		order[i] = fixed + i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if descending {
			return t.Header[order[i]] > t.Header[order[j]]
		}
		return t.Header[order[i]] < t.Header[order[j]]
	})
	perm := make([]int, 0, len(t.Header))
	for i := 0; i < fixed; i++ {
		perm = append(perm, i)
	}
	perm = append(perm, order...)

	header := make([]string, len(perm))
	for i, p := range perm {
		header[i] = t.Header[p]
	}
	t.Header = header
	for r := range t.Rows {
		row := make([]string, len(perm))
		for i, p := range perm {
			row[i] = t.Rows[r][p]
		}
		t.Rows[r] = row
	}
}

// Transpose turns the first column into the header and every other column into a
// row named after its old header. corner becomes the new first header cell.
func (t *Table) Transpose(corner string) *Table {
	header := make([]string, len(t.Rows)+1)
	header[0] = corner
	for i := range t.Rows {
		header[i+1] = t.Rows[i][0]
	}
	ans := New(header...)
	for c := 1; c < len(t.Header); c++ {
		r := make([]string, len(t.Rows)+1)
		r[0] = t.Header[c]
		for i := range t.Rows {
			r[i+1] = t.Rows[i][c]
		}
		ans.Rows = append(ans.Rows, r)
	}
	return ans
}
