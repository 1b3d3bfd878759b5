// Package table holds the in-memory record table shared by the loader,
// encoder, analyzer and classifier harness.
package table

import (
	"fmt"
)

// DefaultOutcome is the column holding the churn flag (0 stayed, 1 exited).
const DefaultOutcome = "Exited"

// Table is an ordered collection of rows sharing one column set. Operations
// never mutate the receiver; transforms return a new Table.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New builds a table. Every row must have exactly len(columns) cells and
// column names must be unique.
func New(columns []string, rows [][]Value) (*Table, error) {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		idx[c] = i
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(r), len(columns))
		}
	}
	cols := append([]string(nil), columns...)
	return &Table{columns: cols, index: idx, rows: rows}, nil
}

// MustNew is New for fixtures known to be well formed.
func MustNew(columns []string, rows [][]Value) *Table {
	t, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) colIndex(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, &ColumnNotFoundError{Column: name}
	}
	return i, nil
}

// Row gives read access to one record.
func (t *Table) Row(i int) Row { return Row{t: t, i: i} }

// Row is a view over a single record.
type Row struct {
	t *Table
	i int
}

// Get returns the named cell, or a missing value when the column is absent.
func (r Row) Get(name string) Value {
	j, ok := r.t.index[name]
	if !ok {
		return Missing()
	}
	return r.t.rows[r.i][j]
}

func (r Row) Index() int { return r.i }

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]Value, error) {
	j, err := t.colIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[j]
	}
	return out, nil
}

// Floats returns the named column as numbers. Any non-numeric cell is a
// ColumnTypeError naming the offending row.
func (t *Table) Floats(name string) ([]float64, error) {
	j, err := t.colIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(t.rows))
	for i, r := range t.rows {
		f, ok := r[j].Float()
		if !ok {
			return nil, &ColumnTypeError{Column: name, Row: i, Value: r[j].String()}
		}
		out[i] = f
	}
	return out, nil
}

// Filter keeps the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	var rows [][]Value
	for i, r := range t.rows {
		if keep(Row{t: t, i: i}) {
			rows = append(rows, r)
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// Select projects the table onto the given columns, in that order.
func (t *Table) Select(names ...string) (*Table, error) {
	pos := make([]int, len(names))
	for k, n := range names {
		j, err := t.colIndex(n)
		if err != nil {
			return nil, err
		}
		pos[k] = j
	}
	rows := make([][]Value, len(t.rows))
	for i, r := range t.rows {
		nr := make([]Value, len(pos))
		for k, j := range pos {
			nr[k] = r[j]
		}
		rows[i] = nr
	}
	return New(names, rows)
}

// Drop removes the given columns. Absent columns are an error.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !t.Has(n) {
			return nil, &ColumnNotFoundError{Column: n}
		}
		drop[n] = true
	}
	var keep []string
	for _, c := range t.columns {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	return t.Select(keep...)
}

// WithColumn returns a table where the named column holds values. A new
// column is appended when the name is not present yet.
func (t *Table) WithColumn(name string, values []Value) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q: got %d values for %d rows", name, len(values), len(t.rows))
	}
	cols := t.Columns()
	j, ok := t.index[name]
	if !ok {
		cols = append(cols, name)
		j = len(cols) - 1
	}
	rows := make([][]Value, len(t.rows))
	for i, r := range t.rows {
		nr := make([]Value, len(cols))
		copy(nr, r)
		nr[j] = values[i]
		rows[i] = nr
	}
	return New(cols, rows)
}

// Map rewrites every cell of the named column with fn.
func (t *Table) Map(name string, fn func(Value) (Value, error)) (*Table, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		nv, err := fn(v)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		vals[i] = nv
	}
	return t.WithColumn(name, vals)
}

// FillMissing replaces every missing cell with fill.
func (t *Table) FillMissing(fill Value) *Table {
	rows := make([][]Value, len(t.rows))
	for i, r := range t.rows {
		nr := make([]Value, len(r))
		for j, v := range r {
			if v.IsMissing() {
				v = fill
			}
			nr[j] = v
		}
		rows[i] = nr
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// CountMissing reports how many cells are still missing.
func (t *Table) CountMissing() int {
	n := 0
	for _, r := range t.rows {
		for _, v := range r {
			if v.IsMissing() {
				n++
			}
		}
	}
	return n
}

// Distinct returns the distinct values of a column in ascending Compare order.
func (t *Table) Distinct(name string) ([]Value, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return SortedDistinct(vals), nil
}
