package table

import "sort"

// Outcome reads a 0/1 flag from v.
func Outcome(v Value) (int, bool) {
	f, ok := v.Float()
	if !ok {
		return 0, false
	}
	switch f {
	case 0:
		return 0, true
	case 1:
		return 1, true
	}
	return 0, false
}

// SplitOutcome partitions t into the rows that stayed (flag 0) and the rows
// that exited (flag 1). Every row lands in exactly one side.
func SplitOutcome(t *Table, column string) (stayed, exited *Table, err error) {
	j, err := t.colIndex(column)
	if err != nil {
		return nil, nil, err
	}
	var s, e [][]Value
	for i, r := range t.rows {
		o, ok := Outcome(r[j])
		if !ok {
			return nil, nil, &OutcomeValueError{Column: column, Row: i, Value: r[j].String()}
		}
		if o == 1 {
			e = append(e, r)
		} else {
			s = append(s, r)
		}
	}
	stayed = &Table{columns: t.columns, index: t.index, rows: s}
	exited = &Table{columns: t.columns, index: t.index, rows: e}
	return stayed, exited, nil
}

// SortedDistinct deduplicates vals and sorts them ascending.
func SortedDistinct(vals []Value) []Value {
	var out []Value
	seen := make(map[string]bool)
	for _, v := range vals {
		k := key(v)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, v)
	}
	sort.SliceStable(out, func(a, b int) bool { return Compare(out[a], out[b]) < 0 })
	return out
}

// Key is the identity used when grouping values. Numeric kinds share a key
// space so 1 and 1.0 group together.
func Key(v Value) string { return key(v) }

func key(v Value) string {
	if f, ok := v.Float(); ok {
		return "n:" + Real(f).String()
	}
	return v.kind.String() + ":" + v.String()
}
