// Package encoding maps categorical columns to dense integer codes.
package encoding

import (
	"fmt"
	"sort"
	"time"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/utils"
	"github.com/google/uuid"
)

// ColumnCodes holds the sorted distinct values of one column. A value's code
// is its position in Values.
type ColumnCodes struct {
	Column string   `json:"column"`
	Values []string `json:"values"`
}

// Mapping is the encoding artifact produced by Encode. It is never mutated
// after construction so it can be persisted and reapplied to new data.
type Mapping struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Columns   []ColumnCodes `json:"columns"`

	index map[string]map[string]int
}

// UnknownValueError is returned when Apply meets a value absent from the mapping.
type UnknownValueError struct {
	Column string
	Value  string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("column %q: value %q was not seen when the mapping was built", e.Column, e.Value)
}

// Encode replaces each named column with integer codes 0..k-1 assigned in
// lexicographic order of the values' text. A fresh mapping is built on every
// call and returned alongside the encoded table.
func Encode(t *table.Table, columns ...string) (*table.Table, *Mapping, error) {
	m := &Mapping{ID: uuid.NewString(), CreatedAt: time.Now().UTC()}
	for _, c := range columns {
		vals, err := t.Column(c)
		if err != nil {
			return nil, nil, err
		}
		seen := make(map[string]bool)
		var distinct []string
		for _, v := range vals {
			s := v.String()
			if !seen[s] {
				seen[s] = true
				distinct = append(distinct, s)
			}
		}
		sort.Strings(distinct)
		m.Columns = append(m.Columns, ColumnCodes{Column: c, Values: distinct})
	}
	m.buildIndex()
	out, err := m.Apply(t)
	if err != nil {
		return nil, nil, err
	}
	return out, m, nil
}

func (m *Mapping) buildIndex() {
	m.index = make(map[string]map[string]int, len(m.Columns))
	for _, cc := range m.Columns {
		codes := make(map[string]int, len(cc.Values))
		for i, v := range cc.Values {
			codes[v] = i
		}
		m.index[cc.Column] = codes
	}
}

// Code returns the code for value in column.
func (m *Mapping) Code(column, value string) (int, bool) {
	if m.index == nil {
		m.buildIndex()
	}
	codes, ok := m.index[column]
	if !ok {
		return 0, false
	}
	c, ok := codes[value]
	return c, ok
}

// Apply encodes t with the codes recorded in m.
func (m *Mapping) Apply(t *table.Table) (*table.Table, error) {
	out := t
	for _, cc := range m.Columns {
		col := cc.Column
		var err error
		out, err = out.Map(col, func(v table.Value) (table.Value, error) {
			code, ok := m.Code(col, v.String())
			if !ok {
				return table.Value{}, &UnknownValueError{Column: col, Value: v.String()}
			}
			return table.Int(int64(code)), nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Save writes the mapping as JSON.
func (m *Mapping) Save(path string) error {
	b, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, b)
}

// LoadMapping reads a mapping written by Save.
func LoadMapping(path string) (*Mapping, error) {
	var m Mapping
	if err := utils.ReadJSON(path, &m); err != nil {
		return nil, fmt.Errorf("load mapping: %w", err)
	}
	m.buildIndex()
	return &m, nil
}
