// Package loader reads customer spreadsheets into cleaned record tables.
package loader

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/logging"
	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
)

// Loader reads one spreadsheet format.
type Loader interface {
	CanLoad(path string) bool
	Load(ctx context.Context, path string, opt Options) (*table.Table, error)
}

// Options controls how a source is read.
type Options struct {
	// SheetName selects a worksheet by name (xlsx only).
	SheetName string
	// SheetIndex selects a worksheet by 1-based position when SheetName is empty.
	SheetIndex int
	// Delimiter for CSV. If 0, derived from the extension.
	Delimiter rune
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger { return logging.OrDiscard(o.Logger) }

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// Load reads path with the first loader that accepts it and replaces every
// missing cell with the empty string. Any failure is a *LoadError.
func Load(ctx context.Context, path string, opt Options) (*table.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	for _, l := range registry {
		if !l.CanLoad(path) {
			continue
		}
		t, err := l.Load(ctx, path, opt)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		missing := t.CountMissing()
		opt.logger().Debug("loaded spreadsheet", "path", path, "rows", t.Len(), "columns", len(t.Columns()), "filled", missing)
		return Clean(t), nil
	}
	return nil, &LoadError{Path: path, Err: ErrUnsupported}
}

// Clean replaces every missing cell with the empty string, regardless of the
// column's type.
func Clean(t *table.Table) *table.Table {
	return t.FillMissing(table.Str(""))
}

// ChurnColumns is the schema of the customer dataset.
var ChurnColumns = []string{
	"RowNumber", "CustomerId", "Surname", "CreditScore", "Country", "Gender",
	"Age", "Tenure", "Balance (EUR)", "NumberOfProducts", "HasCreditCard",
	"IsActiveMember", "EstimatedSalary", "CustomerFeedback", "Exited",
}

// RequireColumns checks that every named column exists.
func RequireColumns(t *table.Table, cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return &table.ColumnNotFoundError{Column: c}
		}
	}
	return nil
}

// build turns raw string records into a table. Rows are padded to the header
// width and blank cells become missing values.
func build(header []string, records [][]string) (*table.Table, error) {
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}
	rows := make([][]table.Value, 0, len(records))
	for _, rec := range records {
		row := make([]table.Value, len(cols))
		for j := range cols {
			if j >= len(rec) || strings.TrimSpace(rec[j]) == "" {
				row[j] = table.Missing()
				continue
			}
			row[j] = table.Parse(rec[j])
		}
		rows = append(rows, row)
	}
	return table.New(cols, rows)
}
