package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/CalumMcM/EcoVadis-Churn-Prediction/internal/table"
	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xlsx")
}

func (xlsxLoader) Load(ctx context.Context, path string, opt Options) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt.SheetName, opt.SheetIndex)
	if err != nil {
		return nil, err
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	var header []string
	var records [][]string
	for rows.Next() {
		// Raw values, so number formats such as "#,##0.00" do not turn
		// numeric cells into text.
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		if header == nil {
			if len(cols) == 0 {
				continue
			}
			header = cols
			continue
		}
		if opt.MaxRows > 0 && len(records) >= opt.MaxRows {
			break
		}
		if len(records)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		records = append(records, cols)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if header == nil {
		return nil, ErrNoHeader
	}
	return build(header, records)
}

// pickSheet resolves a sheet by name first, then by 1-based index, defaulting
// to the first sheet.
func pickSheet(sheets []string, name string, index int) (string, error) {
	if len(sheets) == 0 {
		return "", ErrSheetNotFound
	}
	if name != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, name) {
				return s, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	if index <= 0 {
		return sheets[0], nil
	}
	if index > len(sheets) {
		return "", fmt.Errorf("%w: index %d of %d", ErrSheetNotFound, index, len(sheets))
	}
	return sheets[index-1], nil
}
