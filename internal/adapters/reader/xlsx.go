package reader

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads one worksheet of an Excel workbook.
type XLSXReader struct {
	sheet string
}

// NewXLSXReader creates a workbook reader. An empty sheet selects the first one.
func NewXLSXReader(sheet string) *XLSXReader {
	return &XLSXReader{sheet: sheet}
}

// Read loads the selected worksheet as formatted cell values.
func (r *XLSXReader) Read(ctx context.Context, path string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file %s: %w", path, err)
	}
	defer f.Close()

	sheet, err := r.pick(f.GetSheetList())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}
	return &Table{Source: path, Rows: rows}, nil
}

func (r *XLSXReader) pick(sheets []string) (string, error) {
	if len(sheets) == 0 {
		return "", ErrNoSheets
	}
	if r.sheet == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == r.sheet {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, r.sheet)
}
