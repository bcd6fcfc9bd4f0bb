// Package reader loads raw result files into uniform cell tables.
package reader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Table is the raw content of one result file. Rows keep their original
// order and cells are untrimmed strings; no row is treated as a header.
type Table struct {
	Source string
	Rows   [][]string
}

// Cell returns the cell at row r and column c, or "" when the row is short.
func (t *Table) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}

// Reader reads one result file.
type Reader interface {
	Read(ctx context.Context, path string) (*Table, error)
}

// Option configures readers built by the Factory.
type Option func(*options)

type options struct {
	sheet string
}

// WithSheet selects a worksheet by name. Only spreadsheet readers use it.
func WithSheet(name string) Option {
	return func(o *options) {
		o.sheet = name
	}
}

// Factory picks a Reader from the file extension.
type Factory struct{}

// NewFactory creates a reader factory.
func NewFactory() *Factory {
	return &Factory{}
}

// ForPath returns the reader for path.
func (f *Factory) ForPath(path string, opts ...Option) (Reader, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return NewCSVReader(), nil
	case ".txt", ".tsv":
		return NewTextReader(), nil
	case ".xlsx", ".xlsm":
		return NewXLSXReader(o.sheet), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Read is a convenience wrapper around ForPath and Reader.Read.
func (f *Factory) Read(ctx context.Context, path string, opts ...Option) (*Table, error) {
	r, err := f.ForPath(path, opts...)
	if err != nil {
		return nil, err
	}
	return r.Read(ctx, path)
}
