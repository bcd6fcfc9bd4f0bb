// Package exporter writes classification reports as text tables, CSV,
// spreadsheets or YAML.
package exporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/okian/rbrseries/internal/domain/types"
)

// Format names an output format.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatCSV, FormatXLSX, FormatYAML}
}

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Exporter writes a report.
type Exporter interface {
	Export(ctx context.Context, w io.Writer, r types.Report) error
}

// New returns the exporter for f.
func New(f Format) (Exporter, error) {
	switch f {
	case FormatText:
		return TextExporter{}, nil
	case FormatCSV:
		return CSVExporter{}, nil
	case FormatXLSX:
		return XLSXExporter{}, nil
	case FormatYAML:
		return YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
