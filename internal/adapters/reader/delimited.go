package reader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVReader reads comma separated files.
type CSVReader struct {
	comma rune
}

// NewCSVReader creates a comma separated reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{comma: ','}
}

// NewTextReader creates a tab separated reader for plain text exports.
func NewTextReader() *CSVReader {
	return &CSVReader{comma: '\t'}
}

// Read loads every record of the file. Records may have differing lengths.
func (r *CSVReader) Read(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := r.parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Table{Source: path, Rows: rows}, nil
}

func (r *CSVReader) parse(ctx context.Context, src io.Reader) ([][]string, error) {
	cr := csv.NewReader(src)
	cr.Comma = r.comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	next := 1 // line where the next record starts when no blank lines intervene
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		// encoding/csv skips empty lines; keep them as empty rows so row
		// numbers match the file and blank separators survive.
		start, _ := cr.FieldPos(0)
		for ; next < start; next++ {
			rows = append(rows, []string{})
		}
		last := len(rec) - 1
		end, _ := cr.FieldPos(last)
		next = end + strings.Count(rec[last], "\n") + 1

		rows = append(rows, rec)
	}
	return rows, nil
}
