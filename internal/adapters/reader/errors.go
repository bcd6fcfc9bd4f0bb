package reader

import "errors"

// Sentinel kinds for reader errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported result file format")
	ErrNoSheets          = errors.New("workbook has no sheets")
	ErrSheetNotFound     = errors.New("sheet not found")
)
