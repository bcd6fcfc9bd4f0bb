package exporter

import "errors"

var (
	// ErrUnsupportedFormat is returned for an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported output format")
	// ErrWrite is returned when a report cannot be written.
	ErrWrite = errors.New("write report")
)
