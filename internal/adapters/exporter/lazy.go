package exporter

import (
	"io"
	"os"
)

// LazyWriteCloser delays initialization until the first write, so a run that
// fails before producing output leaves an existing file untouched.
type LazyWriteCloser struct {
	init   func() (io.WriteCloser, error)
	writer io.WriteCloser
}

// NewLazyWriteCloser creates a LazyWriteCloser. init is called once, on the
// first Write.
func NewLazyWriteCloser(init func() (io.WriteCloser, error)) *LazyWriteCloser {
	return &LazyWriteCloser{init: init}
}

// OpenFile returns a lazy writer that truncates or creates path on first
// write.
func OpenFile(path string) *LazyWriteCloser {
	return NewLazyWriteCloser(func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	})
}

func (l *LazyWriteCloser) Write(p []byte) (int, error) {
	if l.writer == nil {
		w, err := l.init()
		if err != nil {
			return 0, err
		}
		l.writer = w
	}
	return l.writer.Write(p)
}

// Opened reports whether the underlying writer was created.
func (l *LazyWriteCloser) Opened() bool { return l.writer != nil }

// Close closes the underlying writer if it was opened.
func (l *LazyWriteCloser) Close() error {
	if l.writer != nil {
		return l.writer.Close()
	}
	return nil
}
