package exporter

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/okian/rbrseries/internal/domain/types"
)

// YAMLExporter writes the whole report, run metadata included.
type YAMLExporter struct{}

// Export implements Exporter.
func (YAMLExporter) Export(_ context.Context, w io.Writer, r types.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
