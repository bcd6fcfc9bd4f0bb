package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"github.com/okian/rbrseries/internal/domain/types"
)

// CSVExporter writes every standing into one table with a leading division
// column. Event columns are the union of all standings, in season order.
type CSVExporter struct{}

// Export implements Exporter.
func (CSVExporter) Export(ctx context.Context, w io.Writer, r types.Report) error {
	events := reportEvents(r)
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{"Division"}, types.Header(events)...)); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	for _, st := range r.Standings {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, row := range st.Rows {
			if err := cw.Write(append([]string{st.Division}, row.Cells(events)...)); err != nil {
				return fmt.Errorf("%w: %v", ErrWrite, err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// reportEvents lists the events scored in any standing, in season order.
func reportEvents(r types.Report) []string {
	used := make(map[string]bool)
	for _, st := range r.Standings {
		for _, ev := range st.Events {
			used[ev] = true
		}
	}
	var out []string
	for _, ev := range r.Events {
		if used[ev.ID] && !slices.Contains(out, ev.ID) {
			out = append(out, ev.ID)
		}
	}
	return out
}
