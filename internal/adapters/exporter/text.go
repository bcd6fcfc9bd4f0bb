package exporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/okian/rbrseries/internal/domain/model"
	"github.com/okian/rbrseries/internal/domain/types"
)

// TextExporter writes aligned tables, one per division.
type TextExporter struct{}

// Export implements Exporter.
func (TextExporter) Export(ctx context.Context, w io.Writer, r types.Report) error {
	tw := newTabWriter(w)
	for i, st := range r.Standings {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", strings.ToUpper(st.Division))
		writeLine(tw, st.Header())
		for _, row := range st.Rows {
			writeLine(tw, row.Cells(st.Events))
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// WriteEvent writes one event's scored tables, one per division, in a stable
// division order.
func WriteEvent(w io.Writer, tables map[model.Division]model.EventTable) error {
	tw := newTabWriter(w)
	first := true
	for _, d := range []model.Division{model.DivisionOverall, model.DivisionMen, model.DivisionWomen} {
		t, ok := tables[d]
		if !ok {
			continue
		}
		if !first {
			fmt.Fprintln(tw)
		}
		first = false
		fmt.Fprintf(tw, "%s %s\n", t.EventID, strings.ToUpper(string(d)))
		writeLine(tw, []string{"Rank", "Name", "Points"})
		for _, s := range t.Scores {
			writeLine(tw, []string{strconv.Itoa(s.Rank), s.Name, strconv.Itoa(s.Points)})
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// WriteCurve writes the points awarded per rank.
func WriteCurve(w io.Writer, points []int) error {
	tw := newTabWriter(w)
	writeLine(tw, []string{"Rank", "Points"})
	for i, p := range points {
		writeLine(tw, []string{strconv.Itoa(i + 1), strconv.Itoa(p)})
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// writeLine leaves error reporting to Flush.
func writeLine(w io.Writer, cells []string) {
	fmt.Fprintln(w, strings.Join(cells, "\t"))
}
