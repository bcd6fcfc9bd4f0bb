package exporter

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/rbrseries/internal/domain/types"
)

// XLSXExporter writes a workbook with one sheet per division. Points are
// numeric cells; absent events are empty cells.
type XLSXExporter struct{}

// Export implements Exporter.
func (XLSXExporter) Export(ctx context.Context, w io.Writer, r types.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, st := range r.Standings {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addSheet(f, i, st); err != nil {
			return fmt.Errorf("%w: sheet %s: %v", ErrWrite, st.Division, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func addSheet(f *excelize.File, index int, st types.Standing) error {
	name := st.Division
	if index == 0 {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return err
	}

	header := make([]any, 0, len(st.Events)+5)
	for _, h := range st.Header() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i, row := range st.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := rowValues(row, st.Events)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func rowValues(row types.Row, events []string) []any {
	v := make([]any, 0, len(events)+5)
	v = append(v, row.Rank, row.Name)
	for _, ev := range events {
		if p, ok := row.Points[ev]; ok {
			v = append(v, p)
		} else {
			v = append(v, nil)
		}
	}
	return append(v, row.Bonus, row.Total, row.AgeGroup)
}
