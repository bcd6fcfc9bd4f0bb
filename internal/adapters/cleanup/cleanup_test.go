package cleanup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/rbrseries/internal/adapters/reader"
	"github.com/okian/rbrseries/internal/domain/model"
	"github.com/stretchr/testify/require"
)

func names(rows []model.ParticipantResult) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestPlainHandler(t *testing.T) {
	ctx := context.Background()
	table := &reader.Table{Source: "plain.csv", Rows: [][]string{
		{"Plaats", "Naam", "Tijd"},
		{"1", "jan  jansen", "35:10"},
		{"2", "Anna Smit", "0:36:00"},
		{"", "", ""},
		{"Plaats", "Naam", "Tijd"},
		{"3", "Piet", "DNF"},
		{"4", "Kees", "40:00"},
	}}

	t.Run("combined table", func(t *testing.T) {
		res, err := PlainHandler{}.Clean(ctx, Input{All: table, Columns: Columns{Time: "Tijd"}})
		require.NoError(t, err)
		require.Equal(t, []model.Division{model.DivisionOverall}, res.DivisionList())
		rows := res.Divisions[model.DivisionOverall]
		require.Equal(t, []string{"Jan Jansen", "Anna Smit", "Kees"}, names(rows))
		require.Equal(t, model.Mark(2110), rows[0].Primary)
		require.False(t, rows[0].Secondary.Valid())
	})

	t.Run("position breaks time ties", func(t *testing.T) {
		res, err := PlainHandler{}.Clean(ctx, Input{All: table, Columns: Columns{Time: "Tijd", Position: "Plaats"}})
		require.NoError(t, err)
		require.Equal(t, model.Some(model.Mark(2)), res.Divisions[model.DivisionOverall][1].Secondary)
	})

	t.Run("position only", func(t *testing.T) {
		res, err := PlainHandler{}.Clean(ctx, Input{Men: table, Columns: Columns{Position: "Plaats"}})
		require.NoError(t, err)
		rows := res.Divisions[model.DivisionMen]
		require.Len(t, rows, 4)
		require.Equal(t, model.Mark(3), rows[2].Primary)
	})

	t.Run("footer rows", func(t *testing.T) {
		res, err := PlainHandler{}.Clean(ctx, Input{All: table, FooterRows: 1, Columns: Columns{Time: "Tijd"}})
		require.NoError(t, err)
		require.Len(t, res.Divisions[model.DivisionOverall], 2)
	})

	t.Run("no tables", func(t *testing.T) {
		_, err := PlainHandler{}.Clean(ctx, Input{Columns: Columns{Time: "Tijd"}})
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("no sort column", func(t *testing.T) {
		_, err := PlainHandler{}.Clean(ctx, Input{All: table})
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := PlainHandler{}.Clean(ctx, Input{All: table, Columns: Columns{Time: "Totaal"}})
		require.ErrorIs(t, err, ErrDataShape)
	})

	t.Run("unparsable time", func(t *testing.T) {
		bad := &reader.Table{Source: "bad.csv", Rows: [][]string{{"Naam", "Tijd"}, {"Jan", "snel"}}}
		_, err := PlainHandler{}.Clean(ctx, Input{All: bad, Columns: Columns{Time: "Tijd"}})
		require.ErrorIs(t, err, ErrDataShape)
		require.Contains(t, err.Error(), "row 2")
	})

	t.Run("header beyond table", func(t *testing.T) {
		_, err := PlainHandler{}.Clean(ctx, Input{All: table, HeaderRow: 20, Columns: Columns{Time: "Tijd"}})
		require.ErrorIs(t, err, ErrDataShape)
	})
}

func splitTable(source string, runners ...[]string) *reader.Table {
	rows := [][]string{
		{"Uitslag 10 km"},
		{"Pos", "Naam", "Totaal"},
	}
	rows = append(rows, runners...)
	return &reader.Table{Source: source, Rows: append(rows, []string{"Gegenereerd door de tijdwaarneming"})}
}

func TestSplitOverallHandler(t *testing.T) {
	ctx := context.Background()
	men := splitTable("men.xlsx",
		[]string{"Senioren"},
		[]string{"1", "Jan Jansen", "1:01:00"},
		[]string{"#Cat", "", "3"},
		[]string{},
		[]string{"2", "Piet Peters", "1:05:00"},
		[]string{"DNF", "Kees Klaassen", ""},
		[]string{"#Tot", "", "2"},
	)
	women := splitTable("women.xlsx",
		[]string{"1", "Anna Smit", "1:10:00"},
		[]string{"DQ", "Eva Eek", "1:00:00"},
	)
	in := Input{EventID: "borne", Year: 2024, Men: men, Women: women, HeaderRow: 1, FooterRows: 1, Columns: Columns{Time: "Totaal"}}

	t.Run("drops non participant rows", func(t *testing.T) {
		res, err := SplitOverallHandler{}.Clean(ctx, in)
		require.NoError(t, err)
		require.Equal(t, []string{"Jan Jansen", "Piet Peters"}, names(res.Divisions[model.DivisionMen]))
		require.Equal(t, []string{"Anna Smit"}, names(res.Divisions[model.DivisionWomen]))
	})

	t.Run("requires both tables", func(t *testing.T) {
		only := in
		only.Women = nil
		_, err := SplitOverallHandler{}.Clean(ctx, only)
		require.ErrorIs(t, err, ErrConfiguration)
	})

	t.Run("combined table is not enough", func(t *testing.T) {
		_, err := SplitOverallHandler{}.Clean(ctx, Input{All: men, Columns: Columns{Time: "Totaal"}})
		require.ErrorIs(t, err, ErrConfiguration)
	})
}

func sittard() *reader.Table {
	return &reader.Table{Source: "sittard.xlsx", Rows: [][]string{
		{"Uitslag Sittard"},
		{"Plaats", "Naam", "Tijd"},
		{"KIDSV, IRONKIDS"},
		{"1", "Kind Een", "5:00"},
		{"", "", ""},
		{"MAN, NK MANNEN"},
		{"Plaats", "Naam", "Tijd"},
		{"1", "Jan Jansen", "58:00"},
		{"2", "Piet Peters", "1:01:00"},
		{"", "", ""},
		{"JJ, NK JUNIOREN JONGENS"},
		{"1", "Tim Jong", "59:30"},
		{"2", "jan jansen", "59:40"},
		{"", "", ""},
		{"VRW, NK VROUWEN"},
		{"1", "Anna Smit", "1:05:00"},
		{"", "", ""},
		{"MJ, NK JUNIOREN MEISJES"},
		{"1", "Eva Eek", "1:06:00"},
	}}
}

func TestCategoryBlocksHandler(t *testing.T) {
	ctx := context.Background()
	in := Input{EventID: "sittard", Year: 2024, All: sittard(), HeaderRow: 1, Columns: Columns{Time: "Tijd"}}

	t.Run("built-in categories", func(t *testing.T) {
		res, err := CategoryBlocksHandler{}.Clean(ctx, in)
		require.NoError(t, err)
		require.Equal(t, []string{"Tim Jong", "Jan Jansen", "Piet Peters"}, names(res.Divisions[model.DivisionMen]))
		require.Equal(t, []string{"Anna Smit", "Eva Eek"}, names(res.Divisions[model.DivisionWomen]))
		require.Len(t, res.Warnings, 4)
		require.Contains(t, strings.Join(res.Warnings, "\n"), `dropped repeated men entry for "Jan Jansen"`)
	})

	t.Run("missing drop category warns", func(t *testing.T) {
		custom := in
		custom.Categories = Categories{
			Men:  []string{"MAN, NK MANNEN"},
			Drop: []string{"KIDSV, IRONKIDS", "KIDSX, TYPO"},
		}
		res, err := CategoryBlocksHandler{}.Clean(ctx, custom)
		require.NoError(t, err)
		require.Equal(t, []string{"Jan Jansen", "Piet Peters"}, names(res.Divisions[model.DivisionMen]))
		require.Equal(t, []string{`event sittard: drop category "KIDSX, TYPO" not found in sittard.xlsx`}, res.Warnings)
	})

	t.Run("blank-line separated text export", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sittard.txt")
		data := strings.Join([]string{
			"Uitslag Sittard",
			"Plaats\tNaam\tTijd",
			"KIDSV, IRONKIDS",
			"1\tKind Een\t5:00",
			"",
			"MAN, NK MANNEN",
			"1\tJan Jansen\t58:00",
			"2\tPiet Peters\t1:01:00",
			"",
			"VRW, NK VROUWEN",
			"1\tAnna Smit\t1:05:00",
		}, "\n") + "\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		table, err := reader.NewFactory().Read(ctx, path)
		require.NoError(t, err)
		require.Len(t, table.Rows, 11)

		res, err := CategoryBlocksHandler{}.Clean(ctx, Input{
			EventID:   "sittard",
			All:       table,
			HeaderRow: 1,
			Columns:   Columns{Time: "Tijd"},
			Categories: Categories{
				Men:   []string{"MAN, NK MANNEN"},
				Women: []string{"VRW, NK VROUWEN"},
				Drop:  []string{"KIDSV, IRONKIDS"},
			},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"Jan Jansen", "Piet Peters"}, names(res.Divisions[model.DivisionMen]))
		require.Equal(t, []string{"Anna Smit"}, names(res.Divisions[model.DivisionWomen]))
		require.Empty(t, res.Warnings)
	})

	t.Run("configured categories", func(t *testing.T) {
		custom := in
		custom.Year = 2031
		custom.Categories = Categories{Men: []string{"MAN, NK MANNEN"}, Drop: []string{"MAN, NK MANNEN"}}
		_, err := CategoryBlocksHandler{}.Clean(ctx, custom)
		require.ErrorIs(t, err, ErrDataShape)

		custom.Categories = Categories{Women: []string{"MJ, NK JUNIOREN MEISJES"}}
		res, err := CategoryBlocksHandler{}.Clean(ctx, custom)
		require.NoError(t, err)
		require.Equal(t, []model.Division{model.DivisionWomen}, res.DivisionList())
		require.Equal(t, []string{"Eva Eek"}, names(res.Divisions[model.DivisionWomen]))
	})

	t.Run("unknown year", func(t *testing.T) {
		other := in
		other.Year = 2019
		_, err := CategoryBlocksHandler{}.Clean(ctx, other)
		require.ErrorIs(t, err, ErrUnsupportedInput)
	})

	t.Run("missing category", func(t *testing.T) {
		other := in
		other.Year = 2023
		_, err := CategoryBlocksHandler{}.Clean(ctx, other)
		require.ErrorIs(t, err, ErrDataShape)
	})

	t.Run("requires combined table", func(t *testing.T) {
		_, err := CategoryBlocksHandler{}.Clean(ctx, Input{Year: 2024, Men: sittard(), Women: sittard()})
		require.ErrorIs(t, err, ErrConfiguration)
	})
}

func TestBuiltinCategories(t *testing.T) {
	c, ok := BuiltinCategories(2024)
	require.True(t, ok)
	require.Contains(t, c.Drop, "KIDSV, IRONKIDS")
	c.Men[0] = "changed"

	again, _ := BuiltinCategories(2024)
	require.Equal(t, "JJ, NK JUNIOREN JONGENS", again.Men[0])

	_, ok = BuiltinCategories(2022)
	require.False(t, ok)
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	t.Run("pending event", func(t *testing.T) {
		res, err := reg.Clean(ctx, FormatPending, Input{EventID: "hulsbeek", Name: "Hulsbeek"})
		require.NoError(t, err)
		require.Empty(t, res.Divisions)
		require.Len(t, res.Warnings, 1)
		require.Contains(t, res.Warnings[0], "Hulsbeek")
	})

	t.Run("errors carry the event", func(t *testing.T) {
		_, err := reg.Clean(ctx, FormatSplitOverall, Input{EventID: "borne", Year: 2024})
		require.ErrorIs(t, err, ErrConfiguration)

		var evErr *EventError
		require.True(t, errors.As(err, &evErr))
		require.Equal(t, "borne", evErr.EventID)
		require.Equal(t, 2024, evErr.Year)
		require.Contains(t, err.Error(), "borne")
	})

	t.Run("unregistered format", func(t *testing.T) {
		_, err := reg.Clean(ctx, Format("legacy"), Input{EventID: "x"})
		require.ErrorIs(t, err, ErrUnsupportedInput)
	})

	t.Run("custom handler", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(FormatPlain, HandlerFunc(func(context.Context, Input) (Result, error) {
			return Result{Warnings: []string{"custom"}}, nil
		}))
		res, err := reg.Clean(ctx, FormatPlain, Input{EventID: "x"})
		require.NoError(t, err)
		require.Equal(t, []string{"custom"}, res.Warnings)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := reg.Clean(cctx, FormatPending, Input{EventID: "x"})
		require.ErrorIs(t, err, context.Canceled)
	})
}
