package season_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/rbrseries/internal/adapters/cleanup"
	"github.com/okian/rbrseries/internal/domain/model"
	"github.com/okian/rbrseries/internal/season"
	. "github.com/smartystreets/goconvey/convey"
)

const manifest2024 = `
year: 2024
name: Regio Bokaal
best_of: 3
age_groups:
  file: leeftijden.csv
  group_column: Categorie
divisions: [men, women]
events:
  - id: borne
    name: Triathlon Borne
    format: split-overall
    files:
      men: borne_heren.xlsx
      women: borne_dames.xlsx
    header_row: 6
    footer_rows: 1
    time_column: Totaal
  - id: sittard
    format: category-blocks
    files:
      all: sittard.xlsx
    header_row: 4
    time_column: Tijd
    categories:
      men: ["MAN, NK MANNEN"]
      women: ["VRW, NK VROUWEN"]
  - id: hulsbeek
    name: Hulsbeek
    format: pending
`

func TestParse(t *testing.T) {
	Convey("Given a season manifest", t, func() {
		m, err := season.Parse([]byte(manifest2024), "/data/2024")
		So(err, ShouldBeNil)

		Convey("Then the season fields are decoded", func() {
			So(m.Year, ShouldEqual, 2024)
			So(m.BestOf, ShouldEqual, 3)
			So(m.EventIDs(), ShouldResemble, []string{"borne", "sittard", "hulsbeek"})
			So(m.AgeGroups.File, ShouldEqual, "leeftijden.csv")
		})

		Convey("Then event settings are converted for cleanup", func() {
			borne, err := m.Event("borne")
			So(err, ShouldBeNil)
			So(borne.Format, ShouldEqual, cleanup.FormatSplitOverall)
			So(borne.HeaderIndex(), ShouldEqual, 5)
			So(borne.Columns(), ShouldResemble, cleanup.Columns{Time: "Totaal"})
			So(borne.DisplayName(), ShouldEqual, "Triathlon Borne")
			So(borne.CleanupCategories().Empty(), ShouldBeTrue)

			sittard, _ := m.Event("sittard")
			So(sittard.DisplayName(), ShouldEqual, "sittard")
			So(sittard.CleanupCategories().Men, ShouldResemble, []string{"MAN, NK MANNEN"})
		})

		Convey("Then relative paths resolve against the manifest directory", func() {
			So(m.Resolve("sittard.xlsx"), ShouldEqual, filepath.Join("/data/2024", "sittard.xlsx"))
			So(m.Resolve("/abs/file.csv"), ShouldEqual, "/abs/file.csv")
			So(m.Resolve(""), ShouldEqual, "")
		})

		Convey("Then divisions are filtered", func() {
			So(m.Wants(model.DivisionMen), ShouldBeTrue)
			So(m.Wants(model.DivisionOverall), ShouldBeFalse)
		})

		Convey("Then unknown events are reported", func() {
			_, err := m.Event("utrecht")
			So(errors.Is(err, season.ErrUnknownEvent), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `"utrecht" (have borne, sittard, hulsbeek)`)
		})
	})

	Convey("Given a manifest without divisions", t, func() {
		m, err := season.Parse([]byte("year: 2023\nevents:\n  - id: a\n    format: pending\n"), ".")
		So(err, ShouldBeNil)
		So(m.Wants(model.DivisionOverall), ShouldBeTrue)
		So(m.Events[0].HeaderIndex(), ShouldEqual, 0)
	})
}

func TestParseInvalid(t *testing.T) {
	Convey("Given invalid manifests", t, func() {
		cases := []struct{ name, doc string }{
			{"missing year", "events:\n  - id: a\n    format: pending\n"},
			{"no events", "year: 2024\nevents: []\n"},
			{"unknown field", "year: 2024\nseason: x\nevents:\n  - id: a\n    format: pending\n"},
			{"duplicate event ids", "year: 2024\nevents:\n  - id: a\n    format: pending\n  - id: a\n    format: pending\n"},
			{"unknown format", "year: 2024\nevents:\n  - id: a\n    format: borne\n"},
			{"no files", "year: 2024\nevents:\n  - id: a\n    format: plain\n    time_column: Tijd\n"},
			{"no sort column", "year: 2024\nevents:\n  - id: a\n    format: plain\n    files: {all: a.csv}\n"},
			{"bad division", "year: 2024\ndivisions: [juniors]\nevents:\n  - id: a\n    format: pending\n"},
			{"slash in id", "year: 2024\nevents:\n  - id: a/b\n    format: pending\n"},
			{"age groups no file", "year: 2024\nage_groups: {sheet: x}\nevents:\n  - id: a\n    format: pending\n"},
			{"not yaml", "year: [\n"},
		}

		for _, tc := range cases {
			Convey("When the manifest has "+tc.name, func() {
				_, err := season.Parse([]byte(tc.doc), ".")

				Convey("Then it is rejected", func() {
					So(errors.Is(err, season.ErrInvalidManifest), ShouldBeTrue)
				})
			})
		}
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a manifest on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "season.yaml")
		So(os.WriteFile(path, []byte(manifest2024), 0o600), ShouldBeNil)

		Convey("When it is loaded", func() {
			m, err := season.Load(path)

			Convey("Then paths resolve next to it", func() {
				So(err, ShouldBeNil)
				So(m.Resolve("borne_heren.xlsx"), ShouldEqual, filepath.Join(dir, "borne_heren.xlsx"))
			})
		})

		Convey("When the file is missing", func() {
			_, err := season.Load(filepath.Join(dir, "nope.yaml"))
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})
}
