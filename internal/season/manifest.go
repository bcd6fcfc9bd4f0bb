// Package season describes one season's events and where their results live.
package season

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/okian/rbrseries/internal/adapters/cleanup"
	"github.com/okian/rbrseries/internal/domain/model"
	"gopkg.in/yaml.v3"
)

var validate = validator.New() //nolint:gochecknoglobals // validator caches struct metadata

// Manifest is a season definition loaded from YAML.
type Manifest struct {
	Year      int               `yaml:"year" validate:"required,min=1900,max=2200"`
	Name      string            `yaml:"name,omitempty"`
	BestOf    int               `yaml:"best_of,omitempty" validate:"min=0"`
	AgeGroups *AgeGroupSource   `yaml:"age_groups,omitempty"`
	Divisions []model.Division  `yaml:"divisions,omitempty" validate:"unique,dive,oneof=overall men women"`
	Events    []Event           `yaml:"events" validate:"required,min=1,unique=ID,dive"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`

	dir string
}

// AgeGroupSource locates the age-group roster.
type AgeGroupSource struct {
	File        string `yaml:"file" validate:"required"`
	Sheet       string `yaml:"sheet,omitempty"`
	NameColumn  string `yaml:"name_column,omitempty"`
	GroupColumn string `yaml:"group_column,omitempty"`
}

// Files names the result exports of an event. Either All or Men and Women
// are expected, depending on the format.
type Files struct {
	All   string `yaml:"all,omitempty"`
	Men   string `yaml:"men,omitempty"`
	Women string `yaml:"women,omitempty"`
}

// Empty reports whether no file is set.
func (f Files) Empty() bool { return f.All == "" && f.Men == "" && f.Women == "" }

// Categories overrides the built-in category lists of a category-blocks event.
type Categories struct {
	Men   []string `yaml:"men,omitempty"`
	Women []string `yaml:"women,omitempty"`
	Drop  []string `yaml:"drop,omitempty"`
}

// Event is one race of the season.
type Event struct {
	ID             string         `yaml:"id" validate:"required,excludesall=/\\"`
	Name           string         `yaml:"name,omitempty"`
	Format         cleanup.Format `yaml:"format" validate:"required"`
	Files          Files          `yaml:"files"`
	Sheet          string         `yaml:"sheet,omitempty"`
	HeaderRow      int            `yaml:"header_row,omitempty" validate:"min=0"`
	FooterRows     int            `yaml:"footer_rows,omitempty" validate:"min=0"`
	NameColumn     string         `yaml:"name_column,omitempty"`
	TimeColumn     string         `yaml:"time_column,omitempty"`
	PositionColumn string         `yaml:"position_column,omitempty"`
	Categories     *Categories    `yaml:"categories,omitempty"`
}

// DisplayName returns Name, or the ID when no name is set.
func (e Event) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// HeaderIndex converts the 1-based HeaderRow to a row index. Unset means the
// first row.
func (e Event) HeaderIndex() int {
	if e.HeaderRow <= 1 {
		return 0
	}
	return e.HeaderRow - 1
}

// Columns returns the cleanup column names.
func (e Event) Columns() cleanup.Columns {
	return cleanup.Columns{Name: e.NameColumn, Time: e.TimeColumn, Position: e.PositionColumn}
}

// CleanupCategories returns the configured category lists, empty when unset.
func (e Event) CleanupCategories() cleanup.Categories {
	if e.Categories == nil {
		return cleanup.Categories{}
	}
	return cleanup.Categories{Men: e.Categories.Men, Women: e.Categories.Women, Drop: e.Categories.Drop}
}

// Load reads and validates a manifest. Relative file paths resolve against
// the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes and validates a manifest. Unknown fields are rejected.
func Parse(data []byte, dir string) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	m.dir = dir
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks field constraints and per-format requirements.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	for i := range m.Events {
		e := &m.Events[i]
		f, err := cleanup.ParseFormat(string(e.Format))
		if err != nil {
			return fmt.Errorf("%w: event %s: %v", ErrInvalidManifest, e.ID, err)
		}
		e.Format = f
		if f != cleanup.FormatPending && e.Files.Empty() {
			return fmt.Errorf("%w: event %s: no result files", ErrInvalidManifest, e.ID)
		}
		if f != cleanup.FormatPending && e.TimeColumn == "" && e.PositionColumn == "" {
			return fmt.Errorf("%w: event %s: time_column or position_column required", ErrInvalidManifest, e.ID)
		}
	}
	return nil
}

// Resolve returns p relative to the manifest's directory unless absolute.
func (m *Manifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.dir, p)
}

// Event returns the event with id.
func (m *Manifest) Event(id string) (Event, error) {
	for _, e := range m.Events {
		if e.ID == id {
			return e, nil
		}
	}
	return Event{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownEvent, id, strings.Join(m.EventIDs(), ", "))
}

// EventIDs lists event ids in manifest order.
func (m *Manifest) EventIDs() []string {
	ids := make([]string, len(m.Events))
	for i, e := range m.Events {
		ids[i] = e.ID
	}
	return ids
}

// Wants reports whether a division's standing should be produced. An empty
// Divisions list selects every division that has results.
func (m *Manifest) Wants(d model.Division) bool {
	if len(m.Divisions) == 0 {
		return true
	}
	for _, w := range m.Divisions {
		if w == d {
			return true
		}
	}
	return false
}
