package repository

// Default roster header names.
const (
	DefaultNameColumn  = "Naam"
	DefaultGroupColumn = "Categorie"
)

// Option applies a configuration option to the Roster.
type Option func(*Roster)

// WithNameColumn sets the header of the name column.
func WithNameColumn(name string) Option {
	return func(r *Roster) {
		if name != "" {
			r.nameColumn = name
		}
	}
}

// WithGroupColumn sets the header of the age-group column.
func WithGroupColumn(name string) Option {
	return func(r *Roster) {
		if name != "" {
			r.groupColumn = name
		}
	}
}
