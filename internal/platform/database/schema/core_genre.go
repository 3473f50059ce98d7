package schema

// RefGenreTable represents the 'core.genre' table
type RefGenreTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// RefGenre is the schema definition for core.genre
var RefGenre = RefGenreTable{
	Table: "core.genre",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

func (t RefGenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
