package schema

// RefTitleTable represents the 'core.title' table
type RefTitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	CategoryID  string
}

// RefTitle is the schema definition for core.title
var RefTitle = RefTitleTable{
	Table:       "core.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	CategoryID:  "categoryid",
}

func (t RefTitleTable) Columns() []string {
	return []string{t.ID, t.Name, t.Year, t.Description, t.CategoryID}
}

// RefTitleGenreTable represents the 'core.titlegenre' junction table
type RefTitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// RefTitleGenre is the schema definition for core.titlegenre
var RefTitleGenre = RefTitleGenreTable{
	Table:   "core.titlegenre",
	TitleID: "titleid",
	GenreID: "genreid",
}
