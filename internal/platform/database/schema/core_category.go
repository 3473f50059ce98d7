package schema

// RefCategoryTable represents the 'core.category' table
type RefCategoryTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// RefCategory is the schema definition for core.category
var RefCategory = RefCategoryTable{
	Table: "core.category",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

func (t RefCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
