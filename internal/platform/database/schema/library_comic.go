package schema

// LibraryComicTable represents the 'comic' document table.
//
// The library store is a document store: each row holds the full JSON value
// of one comic aggregate, upserted whole (last write wins).
type LibraryComicTable struct {
	Table     string
	ID        string
	Doc       string
	UpdatedAt string
}

// LibraryComic is the schema definition for the comic document table.
var LibraryComic = LibraryComicTable{
	Table:     "comic",
	ID:        "id",
	Doc:       "doc",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names.
func (t LibraryComicTable) Columns() []string {
	return []string{t.ID, t.Doc, t.UpdatedAt}
}
