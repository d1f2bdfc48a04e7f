package schema

// LibraryAccountTable represents the 'account' document table.
type LibraryAccountTable struct {
	Table     string
	ID        string
	Doc       string
	UpdatedAt string
}

// LibraryAccount is the schema definition for the account document table.
var LibraryAccount = LibraryAccountTable{
	Table:     "account",
	ID:        "id",
	Doc:       "doc",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names.
func (t LibraryAccountTable) Columns() []string {
	return []string{t.ID, t.Doc, t.UpdatedAt}
}
