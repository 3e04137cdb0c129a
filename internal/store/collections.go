package store

import "fmt"

// Collection names. Every Store method validates the collection argument
// against this set before touching SQL.
const (
	Products   = "products"
	Orders     = "orders"
	Categories = "categories"
)

// Index declares a secondary index over a top-level JSON field.
type Index struct {
	Field  string
	Unique bool
}

// Collection declares one logical group of records of one entity kind.
type Collection struct {
	Name    string
	Indexes []Index
}

// collections is the fixed schema of the store, mirroring what the
// original deployment created on first run.
var collections = []Collection{
	{
		Name: Products,
		Indexes: []Index{
			{Field: "barcode", Unique: true},
			{Field: "name"},
			{Field: "category"},
		},
	},
	{
		Name: Orders,
		Indexes: []Index{
			{Field: "orderNumber", Unique: true},
			{Field: "createdAt"},
		},
	},
	{
		Name: Categories,
	},
}

var collectionsByName = func() map[string]Collection {
	m := make(map[string]Collection, len(collections))
	for _, c := range collections {
		m[c.Name] = c
	}
	return m
}()

func lookupCollection(name string) (Collection, error) {
	c, ok := collectionsByName[name]
	if !ok {
		return Collection{}, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return c, nil
}

func (c Collection) index(field string) (Index, error) {
	for _, idx := range c.Indexes {
		if idx.Field == field {
			return idx, nil
		}
	}
	return Index{}, fmt.Errorf("%w: %s.%s", ErrUnknownIndex, c.Name, field)
}

// column is the generated-column name backing an index. Index fields are
// declared in code, never user input, so interpolation is safe.
func (idx Index) column() string {
	return "idx_" + idx.Field
}

// schemaDDL renders the CREATE statements for all collections plus the
// sequences table. All statements are IF NOT EXISTS, safe to re-run.
func schemaDDL() []string {
	var stmts []string
	for _, c := range collections {
		table := fmt.Sprintf(
			"CREATE TABLE IF NOT EXISTS %s (\n\tid TEXT PRIMARY KEY,\n\tdata TEXT NOT NULL", c.Name)
		for _, idx := range c.Indexes {
			table += fmt.Sprintf(
				",\n\t%s TEXT GENERATED ALWAYS AS (json_extract(data, '$.%s')) VIRTUAL",
				idx.column(), idx.Field)
		}
		table += "\n)"
		stmts = append(stmts, table)

		for _, idx := range c.Indexes {
			unique := ""
			if idx.Unique {
				unique = "UNIQUE "
			}
			stmts = append(stmts, fmt.Sprintf(
				"CREATE %sINDEX IF NOT EXISTS %s_%s ON %s(%s)",
				unique, c.Name, idx.column(), c.Name, idx.column()))
		}
	}

	stmts = append(stmts,
		"CREATE TABLE IF NOT EXISTS sequences (\n\tname TEXT PRIMARY KEY,\n\tvalue INTEGER NOT NULL\n)")
	return stmts
}
