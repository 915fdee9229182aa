package types

import "errors"

// ErrNoColumns is returned when a table definition cannot be built because the
// source table reported no columns.
var ErrNoColumns = errors.New("table has no columns")

// ErrNoPrimaryKey is returned when a table has no primary key. The target
// store requires a declared primary key, so callers skip the table.
var ErrNoPrimaryKey = errors.New("table has no primary key")

// Column describes a single source column as reported by the information
// schema: name, declared type string, nullability and primary key membership.
type Column struct {
	Name       string
	Type       string
	Nullable   bool
	PrimaryKey bool
}

// Table is the introspected shape of a source table. Columns keep the source
// declaration order.
type Table struct {
	Name    string
	Columns []Column
}

// PrimaryKey returns the primary key columns in declaration order.
func (t Table) PrimaryKey() []Column {
	key := make([]Column, 0)
	for _, column := range t.Columns {
		if column.PrimaryKey {
			key = append(key, column)
		}
	}
	return key
}

func (t Table) HasPrimaryKey() bool {
	return len(t.PrimaryKey()) > 0
}

// ColumnNames returns every column name in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		names[i] = column.Name
	}
	return names
}
