package db

import (
	"fmt"

	"github.com/datastax/mariadb-scylla-migrator/types"
)

type CreateTableInfo struct {
	Keyspace string
	Table    string
	Columns  []types.Column
}

// CreateTableIfNotExists builds and executes the target table definition. The
// primary key is the composite of every source primary key column, in source
// declaration order. Tables without columns or without a primary key are
// rejected before any statement is issued.
func (db *Db) CreateTableIfNotExists(info *CreateTableInfo, options *QueryOptions) (bool, error) {
	if len(info.Columns) == 0 {
		return false, types.ErrNoColumns
	}

	columns := ""
	primaryKeys := ""

	for _, c := range info.Columns {
		columns += fmt.Sprintf(`"%s" %s, `, c.Name, CQLTypeFor(c.Type, db.logger))
		if c.PrimaryKey {
			primaryKeys += fmt.Sprintf(`, "%s"`, c.Name)
		}
	}

	if primaryKeys == "" {
		return false, types.ErrNoPrimaryKey
	}

	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s"."%s" (%sPRIMARY KEY (%s))`,
		info.Keyspace, info.Table, columns, primaryKeys[2:])

	err := db.session.Execute(query, options)
	return err == nil, err
}
