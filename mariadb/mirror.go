package mariadb

import (
	"fmt"
	"strings"

	"github.com/datastax/mariadb-scylla-migrator/types"
)

// BuildMirrorTableDDL emits the statement that creates the ScyllaDB-backed
// mirror table. The replication target is embedded in the table COMMENT so the
// storage engine can resolve the destination after a server restart. The
// statement is conditional, so re-running setup does not fail.
func BuildMirrorTableDDL(database string, table string, columns []types.Column, target types.ReplicationTarget) (string, error) {
	if len(columns) == 0 {
		return "", types.ErrNoColumns
	}

	columnDefs := make([]string, 0, len(columns)+1)
	primaryKeys := make([]string, 0)

	for _, column := range columns {
		def := fmt.Sprintf("%s %s", quoteIdent(column.Name), column.Type)
		if !column.Nullable {
			def += " NOT NULL"
		}
		columnDefs = append(columnDefs, def)

		if column.PrimaryKey {
			primaryKeys = append(primaryKeys, quoteIdent(column.Name))
		}
	}

	if len(primaryKeys) == 0 {
		return "", types.ErrNoPrimaryKey
	}

	columnDefs = append(columnDefs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.%s (%s) ENGINE=SCYLLA COMMENT='%s'",
		quoteIdent(database), quoteIdent(table),
		strings.Join(columnDefs, ", "),
		strings.ReplaceAll(target.Comment(), "'", "''"))

	return ddl, nil
}
