package mariadb

import (
	"context"

	"github.com/datastax/mariadb-scylla-migrator/types"
)

// ListTables returns the base table names of a database in lexicographic
// order, so successive runs process tables in a stable order.
func (c *Client) ListTables(ctx context.Context, database string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ?
		AND table_type = 'BASE TABLE'
		ORDER BY table_name`, database)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableComment returns the COMMENT of an existing table, or an empty string
// when the table does not exist. Mirror tables carry their replication target
// in the comment, so a re-run reads it back to detect stale configuration.
func (c *Client) TableComment(ctx context.Context, database string, table string) (string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT table_comment
		FROM information_schema.tables
		WHERE table_schema = ?
		AND table_name = ?`, database, table)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var comment string
	if rows.Next() {
		if err := rows.Scan(&comment); err != nil {
			return "", err
		}
	}
	return comment, rows.Err()
}

// DescribeTable returns the table's columns in declaration order. A table with
// no columns yields an empty slice, not an error; callers treat empty as
// nothing to migrate.
func (c *Client) DescribeTable(ctx context.Context, database string, table string) ([]types.Column, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT column_name, column_type, is_nullable, column_key
		FROM information_schema.columns
		WHERE table_schema = ?
		AND table_name = ?
		ORDER BY ordinal_position`, database, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := make([]types.Column, 0)
	for rows.Next() {
		var name, columnType, nullable, key string
		if err := rows.Scan(&name, &columnType, &nullable, &key); err != nil {
			return nil, err
		}
		columns = append(columns, types.Column{
			Name:       name,
			Type:       columnType,
			Nullable:   nullable == "YES",
			PrimaryKey: key == "PRI",
		})
	}
	return columns, rows.Err()
}
