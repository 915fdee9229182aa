package db

import (
	"fmt"
)

// CreateKeyspaceIfNotExists ensures the target keyspace exists. The statement
// is safe to re-issue, so repeated setup runs do not fail here.
func (db *Db) CreateKeyspaceIfNotExists(name string, replicationFactor int) (bool, error) {
	if replicationFactor <= 0 {
		replicationFactor = 1
	}

	query := fmt.Sprintf(
		"CREATE KEYSPACE IF NOT EXISTS %s WITH REPLICATION = { 'class': 'SimpleStrategy', 'replication_factor': %d }",
		name, replicationFactor)

	err := db.session.Execute(query, NewQueryOptions())

	return err == nil, err
}
