package db

import (
	"github.com/gocql/gocql"
)

type QueryOptions struct {
	Consistency       gocql.Consistency
	SerialConsistency gocql.SerialConsistency
}

func NewQueryOptions() *QueryOptions {
	return &QueryOptions{
		// Set defaults for queries that are not affected by consistency
		// But still need the parameters, i.e, DDL queries.
		Consistency:       gocql.LocalOne,
		SerialConsistency: gocql.LocalSerial,
	}
}

func (q *QueryOptions) WithConsistency(consistency gocql.Consistency) *QueryOptions {
	q.Consistency = consistency
	return q
}

func (q *QueryOptions) WithSerialConsistency(serialConsistency gocql.SerialConsistency) *QueryOptions {
	q.SerialConsistency = serialConsistency
	return q
}

type Session interface {
	// Execute executes a statement without returning row results
	Execute(query string, options *QueryOptions, values ...interface{}) error

	// ExecuteIter executes a statement and returns the materialized result set
	ExecuteIter(query string, options *QueryOptions, values ...interface{}) (ResultSet, error)

	// Close releases the underlying connection
	Close()
}

type ResultSet interface {
	Values() []map[string]interface{}
}

type goCqlResultIterator struct {
	values []map[string]interface{}
}

func (r *goCqlResultIterator) Values() []map[string]interface{} {
	return r.values
}

func newResultIterator(iter *gocql.Iter) (*goCqlResultIterator, error) {
	columns := iter.Columns()
	scanner := iter.Scanner()

	items := make([]map[string]interface{}, 0)

	for scanner.Next() {
		row, err := mapScan(scanner, columns)
		if err != nil {
			return nil, err
		}
		items = append(items, row)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}

	return &goCqlResultIterator{values: items}, nil
}

type GoCqlSession struct {
	ref *gocql.Session
}

func (session *GoCqlSession) Execute(query string, options *QueryOptions, values ...interface{}) error {
	q := session.ref.Query(query, values...)
	if options != nil {
		q.Consistency(options.Consistency)
		q.SerialConsistency(options.SerialConsistency)
	}
	return q.Exec()
}

func (session *GoCqlSession) ExecuteIter(query string, options *QueryOptions, values ...interface{}) (ResultSet, error) {
	q := session.ref.Query(query, values...)

	// Avoid reusing metadata from the prepared statement so that new columns
	// show up for SELECT * (https://github.com/gocql/gocql/issues/612)
	q.NoSkipMetadata()

	if options != nil {
		q.Consistency(options.Consistency)
		q.SerialConsistency(options.SerialConsistency)
	}
	return newResultIterator(q.Iter())
}

func (session *GoCqlSession) Close() {
	session.ref.Close()
}
