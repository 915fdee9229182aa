package db

import (
	"errors"
	"fmt"

	"github.com/datastax/mariadb-scylla-migrator/log"
	"github.com/gocql/gocql"
)

// Db represents a connection to the target store
type Db struct {
	session Session
	logger  log.Logger
}

// NewDb Gets a pointer to a db
func NewDb(logger log.Logger, username string, password string, port int, hosts ...string) (*Db, error) {
	cluster := gocql.NewCluster(hosts...)

	if port > 0 {
		cluster.Port = port
	}

	if username != "" || password != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: username,
			Password: password,
		}
	}

	var (
		session *gocql.Session
		err     error
	)

	session, err = cluster.CreateSession()
	if err != nil {
		return nil, err
	}

	if session == nil {
		return nil, errors.New("failed to create session")
	}

	return NewDbWithSession(&GoCqlSession{ref: session}, logger), nil
}

// NewDbWithSession gets a db backed by an existing session, used for testing
func NewDbWithSession(session Session, logger log.Logger) *Db {
	return &Db{
		session: session,
		logger:  logger,
	}
}

func (db *Db) Close() {
	db.session.Close()
}

// SampleRows reads back up to limit rows from a target table. The orchestrator
// uses it to spot check the bulk copy; failures are reported, not fatal.
func (db *Db) SampleRows(keyspace string, table string, limit int) ([]map[string]interface{}, error) {
	query := fmt.Sprintf(`SELECT * FROM "%s"."%s" LIMIT %d`, keyspace, table, limit)
	rs, err := db.session.ExecuteIter(query, NewQueryOptions())
	if err != nil {
		return nil, err
	}
	return rs.Values(), nil
}
