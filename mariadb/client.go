package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/datastax/mariadb-scylla-migrator/log"
	"github.com/go-sql-driver/mysql"
)

const connectTimeout = 5 * time.Second

// Client is a connection to the source server. A single client is opened once
// per run and reused across all tables.
type Client struct {
	db     *sql.DB
	logger log.Logger
}

// NewClient opens and verifies a connection to the source server.
func NewClient(cfg *mysql.Config, logger log.Logger) (*Client, error) {
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mariadb ping failed: %w", err)
	}

	return NewClientWithDB(db, logger), nil
}

// NewClientWithDB wraps an existing handle, used for testing.
func NewClientWithDB(db *sql.DB, logger log.Logger) *Client {
	return &Client{
		db:     db,
		logger: logger,
	}
}

func (c *Client) Close() error {
	return c.db.Close()
}

// EnsureDatabase creates the named database when it is absent.
func (c *Client) EnsureDatabase(ctx context.Context, name string) error {
	_, err := c.db.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", quoteIdent(name)))
	return err
}

// ExecDDL executes a single schema definition statement.
func (c *Client) ExecDDL(ctx context.Context, ddl string) error {
	_, err := c.db.ExecContext(ctx, ddl)
	return err
}

func (c *Client) RowCount(ctx context.Context, database string, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s.%s", quoteIdent(database), quoteIdent(table))
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CopyTable copies every existing row from the source table into its mirror
// with a single set based statement, and returns the number of rows copied.
func (c *Client) CopyTable(ctx context.Context, sourceDatabase string, mirrorDatabase string, table string) (int64, error) {
	stmt := fmt.Sprintf("INSERT INTO %s.%s SELECT * FROM %s.%s",
		quoteIdent(mirrorDatabase), quoteIdent(table),
		quoteIdent(sourceDatabase), quoteIdent(table))

	result, err := c.db.ExecContext(ctx, stmt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// quoteIdent backtick quotes an identifier, doubling any embedded backtick, so
// reserved words and mixed case names are tolerated.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
