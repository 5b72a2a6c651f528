package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/mastrkit/refschema/internal/provision"
)

// ParseDatabaseName extracts the database name from a MySQL DSN.
func ParseDatabaseName(connString string) (string, error) {
	cfg, err := mysql.ParseDSN(connString)
	if err != nil {
		return "", fmt.Errorf("failed to parse DSN: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("connection string does not name a database")
	}
	return cfg.DBName, nil
}

// MySQLClient manages the connection to MySQL.
type MySQLClient struct {
	db         *sql.DB
	schemaName string
}

// NewMySQLClient creates a new MySQL client. If schemaName is empty it
// is derived from the connection string's database name.
func NewMySQLClient(ctx context.Context, connString, schemaName string) (*MySQLClient, error) {
	if schemaName == "" {
		var err error
		schemaName, err = ParseDatabaseName(connString)
		if err != nil {
			return nil, fmt.Errorf("failed to determine database name: %w", err)
		}
	}

	db, err := sql.Open("mysql", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &MySQLClient{db: db, schemaName: schemaName}, nil
}

// Close closes the database connection.
func (c *MySQLClient) Close() error {
	return c.db.Close()
}

// Dialect reports how DDL is rendered for this store.
func (c *MySQLClient) Dialect() provision.Dialect {
	return provision.MySQL
}

// ExecStatement executes a single DDL statement.
func (c *MySQLClient) ExecStatement(ctx context.Context, sql string) error {
	_, err := c.db.ExecContext(ctx, sql)
	return err
}
