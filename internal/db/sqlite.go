package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mastrkit/refschema/internal/provision"
)

// SQLiteClient manages the connection to SQLite.
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient creates a new SQLite client.
func NewSQLiteClient(ctx context.Context, path string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// Close closes the database connection.
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

// Dialect reports how DDL is rendered for this store.
func (c *SQLiteClient) Dialect() provision.Dialect {
	return provision.SQLite
}

// ExecStatement executes a single DDL statement.
func (c *SQLiteClient) ExecStatement(ctx context.Context, sql string) error {
	_, err := c.db.ExecContext(ctx, sql)
	return err
}
