package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mastrkit/refschema/internal/provision"
)

// PostgresClient manages the connection to PostgreSQL.
type PostgresClient struct {
	conn   *pgx.Conn
	schema string
}

// NewPostgresClient creates a new PostgreSQL client. Provisioning and
// inspection target the given schema; an empty schemaName means "public".
func NewPostgresClient(ctx context.Context, connString, schemaName string) (*PostgresClient, error) {
	if schemaName == "" {
		schemaName = "public"
	}

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClient{conn: conn, schema: schemaName}, nil
}

// Close closes the database connection.
func (c *PostgresClient) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

// Dialect reports how DDL is rendered for this store.
func (c *PostgresClient) Dialect() provision.Dialect {
	return provision.Postgres
}

// ExecStatement executes a single DDL statement.
func (c *PostgresClient) ExecStatement(ctx context.Context, sql string) error {
	_, err := c.conn.Exec(ctx, sql)
	return err
}
