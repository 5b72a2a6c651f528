package db

import (
	"context"

	"github.com/mastrkit/refschema/internal/provision"
)

// TableExists reports whether the named table exists in the schema.
func (c *PostgresClient) TableExists(ctx context.Context, table string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2 AND table_type = 'BASE TABLE'
		)
	`

	var exists bool
	if err := c.conn.QueryRow(ctx, query, c.schema, table).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// TableColumns returns the table's columns in ordinal position order.
func (c *PostgresClient) TableColumns(ctx context.Context, table string) ([]provision.ColumnInfo, error) {
	query := `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`

	rows, err := c.conn.Query(ctx, query, c.schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []provision.ColumnInfo
	for rows.Next() {
		var col provision.ColumnInfo
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &nullable); err != nil {
			return nil, err
		}
		col.Nullable = (nullable == "YES")
		columns = append(columns, col)
	}

	return columns, rows.Err()
}

// TableIndexes returns the table's indexes, excluding any primary key index.
func (c *PostgresClient) TableIndexes(ctx context.Context, table string) ([]provision.IndexInfo, error) {
	query := `
		SELECT
			i.relname AS index_name,
			ix.indisunique AS is_unique,
			array_agg(a.attname ORDER BY array_position(ix.indkey, a.attnum)) AS column_names
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE t.relkind = 'r'
			AND n.nspname = $1
			AND t.relname = $2
			AND NOT ix.indisprimary
		GROUP BY i.relname, ix.indisunique
		ORDER BY i.relname
	`

	rows, err := c.conn.Query(ctx, query, c.schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []provision.IndexInfo
	for rows.Next() {
		var idx provision.IndexInfo
		if err := rows.Scan(&idx.Name, &idx.Unique, &idx.Columns); err != nil {
			return nil, err
		}
		indexes = append(indexes, idx)
	}

	return indexes, rows.Err()
}
