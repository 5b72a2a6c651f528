package db

import (
	"context"
	"strings"

	"github.com/mastrkit/refschema/internal/provision"
)

// TableExists reports whether the named table exists in the database.
func (c *MySQLClient) TableExists(ctx context.Context, table string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = ? AND table_name = ? AND table_type = 'BASE TABLE'
	`

	var count int
	if err := c.db.QueryRowContext(ctx, query, c.schemaName, table).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// TableColumns returns the table's columns in ordinal position order.
func (c *MySQLClient) TableColumns(ctx context.Context, table string) ([]provision.ColumnInfo, error) {
	query := `
		SELECT column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := c.db.QueryContext(ctx, query, c.schemaName, table)
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

// TableIndexes returns the table's indexes, excluding the primary key.
func (c *MySQLClient) TableIndexes(ctx context.Context, table string) ([]provision.IndexInfo, error) {
	query := `
		SELECT index_name, MAX(non_unique) AS non_unique,
			GROUP_CONCAT(column_name ORDER BY seq_in_index) AS column_names
		FROM information_schema.statistics
		WHERE table_schema = ? AND table_name = ? AND index_name != 'PRIMARY'
		GROUP BY index_name
		ORDER BY index_name
	`

	rows, err := c.db.QueryContext(ctx, query, c.schemaName, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []provision.IndexInfo
	for rows.Next() {
		var idx provision.IndexInfo
		var nonUnique int
		var columnNames string
		if err := rows.Scan(&idx.Name, &nonUnique, &columnNames); err != nil {
			return nil, err
		}
		idx.Unique = (nonUnique == 0)
		idx.Columns = strings.Split(columnNames, ",")
		indexes = append(indexes, idx)
	}

	return indexes, rows.Err()
}
