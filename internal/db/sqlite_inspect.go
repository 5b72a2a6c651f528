package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mastrkit/refschema/internal/provision"
)

// TableExists reports whether the named table exists in the database.
func (c *SQLiteClient) TableExists(ctx context.Context, table string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`

	var count int
	if err := c.db.QueryRowContext(ctx, query, table).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// TableColumns returns the table's columns in declaration order.
func (c *SQLiteClient) TableColumns(ctx context.Context, table string) ([]provision.ColumnInfo, error) {
	query := fmt.Sprintf("PRAGMA table_info(%q)", table)

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []provision.ColumnInfo
	for rows.Next() {
		var cid, notNull, pk int
		var name, colType string
		var defaultValue sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		columns = append(columns, provision.ColumnInfo{
			Name:     name,
			DataType: colType,
			Nullable: notNull == 0,
		})
	}

	return columns, rows.Err()
}

// TableIndexes returns the table's named indexes. Auto-generated
// sqlite_autoindex entries are skipped.
func (c *SQLiteClient) TableIndexes(ctx context.Context, table string) ([]provision.IndexInfo, error) {
	query := fmt.Sprintf("PRAGMA index_list(%q)", table)

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indexes []provision.IndexInfo
	for rows.Next() {
		var seq, unique, partial int
		var name, origin string

		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			return nil, err
		}

		if strings.HasPrefix(name, "sqlite_autoindex") {
			continue
		}

		columns, err := c.indexColumns(ctx, name)
		if err != nil {
			return nil, err
		}

		indexes = append(indexes, provision.IndexInfo{
			Name:    name,
			Unique:  unique == 1,
			Columns: columns,
		})
	}

	return indexes, rows.Err()
}

func (c *SQLiteClient) indexColumns(ctx context.Context, index string) ([]string, error) {
	query := fmt.Sprintf("PRAGMA index_info(%q)", index)

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var seqno, cid int
		var colName sql.NullString

		if err := rows.Scan(&seqno, &cid, &colName); err != nil {
			return nil, err
		}

		if colName.Valid {
			columns = append(columns, colName.String)
		}
	}

	return columns, rows.Err()
}
