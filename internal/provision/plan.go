// Package provision turns a table manifest into an ordered sequence of
// idempotent DDL statements and applies them, one at a time, to a
// relational store.
//
// Provisioning is a reset: every table in the manifest is dropped and
// recreated, so the store's structure matches the manifest regardless of
// prior state. Rows are not touched by this package; an external loader
// populates the tables after a successful apply.
package provision

import (
	"github.com/mastrkit/refschema/internal/manifest"
)

// StatementKind identifies what a planned statement does.
type StatementKind string

const (
	KindDropTable   StatementKind = "drop table"
	KindCreateTable StatementKind = "create table"
	KindCreateIndex StatementKind = "create index"
)

// Statement is one planned DDL statement.
type Statement struct {
	Kind   StatementKind
	Object string // the table or index the statement targets
	SQL    string
}

// Plan validates the manifest and renders the statement sequence for the
// given dialect: per table, in manifest order, a drop-if-exists paired
// with a create-if-not-exists; then every index, after all tables.
//
// The order is deterministic so that logs and plan output diff cleanly
// across runs. Tables carry no foreign keys between them, so cross-table
// order is not load-bearing.
func Plan(m *manifest.Manifest, d Dialect) ([]Statement, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	statements := make([]Statement, 0, 2*len(m.Tables)+len(m.Indexes))
	for _, table := range m.Tables {
		statements = append(statements, Statement{
			Kind:   KindDropTable,
			Object: table.Name,
			SQL:    d.DropTableSQL(table),
		})
		createSQL, err := d.CreateTableSQL(table)
		if err != nil {
			// Unreachable for a validated manifest, but Validate and the
			// renderer are kept independent.
			return nil, err
		}
		statements = append(statements, Statement{
			Kind:   KindCreateTable,
			Object: table.Name,
			SQL:    createSQL,
		})
	}
	for _, idx := range m.Indexes {
		statements = append(statements, Statement{
			Kind:   KindCreateIndex,
			Object: idx.Name,
			SQL:    d.CreateIndexSQL(idx),
		})
	}
	return statements, nil
}
