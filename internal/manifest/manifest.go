package manifest

import "fmt"

// ColumnType is the semantic type of a manifest column.
type ColumnType string

const (
	TypeInteger ColumnType = "integer"
	TypeText    ColumnType = "text"
)

// ColumnSpec declares a single table column.
type ColumnSpec struct {
	Name    string
	Type    ColumnType
	NotNull bool
}

// TableSpec declares a reference table and its columns, in order.
type TableSpec struct {
	Name    string
	Columns []ColumnSpec
}

// KeyColumn returns the table's natural-key column: the single
// non-null integer column every reference table must declare.
// The second return value is false if no such column exists.
func (t TableSpec) KeyColumn() (ColumnSpec, bool) {
	for _, col := range t.Columns {
		if col.Type == TypeInteger && col.NotNull {
			return col, true
		}
	}
	return ColumnSpec{}, false
}

// IndexSpec declares an index on a single column of a table.
type IndexSpec struct {
	Name   string
	Table  string
	Column string
	Unique bool
}

// Manifest is the complete declarative description of the desired
// store structure: tables and their indexes, in deterministic order.
//
// A Manifest is constructed once and never mutated; the apply engine
// treats it as read-only input.
type Manifest struct {
	Tables  []TableSpec
	Indexes []IndexSpec
}

// ValidationError reports a malformed or inconsistent manifest.
// It is always detected before any statement reaches a store.
type ValidationError struct {
	Object string // table or index name the problem was found on
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid manifest: %s: %s", e.Object, e.Reason)
}

// Validate checks the manifest for structural consistency: unique
// table and index names, every index bound to a declared table and
// column, and exactly one non-null integer key column per table.
func (m *Manifest) Validate() error {
	tables := make(map[string]TableSpec, len(m.Tables))
	for _, table := range m.Tables {
		if table.Name == "" {
			return &ValidationError{Object: "(unnamed)", Reason: "table name is empty"}
		}
		if _, exists := tables[table.Name]; exists {
			return &ValidationError{Object: table.Name, Reason: "duplicate table name"}
		}
		tables[table.Name] = table

		if len(table.Columns) == 0 {
			return &ValidationError{Object: table.Name, Reason: "table declares no columns"}
		}
		seen := make(map[string]bool, len(table.Columns))
		keyColumns := 0
		for _, col := range table.Columns {
			if col.Name == "" {
				return &ValidationError{Object: table.Name, Reason: "column name is empty"}
			}
			if seen[col.Name] {
				return &ValidationError{Object: table.Name, Reason: fmt.Sprintf("duplicate column %s", col.Name)}
			}
			seen[col.Name] = true
			switch col.Type {
			case TypeInteger, TypeText:
			default:
				return &ValidationError{Object: table.Name, Reason: fmt.Sprintf("column %s has unknown type %q", col.Name, col.Type)}
			}
			if col.Type == TypeInteger && col.NotNull {
				keyColumns++
			}
		}
		if keyColumns != 1 {
			return &ValidationError{Object: table.Name, Reason: fmt.Sprintf("expected exactly one non-null integer key column, found %d", keyColumns)}
		}
	}

	indexNames := make(map[string]bool, len(m.Indexes))
	for _, idx := range m.Indexes {
		if idx.Name == "" {
			return &ValidationError{Object: "(unnamed)", Reason: "index name is empty"}
		}
		if indexNames[idx.Name] {
			return &ValidationError{Object: idx.Name, Reason: "duplicate index name"}
		}
		indexNames[idx.Name] = true

		table, ok := tables[idx.Table]
		if !ok {
			return &ValidationError{Object: idx.Name, Reason: fmt.Sprintf("references unknown table %s", idx.Table)}
		}
		found := false
		for _, col := range table.Columns {
			if col.Name == idx.Column {
				found = true
				break
			}
		}
		if !found {
			return &ValidationError{Object: idx.Name, Reason: fmt.Sprintf("references unknown column %s.%s", idx.Table, idx.Column)}
		}
	}

	return nil
}

// Table returns the spec for the named table, or false if the
// manifest does not declare it.
func (m *Manifest) Table(name string) (TableSpec, bool) {
	for _, table := range m.Tables {
		if table.Name == name {
			return table, true
		}
	}
	return TableSpec{}, false
}

// TableIndexes returns the indexes bound to the named table, in
// manifest order.
func (m *Manifest) TableIndexes(name string) []IndexSpec {
	var indexes []IndexSpec
	for _, idx := range m.Indexes {
		if idx.Table == name {
			indexes = append(indexes, idx)
		}
	}
	return indexes
}
