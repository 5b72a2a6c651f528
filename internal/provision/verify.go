package provision

import (
	"context"
	"fmt"
	"strings"

	"github.com/mastrkit/refschema/internal/manifest"
)

// ColumnInfo is the observed definition of one column in a live store.
type ColumnInfo struct {
	Name     string
	DataType string // the store's own type name, e.g. "integer", "int", "TEXT"
	Nullable bool
}

// IndexInfo is the observed definition of one index in a live store.
type IndexInfo struct {
	Name    string
	Columns []string
	Unique  bool
}

// Inspector reads table structure back out of a live store. The
// internal/db clients implement it, one per backend. Inspection is
// read-only; it never mutates the store.
type Inspector interface {
	TableExists(ctx context.Context, table string) (bool, error)
	TableColumns(ctx context.Context, table string) ([]ColumnInfo, error)
	TableIndexes(ctx context.Context, table string) ([]IndexInfo, error)
}

// Mismatch describes one way a live table deviates from its manifest
// declaration.
type Mismatch struct {
	Table  string
	Detail string
}

func (m Mismatch) String() string {
	return m.Table + ": " + m.Detail
}

// VerifyResult reports how the live store compares to the manifest.
type VerifyResult struct {
	Tables     int // manifest tables checked
	Mismatches []Mismatch
}

// OK reports whether the live structure matches the manifest exactly.
func (r *VerifyResult) OK() bool {
	return len(r.Mismatches) == 0
}

// Verify compares the live structure of every manifest table against
// its declaration: presence, column names, types, nullability, and the
// declared indexes. Tables in the store that the manifest does not name
// are ignored; provisioning never touches them either.
func Verify(ctx context.Context, ins Inspector, m *manifest.Manifest) (*VerifyResult, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	result := &VerifyResult{Tables: len(m.Tables)}
	for _, table := range m.Tables {
		exists, err := ins.TableExists(ctx, table.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect table %s: %w", table.Name, err)
		}
		if !exists {
			result.Mismatches = append(result.Mismatches, Mismatch{Table: table.Name, Detail: "table does not exist"})
			continue
		}

		columns, err := ins.TableColumns(ctx, table.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect columns of %s: %w", table.Name, err)
		}
		verifyColumns(result, table, columns)

		indexes, err := ins.TableIndexes(ctx, table.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect indexes of %s: %w", table.Name, err)
		}
		verifyIndexes(result, table.Name, m.TableIndexes(table.Name), indexes)
	}
	return result, nil
}

func verifyColumns(result *VerifyResult, table manifest.TableSpec, observed []ColumnInfo) {
	if len(observed) != len(table.Columns) {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Table:  table.Name,
			Detail: fmt.Sprintf("expected %d columns, found %d", len(table.Columns), len(observed)),
		})
		return
	}
	for i, want := range table.Columns {
		got := observed[i]
		if got.Name != want.Name {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Table:  table.Name,
				Detail: fmt.Sprintf("column %d: expected %s, found %s", i+1, want.Name, got.Name),
			})
			continue
		}
		if normalizeType(got.DataType) != want.Type {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Table:  table.Name,
				Detail: fmt.Sprintf("column %s: expected type %s, found %s", want.Name, want.Type, got.DataType),
			})
		}
		if got.Nullable == want.NotNull {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Table:  table.Name,
				Detail: fmt.Sprintf("column %s: expected nullable=%t, found nullable=%t", want.Name, !want.NotNull, got.Nullable),
			})
		}
	}
}

func verifyIndexes(result *VerifyResult, table string, wanted []manifest.IndexSpec, observed []IndexInfo) {
	byName := make(map[string]IndexInfo, len(observed))
	for _, idx := range observed {
		byName[idx.Name] = idx
	}
	for _, want := range wanted {
		got, ok := byName[want.Name]
		if !ok {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Table:  table,
				Detail: fmt.Sprintf("index %s does not exist", want.Name),
			})
			continue
		}
		if got.Unique != want.Unique {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Table:  table,
				Detail: fmt.Sprintf("index %s: expected unique=%t, found unique=%t", want.Name, want.Unique, got.Unique),
			})
		}
		if len(got.Columns) != 1 || got.Columns[0] != want.Column {
			result.Mismatches = append(result.Mismatches, Mismatch{
				Table:  table,
				Detail: fmt.Sprintf("index %s: expected columns [%s], found %v", want.Name, want.Column, got.Columns),
			})
		}
	}
}

// normalizeType maps a store-reported type name onto the manifest's
// semantic types. Covers the spellings the three supported backends
// report for the two types the manifest uses.
func normalizeType(dataType string) manifest.ColumnType {
	switch strings.ToLower(dataType) {
	case "integer", "int", "int4", "bigint", "int8":
		return manifest.TypeInteger
	case "text", "varchar", "character varying":
		return manifest.TypeText
	default:
		return manifest.ColumnType(strings.ToLower(dataType))
	}
}
