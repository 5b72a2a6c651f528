package manifest

import (
	"errors"
	"strings"
	"testing"
)

func validManifest() *Manifest {
	return &Manifest{
		Tables: []TableSpec{
			{
				Name: "de_energy_source_meta",
				Columns: []ColumnSpec{
					{Name: "id", Type: TypeInteger, NotNull: true},
					{Name: "name", Type: TypeText},
				},
			},
		},
		Indexes: []IndexSpec{
			{Name: "idx_de_energy_source_meta_id", Table: "de_energy_source_meta", Column: "id", Unique: true},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(m *Manifest)
		wantReason string
	}{
		{
			name:   "valid manifest",
			mutate: func(m *Manifest) {},
		},
		{
			name: "duplicate table name",
			mutate: func(m *Manifest) {
				m.Tables = append(m.Tables, m.Tables[0])
			},
			wantReason: "duplicate table name",
		},
		{
			name: "empty table name",
			mutate: func(m *Manifest) {
				m.Tables[0].Name = ""
			},
			wantReason: "table name is empty",
		},
		{
			name: "table without columns",
			mutate: func(m *Manifest) {
				m.Tables[0].Columns = nil
			},
			wantReason: "declares no columns",
		},
		{
			name: "duplicate column name",
			mutate: func(m *Manifest) {
				m.Tables[0].Columns = append(m.Tables[0].Columns, m.Tables[0].Columns[1])
			},
			wantReason: "duplicate column",
		},
		{
			name: "unknown column type",
			mutate: func(m *Manifest) {
				m.Tables[0].Columns[1].Type = "blob"
			},
			wantReason: "unknown type",
		},
		{
			name: "missing key column",
			mutate: func(m *Manifest) {
				m.Tables[0].Columns[0].NotNull = false
			},
			wantReason: "exactly one non-null integer key column",
		},
		{
			name: "two key columns",
			mutate: func(m *Manifest) {
				m.Tables[0].Columns = append(m.Tables[0].Columns, ColumnSpec{Name: "code", Type: TypeInteger, NotNull: true})
			},
			wantReason: "exactly one non-null integer key column",
		},
		{
			name: "duplicate index name",
			mutate: func(m *Manifest) {
				m.Indexes = append(m.Indexes, m.Indexes[0])
			},
			wantReason: "duplicate index name",
		},
		{
			name: "index references unknown table",
			mutate: func(m *Manifest) {
				m.Indexes[0].Table = "de_missing_meta"
			},
			wantReason: "unknown table",
		},
		{
			name: "index references unknown column",
			mutate: func(m *Manifest) {
				m.Indexes[0].Column = "code"
			},
			wantReason: "unknown column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validManifest()
			tt.mutate(m)

			err := m.Validate()
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("Validate() returned unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Expected validation error but got none")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantReason) {
				t.Errorf("Expected error containing %q, got %q", tt.wantReason, err.Error())
			}
		})
	}
}

func TestKeyColumn(t *testing.T) {
	m := validManifest()

	key, ok := m.Tables[0].KeyColumn()
	if !ok {
		t.Fatal("Expected a key column")
	}
	if key.Name != "id" {
		t.Errorf("Expected key column id, got %s", key.Name)
	}

	noKey := TableSpec{
		Name:    "de_broken_meta",
		Columns: []ColumnSpec{{Name: "name", Type: TypeText}},
	}
	if _, ok := noKey.KeyColumn(); ok {
		t.Error("Expected no key column for text-only table")
	}
}

func TestTableLookup(t *testing.T) {
	m := validManifest()

	if _, ok := m.Table("de_energy_source_meta"); !ok {
		t.Error("Expected to find de_energy_source_meta")
	}
	if _, ok := m.Table("de_missing_meta"); ok {
		t.Error("Did not expect to find de_missing_meta")
	}

	indexes := m.TableIndexes("de_energy_source_meta")
	if len(indexes) != 1 || indexes[0].Name != "idx_de_energy_source_meta_id" {
		t.Errorf("Unexpected indexes for de_energy_source_meta: %v", indexes)
	}
	if got := m.TableIndexes("de_missing_meta"); len(got) != 0 {
		t.Errorf("Expected no indexes for unknown table, got %v", got)
	}
}
