package manifest

import "testing"

func TestRegistryIsValid(t *testing.T) {
	if err := Registry().Validate(); err != nil {
		t.Fatalf("Registry manifest failed validation: %v", err)
	}
}

func TestRegistryTables(t *testing.T) {
	m := Registry()

	wantTables := []string{
		"de_energy_source_meta",
		"de_energy_state_meta",
		"de_energy_country_meta",
		"de_network_operator_audit_meta",
		"de_energy_location_meta",
		"de_energy_supply_meta",
		"de_turbine_manufacturer_meta",
		"de_power_limitation_meta",
		"de_power_technology_meta",
	}

	if len(m.Tables) != len(wantTables) {
		t.Fatalf("Expected %d tables, got %d", len(wantTables), len(m.Tables))
	}
	if len(m.Indexes) != len(wantTables) {
		t.Fatalf("Expected %d indexes, got %d", len(wantTables), len(m.Indexes))
	}

	for i, name := range wantTables {
		table := m.Tables[i]
		if table.Name != name {
			t.Errorf("Table %d: expected %s, got %s", i, name, table.Name)
			continue
		}

		if len(table.Columns) != 2 {
			t.Errorf("Table %s: expected 2 columns, got %d", name, len(table.Columns))
			continue
		}
		id := table.Columns[0]
		if id.Name != "id" || id.Type != TypeInteger || !id.NotNull {
			t.Errorf("Table %s: unexpected id column %+v", name, id)
		}
		label := table.Columns[1]
		if label.Name != "name" || label.Type != TypeText || label.NotNull {
			t.Errorf("Table %s: unexpected name column %+v", name, label)
		}

		idx := m.Indexes[i]
		if idx.Name != "idx_"+name+"_id" || idx.Table != name || idx.Column != "id" || !idx.Unique {
			t.Errorf("Table %s: unexpected index %+v", name, idx)
		}
	}
}

func TestRegistryReturnsFreshValue(t *testing.T) {
	first := Registry()
	first.Tables[0].Name = "mutated"

	second := Registry()
	if second.Tables[0].Name != "de_energy_source_meta" {
		t.Error("Registry() must not share state between calls")
	}
}
