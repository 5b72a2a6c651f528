// Package manifest declares the desired structure of the energy-market
// registry's reference tables: which lookup tables exist, their columns,
// and the unique index that enforces code uniqueness in each of them.
//
// The manifest is static configuration. Registry returns the canonical
// declaration used in production; the provisioning engine accepts any
// Manifest value, so tests can feed it arbitrary (including malformed)
// manifests.
package manifest

// registryTables lists the lookup tables decoding the numeric
// classification codes of the national energy-market registry.
// Each maps an integer code to a human-readable label.
var registryTables = []string{
	"de_energy_source_meta",          // energy source (wind, solar, biomass, ...)
	"de_energy_state_meta",           // federal state
	"de_energy_country_meta",         // country
	"de_network_operator_audit_meta", // network-operator audit status
	"de_energy_location_meta",        // site type
	"de_energy_supply_meta",          // feed-in type
	"de_turbine_manufacturer_meta",   // turbine manufacturer
	"de_power_limitation_meta",       // power limitation
	"de_power_technology_meta",       // generation technology
}

// Registry returns the manifest for the registry's reference tables:
// one (id, name) lookup table per classification code, each with a
// unique index on id.
//
// Every call builds a fresh value, so callers may not observe mutations
// made by other callers.
func Registry() *Manifest {
	m := &Manifest{
		Tables:  make([]TableSpec, 0, len(registryTables)),
		Indexes: make([]IndexSpec, 0, len(registryTables)),
	}
	for _, name := range registryTables {
		m.Tables = append(m.Tables, TableSpec{
			Name: name,
			Columns: []ColumnSpec{
				{Name: "id", Type: TypeInteger, NotNull: true},
				{Name: "name", Type: TypeText},
			},
		})
		m.Indexes = append(m.Indexes, IndexSpec{
			Name:   "idx_" + name + "_id",
			Table:  name,
			Column: "id",
			Unique: true,
		})
	}
	return m
}
