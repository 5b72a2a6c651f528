package provision

import (
	"fmt"
	"strings"

	"github.com/mastrkit/refschema/internal/manifest"
)

// Dialect describes how a particular store renders the DDL the
// provisioner needs: type names, identifier quoting, and which
// idempotency clauses the store supports.
type Dialect struct {
	Name string

	integerType string
	textType    string

	// quoteChar is the identifier quote character ("\"" or "`").
	quoteChar string

	// dropCascade appends CASCADE to DROP TABLE. Kept for Postgres as
	// defensive future-proofing; the manifest declares no foreign keys.
	dropCascade bool

	// indexIfNotExists guards CREATE UNIQUE INDEX with IF NOT EXISTS.
	// MySQL has no such clause; the drop/create pair that precedes every
	// index statement keeps the plain form safely re-runnable there.
	indexIfNotExists bool
}

// Postgres renders DDL for PostgreSQL.
var Postgres = Dialect{
	Name:             "postgres",
	integerType:      "INTEGER",
	textType:         "TEXT",
	quoteChar:        `"`,
	dropCascade:      true,
	indexIfNotExists: true,
}

// MySQL renders DDL for MySQL.
var MySQL = Dialect{
	Name:        "mysql",
	integerType: "INT",
	textType:    "TEXT",
	quoteChar:   "`",
}

// SQLite renders DDL for SQLite.
var SQLite = Dialect{
	Name:             "sqlite",
	integerType:      "INTEGER",
	textType:         "TEXT",
	quoteChar:        `"`,
	indexIfNotExists: true,
}

// quoteIdent quotes an identifier, doubling any embedded quote character.
func (d Dialect) quoteIdent(name string) string {
	escaped := strings.ReplaceAll(name, d.quoteChar, d.quoteChar+d.quoteChar)
	return d.quoteChar + escaped + d.quoteChar
}

func (d Dialect) columnType(t manifest.ColumnType) (string, error) {
	switch t {
	case manifest.TypeInteger:
		return d.integerType, nil
	case manifest.TypeText:
		return d.textType, nil
	default:
		return "", fmt.Errorf("unknown column type %q", t)
	}
}

// DropTableSQL renders the idempotent drop statement for a table.
func (d Dialect) DropTableSQL(table manifest.TableSpec) string {
	sql := "DROP TABLE IF EXISTS " + d.quoteIdent(table.Name)
	if d.dropCascade {
		sql += " CASCADE"
	}
	return sql
}

// CreateTableSQL renders the idempotent create statement for a table.
func (d Dialect) CreateTableSQL(table manifest.TableSpec) (string, error) {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(d.quoteIdent(table.Name))
	b.WriteString(" (")
	for i, col := range table.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		typeName, err := d.columnType(col.Type)
		if err != nil {
			return "", fmt.Errorf("table %s, column %s: %w", table.Name, col.Name, err)
		}
		b.WriteString(d.quoteIdent(col.Name))
		b.WriteString(" ")
		b.WriteString(typeName)
		if col.NotNull {
			b.WriteString(" NOT NULL")
		}
	}
	b.WriteString(")")
	return b.String(), nil
}

// CreateIndexSQL renders the create statement for an index.
func (d Dialect) CreateIndexSQL(idx manifest.IndexSpec) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if d.indexIfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(d.quoteIdent(idx.Name))
	b.WriteString(" ON ")
	b.WriteString(d.quoteIdent(idx.Table))
	b.WriteString(" (")
	b.WriteString(d.quoteIdent(idx.Column))
	b.WriteString(")")
	return b.String()
}
