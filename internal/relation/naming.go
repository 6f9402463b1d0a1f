// Package relation computes many-to-one, one-to-many and many-to-many
// relations over an assembled catalog.Db, lazily and memoized per table
// (spec.md section 4.5). It implements catalog.RelationProvider and is
// attached to a Db by the top-level package after Assemble returns, keeping
// relation inference (which needs the whole graph) out of internal/catalog
// per that package's import-cycle-avoidance design.
package relation

import (
	"fmt"

	"github.com/alexanderritik/pgstructure/internal/catalog"
)

// NamingFunc produces the exposed name for one relation. sourceTable,
// targetTable and joinTable (nil outside M2M) are the tables a naming
// strategy may consult; fks is the participating foreign key(s) — one for
// M2O/O2M, two for M2M.
type NamingFunc func(sourceTable, targetTable, joinTable *catalog.Entity, fks ...*catalog.Constraint) string

// shortName is the default "short" naming strategy: the bare name of the
// targetTable it is given, in every case — the referenced table for M2O,
// the referencing table for O2M, and the far table for M2M (the join table
// is not part of the name). Names are not pluralized.
func shortName(sourceTable, targetTable, joinTable *catalog.Entity, fks ...*catalog.Constraint) string {
	if joinTable != nil {
		return targetTable.Name
	}
	if len(fks) == 1 && fks[0] != nil {
		return targetTable.Name
	}
	return targetTable.Name
}

// optimalName disambiguates using the FK's column when the FK is a single
// column named distinctly from the plain foreign-key convention (e.g.
// "author_id" -> "author" rather than the bare target table name), falling
// back to shortName otherwise. Grounded on spec.md 4.5's naming function
// contract: source table, target table, join table, the participating
// FK(s) and constraint names are all available to the strategy.
func optimalName(sourceTable, targetTable, joinTable *catalog.Entity, fks ...*catalog.Constraint) string {
	if joinTable == nil && len(fks) == 1 && fks[0] != nil && len(fks[0].Columns) == 1 {
		col := fks[0].Columns[0].Name
		if derived, ok := stripForeignKeySuffix(col); ok {
			return derived
		}
	}
	return shortName(sourceTable, targetTable, joinTable, fks...)
}

// stripForeignKeySuffix strips a conventional "_id" suffix from a foreign
// key column name (a camel-case "Id" suffix is not stripped), the heuristic the "optimal" strategy uses to
// recover a more specific relation name than the bare target table.
func stripForeignKeySuffix(col string) (string, bool) {
	const suffix = "_id"
	if len(col) > len(suffix) && col[len(col)-len(suffix):] == suffix {
		return col[:len(col)-len(suffix)], true
	}
	return "", false
}

// namingFuncFor resolves the configured strategy name to a NamingFunc,
// falling back to "short" for anything unrecognized (including a custom
// strategy name lost across a snapshot round-trip, per spec.md 4.6's
// documented limitation that custom function objects are not preserved).
func namingFuncFor(strategy string) NamingFunc {
	switch strategy {
	case "optimal":
		return optimalName
	default:
		return shortName
	}
}

// disambiguate applies spec.md 4.5's collision rule: the first relation to
// claim a name keeps it unchanged; every later collision on the same table
// is suffixed with "__<constraint-name>", and for M2M additionally with
// "__<join-table-name>".
func disambiguate(seen map[string]bool, name, constraintName, joinTableName string) string {
	if !seen[name] {
		seen[name] = true
		return name
	}
	suffixed := fmt.Sprintf("%s__%s", name, constraintName)
	if joinTableName != "" {
		suffixed = fmt.Sprintf("%s__%s", suffixed, joinTableName)
	}
	seen[suffixed] = true
	return suffixed
}
