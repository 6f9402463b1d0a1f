// Package report computes cross-entity analytics over an assembled
// catalog.Db — topology metrics, cycle detection, index-coverage checks and
// "god object" coupling detection — grounded on
// dbgraph/internal/graph.Graph's own analytics, generalized from a flat
// adjacency-list Graph built during introspection to a read-only view over
// the catalog model's own foreign-key constraints.
package report

import "github.com/alexanderritik/pgstructure/internal/catalog"

// edge is a dependency: Source depends on Target (the source table's
// foreign key targets the target table), mirroring
// dbgraph/internal/graph.Edge's Source->Target orientation.
type edge struct {
	source *catalog.Entity
	target *catalog.Entity
	fk     *catalog.Constraint
}

// buildEdges collects one edge per foreign key reachable from db's user
// schemas, skipping FKs whose ReferencedTable never resolved (the
// soft-skip case spec.md 7 describes, which already means no Constraint
// was added to the owning table).
func buildEdges(db *catalog.Db) []edge {
	var edges []edge
	for _, s := range db.Schemas.All() {
		for _, t := range s.AllEntities() {
			for _, c := range t.Constraints.All() {
				if c.Kind != catalog.ConstraintForeignKey || c.ReferencedTable == nil {
					continue
				}
				edges = append(edges, edge{source: t, target: c.ReferencedTable, fk: c})
			}
		}
	}
	return edges
}

func allEntities(db *catalog.Db) []*catalog.Entity {
	var out []*catalog.Entity
	for _, s := range db.Schemas.All() {
		out = append(out, s.AllEntities()...)
	}
	return out
}
