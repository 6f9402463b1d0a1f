package report

import "github.com/alexanderritik/pgstructure/internal/catalog"

// MissingIndex names one foreign key whose source columns have no
// supporting index prefix.
type MissingIndex struct {
	Table  *catalog.Entity
	FK     *catalog.Constraint
	Target *catalog.Entity
}

// IndexCoverage is the result of CheckIndexCoverage.
type IndexCoverage struct {
	Missing    []MissingIndex
	TotalFKs   int
	IndexedFKs int
}

// CheckIndexCoverage flags foreign keys whose source columns are not a
// prefix of any index on the owning table, grounded on
// dbgraph/internal/graph.Graph.CheckIndexCoverage's prefix-match rule,
// generalized from a stored string-slice MetaData lookup to Constraint's
// own Columns.
func CheckIndexCoverage(db *catalog.Db) *IndexCoverage {
	result := &IndexCoverage{}

	for _, s := range db.Schemas.All() {
		for _, t := range s.AllEntities() {
			for _, c := range t.Constraints.All() {
				if c.Kind != catalog.ConstraintForeignKey {
					continue
				}
				result.TotalFKs++
				if IndexCoversColumns(t, c.Columns) {
					result.IndexedFKs++
					continue
				}
				result.Missing = append(result.Missing, MissingIndex{Table: t, FK: c, Target: c.ReferencedTable})
			}
		}
	}
	return result
}

// IndexCoversColumns reports whether t has an index whose leading columns
// are exactly fkCols, in order — the supporting-index prefix test spec.md's
// index-hygiene check relies on, shared by CheckIndexCoverage and the deps
// command's per-edge warning.
func IndexCoversColumns(t *catalog.Entity, fkCols []*catalog.Column) bool {
	if len(fkCols) == 0 {
		return false
	}
	for _, ix := range t.Indexes.All() {
		idxCols := ix.Columns()
		if len(idxCols) < len(fkCols) {
			continue
		}
		match := true
		for i, col := range fkCols {
			if idxCols[i] != col {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
