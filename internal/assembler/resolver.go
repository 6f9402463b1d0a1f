package assembler

import "github.com/alexanderritik/pgstructure/internal/catalog"

// Hint names what kind of object an OID is expected to resolve to, so a
// failed lookup can log a specific, actionable warning instead of a bare
// "not found" — grounded on dbgraph/internal/graph.Graph.AddEdge's repeated
// "if _, ok := g.Nodes[id]; !ok { ... }" existence checks before wiring an
// edge, promoted here into one shared helper instead of being re-inlined at
// every phase's call sites.
type Hint string

const (
	HintTable        Hint = "table"
	HintIndex        Hint = "index"
	HintType         Hint = "type"
	HintEntity       Hint = "entity"
	HintTypeOrEntity Hint = "type-or-entity"
	HintFunction     Hint = "function"
)

// Resolver is a stateless view over the in-progress build's OID-keyed
// lookup tables.
type Resolver struct{ st *buildState }

func newResolver(st *buildState) Resolver { return Resolver{st: st} }

// Type resolves a pg_type OID against the types loaded so far.
func (r Resolver) Type(oid catalog.OID) (*catalog.Type, bool) {
	t, ok := r.st.typesByOID[oid]
	return t, ok
}

// TypeByClassOID resolves a composite type by its backing pg_class OID.
func (r Resolver) TypeByClassOID(classOID catalog.OID) (*catalog.Type, bool) {
	t, ok := r.st.typesByClassOID[classOID]
	return t, ok
}

// Entity resolves a pg_class OID against the entities loaded so far.
func (r Resolver) Entity(oid catalog.OID) (*catalog.Entity, bool) {
	e, ok := r.st.entitiesByOID[oid]
	return e, ok
}

// Index resolves a pg_index OID (indexrelid) against the indexes loaded so
// far.
func (r Resolver) Index(oid catalog.OID) (*catalog.Index, bool) {
	ix, ok := r.st.indexesByOID[oid]
	return ix, ok
}

// Function resolves a pg_proc OID against the functions loaded so far.
func (r Resolver) Function(oid catalog.OID) (*catalog.Function, bool) {
	f, ok := r.st.functionsByOID[oid]
	return f, ok
}

// ColumnParent resolves an attribute's owner, dispatching on the
// parent_kind discriminant the column query carries: 'c' for a
// free-standing composite type keyed by class_oid, anything else for an
// entity keyed by its own oid.
func (r Resolver) ColumnParent(parentKind string, oid catalog.OID) (catalog.ColumnParent, Hint, bool) {
	if parentKind == "c" {
		t, ok := r.TypeByClassOID(oid)
		if !ok {
			return nil, HintType, false
		}
		return t, HintType, true
	}
	e, ok := r.Entity(oid)
	if !ok {
		return nil, HintEntity, false
	}
	return e, HintEntity, true
}
