package catalog

import (
	"strconv"

	"github.com/alexanderritik/pgstructure/internal/collection"
)

// Schema is a named namespace owning tables, views, materialized views,
// sequences, functions (by kind) and types.
type Schema struct {
	Commented

	OID  OID
	Name string
	db   *Db

	Tables            *collection.Collection[*Entity]
	Views             *collection.Collection[*Entity]
	MaterializedViews *collection.Collection[*Entity]
	Sequences         *collection.Collection[*Entity]

	NormalFunctions   *collection.Collection[*Function]
	Procedures        *collection.Collection[*Function]
	AggregateFunctions *collection.Collection[*Function]
	WindowFunctions   *collection.Collection[*Function]

	// TypesIncludingEntities carries every Type owned by this schema,
	// including the composite types that back tables/views/materialized
	// views. Types (below) excludes those entity-backed composites.
	TypesIncludingEntities *collection.Collection[*Type]
}

// NewSchema constructs a Schema with its owned collections wired up, ready
// for the Assembler to populate.
func NewSchema(oid OID, name string, db *Db) *Schema {
	s := &Schema{OID: oid, Name: name, db: db}
	byName := func(e *Entity) string { return e.Name }
	byOID := func(e *Entity) string { return strconv.Itoa(int(e.OID)) }
	s.Tables = collection.New("name", byName).WithIndex("oid", byOID)
	s.Views = collection.New("name", byName).WithIndex("oid", byOID)
	s.MaterializedViews = collection.New("name", byName).WithIndex("oid", byOID)
	s.Sequences = collection.New("name", byName).WithIndex("oid", byOID)

	// Keyed by signature (name + argument type OIDs), not bare name:
	// PostgreSQL allows overloading, so "name" alone is not unique within a
	// schema's function collections.
	fnBySignature := func(f *Function) string { return f.Signature() }
	fnByOID := func(f *Function) string { return strconv.Itoa(int(f.OID)) }
	s.NormalFunctions = collection.New("signature", fnBySignature).WithIndex("oid", fnByOID)
	s.Procedures = collection.New("signature", fnBySignature).WithIndex("oid", fnByOID)
	s.AggregateFunctions = collection.New("signature", fnBySignature).WithIndex("oid", fnByOID)
	s.WindowFunctions = collection.New("signature", fnBySignature).WithIndex("oid", fnByOID)

	s.TypesIncludingEntities = collection.New("name", func(t *Type) string { return t.Name }).
		WithIndex("oid", func(t *Type) string { return strconv.Itoa(int(t.OID)) })
	return s
}

// Types returns the subset of TypesIncludingEntities that do not back a
// table/view/materialized view, computed on read per spec.md 3.
func (s *Schema) Types() []*Type {
	all := s.TypesIncludingEntities.All()
	out := make([]*Type, 0, len(all))
	for _, t := range all {
		if !t.IsEntityBacked() {
			out = append(out, t)
		}
	}
	return out
}

// AllEntities returns tables, views, materialized views and sequences in a
// single ordered slice (tables first), for callers that don't care about
// the kind split.
func (s *Schema) AllEntities() []*Entity {
	out := make([]*Entity, 0, s.Tables.Len()+s.Views.Len()+s.MaterializedViews.Len()+s.Sequences.Len())
	out = append(out, s.Tables.All()...)
	out = append(out, s.Views.All()...)
	out = append(out, s.MaterializedViews.All()...)
	out = append(out, s.Sequences.All()...)
	return out
}

// Get descends one dotted-path segment (spec.md section 8: "public.account.id"
// style lookup). Functions are keyed by signature, not bare name, since
// PostgreSQL allows overloading — a function is not reachable through this
// path by plain name alone; schema/table/column paths are unaffected.
func (s *Schema) Get(segment string) (any, error) {
	for _, coll := range []*collection.Collection[*Entity]{s.Tables, s.Views, s.MaterializedViews, s.Sequences} {
		if e, ok := coll.GetMaybe(segment); ok {
			return e, nil
		}
	}
	if t, ok := s.TypesIncludingEntities.GetMaybe(segment); ok {
		return t, nil
	}
	for _, coll := range []*collection.Collection[*Function]{s.NormalFunctions, s.Procedures, s.AggregateFunctions, s.WindowFunctions} {
		if f, ok := coll.GetMaybe(segment); ok {
			return f, nil
		}
	}
	return nil, schemaChildNotFound(s, segment)
}
