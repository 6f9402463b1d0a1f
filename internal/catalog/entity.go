package catalog

import (
	"strconv"

	"github.com/alexanderritik/pgstructure/internal/collection"
)

func (*Entity) columnParent() {}

// Entity is a table, view, materialized view or sequence. Identified by
// OID. Tables and materialized views own indexes, constraints and triggers;
// views and sequences carry only columns (sequences technically have no
// catalog columns, but keep an empty collection for a uniform API).
type Entity struct {
	Commented

	OID    OID
	Name   string
	Kind   EntityKind
	Schema *Schema

	Columns     *collection.Collection[*Column]
	Indexes     *collection.Collection[*Index]
	Constraints *collection.Collection[*Constraint]
	Triggers    *collection.Collection[*Trigger]

	// ForeignKeysToThis is the closure of FKs, across every schema
	// loaded, whose referenced table is this table (spec.md invariant 2).
	ForeignKeysToThis []*Constraint

	// RowType is the composite type that mirrors this entity's columns;
	// every table has one (spec.md 3).
	RowType *Type

	// Sequence-only fields (spec.md 3.1 supplement, grounded on
	// pgschema/ir.Sequence).
	Sequence *SequenceInfo

	db *Db
}

// SequenceInfo carries the pg_sequence-derived attributes of a sequence
// entity.
type SequenceInfo struct {
	DataType      string
	StartValue    int64
	MinValue      int64
	MaxValue      int64
	Increment     int64
	CycleOption   bool
	OwnedByTable  string
	OwnedByColumn string
}

// NewEntity constructs an Entity with its owned collections wired up, ready
// for the Assembler to populate. db is the back-pointer used by the
// relation accessor methods (ManyToOne/OneToMany/ManyToMany).
func NewEntity(oid OID, name string, kind EntityKind, schema *Schema, db *Db) *Entity {
	e := &Entity{
		OID:    oid,
		Name:   name,
		Kind:   kind,
		Schema: schema,
		db:     db,
	}
	e.Columns = collection.New("name", func(c *Column) string { return c.Name }).
		WithIndex("attributeNumber", func(c *Column) string { return strconv.Itoa(c.AttributeNumber) })
	e.Indexes = collection.New("name", func(ix *Index) string { return ix.Name })
	e.Constraints = collection.New("name", func(con *Constraint) string { return con.Name })
	e.Triggers = collection.New("name", func(t *Trigger) string { return t.Name })
	return e
}

// FullName is schema-qualified: "public.account".
func (e *Entity) FullName() string {
	if e.Schema == nil {
		return e.Name
	}
	return e.Schema.Name + "." + e.Name
}

// PrimaryKey returns the table's primary-key constraint, if any.
func (e *Entity) PrimaryKey() *Constraint {
	for _, c := range e.Constraints.All() {
		if c.Kind == ConstraintPrimaryKey {
			return c
		}
	}
	return nil
}

// ManyToOne returns one relation per outgoing foreign key on this table,
// computed lazily and memoized by the Db's relation engine (spec.md 4.5).
func (e *Entity) ManyToOne() []*ManyToOneRelation {
	if e.db == nil || e.db.Relations == nil {
		return nil
	}
	return e.db.Relations.ManyToOne(e)
}

// OneToMany returns the inverse relation for each FK in ForeignKeysToThis.
func (e *Entity) OneToMany() []*OneToManyRelation {
	if e.db == nil || e.db.Relations == nil {
		return nil
	}
	return e.db.Relations.OneToMany(e)
}

// ManyToMany returns relations inferred through join tables (spec.md 4.5).
func (e *Entity) ManyToMany() []*ManyToManyRelation {
	if e.db == nil || e.db.Relations == nil {
		return nil
	}
	return e.db.Relations.ManyToMany(e)
}

func (e *Entity) Get(segment string) (any, error) {
	if c, ok := e.Columns.GetMaybe(segment); ok {
		return c, nil
	}
	if ix, ok := e.Indexes.GetMaybe(segment); ok {
		return ix, nil
	}
	if con, ok := e.Constraints.GetMaybe(segment); ok {
		return con, nil
	}
	if t, ok := e.Triggers.GetMaybe(segment); ok {
		return t, nil
	}
	return nil, entityChildNotFound(e, segment)
}

