package catalog

import (
	"strconv"

	"github.com/alexanderritik/pgstructure/internal/collection"
)

// OID is a PostgreSQL object identifier: unique within a catalog relation,
// used throughout the model as the stable cross-reference key.
type OID = uint32

// BuiltinAlias describes PostgreSQL's SQL-standard spelling for an internal
// base-type name (e.g. "int4" -> "integer" / "int").
type BuiltinAlias struct {
	Name         string
	ShortName    string
	InternalName string
	HasLength    bool
	HasPrecision bool
	HasScale     bool
}

// builtinAliases maps pg_type.typname (the internal name) to its
// SQL-standard presentation. Grounded on the fixed set of aliases every
// introspection tool in the pack special-cases (format_type callers such as
// allyourbase/schema/introspect.go already rely on Postgres's own
// format_type() for this; we keep an explicit table because spec.md 3
// requires the alias fields to be queryable on the Type object itself, not
// just folded into a formatted string).
var builtinAliases = map[string]BuiltinAlias{
	"int2":        {Name: "smallint", ShortName: "smallint", InternalName: "int2"},
	"int4":        {Name: "integer", ShortName: "int", InternalName: "int4"},
	"int8":        {Name: "bigint", ShortName: "bigint", InternalName: "int8"},
	"float4":      {Name: "real", ShortName: "real", InternalName: "float4"},
	"float8":      {Name: "double precision", ShortName: "double", InternalName: "float8"},
	"bool":        {Name: "boolean", ShortName: "bool", InternalName: "bool"},
	"varchar":     {Name: "character varying", ShortName: "varchar", InternalName: "varchar", HasLength: true},
	"bpchar":      {Name: "character", ShortName: "char", InternalName: "bpchar", HasLength: true},
	"numeric":     {Name: "numeric", ShortName: "numeric", InternalName: "numeric", HasPrecision: true, HasScale: true},
	"timestamp":   {Name: "timestamp without time zone", ShortName: "timestamp", InternalName: "timestamp", HasPrecision: true},
	"timestamptz": {Name: "timestamp with time zone", ShortName: "timestamptz", InternalName: "timestamptz", HasPrecision: true},
	"time":        {Name: "time without time zone", ShortName: "time", InternalName: "time", HasPrecision: true},
	"timetz":      {Name: "time with time zone", ShortName: "timetz", InternalName: "timetz", HasPrecision: true},
}

// BuiltinAliasFor looks up the alias table by internal type name. ok is
// false for names without a special SQL-standard spelling (most base types
// are already spelled the standard way, e.g. "text", "uuid", "date").
func BuiltinAliasFor(internalName string) (BuiltinAlias, bool) {
	a, ok := builtinAliases[internalName]
	return a, ok
}

// Type is a schema-owned SQL type: domain, enum, base, composite, range,
// multirange or pseudo. Identified by OID. Composite types that back a table
// also appear as the table's Entity; Schema.TypesIncludingEntities carries
// both, Schema.Types excludes the entity-backed composites.
type Type struct {
	Commented

	OID    OID
	Name   string
	Kind   TypeKind
	Schema *Schema

	// baseType-only.
	Alias *BuiltinAlias

	// domain-only: the underlying type and its CHECK constraints.
	SQLType         *Type
	CheckConstraints []*Constraint

	// enumType-only, in enumsortorder.
	EnumValues []string

	// compositeType-only: set when this composite type backs a table,
	// view or materialized view (Schema.TypesIncludingEntities includes
	// it; Schema.Types does not).
	BackingEntity *Entity

	// compositeType-only, free-standing (BackingEntity nil): the type's
	// own attributes, queried the same way as entity columns.
	Columns *collection.Collection[*Column]

	// rangeType/multiRangeType-only: the element type a range is over.
	SubType *Type
}

func (*Type) columnParent() {}

// NewType constructs a Type ready for the Assembler to populate further.
// Composite types get an empty Columns collection eagerly; it is only used
// when the type turns out to be free-standing (BackingEntity left nil).
func NewType(oid OID, name string, kind TypeKind, schema *Schema) *Type {
	t := &Type{OID: oid, Name: name, Kind: kind, Schema: schema}
	if kind == TypeComposite {
		t.Columns = collection.New("name", func(c *Column) string { return c.Name }).
			WithIndex("attributeNumber", func(c *Column) string { return strconv.Itoa(c.AttributeNumber) })
	}
	return t
}

// FullName is schema-qualified: "public.integer_range".
func (t *Type) FullName() string {
	if t.Schema == nil {
		return t.Name
	}
	return t.Schema.Name + "." + t.Name
}

// IsEntityBacked reports whether this composite type is a table's row type.
func (t *Type) IsEntityBacked() bool { return t.BackingEntity != nil }

// Get descends a dotted path into a composite type's attributes — its own
// Columns when free-standing, or its backing entity's Columns when this
// type mirrors a table's row type.
func (t *Type) Get(segment string) (any, error) {
	if t.BackingEntity != nil {
		return t.BackingEntity.Get(segment)
	}
	if c, ok := t.Columns.GetMaybe(segment); ok {
		return c, nil
	}
	return nil, typeChildNotFound(t, segment)
}
