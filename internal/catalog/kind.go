package catalog

// Kind discriminators. PostgreSQL catalogs encode object variants as
// single-letter codes (pg_class.relkind, pg_type.typtype, pg_proc.prokind,
// pg_constraint.contype, pg_constraint.confupdtype/confdeltype,
// pg_constraint.confmatchtype). Every mapping from those codes to our named
// variants lives here, in one place, per spec.md 4.2's rule against
// divergent letter maps scattered across the model.

// EntityKind is the variant of an Entity: table, view, materialized view or
// sequence.
type EntityKind string

const (
	EntityTable            EntityKind = "table"
	EntityView             EntityKind = "view"
	EntityMaterializedView EntityKind = "materializedView"
	EntitySequence         EntityKind = "sequence"
)

// entityKindByCode maps pg_class.relkind to EntityKind. Partitioned tables
// ('p') are treated as ordinary tables; the distinction is not part of the
// data model in spec.md.
var entityKindByCode = map[byte]EntityKind{
	'r': EntityTable,
	'p': EntityTable,
	'v': EntityView,
	'm': EntityMaterializedView,
	'S': EntitySequence,
}

// EntityKindFromCode resolves a pg_class.relkind code. ok is false for
// unrecognized or out-of-scope kinds (e.g. 'c' composite-type shell rows,
// 'f' foreign tables, 'i' indexes — these never appear in the entity query).
func EntityKindFromCode(code byte) (EntityKind, bool) {
	k, ok := entityKindByCode[code]
	return k, ok
}

// TypeKind is the variant of a Type.
type TypeKind string

const (
	TypeDomain      TypeKind = "domain"
	TypeEnum        TypeKind = "enumType"
	TypeBase        TypeKind = "baseType"
	TypeComposite   TypeKind = "compositeType"
	TypeRange       TypeKind = "rangeType"
	TypeMultiRange  TypeKind = "multiRangeType"
	TypePseudo      TypeKind = "pseudoType"
)

var typeKindByCode = map[byte]TypeKind{
	'd': TypeDomain,
	'e': TypeEnum,
	'b': TypeBase,
	'c': TypeComposite,
	'r': TypeRange,
	'm': TypeMultiRange,
	'p': TypePseudo,
}

// TypeKindFromCode resolves a pg_type.typtype code.
func TypeKindFromCode(code byte) (TypeKind, bool) {
	k, ok := typeKindByCode[code]
	return k, ok
}

// FunctionKind is the variant of a Function.
type FunctionKind string

const (
	FunctionNormal    FunctionKind = "normalFunction"
	FunctionProcedure FunctionKind = "procedure"
	FunctionAggregate FunctionKind = "aggregateFunction"
	FunctionWindow    FunctionKind = "windowFunction"
)

var functionKindByCode = map[byte]FunctionKind{
	'f': FunctionNormal,
	'p': FunctionProcedure,
	'a': FunctionAggregate,
	'w': FunctionWindow,
}

// FunctionKindFromCode resolves a pg_proc.prokind code.
func FunctionKindFromCode(code byte) (FunctionKind, bool) {
	k, ok := functionKindByCode[code]
	return k, ok
}

// ConstraintKind is the variant of a Constraint.
type ConstraintKind string

const (
	ConstraintPrimaryKey  ConstraintKind = "primaryKey"
	ConstraintUnique      ConstraintKind = "uniqueConstraint"
	ConstraintCheck       ConstraintKind = "checkConstraint"
	ConstraintExclusion   ConstraintKind = "exclusionConstraint"
	ConstraintForeignKey  ConstraintKind = "foreignKey"
)

var constraintKindByCode = map[byte]ConstraintKind{
	'p': ConstraintPrimaryKey,
	'u': ConstraintUnique,
	'c': ConstraintCheck,
	'x': ConstraintExclusion,
	'f': ConstraintForeignKey,
}

// ConstraintKindFromCode resolves a pg_constraint.contype code.
func ConstraintKindFromCode(code byte) (ConstraintKind, bool) {
	k, ok := constraintKindByCode[code]
	return k, ok
}

// ForeignKeyAction is the variant of ON UPDATE/ON DELETE.
type ForeignKeyAction string

const (
	ActionNoAction   ForeignKeyAction = "NO ACTION"
	ActionRestrict   ForeignKeyAction = "RESTRICT"
	ActionCascade    ForeignKeyAction = "CASCADE"
	ActionSetNull    ForeignKeyAction = "SET NULL"
	ActionSetDefault ForeignKeyAction = "SET DEFAULT"
)

var fkActionByCode = map[byte]ForeignKeyAction{
	'a': ActionNoAction,
	'r': ActionRestrict,
	'c': ActionCascade,
	'n': ActionSetNull,
	'd': ActionSetDefault,
}

// ForeignKeyActionFromCode resolves a pg_constraint.confupdtype/confdeltype code.
func ForeignKeyActionFromCode(code byte) ForeignKeyAction {
	if a, ok := fkActionByCode[code]; ok {
		return a
	}
	return ActionNoAction
}

// ForeignKeyMatchType is the variant of MATCH.
type ForeignKeyMatchType string

const (
	MatchFull    ForeignKeyMatchType = "FULL"
	MatchPartial ForeignKeyMatchType = "PARTIAL"
	MatchSimple  ForeignKeyMatchType = "SIMPLE"
)

var fkMatchByCode = map[byte]ForeignKeyMatchType{
	'f': MatchFull,
	'p': MatchPartial,
	's': MatchSimple,
}

// ForeignKeyMatchTypeFromCode resolves a pg_constraint.confmatchtype code.
func ForeignKeyMatchTypeFromCode(code byte) ForeignKeyMatchType {
	if m, ok := fkMatchByCode[code]; ok {
		return m
	}
	return MatchSimple
}
