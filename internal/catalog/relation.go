package catalog

// RelationProvider is implemented by the relation engine (internal/relation)
// and attached to a Db after assembly. Entity.ManyToOne/.OneToMany/.ManyToMany
// delegate here so relation computation (which needs the whole graph) stays
// out of the catalog package per spec.md 4.5's "computed lazily... memoized"
// design note, without creating an import cycle: catalog defines the shape,
// relation implements it.
type RelationProvider interface {
	ManyToOne(table *Entity) []*ManyToOneRelation
	OneToMany(table *Entity) []*OneToManyRelation
	ManyToMany(table *Entity) []*ManyToManyRelation
}

// ManyToOneRelation is one outgoing foreign key, viewed as a relation from
// its source table to its target table.
type ManyToOneRelation struct {
	Name             string
	SourceTable      *Entity
	TargetTable      *Entity
	ForeignKey       *Constraint
}

// OneToManyRelation is the inverse of a ManyToOneRelation, exposed from the
// referenced table.
type OneToManyRelation struct {
	Name        string
	SourceTable *Entity // the referenced ("one") side
	TargetTable *Entity // the referencing ("many") side
	ForeignKey  *Constraint
}

// ManyToManyRelation is inferred from a join table: two foreign keys whose
// combined columns equal the join table's primary key.
type ManyToManyRelation struct {
	Name       string
	SourceTable *Entity
	TargetTable *Entity
	JoinTable   *Entity

	// ThroughForeignKeyConstraint points from the join table toward the
	// far (target) side; ThroughForeignKeyConstraintToSelf points back
	// toward the near (source) side, per spec.md 3's M2M definition.
	ThroughForeignKeyConstraint       *Constraint
	ThroughForeignKeyConstraintToSelf *Constraint
}
