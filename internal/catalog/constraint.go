package catalog

// ConstraintParent is implemented by the two kinds of object a Constraint
// can belong to: an Entity (table) for PK/unique/check/exclusion/FK, or a
// Type (domain) for a domain's own CHECK constraints.
type ConstraintParent interface {
	constraintParent()
}

func (*Entity) constraintParent() {}
func (*Type) constraintParent()   {}

// Constraint is a primary key, unique, check, exclusion or foreign key
// constraint.
type Constraint struct {
	Commented

	Name   string
	Kind   ConstraintKind
	Parent ConstraintParent

	// primaryKey / uniqueConstraint / exclusionConstraint: columns are
	// derived from Index.
	Index *Index

	// checkConstraint-only.
	Expression string

	// foreignKey-only.
	Columns          []*Column // source columns, resolved by attribute number, in constraint key order
	ReferencedIndex  *Index    // the unique/PK index on the target table
	ReferencedTable  *Entity   // derived from ReferencedIndex.Table
	OnUpdate         ForeignKeyAction
	OnDelete         ForeignKeyAction
	MatchType        ForeignKeyMatchType
}

// ReferencedColumns returns the target columns of a foreign key, derived
// from ReferencedIndex, in the same order as Columns.
func (c *Constraint) ReferencedColumns() []*Column {
	if c.ReferencedIndex == nil {
		return nil
	}
	return c.ReferencedIndex.Columns()
}

// IndexColumns returns the columns of a PK/unique/exclusion constraint's
// backing index.
func (c *Constraint) IndexColumns() []*Column {
	if c.Index == nil {
		return nil
	}
	return c.Index.Columns()
}

// Table returns the owning table when Parent is an Entity, nil otherwise
// (domain check constraints have no owning table).
func (c *Constraint) Table() *Entity {
	if e, ok := c.Parent.(*Entity); ok {
		return e
	}
	return nil
}
