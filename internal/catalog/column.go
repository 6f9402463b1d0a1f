package catalog

import "github.com/alexanderritik/pgstructure/internal/pgerr"

// IdentityKind is the GENERATED ... AS IDENTITY flavor of a column.
type IdentityKind string

const (
	IdentityNone      IdentityKind = ""
	IdentityAlways    IdentityKind = "ALWAYS"
	IdentityByDefault IdentityKind = "BY DEFAULT"
)

// ColumnParent is implemented by the two kinds of object a Column can
// belong to: an Entity (table, view, materialized view) or a free-standing
// composite Type.
type ColumnParent interface {
	columnParent()
}

// Column is ordered by AttributeNumber within its parent.
type Column struct {
	Commented

	Parent          ColumnParent
	AttributeNumber int
	Name            string
	Type            *Type
	NotNull         bool
	Default         string
	HasDefault      bool
	Length          *int
	Precision       *int
	Scale           *int
	Identity        IdentityKind
	Generated       string
	IsGenerated     bool
}

// FullName is "schema.entity.column" when the parent is a schema-qualified
// entity, else just the bare column name.
func (c *Column) FullName() string {
	type named interface{ FullName() string }
	if n, ok := c.Parent.(named); ok {
		return n.FullName() + "." + c.Name
	}
	return c.Name
}

func (c *Column) Get(segment string) (any, error) {
	if segment == c.Name {
		return c, nil
	}
	return nil, pgerr.Lookupf("column %q has no child %q", c.Name, segment)
}
