package catalog

// IndexElement is one position in an Index's ordered column/expression
// list: either a resolved Column (catalog position > 0) or an opaque
// expression string (position = 0, consumed in order from the side list of
// index expressions), per spec.md 4.3 phase 6.
type IndexElement struct {
	Column     *Column // nil when Expression is set
	Expression string  // "" when Column is set
}

// IsExpression reports whether this position is a functional-index
// expression rather than a plain column reference.
func (e IndexElement) IsExpression() bool { return e.Column == nil }

// Index belongs to a table. ColumnsAndExpressions preserves catalog
// ordering.
type Index struct {
	Table                 *Entity
	Name                   string
	ColumnsAndExpressions []IndexElement
	Unique                bool
	Primary                bool
	Partial                bool
	Predicate              string
	Definition             string // raw pg_get_indexdef() text (spec.md 3.1 supplement)
}

// Columns returns only the column positions, skipping expressions — the
// shape PK/unique/exclusion constraints borrow from their index.
func (ix *Index) Columns() []*Column {
	cols := make([]*Column, 0, len(ix.ColumnsAndExpressions))
	for _, el := range ix.ColumnsAndExpressions {
		if el.Column != nil {
			cols = append(cols, el.Column)
		}
	}
	return cols
}

func (ix *Index) Get(segment string) (any, error) {
	for _, el := range ix.ColumnsAndExpressions {
		if el.Column != nil && el.Column.Name == segment {
			return el.Column, nil
		}
	}
	return nil, entityChildNotFound(ix.Table, segment)
}
