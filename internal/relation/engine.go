package relation

import (
	"sync"

	"github.com/alexanderritik/pgstructure/internal/catalog"
)

// Engine implements catalog.RelationProvider over one assembled Db.
type Engine struct {
	db          *catalog.Db
	naming      NamingFunc
	separator   string
	targetFirst bool

	mu     sync.Mutex
	caches map[catalog.OID]*tableCache
}

// tableCache memoizes one table's three relation kinds independently —
// a caller who only ever asks for ManyToOne never pays for O2M/M2M
// computation, matching spec.md 4.5's "computed lazily per table on first
// access" — via a sync.Once per kind, the idiom the pack uses wherever
// "compute once, cache forever" appears (grounded on
// dbgraph/internal/graph.Graph.AnalyzeTopology's one-shot computed-stats
// struct, generalized here to per-kind laziness).
type tableCache struct {
	m2oOnce sync.Once
	m2o     []*catalog.ManyToOneRelation

	o2mOnce sync.Once
	o2m     []*catalog.OneToManyRelation

	m2mOnce sync.Once
	m2m     []*catalog.ManyToManyRelation
}

// NewEngine builds a relation Engine bound to db and its naming
// configuration (spec.md 4.5, read from catalog.Config).
func NewEngine(db *catalog.Db) *Engine {
	return &Engine{
		db:          db,
		naming:      namingFuncFor(db.Config.NamingStrategy),
		separator:   orDefault(db.Config.ForeignKeyAliasSeparator, ","),
		targetFirst: db.Config.ForeignKeyAliasTargetFirst,
		caches:      make(map[catalog.OID]*tableCache),
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (e *Engine) cacheFor(table *catalog.Entity) *tableCache {
	e.mu.Lock()
	defer e.mu.Unlock()
	c, ok := e.caches[table.OID]
	if !ok {
		c = &tableCache{}
		e.caches[table.OID] = c
	}
	return c
}

// ManyToOne returns one relation per outgoing foreign key on table.
func (e *Engine) ManyToOne(table *catalog.Entity) []*catalog.ManyToOneRelation {
	c := e.cacheFor(table)
	c.m2oOnce.Do(func() {
		seen := map[string]bool{}
		for _, con := range table.Constraints.All() {
			if con.Kind != catalog.ConstraintForeignKey || con.ReferencedTable == nil {
				continue
			}
			name := disambiguate(seen, e.naming(table, con.ReferencedTable, nil, con), con.Name, "")
			c.m2o = append(c.m2o, &catalog.ManyToOneRelation{
				Name:        name,
				SourceTable: table,
				TargetTable: con.ReferencedTable,
				ForeignKey:  con,
			})
		}
	})
	return c.m2o
}

// OneToMany returns the inverse relation for every FK that targets table.
func (e *Engine) OneToMany(table *catalog.Entity) []*catalog.OneToManyRelation {
	c := e.cacheFor(table)
	c.o2mOnce.Do(func() {
		seen := map[string]bool{}
		for _, con := range table.ForeignKeysToThis {
			owning := con.Table()
			if owning == nil {
				continue
			}
			name := disambiguate(seen, e.naming(table, owning, nil, con), con.Name, "")
			c.o2m = append(c.o2m, &catalog.OneToManyRelation{
				Name:        name,
				SourceTable: table,
				TargetTable: owning,
				ForeignKey:  con,
			})
		}
	})
	return c.o2m
}

// ManyToMany infers relations through join tables reachable from table's
// incoming foreign keys (spec.md 4.5).
func (e *Engine) ManyToMany(table *catalog.Entity) []*catalog.ManyToManyRelation {
	c := e.cacheFor(table)
	c.m2mOnce.Do(func() {
		seen := map[string]bool{}
		for _, nearFK := range table.ForeignKeysToThis {
			join := nearFK.Table()
			if join == nil || !isJoinTable(join) {
				continue
			}
			for _, farFK := range join.Constraints.All() {
				if farFK.Kind != catalog.ConstraintForeignKey || farFK == nearFK || farFK.ReferencedTable == nil {
					continue
				}
				far := farFK.ReferencedTable
				name := disambiguate(seen, e.naming(table, far, join, nearFK, farFK), farFK.Name, join.Name)
				c.m2m = append(c.m2m, &catalog.ManyToManyRelation{
					Name:                              name,
					SourceTable:                       table,
					TargetTable:                       far,
					JoinTable:                         join,
					ThroughForeignKeyConstraint:       farFK,
					ThroughForeignKeyConstraintToSelf: nearFK,
				})
			}
		}
	})
	return c.m2m
}

// isJoinTable reports whether j's primary key columns exactly equal the
// set-union of columns of exactly two of its outgoing foreign keys
// (spec.md 4.5's join-table definition; the two FKs need not be disjoint,
// so self-referencing join tables are recognized too).
func isJoinTable(j *catalog.Entity) bool {
	pk := j.PrimaryKey()
	if pk == nil {
		return false
	}
	pkCols := pk.IndexColumns()
	if len(pkCols) == 0 {
		return false
	}

	var fks []*catalog.Constraint
	for _, con := range j.Constraints.All() {
		if con.Kind == catalog.ConstraintForeignKey {
			fks = append(fks, con)
		}
	}
	if len(fks) < 2 {
		return false
	}

	for i := 0; i < len(fks); i++ {
		for k := i + 1; k < len(fks); k++ {
			if columnSetEquals(pkCols, union(fks[i].Columns, fks[k].Columns)) {
				return true
			}
		}
	}
	return false
}

func union(a, b []*catalog.Column) []*catalog.Column {
	seen := map[*catalog.Column]bool{}
	var out []*catalog.Column
	for _, col := range a {
		if !seen[col] {
			seen[col] = true
			out = append(out, col)
		}
	}
	for _, col := range b {
		if !seen[col] {
			seen[col] = true
			out = append(out, col)
		}
	}
	return out
}

func columnSetEquals(a, b []*catalog.Column) bool {
	if len(a) != len(b) {
		return false
	}
	set := map[*catalog.Column]bool{}
	for _, col := range a {
		set[col] = true
	}
	for _, col := range b {
		if !set[col] {
			return false
		}
	}
	return true
}

// ComposeAlias joins a relation's alias list per spec.md 4.5's
// foreignKeyAliasSeparator/foreignKeyAliasTargetFirst knobs, for callers
// that hold more than one name for the same relation. The built-in "short"
// and "optimal" naming strategies do not call it.
func (e *Engine) ComposeAlias(names []string) string {
	if e.targetFirst && len(names) > 1 {
		reversed := make([]string, len(names))
		for i, n := range names {
			reversed[len(names)-1-i] = n
		}
		names = reversed
	}
	out := ""
	for i, n := range names {
		if i > 0 {
			out += e.separator
		}
		out += n
	}
	return out
}

var _ catalog.RelationProvider = (*Engine)(nil)
