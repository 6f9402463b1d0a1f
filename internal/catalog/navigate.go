package catalog

import (
	"strings"

	"github.com/alexanderritik/pgstructure/internal/pgerr"
)

// child is implemented by every container in the model that supports
// dotted-path descent: Db, Schema, Entity, Index, Column.
type child interface {
	Get(segment string) (any, error)
}

// Get resolves a dotted path ("public.account.id") by splitting on "." and
// descending through nested collections: Db -> Schema -> Entity -> Column
// (or Index/Constraint/Trigger). A single segment is treated as a direct
// schema key. Spec.md 4.1 / 8's dotted-lookup law.
func (db *Db) Get(path string) (any, error) {
	segments := strings.Split(path, ".")
	if len(segments) == 0 {
		return nil, pgerr.Lookupf("empty path")
	}
	first, ok := db.Schema(segments[0])
	if !ok {
		return nil, pgerr.Lookupf("no schema named %q", segments[0])
	}
	if len(segments) == 1 {
		return first, nil
	}
	var cur child = first
	for _, seg := range segments[1:] {
		next, err := cur.Get(seg)
		if err != nil {
			return nil, err
		}
		c, ok := next.(child)
		if !ok {
			return next, nil // leaf reached (e.g. a Constraint or Trigger); any segments left are not consumed
		}
		cur = c
	}
	return cur, nil
}

func schemaChildNotFound(s *Schema, segment string) error {
	return pgerr.Lookupf("schema %q has no child %q", s.Name, segment)
}

func typeChildNotFound(t *Type, segment string) error {
	name := "?"
	if t != nil {
		name = t.FullName()
	}
	return pgerr.Lookupf("type %q has no child %q", name, segment)
}

func entityChildNotFound(e *Entity, segment string) error {
	name := "?"
	if e != nil {
		name = e.FullName()
	}
	return pgerr.Lookupf("entity %q has no child %q", name, segment)
}
