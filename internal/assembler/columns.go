package assembler

import (
	"context"
	"strconv"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/collection"
)

// loadColumns is phase 5: attributes of both entities and free-standing
// composite types. parent_kind discriminates 'c' (composite type, keyed by
// class_oid) from 'e' (entity, keyed by oid) — the two places pg_attribute
// rows live, per the catalog's class_oid/typrelid indirection (spec.md 4.3
// phase 5).
func (a *Assembler) loadColumns(ctx context.Context, db *catalog.Db, st *buildState) error {
	filter, args := a.userSchemaFilter()
	result, err := a.query(ctx, db, "column", filter, args)
	if err != nil {
		return err
	}

	resolver := newResolver(st)
	for _, row := range result.Rows {
		parentOID := oidVal(row, "parent_oid")
		parent, hint, ok := resolver.ColumnParent(str(row, "parent_kind"), parentOID)
		if !ok {
			a.Logger.Warn().Uint32("parent_oid", parentOID).Str("hint", string(hint)).Msg("column: parent not loaded, skipping")
			continue
		}

		typ, ok := resolver.Type(oidVal(row, "type_oid"))
		if !ok {
			a.Logger.Warn().Uint32("type_oid", oidVal(row, "type_oid")).Msg("column: type not loaded, skipping")
			continue
		}

		c := &catalog.Column{
			Parent:          parent,
			AttributeNumber: intVal(row, "attribute_number"),
			Name:            str(row, "name"),
			Type:            typ,
			NotNull:         boolVal(row, "not_null"),
			Default:         str(row, "default_expression"),
			HasDefault:      boolVal(row, "has_default"),
			Identity:        identityFromCode(str(row, "identity")),
		}
		applyComment(&c.Commented, row, a.Config.CommentDataToken)

		if gen := strPtr(row, "generated_expression"); gen != nil {
			c.IsGenerated = true
			c.Generated = *gen
		}

		c.Length, c.Precision, c.Scale = decodeTypeModifier(typ, intVal(row, "type_modifier"))

		switch p := parent.(type) {
		case *catalog.Entity:
			if err := p.Columns.Add(c); err != nil {
				return err
			}
		case *catalog.Type:
			if p.Columns == nil {
				continue
			}
			if err := p.Columns.Add(c); err != nil {
				return err
			}
		}
	}

	a.resolveSequenceOwnership(st)
	return nil
}

func identityFromCode(code string) catalog.IdentityKind {
	switch code {
	case "a":
		return catalog.IdentityAlways
	case "d":
		return catalog.IdentityByDefault
	default:
		return catalog.IdentityNone
	}
}

// decodeTypeModifier derives length/precision/scale from PostgreSQL's
// atttypmod encoding, which differs by base type: varchar/bpchar encode a
// plain length, numeric packs precision and scale into one integer.
func decodeTypeModifier(typ *catalog.Type, typmod int) (length, precision, scale *int) {
	if typmod < 0 || typ == nil || typ.Alias == nil {
		return nil, nil, nil
	}
	switch {
	case typ.Alias.HasLength:
		n := typmod - 4
		if n >= 0 {
			length = &n
		}
	case typ.Alias.HasPrecision && typ.Alias.HasScale:
		p := (typmod - 4) >> 16 & 0xffff
		s := (typmod - 4) & 0xffff
		precision = &p
		scale = &s
	case typ.Alias.HasPrecision:
		p := typmod
		precision = &p
	}
	return length, precision, scale
}

func (a *Assembler) resolveSequenceOwnership(st *buildState) {
	for _, p := range st.pendingSequenceOwnership {
		table, ok := st.entitiesByOID[p.tableOID]
		if !ok {
			continue
		}
		p.sequence.Sequence.OwnedByTable = table.FullName()
		if col, ok := table.Columns.GetMaybe(strconv.Itoa(p.columnNumber), collection.Options{Key: "attributeNumber"}); ok {
			p.sequence.Sequence.OwnedByColumn = col.Name
		}
	}
}
