package assembler

import (
	"context"
	"strconv"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/collection"
)

// loadTypes is phase 3: domains, enums, base types, composites, ranges,
// multiranges and pseudo-types. Each row's schemaOid is resolved against
// systemSchemas first, then user schemas, since builtin base types living
// in pg_catalog are routinely referenced by user-schema columns (spec.md
// 4.3 phase 3). A first pass constructs every Type; a second pass resolves
// the domain/range cross-references, since those may point at a type rows
// elsewhere in the very same result set.
func (a *Assembler) loadTypes(ctx context.Context, db *catalog.Db, st *buildState) error {
	filter, args := a.userSchemaFilter()
	result, err := a.query(ctx, db, "type", filter, args)
	if err != nil {
		return err
	}

	type pending struct {
		t          *catalog.Type
		baseOID    catalog.OID
		subOID     catalog.OID
	}
	var deferred []pending

	for _, row := range result.Rows {
		oid := oidVal(row, "oid")
		schemaOID := oidVal(row, "schema_oid")
		schemaKey := strconv.Itoa(int(schemaOID))
		schema, ok := db.SystemSchemas.GetMaybe(schemaKey, collection.Options{Key: "oid"})
		if !ok {
			schema, ok = db.Schemas.GetMaybe(schemaKey, collection.Options{Key: "oid"})
		}
		if !ok {
			a.Logger.Warn().Uint32("oid", oid).Uint32("schema_oid", schemaOID).
				Msg("type: schema not loaded, skipping")
			continue
		}

		kind, ok := catalog.TypeKindFromCode(charVal(row, "kind"))
		if !ok {
			a.Logger.Warn().Uint32("oid", oid).Msg("type: unrecognized kind, skipping")
			continue
		}

		t := catalog.NewType(oid, str(row, "name"), kind, schema)
		applyComment(&t.Commented, row, a.Config.CommentDataToken)

		if kind == catalog.TypeBase {
			if alias, ok := catalog.BuiltinAliasFor(t.Name); ok {
				aliasCopy := alias
				t.Alias = &aliasCopy
			}
		}
		if kind == catalog.TypeEnum {
			t.EnumValues = stringSlice(row, "enum_values")
		}

		st.typesByOID[oid] = t
		if classOID := oidVal(row, "class_oid"); classOID != 0 {
			st.typesByClassOID[classOID] = t
		}

		deferred = append(deferred, pending{
			t:       t,
			baseOID: oidVal(row, "domain_base_type_oid"),
			subOID:  oidVal(row, "sub_type_oid"),
		})

		if err := schema.TypesIncludingEntities.Add(t); err != nil {
			return err
		}
	}

	for _, p := range deferred {
		switch p.t.Kind {
		case catalog.TypeDomain:
			if base, ok := st.typesByOID[p.baseOID]; ok {
				p.t.SQLType = base
			}
		case catalog.TypeRange, catalog.TypeMultiRange:
			if sub, ok := st.typesByOID[p.subOID]; ok {
				p.t.SubType = sub
			}
		}
	}

	return nil
}
