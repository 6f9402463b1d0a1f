package assembler

import (
	"context"
	"strconv"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/collection"
	"github.com/alexanderritik/pgstructure/internal/ports"
)

type rowT = ports.Row

// loadConstraints is phase 7: primary keys, unique, check, exclusion and
// foreign key constraints. A foreign key's conindid column (queried here as
// index_oid) is, for FK rows specifically, the supporting unique/PK index
// on the *referenced* table — not a backing index on the owning table — so
// it resolves into ReferencedIndex rather than Index (spec.md 4.3 phase 7).
// An FK whose referenced index can't be resolved is a soft-skip condition
// (spec.md section 7): the constraint is dropped rather than failing the
// whole assembly, since a dangling FK target is common when schema
// filtering excludes the referenced schema.
func (a *Assembler) loadConstraints(ctx context.Context, db *catalog.Db, st *buildState) error {
	filter, args := a.userSchemaFilter()
	result, err := a.query(ctx, db, "constraint", filter, args)
	if err != nil {
		return err
	}

	for _, row := range result.Rows {
		kind, ok := catalog.ConstraintKindFromCode(charVal(row, "kind"))
		if !ok {
			a.Logger.Warn().Uint32("oid", oidVal(row, "oid")).Msg("constraint: unrecognized contype, skipping")
			continue
		}

		switch kind {
		case catalog.ConstraintPrimaryKey, catalog.ConstraintUnique, catalog.ConstraintExclusion:
			a.loadTableBackedConstraint(row, kind, st)
		case catalog.ConstraintCheck:
			a.loadCheckConstraint(row, st)
		case catalog.ConstraintForeignKey:
			a.loadForeignKey(row, st)
		}
	}
	return nil
}

func (a *Assembler) loadTableBackedConstraint(row rowT, kind catalog.ConstraintKind, st *buildState) {
	table, ok := st.entitiesByOID[oidVal(row, "table_oid")]
	if !ok {
		a.Logger.Warn().Uint32("table_oid", oidVal(row, "table_oid")).Msg("constraint: table not loaded, skipping")
		return
	}
	idx, ok := st.indexesByOID[oidVal(row, "index_oid")]
	if !ok {
		a.Logger.Warn().Str("constraint", str(row, "name")).Msg("constraint: backing index not found, skipping")
		return
	}
	con := &catalog.Constraint{Name: str(row, "name"), Kind: kind, Parent: table, Index: idx}
	applyComment(&con.Commented, row, a.Config.CommentDataToken)
	_ = table.Constraints.Add(con)
}

func (a *Assembler) loadCheckConstraint(row rowT, st *buildState) {
	var parent catalog.ConstraintParent
	if tableOID := oidVal(row, "table_oid"); tableOID != 0 {
		if table, ok := st.entitiesByOID[tableOID]; ok {
			parent = table
		}
	} else if domainOID := oidVal(row, "domain_oid"); domainOID != 0 {
		if typ, ok := st.typesByOID[domainOID]; ok {
			parent = typ
		}
	}
	if parent == nil {
		a.Logger.Warn().Str("constraint", str(row, "name")).Msg("check constraint: parent not found, skipping")
		return
	}

	con := &catalog.Constraint{
		Name:       str(row, "name"),
		Kind:       catalog.ConstraintCheck,
		Parent:     parent,
		Expression: str(row, "expression"),
	}
	applyComment(&con.Commented, row, a.Config.CommentDataToken)

	switch p := parent.(type) {
	case *catalog.Entity:
		_ = p.Constraints.Add(con)
	case *catalog.Type:
		p.CheckConstraints = append(p.CheckConstraints, con)
	}
}

func (a *Assembler) loadForeignKey(row rowT, st *buildState) {
	table, ok := st.entitiesByOID[oidVal(row, "table_oid")]
	if !ok {
		a.Logger.Warn().Uint32("table_oid", oidVal(row, "table_oid")).Msg("foreign key: owning table not loaded, skipping")
		return
	}
	refIndex, ok := st.indexesByOID[oidVal(row, "index_oid")]
	if !ok {
		a.Logger.Warn().Str("constraint", str(row, "name")).Msg("foreign key: referenced index not found, skipping")
		return
	}

	con := &catalog.Constraint{
		Name:            str(row, "name"),
		Kind:            catalog.ConstraintForeignKey,
		Parent:          table,
		ReferencedIndex: refIndex,
		ReferencedTable: refIndex.Table,
		OnUpdate:        catalog.ForeignKeyActionFromCode(charVal(row, "on_update")),
		OnDelete:        catalog.ForeignKeyActionFromCode(charVal(row, "on_delete")),
		MatchType:       catalog.ForeignKeyMatchTypeFromCode(charVal(row, "match_type")),
	}
	applyComment(&con.Commented, row, a.Config.CommentDataToken)

	for _, pos := range int16Slice(row, "column_positions") {
		col, ok := table.Columns.GetMaybe(strconv.Itoa(int(pos)), collection.Options{Key: "attributeNumber"})
		if !ok {
			a.Logger.Warn().Str("constraint", con.Name).Int("attnum", int(pos)).Msg("foreign key: source column not found, skipping position")
			continue
		}
		con.Columns = append(con.Columns, col)
	}

	_ = table.Constraints.Add(con)
	if con.ReferencedTable != nil {
		con.ReferencedTable.ForeignKeysToThis = append(con.ReferencedTable.ForeignKeysToThis, con)
	}
}
