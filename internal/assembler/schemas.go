package assembler

import (
	"context"

	"github.com/alexanderritik/pgstructure/internal/catalog"
)

// loadUserSchemas is phase 1: every schema matching the configured
// include/exclude filters, attached to db.Schemas.
func (a *Assembler) loadUserSchemas(ctx context.Context, db *catalog.Db) error {
	filter, args := a.userSchemaFilter()
	result, err := a.query(ctx, db, "schema", filter, args)
	if err != nil {
		return err
	}
	for _, row := range result.Rows {
		s := catalog.NewSchema(oidVal(row, "oid"), str(row, "name"), db)
		applyComment(&s.Commented, row, a.Config.CommentDataToken)
		if err := db.Schemas.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// loadSystemSchemas is phase 2: always exactly pg_catalog, attached to
// db.SystemSchemas regardless of the configured filters (spec.md 4.3).
func (a *Assembler) loadSystemSchemas(ctx context.Context, db *catalog.Db) error {
	result, err := a.query(ctx, db, "schema", "n.nspname = $1", []any{"pg_catalog"})
	if err != nil {
		return err
	}
	for _, row := range result.Rows {
		s := catalog.NewSchema(oidVal(row, "oid"), str(row, "name"), db)
		applyComment(&s.Commented, row, a.Config.CommentDataToken)
		if err := db.SystemSchemas.Add(s); err != nil {
			return err
		}
	}
	return nil
}
