package assembler

import (
	"context"
	"strconv"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/collection"
)

// loadIndexes is phase 6. column_positions holds one pg_attribute attnum
// per index key (0 meaning "this position is an expression, not a plain
// column"); index_expressions carries the expression text for those zero
// positions, in the same left-to-right order, consumed here as a queue
// (spec.md 4.3 phase 6).
func (a *Assembler) loadIndexes(ctx context.Context, db *catalog.Db, st *buildState) error {
	filter, args := a.userSchemaFilter()
	result, err := a.query(ctx, db, "index", filter, args)
	if err != nil {
		return err
	}

	resolver := newResolver(st)
	for _, row := range result.Rows {
		table, ok := resolver.Entity(oidVal(row, "table_oid"))
		if !ok {
			a.Logger.Warn().Uint32("table_oid", oidVal(row, "table_oid")).Msg("index: table not loaded, skipping")
			continue
		}

		ix := &catalog.Index{
			Table:      table,
			Name:       str(row, "name"),
			Unique:     boolVal(row, "is_unique"),
			Primary:    boolVal(row, "is_primary"),
			Partial:    boolVal(row, "is_partial"),
			Predicate:  str(row, "predicate"),
			Definition: str(row, "definition"),
		}

		positions := int16Slice(row, "column_positions")
		expressions := stringSlice(row, "index_expressions")
		exprIdx := 0
		for _, pos := range positions {
			if pos == 0 {
				expr := ""
				if exprIdx < len(expressions) {
					expr = expressions[exprIdx]
					exprIdx++
				}
				ix.ColumnsAndExpressions = append(ix.ColumnsAndExpressions, catalog.IndexElement{Expression: expr})
				continue
			}
			col, ok := table.Columns.GetMaybe(strconv.Itoa(int(pos)), collection.Options{Key: "attributeNumber"})
			if !ok {
				a.Logger.Warn().Str("index", ix.Name).Int("attnum", int(pos)).Msg("index: column not found, skipping position")
				continue
			}
			ix.ColumnsAndExpressions = append(ix.ColumnsAndExpressions, catalog.IndexElement{Column: col})
		}

		if err := table.Indexes.Add(ix); err != nil {
			return err
		}
		st.indexesByOID[oidVal(row, "oid")] = ix
	}
	return nil
}
