package assembler

import (
	"context"
	"encoding/json"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/ports"
)

// sequenceInfoRow mirrors entity.sql's row_to_json(pg_sequence) projection.
type sequenceInfoRow struct {
	SeqTypID     uint32 `json:"seqtypid"`
	SeqStart     int64  `json:"seqstart"`
	SeqMin       int64  `json:"seqmin"`
	SeqMax       int64  `json:"seqmax"`
	SeqIncrement int64  `json:"seqincrement"`
	SeqCycle     bool   `json:"seqcycle"`
}

// loadEntities is phase 4: tables, views, materialized views and sequences,
// dispatched into their schema's kind-specific collection.
func (a *Assembler) loadEntities(ctx context.Context, db *catalog.Db, st *buildState) error {
	filter, args := a.userSchemaFilter()
	result, err := a.query(ctx, db, "entity", filter, args)
	if err != nil {
		return err
	}

	for _, row := range result.Rows {
		oid := oidVal(row, "oid")
		schema, ok := db.SchemaByOID(oidVal(row, "schema_oid"))
		if !ok {
			a.Logger.Warn().Uint32("oid", oid).Msg("entity: schema not loaded, skipping")
			continue
		}
		kind, ok := catalog.EntityKindFromCode(charVal(row, "kind"))
		if !ok {
			a.Logger.Warn().Uint32("oid", oid).Msg("entity: unrecognized relkind, skipping")
			continue
		}

		e := catalog.NewEntity(oid, str(row, "name"), kind, schema, db)
		applyComment(&e.Commented, row, a.Config.CommentDataToken)

		if rowType, ok := st.typesByOID[oidVal(row, "row_type_oid")]; ok {
			e.RowType = rowType
			rowType.BackingEntity = e
		}

		if kind == catalog.EntitySequence {
			e.Sequence = decodeSequenceInfo(row, st)
			if tableOID := oidVal(row, "owned_by_table_oid"); tableOID != 0 {
				st.pendingSequenceOwnership = append(st.pendingSequenceOwnership, sequenceOwnership{
					sequence:     e,
					tableOID:     tableOID,
					columnNumber: intVal(row, "owned_by_column_number"),
				})
			}
		}

		st.entitiesByOID[oid] = e

		var target interface{ Add(*catalog.Entity) error }
		switch kind {
		case catalog.EntityTable:
			target = schema.Tables
		case catalog.EntityView:
			target = schema.Views
		case catalog.EntityMaterializedView:
			target = schema.MaterializedViews
		case catalog.EntitySequence:
			target = schema.Sequences
		}
		if err := target.Add(e); err != nil {
			return err
		}
	}
	return nil
}

func decodeSequenceInfo(row ports.Row, st *buildState) *catalog.SequenceInfo {
	v, ok := row["sequence_info"]
	if !ok || v == nil {
		return &catalog.SequenceInfo{}
	}
	var raw []byte
	switch t := v.(type) {
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		return &catalog.SequenceInfo{}
	}

	var parsed sequenceInfoRow
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &catalog.SequenceInfo{}
	}
	info := &catalog.SequenceInfo{
		StartValue:  parsed.SeqStart,
		MinValue:    parsed.SeqMin,
		MaxValue:    parsed.SeqMax,
		Increment:   parsed.SeqIncrement,
		CycleOption: parsed.SeqCycle,
	}
	if dt, ok := st.typesByOID[parsed.SeqTypID]; ok {
		info.DataType = dt.Name
	}
	return info
}
