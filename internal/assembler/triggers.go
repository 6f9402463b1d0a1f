package assembler

import (
	"context"

	"github.com/alexanderritik/pgstructure/internal/catalog"
)

// Postgres's pg_trigger.tgtype bitmask (src/include/catalog/pg_trigger.h).
const (
	tgTypeRow      = 1 << 0
	tgTypeBefore   = 1 << 1
	tgTypeInsert   = 1 << 2
	tgTypeDelete   = 1 << 3
	tgTypeUpdate   = 1 << 4
	tgTypeTruncate = 1 << 5
	tgTypeInstead  = 1 << 6
)

// loadTriggers is phase 9, the last: user-defined (non-internal) triggers,
// decoded from the tgtype bitmask into timing/level/events (spec.md 3.1
// supplement, generalized from
// dbgraph/internal/adapters.queryFetchTriggers's ROW/STATEMENT-only
// decoding to the full bitmask). A trigger whose function can't be
// resolved is a soft-skip condition (spec.md section 7).
func (a *Assembler) loadTriggers(ctx context.Context, db *catalog.Db, st *buildState) error {
	filter, args := a.userSchemaFilter()
	result, err := a.query(ctx, db, "trigger", filter, args)
	if err != nil {
		return err
	}

	resolver := newResolver(st)
	for _, row := range result.Rows {
		entity, ok := resolver.Entity(oidVal(row, "table_oid"))
		if !ok {
			a.Logger.Warn().Uint32("table_oid", oidVal(row, "table_oid")).Msg("trigger: table not loaded, skipping")
			continue
		}
		fn, ok := resolver.Function(oidVal(row, "function_oid"))
		if !ok {
			a.Logger.Warn().Str("trigger", str(row, "name")).Msg("trigger: function not found, skipping")
			continue
		}

		bitmask := intVal(row, "type_bitmask")
		t := &catalog.Trigger{
			Name:     str(row, "name"),
			Entity:   entity,
			Function: fn,
			Timing:   triggerTiming(bitmask),
			Level:    triggerLevel(bitmask),
			Events:   triggerEvents(bitmask),
		}
		applyComment(&t.Commented, row, a.Config.CommentDataToken)

		if err := entity.Triggers.Add(t); err != nil {
			return err
		}
	}
	return nil
}

func triggerTiming(bitmask int) catalog.TriggerTiming {
	switch {
	case bitmask&tgTypeInstead != 0:
		return catalog.TimingInsteadOf
	case bitmask&tgTypeBefore != 0:
		return catalog.TimingBefore
	default:
		return catalog.TimingAfter
	}
}

func triggerLevel(bitmask int) catalog.TriggerLevel {
	if bitmask&tgTypeRow != 0 {
		return catalog.LevelRow
	}
	return catalog.LevelStatement
}

func triggerEvents(bitmask int) []catalog.TriggerEvent {
	var events []catalog.TriggerEvent
	if bitmask&tgTypeInsert != 0 {
		events = append(events, catalog.EventInsert)
	}
	if bitmask&tgTypeUpdate != 0 {
		events = append(events, catalog.EventUpdate)
	}
	if bitmask&tgTypeDelete != 0 {
		events = append(events, catalog.EventDelete)
	}
	if bitmask&tgTypeTruncate != 0 {
		events = append(events, catalog.EventTruncate)
	}
	return events
}
