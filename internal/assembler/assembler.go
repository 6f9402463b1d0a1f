// Package assembler implements the fixed-order, multi-phase catalog builder
// (spec.md section 4): it drives a ports.DBClient through one query per
// phase via a ports.SQLResourceLoader, and populates a *catalog.Db. Later
// phases resolve references created by earlier ones (a column's parent
// entity, a foreign key's referenced index, a trigger's function), so phase
// order is part of the contract, not an implementation detail — mirrored on
// dbgraph/internal/engine.Engine.BuildGraph's single-pass-over-ordered-steps
// shape, generalized here into nine fixed phases instead of one.
package assembler

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/config"
	"github.com/alexanderritik/pgstructure/internal/ports"
)

// Assembler drives one catalog introspection run to completion.
type Assembler struct {
	Client ports.DBClient
	Loader ports.SQLResourceLoader
	Config catalog.Config
	Logger zerolog.Logger

	// raw captures each phase's query result in order, exposed via
	// RawResults for the Serializer (spec.md 4.6's "queryResults is a
	// 9-tuple matching the Assembler's phase order"). Index 0/1 are the
	// two schema-query calls (user, then system schemas); 2-8 are
	// types/entities/columns/indexes/constraints/functions/triggers.
	raw    [9]ports.Result
	rawIdx int
}

// New constructs an Assembler ready to Assemble.
func New(client ports.DBClient, loader ports.SQLResourceLoader, cfg catalog.Config, logger zerolog.Logger) *Assembler {
	return &Assembler{Client: client, Loader: loader, Config: cfg, Logger: logger}
}

// buildState carries the OID-keyed lookup tables threaded across phases —
// the cross-phase reference resolution spec.md 4.4 describes, kept here
// rather than on catalog.Db since it's build-time scaffolding, not part of
// the public graph.
type buildState struct {
	typesByOID      map[catalog.OID]*catalog.Type
	typesByClassOID map[catalog.OID]*catalog.Type
	entitiesByOID   map[catalog.OID]*catalog.Entity
	indexesByOID    map[catalog.OID]*catalog.Index
	functionsByOID  map[catalog.OID]*catalog.Function

	// pendingSequenceOwnership resolves OwnedByTable/OwnedByColumn after
	// phase 5 (columns) completes, since the owning column's name isn't
	// known until then.
	pendingSequenceOwnership []sequenceOwnership
}

type sequenceOwnership struct {
	sequence     *catalog.Entity
	tableOID     catalog.OID
	columnNumber int
}

func newBuildState() *buildState {
	return &buildState{
		typesByOID:      make(map[catalog.OID]*catalog.Type),
		typesByClassOID: make(map[catalog.OID]*catalog.Type),
		entitiesByOID:   make(map[catalog.OID]*catalog.Entity),
		indexesByOID:    make(map[catalog.OID]*catalog.Index),
		functionsByOID:  make(map[catalog.OID]*catalog.Function),
	}
}

// Assemble runs every phase in the fixed order spec.md 4.3 requires and
// returns the populated Db. The Relation Engine is attached by the caller
// (internal/relation.NewEngine) after Assemble returns, to keep relation
// inference out of the assembler's own concerns.
func (a *Assembler) Assemble(ctx context.Context) (*catalog.Db, error) {
	serverVersion, err := a.Client.ServerVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("assembler: server version: %w", err)
	}

	db := catalog.NewDb(a.Config.Name, serverVersion, a.Config)
	st := newBuildState()

	if err := a.loadUserSchemas(ctx, db); err != nil {
		return nil, err
	}
	if err := a.loadSystemSchemas(ctx, db); err != nil {
		return nil, err
	}
	if err := a.loadTypes(ctx, db, st); err != nil {
		return nil, err
	}
	if err := a.loadEntities(ctx, db, st); err != nil {
		return nil, err
	}
	if err := a.loadColumns(ctx, db, st); err != nil {
		return nil, err
	}
	if err := a.loadIndexes(ctx, db, st); err != nil {
		return nil, err
	}
	if err := a.loadConstraints(ctx, db, st); err != nil {
		return nil, err
	}
	if err := a.loadFunctions(ctx, db, st); err != nil {
		return nil, err
	}
	if err := a.loadTriggers(ctx, db, st); err != nil {
		return nil, err
	}

	return db, nil
}

// userSchemaFilter builds the {{schema_filter}} substitution shared by every
// phase-3-and-later query (they all scope to the same configured set of
// user schemas), grounded on allyourbase's schemaFilter helper via
// internal/config.SchemaLikeClauses.
func (a *Assembler) userSchemaFilter() (string, []any) {
	return config.SchemaLikeClauses("n", a.Config.IncludeSchemas, a.Config.ExcludeSchemas, a.Config.IncludeSystemSchemas, 1)
}

func (a *Assembler) query(ctx context.Context, db *catalog.Db, queryName, filter string, args []any) (ports.Result, error) {
	sqlText, err := a.Loader.Load(db.ServerVersion, queryName)
	if err != nil {
		return ports.Result{}, fmt.Errorf("assembler: load %s query: %w", queryName, err)
	}
	sqlText = substituteFilter(sqlText, filter)
	result, err := a.Client.Query(ctx, sqlText, args...)
	if err != nil {
		return ports.Result{}, fmt.Errorf("assembler: run %s query: %w", queryName, err)
	}
	if a.rawIdx < len(a.raw) {
		a.raw[a.rawIdx] = result
	}
	a.rawIdx++
	return result, nil
}

// RawResults returns the nine per-phase query results captured during the
// most recent Assemble call, in phase order.
func (a *Assembler) RawResults() [9]ports.Result {
	return a.raw
}

func substituteFilter(sqlText, filter string) string {
	return strings.ReplaceAll(sqlText, "{{schema_filter}}", filter)
}
