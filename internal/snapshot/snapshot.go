// Package snapshot implements the Serializer (spec.md section 4.6): a Db
// dumps to a small JSON object carrying only its raw per-phase query rows
// plus top-level config, and loads back by replaying the Assembler over
// those same rows. Assembly is pure over (queryResults, config, naming
// strategy), so replay is cheap and exact — the graph itself is never
// serialized node-by-node.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alexanderritik/pgstructure/internal/assembler"
	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/ports"
)

// phaseCount is the fixed number of catalog queries one Assemble run
// issues: user schemas, system schemas, types, entities, columns, indexes,
// constraints, functions, triggers.
const phaseCount = 9

// Snapshot is the on-disk/on-wire shape: { name, serverVersion, config,
// queryResults }.
type Snapshot struct {
	Name          string          `json:"name"`
	ServerVersion string          `json:"serverVersion"`
	Config        catalog.Config  `json:"config"`
	QueryResults  [phaseCount]any `json:"queryResults"`
}

// Dump captures the Db's identity/config plus the raw query rows its
// Assembler produced while building it (catalog.Db.RawResults), so any Db —
// however it was obtained — can be dumped without its caller having to keep
// a separate *assembler.Assembler around.
func Dump(db *catalog.Db) Snapshot {
	var results [phaseCount]any
	for i, r := range db.RawResults {
		results[i] = r.Rows
	}
	return Snapshot{
		Name:          db.Name,
		ServerVersion: db.ServerVersion,
		Config:        db.Config,
		QueryResults:  results,
	}
}

// Marshal serializes a Snapshot to JSON.
func Marshal(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshal: %w", err)
	}
	return data, nil
}

// Unmarshal parses a previously-dumped snapshot.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: unmarshal: %w", err)
	}
	return s, nil
}

// Load reconstructs a Db by replaying the Assembler over the snapshot's
// captured rows instead of querying a live database. The naming strategy
// is re-bound by name from s.Config; a custom NamingFunc supplied at dump
// time is not preserved across the round trip — a documented limitation
// (spec.md 4.6).
func Load(ctx context.Context, s Snapshot, logger zerolog.Logger) (*catalog.Db, error) {
	rows, err := decodeQueryResults(s.QueryResults)
	if err != nil {
		return nil, err
	}

	client := &replayClient{serverVersion: s.ServerVersion, results: rows}
	loader := replayLoader{}
	asm := assembler.New(client, loader, s.Config, logger)
	db, err := asm.Assemble(ctx)
	if err != nil {
		return nil, err
	}
	db.RawResults = asm.RawResults()
	return db, nil
}

func decodeQueryResults(raw [phaseCount]any) ([phaseCount]ports.Result, error) {
	var out [phaseCount]ports.Result
	for i, v := range raw {
		rows, err := decodeRows(v)
		if err != nil {
			return out, fmt.Errorf("snapshot: decode phase %d: %w", i, err)
		}
		out[i] = ports.Result{Rows: rows}
	}
	return out, nil
}

// decodeRows normalizes the phase's value (round-tripped through
// encoding/json as []any of map[string]any, or still []ports.Row when Load
// is called in the same process as Dump without a JSON hop) into
// []ports.Row.
func decodeRows(v any) ([]ports.Row, error) {
	switch rows := v.(type) {
	case nil:
		return nil, nil
	case []ports.Row:
		return rows, nil
	case []any:
		out := make([]ports.Row, 0, len(rows))
		for _, r := range rows {
			m, ok := r.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("row is %T, want object", r)
			}
			out = append(out, ports.Row(m))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected query-result shape %T", v)
	}
}

// replayClient implements ports.DBClient by returning each phase's
// captured rows in sequence, ignoring the SQL text the Assembler passes —
// replay is driven entirely by call order, which matches the live
// Assembler's own fixed phase order.
type replayClient struct {
	serverVersion string
	results       [phaseCount]ports.Result
	next          int
}

func (c *replayClient) Query(ctx context.Context, sqlText string, params ...any) (ports.Result, error) {
	if c.next >= len(c.results) {
		return ports.Result{}, fmt.Errorf("snapshot: replay: more queries issued than %d captured phases", len(c.results))
	}
	r := c.results[c.next]
	c.next++
	return r, nil
}

func (c *replayClient) ServerVersion(ctx context.Context) (string, error) {
	return c.serverVersion, nil
}

func (c *replayClient) Close(ctx context.Context) error { return nil }

// replayLoader satisfies ports.SQLResourceLoader trivially; the SQL text it
// returns is never executed for real, only handed to replayClient.Query,
// which ignores it.
type replayLoader struct{}

func (replayLoader) Load(serverVersion, queryName string) (string, error) {
	return "-- replayed from snapshot, not executed\n", nil
}

var (
	_ ports.DBClient         = (*replayClient)(nil)
	_ ports.SQLResourceLoader = replayLoader{}
)
