// Package pgstructure introspects a live PostgreSQL database and
// materializes a navigable, serializable in-memory graph of its schema:
// schemas, tables, views, materialized views, sequences, columns, indexes,
// constraints, functions and triggers, plus inferred many-to-one,
// one-to-many and many-to-many relations.
package pgstructure

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/alexanderritik/pgstructure/internal/assembler"
	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/config"
	"github.com/alexanderritik/pgstructure/internal/pgclient"
	"github.com/alexanderritik/pgstructure/internal/pgerr"
	"github.com/alexanderritik/pgstructure/internal/pgqueries"
	"github.com/alexanderritik/pgstructure/internal/ports"
	"github.com/alexanderritik/pgstructure/internal/relation"
	"github.com/alexanderritik/pgstructure/internal/snapshot"
)

// Re-exported so callers never need to import the internal catalog package
// directly.
type (
	Db         = catalog.Db
	Schema     = catalog.Schema
	Entity     = catalog.Entity
	Column     = catalog.Column
	Index      = catalog.Index
	Constraint = catalog.Constraint
	Function   = catalog.Function
	Trigger    = catalog.Trigger
	Type       = catalog.Type
	Options    = config.Options
)

// settings bundles Options with the build-time concerns Options itself
// doesn't carry (the logger), so Option values can mutate either without
// widening the public Options record spec.md section 9 defines.
type settings struct {
	options config.Options
	logger  zerolog.Logger
}

// Option mutates a build's settings before assembly runs.
type Option func(*settings)

// WithName sets Options.Name.
func WithName(name string) Option { return func(s *settings) { s.options.Name = name } }

// WithSchemas restricts the build to the given include/exclude patterns.
func WithSchemas(include, exclude []string) Option {
	return func(s *settings) {
		s.options.IncludeSchemas = include
		s.options.ExcludeSchemas = exclude
	}
}

// WithSystemSchemas toggles inclusion of pg_%/information_schema in the
// user-schema set (pg_catalog is always attached structurally regardless).
func WithSystemSchemas(include bool) Option {
	return func(s *settings) { s.options.IncludeSystemSchemas = include }
}

// WithNamingStrategy selects "short" (default) or "optimal" (spec.md 4.5).
func WithNamingStrategy(strategy string) Option {
	return func(s *settings) { s.options.RelationNameFunctions = strategy }
}

// WithKeepConnection leaves a client that PgStructure creates itself (from a
// DSN string, an Options record or the environment) open once assembly
// finishes (spec.md section 5). A caller-supplied *pgxpool.Pool is never
// closed by PgStructure, with or without this option.
func WithKeepConnection(keep bool) Option {
	return func(s *settings) { s.options.KeepConnection = keep }
}

// WithLogger overrides the default no-op logger used for soft-skip
// conditions encountered during assembly (spec.md section 7).
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// PgStructure is the single entrypoint: it accepts a live *pgxpool.Pool, a
// connection string, an Options record, or nil (to resolve a DSN from
// environment variables), auto-detected by argument type, and returns the
// fully assembled, relation-enriched Db.
func PgStructure(ctx context.Context, clientOrConfigOrOptions any, opts ...Option) (*catalog.Db, error) {
	st := settings{options: config.Default(), logger: zerolog.Nop()}
	for _, o := range opts {
		o(&st)
	}

	client, owned, err := resolveClient(ctx, clientOrConfigOrOptions, &st.options)
	if err != nil {
		return nil, err
	}
	defer func() {
		if owned {
			_ = client.Close(ctx)
		}
	}()

	loader := pgqueries.NewLoader()
	asm := assembler.New(client, loader, st.options.ToConfig(), st.logger)
	db, err := asm.Assemble(ctx)
	if err != nil {
		return nil, err
	}
	db.RawResults = asm.RawResults()
	db.Relations = relation.NewEngine(db)
	return db, nil
}

// resolveClient type-switches on clientOrConfigOrOptions (a *pgxpool.Pool,
// a DSN string, an Options literal, or nil to fall back to environment
// variables under options.EnvPrefix), mirroring
// dbgraph/internal/adapters.NewAdapter's scheme-sniffing idiom — generalized
// here from a string-prefix switch to a type switch over the first
// argument, since this entrypoint's first argument isn't always a string.
// owned reports whether PgStructure is responsible for closing the client.
//
// options is the build's settings record; when clientOrConfigOrOptions is
// itself an Options value, its fields replace *options so the assembler
// that runs afterward sees the caller's schema filters and naming strategy
// instead of silently falling back to config.Default().
func resolveClient(ctx context.Context, v any, options *config.Options) (client ports.DBClient, owned bool, err error) {
	switch c := v.(type) {
	case *pgxpool.Pool:
		// The caller already owns this pool; ownership never transfers to
		// the core regardless of keepConnection (spec.md section 5).
		return pgclient.Wrap(c), false, nil
	case string:
		cl, err := pgclient.Connect(ctx, c)
		return cl, !options.KeepConnection, err
	case config.Options:
		*options = c
		return connectFromOptions(ctx, *options)
	case nil:
		return connectFromOptions(ctx, *options)
	default:
		return nil, false, pgerr.Configf("unsupported client/config argument type %T", v)
	}
}

func connectFromOptions(ctx context.Context, options config.Options) (ports.DBClient, bool, error) {
	dsn, err := config.EnvDSN(options.EnvPrefix)
	if err != nil {
		return nil, false, err
	}
	cl, err := pgclient.Connect(ctx, dsn)
	return cl, !options.KeepConnection, err
}

// Deserialize reconstructs a Db from a snapshot previously produced by
// Serialize, by replaying the Assembler over the captured query rows
// instead of hitting a live database (spec.md 4.6).
func Deserialize(ctx context.Context, data []byte) (*catalog.Db, error) {
	s, err := snapshot.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	db, err := snapshot.Load(ctx, s, zerolog.Nop())
	if err != nil {
		return nil, fmt.Errorf("pgstructure: deserialize: %w", err)
	}
	db.Relations = relation.NewEngine(db)
	return db, nil
}

// Serialize captures db's build-time query rows for round-tripping via
// Deserialize. db must carry the RawResults PgStructure (or Deserialize)
// populates; a Db built directly through internal/assembler without that
// step has nothing to capture.
func Serialize(db *catalog.Db) ([]byte, error) {
	return snapshot.Marshal(snapshot.Dump(db))
}
