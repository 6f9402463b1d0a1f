// Package ports defines the narrow external collaborators spec.md section 6
// treats as out of scope for the core: the DB client, the connection
// config source, and the SQL resource loader. The core depends only on
// these interfaces, never on a concrete driver or file-loading mechanism.
package ports

import "context"

// Row is a single result row from a catalog query, already materialized
// (pgx's row-scanning already requires a target list, so DBClient returns
// column-name-addressable maps rather than a cursor the core would have to
// understand pgx-specific scan semantics for).
type Row map[string]any

// Result is the full row set from one catalog query.
type Result struct {
	Rows []Row
}

// DBClient is the minimal surface the Assembler needs from a database
// connection: issue a parameterized query, and close when the core owns
// the connection (spec.md section 5's connection-ownership rule).
type DBClient interface {
	Query(ctx context.Context, sql string, params ...any) (Result, error)
	ServerVersion(ctx context.Context) (string, error)
	Close(ctx context.Context) error
}

// SQLResourceLoader returns the SQL text for a logical catalog query name
// ("type", "entity", "column", "index", "constraint", "function",
// "trigger", "schema"), tiered by server version with fallback to the
// nearest lower version directory, per spec.md section 6.
type SQLResourceLoader interface {
	Load(serverVersion string, queryName string) (string, error)
}

// ConnConfigSource resolves a connection string or a *pgxpool.Pool-shaped
// value from configuration: a connection object, a connection string, or
// environment variables under a caller-supplied prefix (spec.md section 6).
// No type in this module implements it: internal/config.EnvDSN resolves a
// DSN from os.Getenv + godotenv as a plain function instead.
type ConnConfigSource interface {
	// Resolve returns a DSN string suitable for a driver to connect with.
	Resolve() (string, error)
}
