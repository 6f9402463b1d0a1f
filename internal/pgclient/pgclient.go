// Package pgclient is the default ports.DBClient, a thin pgx/v5 pool
// adapter grounded on dbgraph/internal/adapters.PostgresAdapter's
// Connect/Close/Query idiom (context.Background()-less here: every call
// takes the caller's ctx, per spec.md section 5's cancellation-at-I/O-boundaries
// rule).
package pgclient

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexanderritik/pgstructure/internal/ports"
)

// Client wraps a pgxpool.Pool.
type Client struct {
	pool *pgxpool.Pool
	// owned is true when Client created the pool itself (from a DSN) and
	// is therefore responsible for closing it; false when the caller
	// handed in an already-connected pool (spec.md section 5's
	// "connection ownership stays with the caller" rule).
	owned bool
}

// Connect opens a new pool from a DSN. The returned Client owns the pool.
func Connect(ctx context.Context, dsn string) (*Client, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgclient: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgclient: ping: %w", err)
	}
	return &Client{pool: pool, owned: true}, nil
}

// Wrap adapts a pool the caller already owns. Close is a no-op on the
// returned Client unless Client.Adopt() is called on it.
func Wrap(pool *pgxpool.Pool) *Client {
	return &Client{pool: pool, owned: false}
}

// Adopt marks a wrapped pool as owned, so that Close releases it.
func (c *Client) Adopt() { c.owned = true }

// Query executes sql and materializes every row into a column-name-keyed
// map, since the core (internal/assembler) must stay pgx-agnostic.
func (c *Client) Query(ctx context.Context, sql string, params ...any) (ports.Result, error) {
	rows, err := c.pool.Query(ctx, sql, params...)
	if err != nil {
		return ports.Result{}, fmt.Errorf("pgclient: query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	var result ports.Result
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return ports.Result{}, fmt.Errorf("pgclient: scan row: %w", err)
		}
		row := make(ports.Row, len(values))
		for i, v := range values {
			if i < len(names) {
				row[names[i]] = v
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return ports.Result{}, fmt.Errorf("pgclient: iterate rows: %w", err)
	}
	return result, nil
}

// ServerVersion returns the numeric server_version_num setting, used by the
// SQL resource loader's version tiering.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	var version string
	if err := c.pool.QueryRow(ctx, "SHOW server_version_num").Scan(&version); err != nil {
		return "", fmt.Errorf("pgclient: server version: %w", err)
	}
	return version, nil
}

// Close releases the pool, but only when this Client owns it, per spec.md
// section 5.
func (c *Client) Close(ctx context.Context) error {
	if c.pool != nil && c.owned {
		c.pool.Close()
	}
	return nil
}
