package assembler

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/pgqueries"
	"github.com/alexanderritik/pgstructure/internal/ports"
)

// fixtureClient replays one canned ports.Result per call, in the fixed
// phase order Assemble drives: user schemas, system schemas, types,
// entities, columns, indexes, constraints, functions, triggers.
type fixtureClient struct {
	version string
	results []ports.Result
	calls   int
}

func (c *fixtureClient) ServerVersion(ctx context.Context) (string, error) { return c.version, nil }

func (c *fixtureClient) Query(ctx context.Context, sql string, params ...any) (ports.Result, error) {
	if c.calls >= len(c.results) {
		return ports.Result{}, nil
	}
	r := c.results[c.calls]
	c.calls++
	return r, nil
}

func (c *fixtureClient) Close(ctx context.Context) error { return nil }

func rowsOf(vs ...ports.Row) ports.Result { return ports.Result{Rows: vs} }

// oneTableFixture is a single schema ("public") holding one table
// ("widgets") with one not-null int4 primary key column, backed by a
// unique index and a primary-key constraint — enough to exercise every
// phase's cross-reference resolution (type -> column -> index -> PK
// constraint) in one pass.
func oneTableFixture() *fixtureClient {
	return &fixtureClient{
		version: "170000",
		results: []ports.Result{
			rowsOf(ports.Row{"oid": uint32(2200), "name": "public"}),
			rowsOf(ports.Row{"oid": uint32(11), "name": "pg_catalog"}),
			rowsOf(ports.Row{
				"oid": uint32(23), "name": "int4", "kind": "b", "schema_oid": uint32(11),
				"domain_base_type_oid": uint32(0), "sub_type_oid": uint32(0), "class_oid": uint32(0),
			}),
			rowsOf(ports.Row{
				"oid": uint32(100), "name": "widgets", "kind": "r", "schema_oid": uint32(2200),
				"row_type_oid": uint32(0),
			}),
			rowsOf(ports.Row{
				"parent_oid": uint32(100), "parent_kind": "e", "attribute_number": int16(1),
				"name": "id", "type_oid": uint32(23), "not_null": true, "type_modifier": int32(-1),
				"default_expression": "", "has_default": false, "identity": "",
			}),
			rowsOf(ports.Row{
				"oid": uint32(200), "name": "widgets_pkey", "table_oid": uint32(100),
				"is_unique": true, "is_primary": true, "is_partial": false,
				"predicate": "", "definition": "CREATE UNIQUE INDEX widgets_pkey ON widgets(id)",
				"column_positions": []int16{1},
			}),
			rowsOf(ports.Row{
				"oid": uint32(300), "name": "widgets_pkey", "kind": "p", "table_oid": uint32(100),
				"domain_oid": uint32(0), "index_oid": uint32(200), "referenced_table_oid": uint32(0),
				"column_positions": []int16{1}, "on_update": "", "on_delete": "", "match_type": "",
				"expression": "",
			}),
			ports.Result{},
			ports.Result{},
		},
	}
}

func TestAssembleBuildsOneTableSchema(t *testing.T) {
	client := oneTableFixture()
	asm := New(client, pgqueries.NewLoader(), catalog.DefaultConfig(), zerolog.Nop())

	db, err := asm.Assemble(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, db.Schemas.Len())
	public, err := db.Schemas.Get("public")
	require.NoError(t, err)

	widgets, err := public.Tables.Get("widgets")
	require.NoError(t, err)
	assert.Equal(t, catalog.OID(100), widgets.OID)

	require.Equal(t, 1, widgets.Columns.Len())
	id, err := widgets.Columns.Get("id")
	require.NoError(t, err)
	require.NotNil(t, id.Type)
	assert.Equal(t, "int4", id.Type.Name)
	assert.True(t, id.NotNull)

	require.Equal(t, 1, widgets.Indexes.Len())
	idx, err := widgets.Indexes.Get("widgets_pkey")
	require.NoError(t, err)
	assert.True(t, idx.Primary)
	require.Len(t, idx.ColumnsAndExpressions, 1)
	assert.Same(t, id, idx.ColumnsAndExpressions[0].Column)

	require.Equal(t, 1, widgets.Constraints.Len())
	con, err := widgets.Constraints.Get("widgets_pkey")
	require.NoError(t, err)
	assert.Equal(t, catalog.ConstraintPrimaryKey, con.Kind)
	assert.Same(t, idx, con.Index)
}

func TestAssembleSkipsRowWithUnresolvedType(t *testing.T) {
	client := oneTableFixture()
	// Drop the int4 type row entirely: the column referencing it should be
	// soft-skipped, not fail the whole assembly.
	client.results[2] = ports.Result{}

	asm := New(client, pgqueries.NewLoader(), catalog.DefaultConfig(), zerolog.Nop())
	db, err := asm.Assemble(context.Background())
	require.NoError(t, err)

	public, err := db.Schemas.Get("public")
	require.NoError(t, err)
	widgets, err := public.Tables.Get("widgets")
	require.NoError(t, err)
	assert.Equal(t, 0, widgets.Columns.Len())
}
