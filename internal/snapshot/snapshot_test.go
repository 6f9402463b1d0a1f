package snapshot

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/ports"
)

func rows(vs ...ports.Row) []ports.Row { return vs }

func TestLoadReplaysEmptyDatabase(t *testing.T) {
	s := Snapshot{
		Name:          "testdb",
		ServerVersion: "170000",
		Config:        catalog.DefaultConfig(),
		QueryResults: [phaseCount]any{
			rows(ports.Row{"oid": uint32(2200), "name": "public"}), // user schemas
			rows(ports.Row{"oid": uint32(11), "name": "pg_catalog"}), // system schemas
			nil, // types
			nil, // entities
			nil, // columns
			nil, // indexes
			nil, // constraints
			nil, // functions
			nil, // triggers
		},
	}

	db, err := Load(context.Background(), s, zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, 1, db.Schemas.Len())
	public, ok := db.Schemas.GetMaybe("public")
	require.True(t, ok)
	assert.Equal(t, catalog.OID(2200), public.OID)

	require.Equal(t, 1, db.SystemSchemas.Len())
	sys, ok := db.SystemSchemas.GetMaybe("pg_catalog")
	require.True(t, ok)
	assert.Equal(t, catalog.OID(11), sys.OID)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	s := Snapshot{
		Name:          "testdb",
		ServerVersion: "170000",
		Config:        catalog.DefaultConfig(),
		QueryResults: [phaseCount]any{
			rows(ports.Row{"oid": uint32(2200), "name": "public"}),
			rows(ports.Row{"oid": uint32(11), "name": "pg_catalog"}),
			nil, nil, nil, nil, nil, nil, nil,
		},
	}

	data, err := Marshal(s)
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, s.Name, back.Name)
	assert.Equal(t, s.ServerVersion, back.ServerVersion)
	if diff := cmp.Diff(s.Config, back.Config); diff != "" {
		t.Errorf("config changed across the JSON round trip (-want +got):\n%s", diff)
	}

	db, err := Load(context.Background(), back, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, db.Schemas.Len())
}
