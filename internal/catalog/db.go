package catalog

import (
	"strconv"

	"github.com/alexanderritik/pgstructure/internal/collection"
	"github.com/alexanderritik/pgstructure/internal/ports"
)

// Config is the subset of spec.md 9's options record carried on the built
// Db, so a deserialized snapshot can replay assembly with the exact
// settings it was built with (spec.md 4.6).
type Config struct {
	Name                       string
	CommentDataToken           string
	IncludeSchemas             []string
	ExcludeSchemas             []string
	IncludeSystemSchemas       bool
	ForeignKeyAliasSeparator   string
	ForeignKeyAliasTargetFirst bool
	NamingStrategy             string // "short" | "optimal" | custom name
}

// DefaultConfig returns the documented defaults from spec.md 9.
func DefaultConfig() Config {
	return Config{
		CommentDataToken:         "pg-structure",
		ForeignKeyAliasSeparator: ",",
		NamingStrategy:           "short",
	}
}

// Db is the root of the graph. Every object reachable in the graph belongs
// to exactly one schema owned (directly or as system) by this Db.
type Db struct {
	Name          string
	ServerVersion string
	Config        Config

	Schemas       *collection.Collection[*Schema]
	SystemSchemas *collection.Collection[*Schema]

	// Relations is attached by the top-level package after assembly
	// completes (internal/relation.NewEngine(db)); Entity's relation
	// accessor methods delegate through it.
	Relations RelationProvider

	// RawResults carries the nine per-phase query results the Assembler
	// captured while building this Db, so a Db obtained through any path
	// (live build or replay) can be handed straight to a Serializer
	// without the caller having to keep its own Assembler around.
	RawResults [9]ports.Result
}

// NewDb constructs an empty Db ready for the Assembler to populate.
func NewDb(name, serverVersion string, cfg Config) *Db {
	db := &Db{Name: name, ServerVersion: serverVersion, Config: cfg}
	db.Schemas = collection.New("name", func(s *Schema) string { return s.Name }).
		WithIndex("oid", func(s *Schema) string { return strconv.Itoa(int(s.OID)) })
	db.SystemSchemas = collection.New("name", func(s *Schema) string { return s.Name }).
		WithIndex("oid", func(s *Schema) string { return strconv.Itoa(int(s.OID)) })
	return db
}

// Schema looks up a schema by name, trying user schemas first, then system
// schemas.
func (db *Db) Schema(name string) (*Schema, bool) {
	if s, ok := db.Schemas.GetMaybe(name); ok {
		return s, true
	}
	return db.SystemSchemas.GetMaybe(name)
}

// SchemaByOID is the OID-keyed counterpart of Schema.
func (db *Db) SchemaByOID(oid OID) (*Schema, bool) {
	key := strconv.Itoa(int(oid))
	if s, ok := db.Schemas.GetMaybe(key, collection.Options{Key: "oid"}); ok {
		return s, true
	}
	return db.SystemSchemas.GetMaybe(key, collection.Options{Key: "oid"})
}
