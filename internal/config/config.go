// Package config resolves connection configuration and the public Options
// surface from spec.md section 9: env vars (optionally loaded from a .env
// file via godotenv, grounded on pgschema/pgschema's go.mod dependency on
// github.com/joho/godotenv), a connection string, or an explicit options
// record.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/pgerr"
)

// Options is the single recognized-keys record from spec.md section 9.
type Options struct {
	EnvPrefix                  string
	Name                       string
	CommentDataToken           string
	IncludeSchemas             []string
	ExcludeSchemas             []string
	IncludeSystemSchemas       bool
	ForeignKeyAliasSeparator   string
	ForeignKeyAliasTargetFirst bool
	RelationNameFunctions      string
	KeepConnection             bool
}

// recognizedKeys back the "auto-detected by presence of any of the
// recognized option keys" rule in spec.md section 6 for the untyped
// pgStructure(clientOrConfigOrOptions) entrypoint, mirrored here as an
// IsOptionsLike helper for the case where callers pass a map[string]any
// instead of an *Options literal.
var recognizedKeys = map[string]bool{
	"envPrefix": true, "name": true, "commentDataToken": true,
	"includeSchemas": true, "excludeSchemas": true, "includeSystemSchemas": true,
	"foreignKeyAliasSeparator": true, "foreignKeyAliasTargetFirst": true,
	"relationNameFunctions": true, "keepConnection": true,
}

// IsOptionsLike reports whether m's keys look like an Options bag, used by
// the top-level auto-detection switch.
func IsOptionsLike(m map[string]any) bool {
	for k := range m {
		if recognizedKeys[k] {
			return true
		}
	}
	return false
}

// Default returns Options populated with spec.md section 9's documented
// defaults.
func Default() Options {
	return Options{
		EnvPrefix:                "DB",
		CommentDataToken:         "pg-structure",
		ForeignKeyAliasSeparator: ",",
		RelationNameFunctions:    "short",
	}
}

// ToConfig projects Options onto the catalog.Config subset carried on a
// built Db (spec.md 4.6's replay contract).
func (o Options) ToConfig() catalog.Config {
	return catalog.Config{
		Name:                       o.Name,
		CommentDataToken:           o.CommentDataToken,
		IncludeSchemas:             o.IncludeSchemas,
		ExcludeSchemas:             o.ExcludeSchemas,
		IncludeSystemSchemas:       o.IncludeSystemSchemas,
		ForeignKeyAliasSeparator:   o.ForeignKeyAliasSeparator,
		ForeignKeyAliasTargetFirst: o.ForeignKeyAliasTargetFirst,
		NamingStrategy:             o.RelationNameFunctions,
	}
}

// EnvDSN loads a .env file (if present, ignored if absent) and builds a DSN
// from <prefix>_HOST/_PORT/_USER/_PASSWORD/_DATABASE, or returns
// <prefix>_CONNECTION_STRING verbatim when set, per spec.md section 6.
func EnvDSN(prefix string) (string, error) {
	if prefix == "" {
		prefix = "DB"
	}
	_ = godotenv.Load() // optional; absence is not an error

	if cs := os.Getenv(prefix + "_CONNECTION_STRING"); cs != "" {
		return cs, nil
	}

	host := os.Getenv(prefix + "_HOST")
	user := os.Getenv(prefix + "_USER")
	database := os.Getenv(prefix + "_DATABASE")
	if host == "" || user == "" || database == "" {
		return "", pgerr.Configf(
			"missing required environment variables: need %s_HOST, %s_USER and %s_DATABASE (or %s_CONNECTION_STRING)",
			prefix, prefix, prefix, prefix)
	}

	port := os.Getenv(prefix + "_PORT")
	if port == "" {
		port = "5432"
	}
	password := os.Getenv(prefix + "_PASSWORD")

	var b strings.Builder
	b.WriteString("postgres://")
	b.WriteString(user)
	if password != "" {
		b.WriteByte(':')
		b.WriteString(password)
	}
	b.WriteByte('@')
	b.WriteString(host)
	b.WriteByte(':')
	b.WriteString(port)
	b.WriteByte('/')
	b.WriteString(database)
	return b.String(), nil
}

// SchemaLikeClauses turns include/exclude patterns into parameterized
// LIKE/NOT LIKE SQL fragments, grounded on
// allyourbase/schema/introspect.go's schemaFilter helper (which already
// builds "$N"-parameterized nspname clauses over a variadic exclusion
// list) — generalized here from a fixed exclusion list to caller-supplied
// include and exclude pattern lists, per spec.md section 6.
func SchemaLikeClauses(alias string, include, exclude []string, includeSystem bool, paramOffset int) (clause string, args []any) {
	var conds []string
	n := paramOffset

	always := []string{"pg_toast"}
	for _, s := range always {
		conds = append(conds, fmt.Sprintf("%s.nspname != $%d", alias, n))
		args = append(args, s)
		n++
	}
	if !includeSystem {
		conds = append(conds, fmt.Sprintf("%s.nspname NOT LIKE $%d", alias, n))
		args = append(args, "pg\\_%")
		n++
		conds = append(conds, fmt.Sprintf("%s.nspname != $%d", alias, n))
		args = append(args, "information_schema")
		n++
	}
	for _, pat := range exclude {
		conds = append(conds, fmt.Sprintf("%s.nspname NOT LIKE $%d", alias, n))
		args = append(args, pat)
		n++
	}
	if len(include) > 0 {
		var incConds []string
		for _, pat := range include {
			incConds = append(incConds, fmt.Sprintf("%s.nspname LIKE $%d", alias, n))
			args = append(args, pat)
			n++
		}
		conds = append(conds, "("+strings.Join(incConds, " OR ")+")")
	}
	return strings.Join(conds, " AND "), args
}
