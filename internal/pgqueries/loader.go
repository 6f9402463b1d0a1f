// Package pgqueries is the default SQLResourceLoader: versioned catalog
// query text, embedded at build time. Treated as an opaque external
// resource per spec.md section 1 — the assembler never parses or rewrites
// this SQL, it only substitutes the schema-filter fragment and executes it.
package pgqueries

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderritik/pgstructure/internal/ports"
)

//go:embed sql
var sqlFS embed.FS

const root = "sql"

// Loader implements ports.SQLResourceLoader against the embedded sql/
// directory tree, one subdirectory per version tier (e.g. "000000" is the
// baseline tier used regardless of server version until a newer tier is
// added alongside it). Load falls back to the nearest lower tier when an
// exact match for serverVersion isn't embedded, per spec.md section 6.
type Loader struct {
	tiers []int // sorted ascending, parsed from directory names
}

// NewLoader scans the embedded sql/ tree for version-tier directories.
func NewLoader() *Loader {
	entries, err := sqlFS.ReadDir(root)
	if err != nil {
		return &Loader{}
	}
	var tiers []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n, err := strconv.Atoi(e.Name()); err == nil {
			tiers = append(tiers, n)
		}
	}
	sort.Ints(tiers)
	return &Loader{tiers: tiers}
}

// Load returns the SQL text for queryName at the nearest tier <=
// serverVersion (numeric, e.g. "140005"); falls back to the lowest
// available tier if serverVersion sorts below everything embedded.
func (l *Loader) Load(serverVersion string, queryName string) (string, error) {
	want, err := strconv.Atoi(normalizeVersion(serverVersion))
	if err != nil {
		want = 0
	}
	tier := l.nearestTier(want)
	path := fmt.Sprintf("%s/%06d/%s.sql", root, tier, queryName)
	data, err := sqlFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("pgqueries: no %q query for tier %06d: %w", queryName, tier, err)
	}
	return string(data), nil
}

func (l *Loader) nearestTier(want int) int {
	if len(l.tiers) == 0 {
		return 0
	}
	best := l.tiers[0]
	for _, t := range l.tiers {
		if t <= want {
			best = t
		}
	}
	return best
}

// normalizeVersion strips dots from a "14.5"-style version into "140500",
// and passes already-numeric SHOW server_version_num output through
// unchanged.
func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	if !strings.Contains(v, ".") {
		return v
	}
	parts := strings.SplitN(v, ".", 3)
	out := ""
	for i := 0; i < 3; i++ {
		if i < len(parts) {
			out += pad2(parts[i])
		} else {
			out += "00"
		}
	}
	return out
}

func pad2(s string) string {
	if len(s) >= 2 {
		return s[:2]
	}
	return "0" + s
}

var _ ports.SQLResourceLoader = (*Loader)(nil)
