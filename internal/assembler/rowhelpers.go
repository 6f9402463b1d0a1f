package assembler

import (
	"github.com/alexanderritik/pgstructure/internal/catalog"
	"github.com/alexanderritik/pgstructure/internal/ports"
)

// applyComment fills in the Commented fields every model object embeds,
// parsing the pg-structure JSON data block (spec.md section 6) out of the
// raw catalog comment.
func applyComment(c *catalog.Commented, row ports.Row, token string) {
	comment := str(row, "comment")
	c.Comment = comment
	c.CommentData = catalog.ParseCommentData(comment, token)
}

// The helpers below convert a ports.Row's pgx-native scan values into the
// plain Go types the Assembler works with. pgx/v5's default type mapping
// returns uint32 for oid, int16 for int2, int32 for int4/int, string for
// text, []byte-backed slices for array types — we centralize the
// interface{} type-switches here instead of repeating them across every
// phase file.

func str(row ports.Row, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func strPtr(row ports.Row, key string) *string {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func boolVal(row ports.Row, key string) bool {
	v, ok := row[key]
	if !ok || v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// float64 is included in every numeric switch below because a snapshot
// round-trip through encoding/json decodes all JSON numbers into float64
// when the target is interface{} (ports.Row's value type) — the live pgx
// path never produces float64 for these columns, but the replayed path
// does.

func oidVal(row ports.Row, key string) uint32 {
	v, ok := row[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case uint32:
		return n
	case int32:
		return uint32(n)
	case int64:
		return uint32(n)
	case int:
		return uint32(n)
	case float64:
		return uint32(n)
	}
	return 0
}

func intVal(row ports.Row, key string) int {
	v, ok := row[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func int64Val(row ports.Row, key string) int64 {
	v, ok := row[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func charVal(row ports.Row, key string) byte {
	s := str(row, key)
	if s == "" {
		return 0
	}
	return s[0]
}

func int16Slice(row ports.Row, key string) []int16 {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	switch s := v.(type) {
	case []int16:
		return s
	case []int32:
		out := make([]int16, len(s))
		for i, n := range s {
			out[i] = int16(n)
		}
		return out
	case []any:
		out := make([]int16, 0, len(s))
		for _, e := range s {
			switch n := e.(type) {
			case int16:
				out = append(out, n)
			case int32:
				out = append(out, int16(n))
			case int64:
				out = append(out, int16(n))
			case float64:
				out = append(out, int16(n))
			}
		}
		return out
	}
	return nil
}

func stringSlice(row ports.Row, key string) []string {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func oidSlice(row ports.Row, key string) []uint32 {
	v, ok := row[key]
	if !ok || v == nil {
		return nil
	}
	switch s := v.(type) {
	case []uint32:
		return s
	case []any:
		out := make([]uint32, 0, len(s))
		for _, e := range s {
			switch n := e.(type) {
			case uint32:
				out = append(out, n)
			case int32:
				out = append(out, uint32(n))
			case int64:
				out = append(out, uint32(n))
			case float64:
				out = append(out, uint32(n))
			}
		}
		return out
	}
	return nil
}
