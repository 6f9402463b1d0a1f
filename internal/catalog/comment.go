package catalog

import (
	"encoding/json"
	"strings"
)

// ParseCommentData extracts a JSON block from a raw catalog comment, per
// spec.md section 6's "comment metadata" convention: a comment may carry a
// JSON block prefixed by token (default "pg-structure"). Parsing failures
// are swallowed and yield a nil map, never an error — this is the taxonomy's
// "Comment parse failure" kind.
func ParseCommentData(comment, token string) map[string]any {
	if comment == "" || token == "" {
		return nil
	}
	idx := strings.Index(comment, token)
	if idx < 0 {
		return nil
	}
	rest := strings.TrimSpace(comment[idx+len(token):])
	brace := strings.IndexByte(rest, '{')
	if brace < 0 {
		return nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(rest[brace:]), &data); err != nil {
		return nil
	}
	return data
}

// Commented is embedded by every model object that carries a catalog
// comment plus its parsed pg-structure data block.
type Commented struct {
	Comment     string
	CommentData map[string]any
}

func newCommented(comment, token string) Commented {
	return Commented{Comment: comment, CommentData: ParseCommentData(comment, token)}
}
