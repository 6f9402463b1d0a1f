// Package pgerr defines the error taxonomy from spec.md section 7: a small
// set of classifiable error kinds that propagate to the PgStructure
// entrypoint, as distinct from collection.NotFoundError (local lookup misses
// that callers tolerate via GetMaybe) and comment-parse failures (swallowed
// entirely, never surfaced as an error).
package pgerr

import "fmt"

// Kind classifies a pgstructure error for callers using errors.Is.
type Kind int

const (
	// KindConfiguration: missing/contradictory options, unresolved
	// environment. Raised before any query is issued.
	KindConfiguration Kind = iota
	// KindConnection: from the driver, propagated unchanged after
	// connection cleanup.
	KindConnection
	// KindCatalogIntegrity: a mandatory reference was not found during
	// assembly (e.g. a column's parent entity), fatal to the build.
	KindCatalogIntegrity
	// KindLookup: Get on an IndexableCollection (or a dotted path) found
	// no element for the given key.
	KindLookup
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	case KindCatalogIntegrity:
		return "catalog-integrity"
	case KindLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// Error is a classified pgstructure error. Unwrap returns the underlying
// cause, if any, so errors.Is/As chain through to driver errors.
type Error struct {
	Kind  Kind
	OID   uint32 // populated for KindCatalogIntegrity, 0 otherwise
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, pgerr.Configuration) / .Connection / etc. to
// match by kind regardless of message or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels usable with errors.Is(err, pgerr.Configuration).
var (
	Configuration    = &Error{Kind: KindConfiguration, Msg: "configuration"}
	Connection       = &Error{Kind: KindConnection, Msg: "connection"}
	CatalogIntegrity = &Error{Kind: KindCatalogIntegrity, Msg: "catalog integrity"}
	Lookup           = &Error{Kind: KindLookup, Msg: "lookup"}
)

// Configf builds a KindConfiguration error.
func Configf(format string, args ...any) error {
	return &Error{Kind: KindConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// Wrapf builds an error of the given kind wrapping cause.
func Wrapf(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// CatalogIntegrityf builds a KindCatalogIntegrity error carrying the
// offending OID, per spec.md 7's "raised as a fatal assembly failure with
// the offending OID".
func CatalogIntegrityf(oid uint32, format string, args ...any) error {
	return &Error{Kind: KindCatalogIntegrity, OID: oid, Msg: fmt.Sprintf(format, args...)}
}

// Lookupf builds a KindLookup error.
func Lookupf(format string, args ...any) error {
	return &Error{Kind: KindLookup, Msg: fmt.Sprintf(format, args...)}
}
