// Package collection implements the IndexableCollection primitive: an
// ordered sequence with several secondary keys, used throughout the catalog
// model for name/OID/attribute-number lookup.
package collection

import (
	"fmt"
	"strings"
)

// NotFoundError is returned by Get when key is absent from the chosen index.
type NotFoundError struct {
	Index string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("collection: no element with %s=%q", e.Index, e.Key)
}

// DuplicateKeyError is returned by Add when key already exists in an index.
type DuplicateKeyError struct {
	Index string
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("collection: duplicate key %s=%q", e.Index, e.Key)
}

// Indexed is implemented by elements stored in a Collection that support
// dotted-path descent (e.g. table.Get("id") returning a column).
type Indexed interface {
	// Get resolves a single path segment against the element's own
	// navigable children, for use by dotted-path lookups that cross
	// object boundaries (e.g. "public.account.id").
	Get(segment string) (any, error)
}

// Collection is an ordered sequence of T with N secondary indexes, each
// keyed on a named attribute extracted by a registered function.
//
// Insertion order is preserved and is the iteration order, matching
// catalog order (attribute number, ordinal position, etc).
type Collection[T any] struct {
	defaultKey string
	items      []T
	indexes    map[string]map[string]int // index name -> key -> slot in items
	extractors map[string]func(T) string
	ci         map[string]map[string]int // case-insensitive shadow of the default index
}

// New creates a Collection whose default key attribute is extracted by
// defaultExtract (e.g. name), plus zero or more additional named indexes.
func New[T any](defaultKey string, defaultExtract func(T) string) *Collection[T] {
	c := &Collection[T]{
		defaultKey: defaultKey,
		indexes:    map[string]map[string]int{defaultKey: {}},
		extractors: map[string]func(T) string{defaultKey: defaultExtract},
		ci:         map[string]map[string]int{defaultKey: {}},
	}
	return c
}

// WithIndex registers an additional secondary key attribute. Must be called
// before any Add.
func (c *Collection[T]) WithIndex(name string, extract func(T) string) *Collection[T] {
	c.indexes[name] = map[string]int{}
	c.extractors[name] = extract
	return c
}

// Add appends an element, populating every registered index. Returns
// *DuplicateKeyError if any index attribute collides with an existing
// element.
func (c *Collection[T]) Add(item T) error {
	keys := make(map[string]string, len(c.extractors))
	for name, extract := range c.extractors {
		k := extract(item)
		if _, exists := c.indexes[name][k]; exists {
			return &DuplicateKeyError{Index: name, Key: k}
		}
		keys[name] = k
	}
	slot := len(c.items)
	c.items = append(c.items, item)
	for name, k := range keys {
		c.indexes[name][k] = slot
		if ci, ok := c.ci[name]; ok {
			ci[strings.ToLower(k)] = slot
		}
	}
	return nil
}

// Len returns the number of elements.
func (c *Collection[T]) Len() int { return len(c.items) }

// All returns elements in insertion (catalog) order. The returned slice must
// not be mutated by callers.
func (c *Collection[T]) All() []T { return c.items }

// At returns the element at the given zero-based ordinal position.
func (c *Collection[T]) At(position int) (T, bool) {
	var zero T
	if position < 0 || position >= len(c.items) {
		return zero, false
	}
	return c.items[position], true
}

// Options configures a Get/GetMaybe call.
type Options struct {
	// Key selects a non-default index to look up by. Empty means the
	// collection's default key (typically name).
	Key string
	// CaseInsensitive requests case-insensitive matching on the default
	// name index, independent of caller-supplied configuration.
	CaseInsensitive bool
}

func (c *Collection[T]) resolve(key string, opt Options) (T, bool) {
	var zero T
	idxName := opt.Key
	if idxName == "" {
		idxName = c.defaultKey
	}
	if opt.CaseInsensitive && idxName == c.defaultKey {
		ci, ok := c.ci[idxName]
		if !ok {
			return zero, false
		}
		slot, ok := ci[strings.ToLower(key)]
		if !ok {
			return zero, false
		}
		return c.items[slot], true
	}
	idx, ok := c.indexes[idxName]
	if !ok {
		return zero, false
	}
	slot, ok := idx[key]
	if !ok {
		return zero, false
	}
	return c.items[slot], true
}

// Get performs an exact match on the chosen index, failing with
// *NotFoundError when absent.
func (c *Collection[T]) Get(key string, opts ...Options) (T, error) {
	opt := firstOrZero(opts)
	v, ok := c.resolve(key, opt)
	if !ok {
		idxName := opt.Key
		if idxName == "" {
			idxName = c.defaultKey
		}
		return v, &NotFoundError{Index: idxName, Key: key}
	}
	return v, nil
}

// GetMaybe is Get without the error: a zero value and false on miss.
func (c *Collection[T]) GetMaybe(key string, opts ...Options) (T, bool) {
	return c.resolve(key, firstOrZero(opts))
}

func firstOrZero(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[0]
}
