// Package memory is a thread-safe in-memory docstore backend. It backs every
// test and the CADERNO_STORE=memory development mode.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cadernoapp/caderno/internal/docstore"
	"github.com/cadernoapp/caderno/internal/domain"
)

// Store keeps documents in nested maps keyed by collection path then id.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]any
	seq  map[string][]string // insertion order of ids per path
}

func New() *Store {
	return &Store{
		data: make(map[string]map[string]map[string]any),
		seq:  make(map[string][]string),
	}
}

func (s *Store) Collection(path string) docstore.Collection {
	return &collection{store: s, path: path}
}

func (s *Store) Close() {}

type collection struct {
	store *Store
	path  string
}

func (c *collection) List(_ context.Context, q docstore.Query) ([]docstore.Doc, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	var docs []docstore.Doc
	for _, id := range c.store.seq[c.path] {
		fields, ok := c.store.data[c.path][id]
		if !ok {
			continue
		}
		if !matchesAll(fields, q.Filters) {
			continue
		}
		docs = append(docs, docstore.Doc{ID: id, Fields: copyFields(fields)})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		for _, o := range q.Orders {
			cmp := compareValues(docs[i].Fields[o.Field], docs[j].Fields[o.Field])
			if cmp == 0 {
				continue
			}
			if o.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return docs[i].ID < docs[j].ID
	})

	return docs, nil
}

func (c *collection) Get(_ context.Context, id string) (docstore.Doc, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	fields, ok := c.store.data[c.path][id]
	if !ok {
		return docstore.Doc{}, fmt.Errorf("memory.Get %s/%s: %w", c.path, id, domain.ErrNotFound)
	}
	return docstore.Doc{ID: id, Fields: copyFields(fields)}, nil
}

func (c *collection) Create(_ context.Context, fields map[string]any) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	id := uuid.NewString()
	if c.store.data[c.path] == nil {
		c.store.data[c.path] = make(map[string]map[string]any)
	}
	c.store.data[c.path][id] = copyFields(fields)
	c.store.seq[c.path] = append(c.store.seq[c.path], id)
	return id, nil
}

func (c *collection) Replace(_ context.Context, id string, fields map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if _, ok := c.store.data[c.path][id]; !ok {
		return fmt.Errorf("memory.Replace %s/%s: %w", c.path, id, domain.ErrNotFound)
	}
	c.store.data[c.path][id] = copyFields(fields)
	return nil
}

func (c *collection) Merge(_ context.Context, id string, fields map[string]any) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if c.store.data[c.path] == nil {
		c.store.data[c.path] = make(map[string]map[string]any)
	}
	existing, ok := c.store.data[c.path][id]
	if !ok {
		existing = make(map[string]any)
		c.store.seq[c.path] = append(c.store.seq[c.path], id)
	}
	for k, v := range fields {
		existing[k] = v
	}
	c.store.data[c.path][id] = existing
	return nil
}

func (c *collection) Delete(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	if _, ok := c.store.data[c.path][id]; !ok {
		return fmt.Errorf("memory.Delete %s/%s: %w", c.path, id, domain.ErrNotFound)
	}
	delete(c.store.data[c.path], id)
	return nil
}

func (c *collection) Count(_ context.Context, filters ...docstore.Filter) (int, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	n := 0
	for _, fields := range c.store.data[c.path] {
		if matchesAll(fields, filters) {
			n++
		}
	}
	return n, nil
}

func matchesAll(fields map[string]any, filters []docstore.Filter) bool {
	for _, f := range filters {
		cmp := compareValues(fields[f.Field], f.Value)
		switch f.Op {
		case docstore.OpEqual:
			if cmp != 0 {
				return false
			}
		case docstore.OpGreaterOrEqual:
			if cmp < 0 {
				return false
			}
		case docstore.OpLessOrEqual:
			if cmp > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compareValues orders two field values. Strings compare lexicographically
// (which is what the ISO date range filters rely on); everything else is
// compared as float64, the type JSON round-tripping produces for numbers.
func compareValues(a, b any) int {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs)
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	// Incomparable values sort by their string forms so ordering stays total.
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
