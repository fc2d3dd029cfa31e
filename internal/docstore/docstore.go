// Package docstore defines the generic keyed document-collection boundary the
// rest of the application stores data through. Collections are addressed by
// slash-separated paths; tenant-owned data lives under
// tenants/{tenantId}/{collection} and account records under users.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Op is a filter comparison operator.
type Op string

const (
	OpEqual          Op = "=="
	OpGreaterOrEqual Op = ">="
	OpLessOrEqual    Op = "<="
)

// Filter restricts a List or Count to documents whose field compares true
// against Value. String fields compare lexicographically, which is how the
// ISO-8601 date range filters work.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Order names a field to sort by. Ties are broken by document id, which is
// stable but store-assigned.
type Order struct {
	Field string
	Desc  bool
}

// Query combines filters and ordering for List.
type Query struct {
	Filters []Filter
	Orders  []Order
}

// Doc is a single stored document: an opaque store-assigned id plus its
// fields.
type Doc struct {
	ID     string
	Fields map[string]any
}

// DataTo decodes the document fields into v via a JSON round trip.
func (d Doc) DataTo(v any) error {
	raw, err := json.Marshal(d.Fields)
	if err != nil {
		return fmt.Errorf("docstore: encoding fields: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("docstore: decoding document %s: %w", d.ID, err)
	}
	return nil
}

// Fields encodes v into a field map suitable for Create, Replace or Merge.
// The "id" key, if v carries one, is dropped: ids live outside the document.
func Fields(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("docstore: encoding value: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("docstore: encoding value: %w", err)
	}
	delete(m, "id")
	return m, nil
}

// Collection is a keyed set of documents.
type Collection interface {
	// List returns documents matching the query, ordered as requested.
	List(ctx context.Context, q Query) ([]Doc, error)
	// Get returns one document or domain.ErrNotFound.
	Get(ctx context.Context, id string) (Doc, error)
	// Create inserts a document under a newly assigned id and returns it.
	Create(ctx context.Context, fields map[string]any) (string, error)
	// Replace overwrites all fields of an existing document; fails with
	// domain.ErrNotFound when the id is absent.
	Replace(ctx context.Context, id string, fields map[string]any) error
	// Merge upserts: supplied keys overwrite, existing keys not present in
	// fields are preserved, and an absent document is created.
	Merge(ctx context.Context, id string, fields map[string]any) error
	// Delete removes a document; fails with domain.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
	// Count returns the number of documents matching all filters.
	Count(ctx context.Context, filters ...Filter) (int, error)
}

// Store hands out collections by path.
type Store interface {
	Collection(path string) Collection
	Close()
}
