// Package postgres backs the docstore boundary with a single JSONB documents
// table. Collection paths map to the path column; fields live in a jsonb
// column so the document layout matches what the application reads and writes
// elsewhere.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cadernoapp/caderno/internal/docstore"
	"github.com/cadernoapp/caderno/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	path TEXT NOT NULL,
	id   TEXT NOT NULL,
	data JSONB NOT NULL,
	PRIMARY KEY (path, id)
)`

type Store struct {
	pool *pgxpool.Pool
}

// New connects, pings and bootstraps the documents table. An unreachable
// database surfaces as domain.ErrStoreUnavailable, which is fatal at startup.
func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", domain.ErrStoreUnavailable)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", domain.ErrStoreUnavailable)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: bootstrap: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Collection(path string) docstore.Collection {
	return &collection{pool: s.pool, path: path}
}

func (s *Store) Close() {
	s.pool.Close()
}

type collection struct {
	pool *pgxpool.Pool
	path string
}

func (c *collection) List(ctx context.Context, q docstore.Query) ([]docstore.Doc, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, data FROM documents WHERE path = $1`)

	args := []any{c.path}
	for _, f := range q.Filters {
		field, err := jsonField(f.Field)
		if err != nil {
			return nil, fmt.Errorf("postgres.List: %w", err)
		}
		op, err := sqlOp(f.Op)
		if err != nil {
			return nil, fmt.Errorf("postgres.List: %w", err)
		}
		args = append(args, fmt.Sprint(f.Value))
		// Text comparison throughout: correct for the id and ISO-date
		// filters this store serves.
		sb.WriteString(fmt.Sprintf(" AND data->>%s %s $%d", field, op, len(args)))
	}

	sb.WriteString(" ORDER BY ")
	for i, o := range q.Orders {
		field, err := jsonField(o.Field)
		if err != nil {
			return nil, fmt.Errorf("postgres.List: %w", err)
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("data->>" + field)
		if o.Desc {
			sb.WriteString(" DESC")
		}
	}
	if len(q.Orders) > 0 {
		sb.WriteString(", ")
	}
	sb.WriteString("id")

	rows, err := c.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres.List %s: %w", c.path, err)
	}
	defer rows.Close()

	var docs []docstore.Doc
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("postgres.List %s: scan: %w", c.path, err)
		}
		fields := make(map[string]any)
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("postgres.List %s: decode %s: %w", c.path, id, err)
		}
		docs = append(docs, docstore.Doc{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres.List %s: rows: %w", c.path, err)
	}

	return docs, nil
}

func (c *collection) Get(ctx context.Context, id string) (docstore.Doc, error) {
	var raw []byte

	err := c.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE path = $1 AND id = $2`,
		c.path, id,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return docstore.Doc{}, fmt.Errorf("postgres.Get %s/%s: %w", c.path, id, domain.ErrNotFound)
	}
	if err != nil {
		return docstore.Doc{}, fmt.Errorf("postgres.Get %s/%s: %w", c.path, id, err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return docstore.Doc{}, fmt.Errorf("postgres.Get %s/%s: decode: %w", c.path, id, err)
	}

	return docstore.Doc{ID: id, Fields: fields}, nil
}

func (c *collection) Create(ctx context.Context, fields map[string]any) (string, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("postgres.Create %s: encode: %w", c.path, err)
	}

	id := uuid.NewString()
	_, err = c.pool.Exec(ctx,
		`INSERT INTO documents (path, id, data) VALUES ($1, $2, $3)`,
		c.path, id, raw,
	)
	if err != nil {
		return "", fmt.Errorf("postgres.Create %s: %w", c.path, err)
	}

	return id, nil
}

func (c *collection) Replace(ctx context.Context, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("postgres.Replace %s/%s: encode: %w", c.path, id, err)
	}

	tag, err := c.pool.Exec(ctx,
		`UPDATE documents SET data = $3 WHERE path = $1 AND id = $2`,
		c.path, id, raw,
	)
	if err != nil {
		return fmt.Errorf("postgres.Replace %s/%s: %w", c.path, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres.Replace %s/%s: %w", c.path, id, domain.ErrNotFound)
	}

	return nil
}

func (c *collection) Merge(ctx context.Context, id string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("postgres.Merge %s/%s: encode: %w", c.path, id, err)
	}

	_, err = c.pool.Exec(ctx,
		`INSERT INTO documents (path, id, data) VALUES ($1, $2, $3)
		 ON CONFLICT (path, id) DO UPDATE SET data = documents.data || EXCLUDED.data`,
		c.path, id, raw,
	)
	if err != nil {
		return fmt.Errorf("postgres.Merge %s/%s: %w", c.path, id, err)
	}

	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	tag, err := c.pool.Exec(ctx,
		`DELETE FROM documents WHERE path = $1 AND id = $2`,
		c.path, id,
	)
	if err != nil {
		return fmt.Errorf("postgres.Delete %s/%s: %w", c.path, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("postgres.Delete %s/%s: %w", c.path, id, domain.ErrNotFound)
	}

	return nil
}

func (c *collection) Count(ctx context.Context, filters ...docstore.Filter) (int, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT count(*) FROM documents WHERE path = $1`)

	args := []any{c.path}
	for _, f := range filters {
		field, err := jsonField(f.Field)
		if err != nil {
			return 0, fmt.Errorf("postgres.Count: %w", err)
		}
		op, err := sqlOp(f.Op)
		if err != nil {
			return 0, fmt.Errorf("postgres.Count: %w", err)
		}
		args = append(args, fmt.Sprint(f.Value))
		sb.WriteString(fmt.Sprintf(" AND data->>%s %s $%d", field, op, len(args)))
	}

	var n int
	if err := c.pool.QueryRow(ctx, sb.String(), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres.Count %s: %w", c.path, err)
	}

	return n, nil
}

// jsonField quotes a document field name for use inside data->>. Field names
// come from repository code, not user input; the check keeps it that way.
func jsonField(name string) (string, error) {
	for _, r := range name {
		ok := r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !ok {
			return "", fmt.Errorf("invalid field name %q", name)
		}
	}
	if name == "" {
		return "", errors.New("empty field name")
	}
	return "'" + name + "'", nil
}

func sqlOp(op docstore.Op) (string, error) {
	switch op {
	case docstore.OpEqual:
		return "=", nil
	case docstore.OpGreaterOrEqual:
		return ">=", nil
	case docstore.OpLessOrEqual:
		return "<=", nil
	default:
		return "", fmt.Errorf("unsupported filter op %q", op)
	}
}
