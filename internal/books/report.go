package books

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cadernoapp/caderno/internal/docstore"
	"github.com/cadernoapp/caderno/internal/domain"
)

// AllClients is the client-filter sentinel meaning "no client restriction".
const AllClients = "todos"

// Report is an aggregated, range-filtered view over the tenant's service
// records, ready for the report screen or PDF rendering.
type Report struct {
	From        string                 `json:"data_inicio"`
	To          string                 `json:"data_fim"`
	ClientID    string                 `json:"cliente_id,omitempty"`
	ClientLabel string                 `json:"cliente_filtro"`
	Records     []domain.ServiceRecord `json:"servicos"`
	Total       float64                `json:"total"`
}

// Aggregate selects service records with from <= date <= to (inclusive both
// ends, lexicographic comparison over ISO dates), optionally restricted to
// one client, ordered most recent first, and sums the amounts paid. An empty
// match yields an empty report with a zero total, never an error.
//
// from defaults to the first day of the current month and to defaults to
// today. Malformed dates are a caller error.
func (s *Service) Aggregate(ctx context.Context, from, to, clientID string) (*Report, error) {
	today := s.now()
	if from == "" {
		from = firstOfMonth(today)
	}
	if to == "" {
		to = today.Format(domain.DateLayout)
	}
	if _, err := domain.ParseDate(from); err != nil {
		return nil, fmt.Errorf("books.Aggregate: %w", err)
	}
	if _, err := domain.ParseDate(to); err != nil {
		return nil, fmt.Errorf("books.Aggregate: %w", err)
	}

	q := docstore.Query{
		Filters: []docstore.Filter{
			{Field: "data", Op: docstore.OpGreaterOrEqual, Value: from},
			{Field: "data", Op: docstore.OpLessOrEqual, Value: to},
		},
		Orders: []docstore.Order{{Field: "data", Desc: true}},
	}

	report := &Report{
		From:        from,
		To:          to,
		ClientLabel: "Todos",
		Records:     []domain.ServiceRecord{},
	}

	if clientID != "" && clientID != AllClients {
		q.Filters = append(q.Filters, docstore.Filter{
			Field: "cliente_id", Op: docstore.OpEqual, Value: clientID,
		})
		report.ClientID = clientID
		c, err := s.GetClient(ctx, clientID)
		switch {
		case err == nil:
			report.ClientLabel = c.Name
		case errors.Is(err, domain.ErrNotFound):
			// Filter by a deleted client still works against the
			// denormalized records; the label stays generic.
		default:
			return nil, fmt.Errorf("books.Aggregate: %w", err)
		}
	}

	docs, err := s.scope.ServiceRecords().List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("books.Aggregate: %w", err)
	}

	for _, doc := range docs {
		var rec domain.ServiceRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, fmt.Errorf("books.Aggregate: %w", err)
		}
		rec.ID = doc.ID
		report.Records = append(report.Records, rec)
		report.Total += rec.AmountPaid
	}

	return report, nil
}

// ClientHistory returns a client together with every service ever recorded
// for it, most recent first, and the total spent. Fails with
// domain.ErrNotFound when the client does not exist.
func (s *Service) ClientHistory(ctx context.Context, clientID string) (*domain.Client, []domain.ServiceRecord, float64, error) {
	c, err := s.GetClient(ctx, clientID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("books.ClientHistory: %w", err)
	}

	docs, err := s.scope.ServiceRecords().List(ctx, docstore.Query{
		Filters: []docstore.Filter{{Field: "cliente_id", Op: docstore.OpEqual, Value: clientID}},
		Orders:  []docstore.Order{{Field: "data", Desc: true}},
	})
	if err != nil {
		return nil, nil, 0, fmt.Errorf("books.ClientHistory: %w", err)
	}

	records := make([]domain.ServiceRecord, 0, len(docs))
	var total float64
	for _, doc := range docs {
		var rec domain.ServiceRecord
		if err := doc.DataTo(&rec); err != nil {
			return nil, nil, 0, fmt.Errorf("books.ClientHistory: %w", err)
		}
		rec.ID = doc.ID
		records = append(records, rec)
		total += rec.AmountPaid
	}

	return c, records, total, nil
}

func firstOfMonth(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Format(domain.DateLayout)
}
