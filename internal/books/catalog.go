package books

import (
	"context"
	"fmt"

	"github.com/cadernoapp/caderno/internal/docstore"
	"github.com/cadernoapp/caderno/internal/domain"
)

// ListClients returns the tenant's clients ordered by name.
func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	docs, err := s.scope.Clients().List(ctx, docstore.Query{
		Orders: []docstore.Order{{Field: "nome"}},
	})
	if err != nil {
		return nil, fmt.Errorf("books.ListClients: %w", err)
	}

	clients := make([]domain.Client, 0, len(docs))
	for _, doc := range docs {
		var c domain.Client
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("books.ListClients: %w", err)
		}
		c.ID = doc.ID
		clients = append(clients, c)
	}
	return clients, nil
}

func (s *Service) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	doc, err := s.scope.Clients().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("books.GetClient: %w", err)
	}

	var c domain.Client
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("books.GetClient: %w", err)
	}
	c.ID = doc.ID
	return &c, nil
}

func (s *Service) CreateClient(ctx context.Context, c *domain.Client) (string, error) {
	fields, err := docstore.Fields(c)
	if err != nil {
		return "", fmt.Errorf("books.CreateClient: %w", err)
	}

	id, err := s.scope.Clients().Create(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("books.CreateClient: %w", err)
	}
	c.ID = id
	return id, nil
}

// UpdateClient replaces all fields of an existing client.
func (s *Service) UpdateClient(ctx context.Context, id string, c *domain.Client) error {
	fields, err := docstore.Fields(c)
	if err != nil {
		return fmt.Errorf("books.UpdateClient: %w", err)
	}

	if err := s.scope.Clients().Replace(ctx, id, fields); err != nil {
		return fmt.Errorf("books.UpdateClient: %w", err)
	}
	return nil
}

// DeleteClient removes a client. Under DeleteBlockIfReferenced the delete
// fails with domain.ErrConflict while service records still reference the id;
// existing records keep their name snapshots either way.
func (s *Service) DeleteClient(ctx context.Context, id string) error {
	if s.deletePolicy == DeleteBlockIfReferenced {
		n, err := s.scope.ServiceRecords().Count(ctx, docstore.Filter{
			Field: "cliente_id", Op: docstore.OpEqual, Value: id,
		})
		if err != nil {
			return fmt.Errorf("books.DeleteClient: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("books.DeleteClient: %d service records reference client %s: %w", n, id, domain.ErrConflict)
		}
	}

	if err := s.scope.Clients().Delete(ctx, id); err != nil {
		return fmt.Errorf("books.DeleteClient: %w", err)
	}
	return nil
}

// ListServiceTypes returns the catalog ordered by category then name,
// mirroring how the catalog screen groups it.
func (s *Service) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	docs, err := s.scope.ServiceTypes().List(ctx, docstore.Query{
		Orders: []docstore.Order{{Field: "categoria"}, {Field: "nome"}},
	})
	if err != nil {
		return nil, fmt.Errorf("books.ListServiceTypes: %w", err)
	}

	types := make([]domain.ServiceType, 0, len(docs))
	for _, doc := range docs {
		var st domain.ServiceType
		if err := doc.DataTo(&st); err != nil {
			return nil, fmt.Errorf("books.ListServiceTypes: %w", err)
		}
		st.ID = doc.ID
		types = append(types, st)
	}
	return types, nil
}

func (s *Service) GetServiceType(ctx context.Context, id string) (*domain.ServiceType, error) {
	doc, err := s.scope.ServiceTypes().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("books.GetServiceType: %w", err)
	}

	var st domain.ServiceType
	if err := doc.DataTo(&st); err != nil {
		return nil, fmt.Errorf("books.GetServiceType: %w", err)
	}
	st.ID = doc.ID
	return &st, nil
}

func (s *Service) CreateServiceType(ctx context.Context, st *domain.ServiceType) (string, error) {
	fields, err := docstore.Fields(st)
	if err != nil {
		return "", fmt.Errorf("books.CreateServiceType: %w", err)
	}

	id, err := s.scope.ServiceTypes().Create(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("books.CreateServiceType: %w", err)
	}
	st.ID = id
	return id, nil
}

func (s *Service) UpdateServiceType(ctx context.Context, id string, st *domain.ServiceType) error {
	fields, err := docstore.Fields(st)
	if err != nil {
		return fmt.Errorf("books.UpdateServiceType: %w", err)
	}

	if err := s.scope.ServiceTypes().Replace(ctx, id, fields); err != nil {
		return fmt.Errorf("books.UpdateServiceType: %w", err)
	}
	return nil
}

func (s *Service) DeleteServiceType(ctx context.Context, id string) error {
	if s.deletePolicy == DeleteBlockIfReferenced {
		n, err := s.scope.ServiceRecords().Count(ctx, docstore.Filter{
			Field: "servico_id", Op: docstore.OpEqual, Value: id,
		})
		if err != nil {
			return fmt.Errorf("books.DeleteServiceType: %w", err)
		}
		if n > 0 {
			return fmt.Errorf("books.DeleteServiceType: %d service records reference service type %s: %w", n, id, domain.ErrConflict)
		}
	}

	if err := s.scope.ServiceTypes().Delete(ctx, id); err != nil {
		return fmt.Errorf("books.DeleteServiceType: %w", err)
	}
	return nil
}

// ServicePrice returns the current list price for a catalog entry. Backs the
// price-lookup endpoint the record form uses to prefill the amount.
func (s *Service) ServicePrice(ctx context.Context, id string) (float64, error) {
	st, err := s.GetServiceType(ctx, id)
	if err != nil {
		return 0, err
	}
	return st.StandardPrice, nil
}
