package books

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cadernoapp/caderno/internal/docstore"
	"github.com/cadernoapp/caderno/internal/domain"
)

// Sentinel snapshot values written when a referenced catalog entry cannot be
// resolved at record time. The strings match the documents already in
// production stores and must not be changed.
const (
	SentinelInvalidClient  = "ID Cliente Inválido"
	SentinelDeletedClient  = "Cliente Deletado"
	SentinelInvalidService = "ID Serviço Inválido"
	SentinelDeletedService = "Serviço Deletado"
)

// Record writes one completed-service transaction. The client and service
// names are snapshotted from the catalog at this moment and never updated
// afterwards; amountPaid is stored exactly as supplied, independent of the
// catalog's list price.
//
// Under AllowDangling a missing reference is replaced by a sentinel name
// rather than failing the operation: history must never be blocked by a
// catalog entry that was deleted in the meantime.
func (s *Service) Record(ctx context.Context, clientID, serviceTypeID, date string, amountPaid float64) (*domain.ServiceRecord, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(serviceTypeID) == "" {
		return nil, fmt.Errorf("books.Record: client and service type ids are required: %w", domain.ErrInvalidArgument)
	}
	if _, err := domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("books.Record: %w", err)
	}
	if amountPaid < 0 {
		return nil, fmt.Errorf("books.Record: amount paid must not be negative: %w", domain.ErrInvalidArgument)
	}

	clientName, err := s.snapshotClientName(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("books.Record: %w", err)
	}

	serviceName, serviceCategory, err := s.snapshotService(ctx, serviceTypeID)
	if err != nil {
		return nil, fmt.Errorf("books.Record: %w", err)
	}

	rec := &domain.ServiceRecord{
		ClientID:        clientID,
		ClientName:      clientName,
		ServiceTypeID:   serviceTypeID,
		ServiceName:     serviceName,
		ServiceCategory: serviceCategory,
		Date:            date,
		AmountPaid:      amountPaid,
	}

	fields, err := docstore.Fields(rec)
	if err != nil {
		return nil, fmt.Errorf("books.Record: %w", err)
	}

	id, err := s.scope.ServiceRecords().Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("books.Record: %w", err)
	}
	rec.ID = id

	return rec, nil
}

func (s *Service) snapshotClientName(ctx context.Context, clientID string) (string, error) {
	c, err := s.GetClient(ctx, clientID)
	switch {
	case err == nil:
		if c.Name == "" {
			return SentinelDeletedClient, nil
		}
		return c.Name, nil
	case errors.Is(err, domain.ErrNotFound) && s.refs == AllowDangling:
		log.Warn().Str("client_id", clientID).Msg("recording service against missing client")
		return SentinelInvalidClient, nil
	default:
		return "", err
	}
}

func (s *Service) snapshotService(ctx context.Context, serviceTypeID string) (name, category string, err error) {
	st, err := s.GetServiceType(ctx, serviceTypeID)
	switch {
	case err == nil:
		if st.Name == "" {
			return SentinelDeletedService, st.Category, nil
		}
		return st.Name, st.Category, nil
	case errors.Is(err, domain.ErrNotFound) && s.refs == AllowDangling:
		log.Warn().Str("service_type_id", serviceTypeID).Msg("recording service against missing service type")
		return SentinelInvalidService, "", nil
	default:
		return "", "", err
	}
}
