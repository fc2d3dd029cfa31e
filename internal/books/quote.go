package books

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/cadernoapp/caderno/internal/domain"
)

// QuoteItem is one requested quote line: a catalog reference plus a quantity.
type QuoteItem struct {
	ServiceTypeID string `json:"servico_id"`
	Quantity      int    `json:"quantidade"`
}

const defaultValidityDays = 30

// ComposeQuote builds a price proposal from live catalog prices. Nothing is
// persisted: unlike a service record, a quote is recomputed from the current
// catalog every time. Quantities must be strictly positive; validation runs
// before any price is read so a bad line never produces a partial total.
func (s *Service) ComposeQuote(ctx context.Context, clientID string, items []QuoteItem, validityDays int, paymentTerms, notes string) (*domain.Quote, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("books.ComposeQuote: at least one line item is required: %w", domain.ErrInvalidArgument)
	}
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("books.ComposeQuote: line %d: quantity must be positive, got %d: %w", i+1, item.Quantity, domain.ErrInvalidArgument)
		}
		if item.ServiceTypeID == "" {
			return nil, fmt.Errorf("books.ComposeQuote: line %d: service type id is required: %w", i+1, domain.ErrInvalidArgument)
		}
	}
	if validityDays <= 0 {
		validityDays = defaultValidityDays
	}

	clientName, err := s.snapshotClientName(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("books.ComposeQuote: %w", err)
	}

	issuedAt := s.now()
	quote := &domain.Quote{
		Number:       domain.NewQuoteNumber(issuedAt),
		IssuedAt:     issuedAt,
		ClientID:     clientID,
		ClientName:   clientName,
		Lines:        make([]domain.QuoteLine, 0, len(items)),
		ValidityDays: validityDays,
		PaymentTerms: paymentTerms,
		Notes:        notes,
	}

	for _, item := range items {
		name, price, err := s.quoteLineSource(ctx, item.ServiceTypeID)
		if err != nil {
			return nil, fmt.Errorf("books.ComposeQuote: %w", err)
		}
		line := domain.QuoteLine{
			ServiceTypeID: item.ServiceTypeID,
			ServiceName:   name,
			Quantity:      item.Quantity,
			UnitPrice:     price,
			Subtotal:      price * float64(item.Quantity),
		}
		quote.Lines = append(quote.Lines, line)
		quote.Total += line.Subtotal
	}

	return quote, nil
}

func (s *Service) quoteLineSource(ctx context.Context, serviceTypeID string) (name string, price float64, err error) {
	st, err := s.GetServiceType(ctx, serviceTypeID)
	switch {
	case err == nil:
		return st.Name, st.StandardPrice, nil
	case errors.Is(err, domain.ErrNotFound) && s.refs == AllowDangling:
		log.Warn().Str("service_type_id", serviceTypeID).Msg("quoting against missing service type")
		return SentinelInvalidService, 0, nil
	default:
		return "", 0, err
	}
}
