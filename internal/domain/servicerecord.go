package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used on every ServiceRecord. Dates
// are stored as ISO-8601 strings and range-filtered with plain string
// comparison, which is correct only because ISO dates sort lexicographically.
const DateLayout = "2006-01-02"

// ServiceRecord is one completed, paid service. It carries denormalized
// snapshots of the client and service-type names taken at write time; the
// snapshots are never updated when the referenced catalog entries change or
// are deleted. The JSON tags are the persisted field names of the original
// document schema.
type ServiceRecord struct {
	ID              string  `json:"id,omitempty"`
	ClientID        string  `json:"cliente_id"`
	ClientName      string  `json:"cliente_nome"`
	ServiceTypeID   string  `json:"servico_id"`
	ServiceName     string  `json:"servico_nome"`
	ServiceCategory string  `json:"servico_categoria,omitempty"`
	Date            string  `json:"data"`
	AmountPaid      float64 `json:"valor_pago"`
}

// ParseDate validates an ISO-8601 calendar date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, ErrInvalidArgument)
	}
	return t, nil
}
