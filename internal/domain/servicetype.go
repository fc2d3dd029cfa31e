package domain

import (
	"errors"
	"strings"
)

// CategoryOther is the reserved category sentinel. When a caller submits it,
// the stored category is taken from a free-text field instead; the sentinel
// itself is never persisted. Both the Portuguese and English spellings are
// accepted because older clients submit either.
const (
	CategoryOther   = "Outro"
	CategoryOtherEN = "Other"
)

// ServiceType is a priced catalog entry. StandardPrice is the list price;
// individual transactions may record a different amount actually paid.
type ServiceType struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"nome"`
	Category      string  `json:"categoria,omitempty"`
	StandardPrice float64 `json:"preco_padrao"`
}

// NewServiceType validates fields and resolves the "Other" category sentinel
// against the caller-supplied custom category text.
func NewServiceType(name, category, customCategory string, standardPrice float64) (*ServiceType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("service type: name is required")
	}
	if standardPrice < 0 {
		return nil, errors.New("service type: standard price must not be negative")
	}
	return &ServiceType{
		Name:          name,
		Category:      ResolveCategory(category, customCategory),
		StandardPrice: standardPrice,
	}, nil
}

// ResolveCategory maps the "Other" sentinel to the trimmed custom text.
func ResolveCategory(category, custom string) string {
	c := strings.TrimSpace(category)
	if c == CategoryOther || c == CategoryOtherEN {
		return strings.TrimSpace(custom)
	}
	return c
}
