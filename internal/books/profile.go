package books

import (
	"context"
	"errors"
	"fmt"

	"github.com/cadernoapp/caderno/internal/domain"
)

// profileFields are the document keys SaveProfile will accept. Anything else
// in an update is dropped so arbitrary keys never land in the singleton.
var profileFields = map[string]struct{}{
	"nome":      {},
	"telefone":  {},
	"email":     {},
	"cnpj":      {},
	"endereco":  {},
	"logo":      {},
	"logo_mime": {},
}

// Profile returns the tenant's company profile. A tenant that never saved one
// gets the zero profile, not an error.
func (s *Service) Profile(ctx context.Context) (*domain.CompanyProfile, error) {
	doc, err := s.scope.Configurations().Get(ctx, domain.ProfileDocID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.CompanyProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("books.Profile: %w", err)
	}

	var p domain.CompanyProfile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("books.Profile: %w", err)
	}
	return &p, nil
}

// SaveProfile merge-upserts the profile singleton: only the supplied keys are
// overwritten, so an address edit cannot silently drop the logo.
func (s *Service) SaveProfile(ctx context.Context, updates map[string]any) error {
	filtered := make(map[string]any, len(updates))
	for k, v := range updates {
		if _, ok := profileFields[k]; ok {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	if err := s.scope.Configurations().Merge(ctx, domain.ProfileDocID, filtered); err != nil {
		return fmt.Errorf("books.SaveProfile: %w", err)
	}
	return nil
}
