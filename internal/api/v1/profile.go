package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cadernoapp/caderno/internal/domain"
)

type GetProfileOutput struct {
	Body *domain.CompanyProfile
}

// UpdateProfileInput uses pointer fields so absent keys are left untouched by
// the merge; in particular a profile update without logo fields keeps the
// stored logo.
type UpdateProfileInput struct {
	Body struct {
		DisplayName *string `json:"nome,omitempty" maxLength:"255" doc:"Company display name"`
		Phone       *string `json:"telefone,omitempty" maxLength:"50" doc:"Phone number"`
		Email       *string `json:"email,omitempty" maxLength:"255" doc:"Email address"`
		TaxID       *string `json:"cnpj,omitempty" maxLength:"20" doc:"Tax ID"`
		Address     *string `json:"endereco,omitempty" maxLength:"500" doc:"Address"`
		LogoData    *string `json:"logo,omitempty" doc:"Logo image, base64"`
		LogoMime    *string `json:"logo_mime,omitempty" maxLength:"100" doc:"Logo MIME type"`
	}
}

type UpdateProfileOutput struct {
	Body *domain.CompanyProfile
}

func RegisterProfileRoutes(api huma.API, deps *Deps) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get the company profile",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, _ *struct{}) (*GetProfileOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		profile, err := svc.Profile(ctx)
		if err != nil {
			return nil, mapError(err, "failed to load company profile")
		}

		return &GetProfileOutput{Body: profile}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/profile",
		Summary:     "Update the company profile",
		Description: "Merge semantics: only the submitted fields change, everything else is preserved.",
		Tags:        []string{"Profile"},
	}, func(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
		svc, err := deps.books(ctx)
		if err != nil {
			return nil, mapError(err, "failed to resolve account")
		}

		updates := map[string]any{}
		set := func(key string, v *string) {
			if v != nil {
				updates[key] = *v
			}
		}
		set("nome", input.Body.DisplayName)
		set("telefone", input.Body.Phone)
		set("email", input.Body.Email)
		set("cnpj", input.Body.TaxID)
		set("endereco", input.Body.Address)
		set("logo", input.Body.LogoData)
		set("logo_mime", input.Body.LogoMime)

		if err := svc.SaveProfile(ctx, updates); err != nil {
			return nil, mapError(err, "failed to save company profile")
		}

		profile, err := svc.Profile(ctx)
		if err != nil {
			return nil, mapError(err, "failed to load company profile")
		}

		return &UpdateProfileOutput{Body: profile}, nil
	})
}
