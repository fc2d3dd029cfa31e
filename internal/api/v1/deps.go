package v1

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cadernoapp/caderno/internal/auth"
	"github.com/cadernoapp/caderno/internal/books"
	"github.com/cadernoapp/caderno/internal/docstore"
	"github.com/cadernoapp/caderno/internal/domain"
	"github.com/cadernoapp/caderno/internal/render"
	"github.com/cadernoapp/caderno/internal/server/middleware"
	"github.com/cadernoapp/caderno/internal/tenant"
)

// Deps bundles the services the v1 handlers are wired against.
type Deps struct {
	Store docstore.Store
	Auth  *auth.Service

	// States and OAuth are nil when Google login is not configured; the
	// Google routes then answer 501.
	States *auth.StateStore
	OAuth  *auth.OAuthProvider

	Renderer render.Renderer

	// BooksOptions carry the configured delete policy and reference
	// resolution into every per-request bookkeeping service.
	BooksOptions []books.Option
}

// books builds a bookkeeping service scoped to the authenticated account.
func (d *Deps) books(ctx context.Context) (*books.Service, error) {
	userID, _ := middleware.UserIDFromContext(ctx)
	email, _ := middleware.EmailFromContext(ctx)

	scope, err := tenant.Resolve(d.Store, tenant.Identity{Subject: userID, Email: email})
	if err != nil {
		return nil, err
	}

	return books.New(scope, d.BooksOptions...), nil
}

// mapError translates service errors into huma status errors. detail is the
// client-facing message for the 4xx cases.
func mapError(err error, detail string) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return huma.Error401Unauthorized("missing or invalid credentials")
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(detail)
	case errors.Is(err, domain.ErrInvalidArgument):
		return huma.Error422UnprocessableEntity(detail, err)
	case errors.Is(err, domain.ErrConflict):
		return huma.Error409Conflict(detail)
	case errors.Is(err, render.ErrRender):
		return huma.Error502BadGateway("document generation failed")
	default:
		return huma.Error500InternalServerError(detail, err)
	}
}
