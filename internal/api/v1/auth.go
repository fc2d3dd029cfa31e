package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cadernoapp/caderno/internal/auth"
	"github.com/cadernoapp/caderno/internal/domain"
)

type RegisterInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"255" format:"email" doc:"Account email"`
		Password string `json:"password" minLength:"8" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
		Name     string `json:"name,omitempty" maxLength:"255" doc:"Display name"`
	}
}

type RegisterOutput struct {
	Body struct {
		User         *domain.User `json:"user"`
		AccessToken  string       `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string       `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" minLength:"3" maxLength:"255" doc:"Account email"`
		Password string `json:"password" minLength:"1" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token"` //nolint:gosec // G117: token refresh DTO
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"` //nolint:gosec // G117: auth response DTO
	}
}

type GoogleStartOutput struct {
	Status   int
	Location string `header:"Location"`
}

type GoogleCallbackInput struct {
	State string `query:"state" required:"true" doc:"OAuth state issued by the start endpoint"`
	Code  string `query:"code" required:"true" doc:"Authorization code from Google"`
}

type GoogleCallbackOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`  //nolint:gosec // G117: auth response DTO
		RefreshToken string `json:"refresh_token"` //nolint:gosec // G117: auth response DTO
	}
}

func RegisterAuthRoutes(api huma.API, deps *Deps) {
	huma.Register(api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        "/auth/register",
		Summary:     "Register a new account",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
		user, err := deps.Auth.Register(ctx, input.Body.Email, input.Body.Password, input.Body.Name)
		if err != nil {
			if errors.Is(err, auth.ErrUserAlreadyExists) {
				return nil, huma.Error409Conflict("an account with this email already exists")
			}
			return nil, huma.Error500InternalServerError("failed to register account", err)
		}

		accessToken, refreshToken, err := deps.Auth.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, huma.Error500InternalServerError("registered but failed to issue tokens", err)
		}

		user.PasswordHash = ""

		out := &RegisterOutput{}
		out.Body.User = user
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Login with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		accessToken, refreshToken, err := deps.Auth.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				return nil, huma.Error401Unauthorized("invalid email or password")
			}
			return nil, huma.Error500InternalServerError("login failed", err)
		}

		out := &LoginOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "refresh-token",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Refresh access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		accessToken, err := deps.Auth.Refresh(ctx, input.Body.RefreshToken)
		if err != nil {
			return nil, huma.Error401Unauthorized("invalid or expired refresh token")
		}

		out := &RefreshOutput{}
		out.Body.AccessToken = accessToken
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "google-login",
		Method:      http.MethodGet,
		Path:        "/auth/google",
		Summary:     "Start Google sign-in",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, _ *struct{}) (*GoogleStartOutput, error) {
		if deps.OAuth == nil || deps.States == nil {
			return nil, huma.Error501NotImplemented("google sign-in is not configured")
		}

		state, err := deps.States.Issue(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to start sign-in", err)
		}

		return &GoogleStartOutput{
			Status:   http.StatusFound,
			Location: deps.OAuth.AuthorizationURL(state),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "google-callback",
		Method:      http.MethodGet,
		Path:        "/auth/google/callback",
		Summary:     "Complete Google sign-in",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *GoogleCallbackInput) (*GoogleCallbackOutput, error) {
		if deps.OAuth == nil || deps.States == nil {
			return nil, huma.Error501NotImplemented("google sign-in is not configured")
		}

		if err := deps.States.Consume(ctx, input.State); err != nil {
			if errors.Is(err, auth.ErrUnknownState) {
				return nil, huma.Error401Unauthorized("unknown or expired sign-in state")
			}
			return nil, huma.Error500InternalServerError("failed to verify sign-in state", err)
		}

		subject, email, name, err := deps.OAuth.ExchangeCode(ctx, input.Code)
		if err != nil {
			return nil, huma.Error401Unauthorized("google sign-in failed")
		}

		accessToken, refreshToken, err := deps.Auth.LoginWithProvider(ctx, "google", subject, email, name)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to issue tokens", err)
		}

		out := &GoogleCallbackOutput{}
		out.Body.AccessToken = accessToken
		out.Body.RefreshToken = refreshToken
		return out, nil
	})
}
