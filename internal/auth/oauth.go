package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthProvider wraps an OAuth2 identity provider: the external boundary that
// turns an authorization code into a verified subject id and email.
type OAuthProvider struct {
	Name        string
	UserInfoURL string

	oauthConfig *oauth2.Config
}

// NewGoogleProvider returns the Google identity provider configuration.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *OAuthProvider {
	return &OAuthProvider{
		Name:        "google",
		UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
			RedirectURL:  redirectURL,
		},
	}
}

// AuthorizationURL returns the OAuth2 authorization URL with the given state parameter.
func (p *OAuthProvider) AuthorizationURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

// ExchangeCode exchanges an authorization code for tokens and fetches user
// info. Returns the provider-side subject id, email and display name.
func (p *OAuthProvider) ExchangeCode(ctx context.Context, code string) (subject, email, name string, err error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: %w", err)
	}

	client := p.oauthConfig.Client(ctx, token)

	resp, err := client.Get(p.UserInfoURL)
	if err != nil {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: fetching user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: user info returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: reading user info: %w", err)
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: decoding user info: %w", err)
	}
	if info.ID == "" {
		return "", "", "", fmt.Errorf("auth.ExchangeCode: provider returned no subject id")
	}

	return info.ID, info.Email, info.Name, nil
}
