package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()
		api, _ := newTestAPI(t, nil)

		resp := api.Post("/auth/register", map[string]any{
			"email":    "ana@example.com",
			"password": "hunter2hunter2",
			"name":     "Ana",
		})
		require.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["access_token"])
		assert.NotEmpty(t, body["refresh_token"])

		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "ana@example.com", user["email"])
		assert.Empty(t, user["password_hash"])
	})

	t.Run("duplicate_email_conflicts", func(t *testing.T) {
		t.Parallel()
		api, _ := newTestAPI(t, nil)

		resp := api.Post("/auth/register", map[string]any{
			"email":    "dup@example.com",
			"password": "hunter2hunter2",
		})
		require.Equal(t, http.StatusOK, resp.Code)

		resp = api.Post("/auth/register", map[string]any{
			"email":    "dup@example.com",
			"password": "hunter2hunter2",
		})
		assert.Equal(t, http.StatusConflict, resp.Code)
	})

	t.Run("short_password_rejected", func(t *testing.T) {
		t.Parallel()
		api, _ := newTestAPI(t, nil)

		resp := api.Post("/auth/register", map[string]any{
			"email":    "ana@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestLoginAndRefresh(t *testing.T) {
	t.Parallel()
	api, _ := newTestAPI(t, nil)

	resp := api.Post("/auth/register", map[string]any{
		"email":    "ana@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Post("/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	refreshToken := body["refresh_token"].(string)
	accessToken := body["access_token"].(string)

	resp = api.Post("/auth/login", map[string]any{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = api.Post("/auth/refresh", map[string]any{
		"refresh_token": refreshToken,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, decodeBody(t, resp)["access_token"])

	// An access token is not a refresh token.
	resp = api.Post("/auth/refresh", map[string]any{
		"refresh_token": accessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGoogleLoginUnconfigured(t *testing.T) {
	t.Parallel()
	api, _ := newTestAPI(t, nil)

	resp := api.Get("/auth/google")
	assert.Equal(t, http.StatusNotImplemented, resp.Code)

	resp = api.Get("/auth/google/callback?state=s&code=c")
	assert.Equal(t, http.StatusNotImplemented, resp.Code)
}
