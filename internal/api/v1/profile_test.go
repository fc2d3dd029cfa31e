package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	t.Parallel()
	api, _ := newTestAPI(t, nil)
	ctx := userCtx("user-1")

	t.Run("zero_profile_when_never_saved", func(t *testing.T) {
		resp := api.GetCtx(ctx, "/profile")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "", decodeBody(t, resp)["nome"])
	})

	resp := api.PutCtx(ctx, "/profile", map[string]any{
		"nome":      "Limpezas Maria ME",
		"cnpj":      "12.345.678/0001-00",
		"logo":      "aGVsbG8=",
		"logo_mime": "image/png",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	t.Run("update_without_logo_preserves_it", func(t *testing.T) {
		resp := api.PutCtx(ctx, "/profile", map[string]any{
			"nome":     "Limpezas Maria LTDA",
			"telefone": "11 98888-7777",
		})
		require.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody(t, resp)
		assert.Equal(t, "Limpezas Maria LTDA", body["nome"])
		assert.Equal(t, "11 98888-7777", body["telefone"])
		assert.Equal(t, "aGVsbG8=", body["logo"])
		assert.Equal(t, "image/png", body["logo_mime"])
		assert.Equal(t, "12.345.678/0001-00", body["cnpj"])
	})

	t.Run("profiles_are_per_account", func(t *testing.T) {
		other := userCtx("user-2")

		resp := api.GetCtx(other, "/profile")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "", decodeBody(t, resp)["nome"])
	})
}
