package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadernoapp/caderno/internal/render"
)

func TestComposeQuote(t *testing.T) {
	t.Parallel()
	api, _ := newTestAPI(t, nil)
	ctx := userCtx("user-1")

	clientID := createClient(t, api, ctx, "Maria")
	faxinaID := createServiceType(t, api, ctx, "Faxina", "Limpeza", 100)
	jardimID := createServiceType(t, api, ctx, "Jardinagem", "Externa", 50)

	t.Run("totals_and_number", func(t *testing.T) {
		resp := api.PostCtx(ctx, "/quotes", map[string]any{
			"cliente_id": clientID,
			"itens": []map[string]any{
				{"servico_id": faxinaID, "quantidade": 2},
				{"servico_id": jardimID, "quantidade": 1},
			},
		})
		require.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody(t, resp)
		assert.Equal(t, 250.0, body["total"])
		assert.Equal(t, "Maria", body["cliente_nome"])
		// The test clock is 2024-03-15 10:30.
		assert.Equal(t, "ORC-202403151030", body["numero"])
		assert.Equal(t, 30.0, body["validade_dias"])

		lines := body["itens"].([]any)
		require.Len(t, lines, 2)
		first := lines[0].(map[string]any)
		assert.Equal(t, 200.0, first["subtotal"])
	})

	t.Run("zero_quantity_rejected", func(t *testing.T) {
		resp := api.PostCtx(ctx, "/quotes", map[string]any{
			"cliente_id": clientID,
			"itens": []map[string]any{
				{"servico_id": faxinaID, "quantidade": 0},
			},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("empty_items_rejected", func(t *testing.T) {
		resp := api.PostCtx(ctx, "/quotes", map[string]any{
			"cliente_id": clientID,
			"itens":      []map[string]any{},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestQuotePDF(t *testing.T) {
	t.Parallel()

	t.Run("happy_path_sets_headers", func(t *testing.T) {
		t.Parallel()
		api, _ := newTestAPI(t, &stubRenderer{pdf: []byte("%PDF-1.4 fake")})
		ctx := userCtx("user-1")

		clientID := createClient(t, api, ctx, "Maria")
		faxinaID := createServiceType(t, api, ctx, "Faxina", "Limpeza", 100)

		resp := api.PostCtx(ctx, "/quotes/pdf", map[string]any{
			"cliente_id": clientID,
			"itens": []map[string]any{
				{"servico_id": faxinaID, "quantidade": 1},
			},
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
		assert.Equal(t,
			"attachment; filename=ORC-202403151030.pdf",
			resp.Header().Get("Content-Disposition"))
		assert.Equal(t, "%PDF-1.4 fake", resp.Body.String())
	})

	t.Run("renderer_failure_is_bad_gateway", func(t *testing.T) {
		t.Parallel()
		api, _ := newTestAPI(t, &stubRenderer{err: render.ErrRender})
		ctx := userCtx("user-1")

		clientID := createClient(t, api, ctx, "Maria")
		faxinaID := createServiceType(t, api, ctx, "Faxina", "Limpeza", 100)

		resp := api.PostCtx(ctx, "/quotes/pdf", map[string]any{
			"cliente_id": clientID,
			"itens": []map[string]any{
				{"servico_id": faxinaID, "quantidade": 1},
			},
		})
		assert.Equal(t, http.StatusBadGateway, resp.Code)
	})
}
