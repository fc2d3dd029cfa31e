package v1_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceTypeCRUD(t *testing.T) {
	t.Parallel()
	api, _ := newTestAPI(t, nil)
	ctx := userCtx("user-1")

	resp := api.PostCtx(ctx, "/service-types", map[string]any{
		"nome":         "Faxina completa",
		"categoria":    "Limpeza",
		"preco_padrao": 150.0,
	})
	require.Equal(t, http.StatusOK, resp.Code)
	created := decodeBody(t, resp)
	id := created["id"].(string)
	assert.Equal(t, "Limpeza", created["categoria"])

	t.Run("other_category_resolves_to_custom_text", func(t *testing.T) {
		resp := api.PostCtx(ctx, "/service-types", map[string]any{
			"nome":             "Consultoria",
			"categoria":        "Outro",
			"categoria_custom": "Assessoria",
			"preco_padrao":     300.0,
		})
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "Assessoria", decodeBody(t, resp)["categoria"])
	})

	t.Run("negative_price_rejected", func(t *testing.T) {
		resp := api.PostCtx(ctx, "/service-types", map[string]any{
			"nome":         "Gratuito demais",
			"preco_padrao": -10.0,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("list_ordered_by_category_then_name", func(t *testing.T) {
		resp := api.GetCtx(ctx, "/service-types")
		require.Equal(t, http.StatusOK, resp.Code)

		var list []map[string]any
		decodeInto(t, resp, &list)
		require.Len(t, list, 2)
		assert.Equal(t, "Assessoria", list[0]["categoria"])
		assert.Equal(t, "Limpeza", list[1]["categoria"])
	})

	t.Run("price_endpoint", func(t *testing.T) {
		resp := api.GetCtx(ctx, "/service-types/"+id+"/price")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, 150.0, decodeBody(t, resp)["preco"])

		resp = api.GetCtx(ctx, "/service-types/nope/price")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("update_changes_price", func(t *testing.T) {
		resp := api.PutCtx(ctx, "/service-types/"+id, map[string]any{
			"nome":         "Faxina completa",
			"categoria":    "Limpeza",
			"preco_padrao": 175.0,
		})
		require.Equal(t, http.StatusOK, resp.Code)

		resp = api.GetCtx(ctx, "/service-types/"+id+"/price")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, 175.0, decodeBody(t, resp)["preco"])
	})

	t.Run("delete", func(t *testing.T) {
		victim := createServiceType(t, api, ctx, "Temporario", "Teste", 10)

		resp := api.DeleteCtx(ctx, "/service-types/"+victim)
		assert.Equal(t, http.StatusNoContent, resp.Code)

		resp = api.GetCtx(ctx, "/service-types/"+victim)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestDeleteServiceTypeWithHistoryConflicts(t *testing.T) {
	t.Parallel()
	api, _ := newTestAPI(t, nil)
	ctx := userCtx("user-1")

	clientID := createClient(t, api, ctx, "Maria")
	serviceID := createServiceType(t, api, ctx, "Faxina", "Limpeza", 100)

	resp := api.PostCtx(ctx, "/records", map[string]any{
		"cliente_id": clientID,
		"servico_id": serviceID,
		"data":       "2024-03-10",
		"valor_pago": 100.0,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.DeleteCtx(ctx, "/service-types/"+serviceID)
	assert.Equal(t, http.StatusConflict, resp.Code)
}
