package v1_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadernoapp/caderno/internal/render"
)

func seedRecords(t *testing.T, api humatest.TestAPI, ctx context.Context) (clientID string) {
	t.Helper()

	clientID = createClient(t, api, ctx, "Maria")
	otherID := createClient(t, api, ctx, "Ana")
	serviceID := createServiceType(t, api, ctx, "Faxina", "Limpeza", 100)

	for _, rec := range []map[string]any{
		{"cliente_id": clientID, "servico_id": serviceID, "data": "2024-03-01", "valor_pago": 80.0},
		{"cliente_id": clientID, "servico_id": serviceID, "data": "2024-03-10", "valor_pago": 100.0},
		{"cliente_id": otherID, "servico_id": serviceID, "data": "2024-02-28", "valor_pago": 60.0},
	} {
		resp := api.PostCtx(ctx, "/records", rec)
		require.Equal(t, http.StatusOK, resp.Code)
	}
	return clientID
}

func TestGetReport(t *testing.T) {
	t.Parallel()
	api, _ := newTestAPI(t, nil)
	ctx := userCtx("user-1")
	clientID := seedRecords(t, api, ctx)

	t.Run("inclusive_range_and_total", func(t *testing.T) {
		resp := api.GetCtx(ctx, "/reports?from=2024-03-01&to=2024-03-10")
		require.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody(t, resp)
		assert.Equal(t, 180.0, body["total"])
		assert.Equal(t, "Todos", body["cliente_filtro"])

		records := body["servicos"].([]any)
		require.Len(t, records, 2)
		assert.Equal(t, "2024-03-10", records[0].(map[string]any)["data"])
	})

	t.Run("client_filter", func(t *testing.T) {
		resp := api.GetCtx(ctx, "/reports?from=2024-02-01&to=2024-03-31&client_id="+clientID)
		require.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody(t, resp)
		assert.Equal(t, 180.0, body["total"])
		assert.Equal(t, "Maria", body["cliente_filtro"])
	})

	t.Run("defaults_to_current_month", func(t *testing.T) {
		// The test clock is 2024-03-15.
		resp := api.GetCtx(ctx, "/reports")
		require.Equal(t, http.StatusOK, resp.Code)

		body := decodeBody(t, resp)
		assert.Equal(t, "2024-03-01", body["data_inicio"])
		assert.Equal(t, "2024-03-15", body["data_fim"])
		assert.Equal(t, 180.0, body["total"])
	})

	t.Run("empty_match_is_zero_not_error", func(t *testing.T) {
		resp := api.GetCtx(ctx, "/reports?from=2020-01-01&to=2020-01-31")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, 0.0, decodeBody(t, resp)["total"])
	})

	t.Run("malformed_date_rejected", func(t *testing.T) {
		resp := api.GetCtx(ctx, "/reports?from=01-03-2024")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestReportPDF(t *testing.T) {
	t.Parallel()

	t.Run("happy_path_sets_headers", func(t *testing.T) {
		t.Parallel()
		api, _ := newTestAPI(t, &stubRenderer{pdf: []byte("%PDF-1.4 fake")})
		ctx := userCtx("user-1")
		seedRecords(t, api, ctx)

		resp := api.GetCtx(ctx, "/reports/pdf?from=2024-03-01&to=2024-03-10")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
		assert.Equal(t,
			"attachment; filename=relatorio_2024-03-01_a_2024-03-10.pdf",
			resp.Header().Get("Content-Disposition"))
		assert.Equal(t, "%PDF-1.4 fake", resp.Body.String())
	})

	t.Run("renderer_failure_is_bad_gateway", func(t *testing.T) {
		t.Parallel()
		api, _ := newTestAPI(t, &stubRenderer{err: render.ErrRender})
		ctx := userCtx("user-1")
		seedRecords(t, api, ctx)

		resp := api.GetCtx(ctx, "/reports/pdf?from=2024-03-01&to=2024-03-10")
		assert.Equal(t, http.StatusBadGateway, resp.Code)
	})
}
