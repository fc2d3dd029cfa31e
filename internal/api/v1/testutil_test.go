package v1_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	v1 "github.com/cadernoapp/caderno/internal/api/v1"
	"github.com/cadernoapp/caderno/internal/auth"
	"github.com/cadernoapp/caderno/internal/books"
	"github.com/cadernoapp/caderno/internal/docstore/memory"
	"github.com/cadernoapp/caderno/internal/render"
	"github.com/cadernoapp/caderno/internal/server/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fixedNow keeps report defaults and quote numbers deterministic.
var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// stubRenderer returns canned bytes, or a render failure when err is set.
type stubRenderer struct {
	pdf []byte
	err error
}

func (s *stubRenderer) Render(_ context.Context, _ string, _ render.Options) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pdf, nil
}

// newTestAPI wires the full v1 surface over an in-memory store.
func newTestAPI(t *testing.T, renderer render.Renderer) (humatest.TestAPI, *v1.Deps) {
	t.Helper()

	if renderer == nil {
		renderer = &stubRenderer{pdf: []byte("%PDF-1.4 stub")}
	}

	store := memory.New()
	t.Cleanup(store.Close)

	deps := &v1.Deps{
		Store:    store,
		Auth:     auth.NewService(store.Collection("users"), testSecret, 15*time.Minute, 7*24*time.Hour),
		Renderer: renderer,
		BooksOptions: []books.Option{
			books.WithClock(func() time.Time { return fixedNow }),
		},
	}

	_, api := humatest.New(t)
	v1.RegisterAuthRoutes(api, deps)
	v1.RegisterClientRoutes(api, deps)
	v1.RegisterServiceTypeRoutes(api, deps)
	v1.RegisterRecordRoutes(api, deps)
	v1.RegisterReportRoutes(api, deps)
	v1.RegisterQuoteRoutes(api, deps)
	v1.RegisterProfileRoutes(api, deps)

	return api, deps
}

// decodeBody parses a JSON response body into a generic map.
func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// decodeInto parses a JSON response body into out.
func decodeInto(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// userCtx simulates what the auth middleware puts in the request context.
func userCtx(userID string) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, middleware.ContextKeyEmail, userID+"@example.com")
	return ctx
}

// createClient seeds a client through the API and returns its id.
func createClient(t *testing.T, api humatest.TestAPI, ctx context.Context, name string) string {
	t.Helper()

	resp := api.PostCtx(ctx, "/clients", map[string]any{"nome": name})
	require.Equal(t, 200, resp.Code)

	return decodeBody(t, resp)["id"].(string)
}

// createServiceType seeds a priced service type and returns its id.
func createServiceType(t *testing.T, api humatest.TestAPI, ctx context.Context, name, category string, price float64) string {
	t.Helper()

	resp := api.PostCtx(ctx, "/service-types", map[string]any{
		"nome":         name,
		"categoria":    category,
		"preco_padrao": price,
	})
	require.Equal(t, 200, resp.Code)

	return decodeBody(t, resp)["id"].(string)
}
