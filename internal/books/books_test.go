package books_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cadernoapp/caderno/internal/books"
	"github.com/cadernoapp/caderno/internal/docstore/memory"
	"github.com/cadernoapp/caderno/internal/domain"
	"github.com/cadernoapp/caderno/internal/tenant"
)

// fixedNow pins the clock for default date ranges and quote numbers.
var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newService(t *testing.T, opts ...books.Option) *books.Service {
	t.Helper()

	scope, err := tenant.Resolve(memory.New(), tenant.Identity{Subject: "tenant-1"})
	require.NoError(t, err)

	opts = append([]books.Option{books.WithClock(func() time.Time { return fixedNow })}, opts...)
	return books.New(scope, opts...)
}

func mustCreateClient(t *testing.T, s *books.Service, name string) string {
	t.Helper()

	c, err := domain.NewClient(name, "", "", "", "")
	require.NoError(t, err)
	id, err := s.CreateClient(context.Background(), c)
	require.NoError(t, err)
	return id
}

func mustCreateServiceType(t *testing.T, s *books.Service, name string, price float64) string {
	t.Helper()

	st, err := domain.NewServiceType(name, "", "", price)
	require.NoError(t, err)
	id, err := s.CreateServiceType(context.Background(), st)
	require.NoError(t, err)
	return id
}
