package books_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_ZeroWhenAbsent(t *testing.T) {
	t.Parallel()

	p, err := newService(t).Profile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, p.DisplayName)
	assert.Empty(t, p.LogoData)
}

func TestSaveProfile_MergePreservesLogo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newService(t)

	require.NoError(t, s.SaveProfile(ctx, map[string]any{
		"nome":      "Limpezas Ana",
		"logo":      "aGVsbG8=",
		"logo_mime": "image/png",
	}))

	// An unrelated edit must not drop the logo.
	require.NoError(t, s.SaveProfile(ctx, map[string]any{
		"telefone": "11 99999-0000",
		"cnpj":     "12.345.678/0001-90",
	}))

	p, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Limpezas Ana", p.DisplayName)
	assert.Equal(t, "aGVsbG8=", p.LogoData)
	assert.Equal(t, "image/png", p.LogoMime)
	assert.Equal(t, "11 99999-0000", p.Phone)
	assert.Equal(t, "12.345.678/0001-90", p.TaxID)
}

func TestSaveProfile_DropsUnknownKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newService(t)

	require.NoError(t, s.SaveProfile(ctx, map[string]any{
		"nome":     "Limpezas Ana",
		"is_admin": true,
	}))

	p, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Limpezas Ana", p.DisplayName)
}
