package settings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-settings/models"
)

const staticDoc = `
global:
  Site:
    siteName: Pinned
contexts:
  context:male:
    Site:
      siteName: Pinned Jack
`

func TestStaticHandler_Lookup(t *testing.T) {
	defaults, err := NewDefaultTable(Source{Namespace: "app.config.Site", Aliases: []string{"Site"}})
	require.NoError(t, err)

	h, err := LoadStaticHandlerYAML(strings.NewReader(staticDoc), defaults)
	require.NoError(t, err)
	ctx := testContext()

	got, err := h.Get(ctx, "app.config.Site", "siteName", models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, "Pinned", got)

	got, err = h.Get(ctx, "app.config.Site", "siteName", male)
	require.NoError(t, err)
	assert.Equal(t, "Pinned Jack", got)

	has, err := h.Has(ctx, "app.config.Site", "siteName", female)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStaticHandler_IsReadOnly(t *testing.T) {
	h, err := NewStaticHandler(StaticOverrides{}, nil)
	require.NoError(t, err)
	ctx := testContext()

	assert.ErrorIs(t, h.Set(ctx, "Site", "siteName", "x", models.GlobalScope), ErrNotSupported)
	assert.ErrorIs(t, h.Forget(ctx, "Site", "siteName", models.GlobalScope), ErrNotSupported)
	assert.ErrorIs(t, h.Flush(ctx), ErrNotSupported)
}

func TestStaticHandler_InChain(t *testing.T) {
	h, err := LoadStaticHandlerYAML(strings.NewReader(staticDoc), nil)
	require.NoError(t, err)

	array := NewArrayHandler()
	s := New([]Link{
		{Name: "static", Handler: h},
		{Name: "array", Handler: array, Writable: true},
	})
	ctx := testContext()

	require.NoError(t, s.Set(ctx, "Site.siteName", "Stored", models.GlobalScope))

	got, _, err := s.Get(ctx, "Site.siteName", models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, "Pinned", got, "static overrides shadow stored values")

	got, _, err = s.Get(ctx, "Site.siteName", female)
	require.NoError(t, err)
	assert.Equal(t, "Pinned", got)
}

func TestStaticHandler_UnsupportedValue(t *testing.T) {
	_, err := NewStaticHandler(StaticOverrides{
		Global: map[string]map[string]any{"Site": {"hook": func() {}}},
	}, nil)
	assert.Error(t, err)
}
