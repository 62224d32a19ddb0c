package settings

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-settings/internal/codec"
	"github.com/MKhiriev/go-settings/internal/mock"
	"github.com/MKhiriev/go-settings/models"
)

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func newTestEngine(t *testing.T, opts ...Option) (*Settings, *ArrayHandler) {
	t.Helper()

	defaults, err := NewDefaultTable(Source{
		Namespace: "Test",
		Values:    map[string]any{"siteName": "Default Site", "perPage": 20},
	})
	require.NoError(t, err)

	array := NewArrayHandler()
	opts = append([]Option{WithDefaults(defaults)}, opts...)
	return New([]Link{{Name: "array", Handler: array, Writable: true}}, opts...), array
}

var (
	male   = models.InScope("context:male")
	female = models.InScope("context:female")
)

// ── Scenarios ────────────────────────────────────────────────────────────────

func TestSettings_SetThenGet(t *testing.T) {
	s, _ := newTestEngine(t)
	ctx := testContext()

	require.NoError(t, s.Set(ctx, "Test.siteName", "Foo", models.GlobalScope))

	got, found, err := s.Get(ctx, "Test.siteName", models.GlobalScope)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Foo", got)
}

func TestSettings_ContextIsolation(t *testing.T) {
	s, _ := newTestEngine(t)
	ctx := testContext()

	require.NoError(t, s.Set(ctx, "Test.siteName", "Humpty", models.GlobalScope))
	require.NoError(t, s.Set(ctx, "Test.siteName", "Jack", male))
	require.NoError(t, s.Set(ctx, "Test.siteName", "Jill", female))

	tests := []struct {
		name  string
		scope models.Scope
		want  string
	}{
		{name: "global", scope: models.GlobalScope, want: "Humpty"},
		{name: "male", scope: male, want: "Jack"},
		{name: "female", scope: female, want: "Jill"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := s.Get(ctx, "Test.siteName", tt.scope)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettings_BooleanKeepsKind(t *testing.T) {
	s, array := newTestEngine(t)
	ctx := testContext()

	require.NoError(t, s.Set(ctx, "Test.siteName", true, models.GlobalScope))

	sv, ok := array.Stored("Test", "siteName", models.GlobalScope)
	require.True(t, ok)
	assert.Equal(t, models.TypeBoolean, sv.Type)

	got, _, err := s.Get(ctx, "Test.siteName", models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, true, got)
}

func TestSettings_StructuredValue(t *testing.T) {
	s, _ := newTestEngine(t)
	ctx := testContext()

	require.NoError(t, s.Set(ctx, "Test.siteName", map[string]any{"foo": "bar"}, models.GlobalScope))

	got, _, err := s.Get(ctx, "Test.siteName", models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"foo": "bar"}, got)
}

// ── Fallback ─────────────────────────────────────────────────────────────────

func TestSettings_Get_Fallback(t *testing.T) {
	ctx := testContext()

	t.Run("context falls back to global", func(t *testing.T) {
		s, _ := newTestEngine(t)
		require.NoError(t, s.Set(ctx, "Test.siteName", "Humpty", models.GlobalScope))

		got, found, err := s.Get(ctx, "Test.siteName", male)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Humpty", got)
	})

	t.Run("context falls back to defaults", func(t *testing.T) {
		s, _ := newTestEngine(t)

		got, found, err := s.Get(ctx, "Test.perPage", male)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 20, got)
	})

	t.Run("unknown property", func(t *testing.T) {
		s, _ := newTestEngine(t)

		got, found, err := s.Get(ctx, "Test.missing", models.GlobalScope)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)
	})

	t.Run("unknown namespace", func(t *testing.T) {
		s, _ := newTestEngine(t)

		_, found, err := s.Get(ctx, "Nope.siteName", models.GlobalScope)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("stored null is found", func(t *testing.T) {
		s, _ := newTestEngine(t)
		require.NoError(t, s.Set(ctx, "Test.siteName", nil, models.GlobalScope))

		got, found, err := s.Get(ctx, "Test.siteName", models.GlobalScope)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Nil(t, got)
	})

	t.Run("without defaults", func(t *testing.T) {
		s := New([]Link{{Name: "array", Handler: NewArrayHandler(), Writable: true}})

		_, found, err := s.Get(ctx, "Test.siteName", models.GlobalScope)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSettings_Forget(t *testing.T) {
	ctx := testContext()

	t.Run("reverts to default", func(t *testing.T) {
		s, _ := newTestEngine(t)
		require.NoError(t, s.Set(ctx, "Test.siteName", "Foo", models.GlobalScope))
		require.NoError(t, s.Forget(ctx, "Test.siteName", models.GlobalScope))

		got, found, err := s.Get(ctx, "Test.siteName", models.GlobalScope)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Default Site", got)
	})

	t.Run("context reverts to global", func(t *testing.T) {
		s, _ := newTestEngine(t)
		require.NoError(t, s.Set(ctx, "Test.siteName", "Humpty", models.GlobalScope))
		require.NoError(t, s.Set(ctx, "Test.siteName", "Jack", male))
		require.NoError(t, s.Forget(ctx, "Test.siteName", male))

		got, _, err := s.Get(ctx, "Test.siteName", male)
		require.NoError(t, err)
		assert.Equal(t, "Humpty", got)
	})

	t.Run("idempotent", func(t *testing.T) {
		s, _ := newTestEngine(t)
		require.NoError(t, s.Forget(ctx, "Test.siteName", models.GlobalScope))
		require.NoError(t, s.Forget(ctx, "Test.siteName", models.GlobalScope))
	})
}

func TestSettings_Flush(t *testing.T) {
	s, array := newTestEngine(t)
	ctx := testContext()

	require.NoError(t, s.Set(ctx, "Test.siteName", "Foo", models.GlobalScope))
	require.NoError(t, s.Set(ctx, "Test.siteName", "Jack", male))
	require.NoError(t, s.Flush(ctx))

	assert.Zero(t, array.Len())
	got, _, err := s.Get(ctx, "Test.siteName", male)
	require.NoError(t, err)
	assert.Equal(t, "Default Site", got)
}

// ── Aliases ──────────────────────────────────────────────────────────────────

func TestSettings_NamespaceAliases(t *testing.T) {
	defaults, err := NewDefaultTable(Source{
		Namespace: "app.config.Mail",
		Aliases:   []string{"Mail"},
		Values:    map[string]any{"from": "noreply@example.com"},
	})
	require.NoError(t, err)

	array := NewArrayHandler()
	s := New([]Link{{Name: "array", Handler: array, Writable: true}}, WithDefaults(defaults))
	ctx := testContext()

	got, found, err := s.Get(ctx, "Mail.from", models.GlobalScope)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "noreply@example.com", got)

	require.NoError(t, s.Set(ctx, "Mail.from", "ops@example.com", models.GlobalScope))
	assert.True(t, array.Contains("app.config.Mail", "from", models.GlobalScope))

	got, _, err = s.Get(ctx, "app.config.Mail.from", models.GlobalScope)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", got)
}

// ── Handler chain ────────────────────────────────────────────────────────────

func TestSettings_InvalidKey_TouchesNoHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := mock.NewMockHandler(ctrl) // any call fails the test

	s := New([]Link{{Name: "mock", Handler: h, Writable: true}})
	ctx := testContext()

	for _, key := range []string{"", "siteName", ".siteName", "Test.", "."} {
		_, _, err := s.Get(ctx, key, models.GlobalScope)
		assert.ErrorIs(t, err, ErrInvalidKey, key)

		assert.ErrorIs(t, s.Set(ctx, key, "x", models.GlobalScope), ErrInvalidKey, key)
		assert.ErrorIs(t, s.Forget(ctx, key, models.GlobalScope), ErrInvalidKey, key)
	}
}

func TestSettings_FirstHandlerWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock.NewMockHandler(ctrl)
	second := mock.NewMockHandler(ctrl)
	ctx := testContext()

	first.EXPECT().Has(ctx, "Test", "siteName", models.GlobalScope).Return(true, nil)
	first.EXPECT().Get(ctx, "Test", "siteName", models.GlobalScope).Return("first", nil)

	s := New([]Link{
		{Name: "first", Handler: first},
		{Name: "second", Handler: second, Writable: true},
	})

	got, found, err := s.Get(ctx, "Test.siteName", models.GlobalScope)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "first", got)
}

func TestSettings_Get_WalksChainThenGlobal(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock.NewMockHandler(ctrl)
	second := mock.NewMockHandler(ctrl)
	ctx := testContext()

	gomock.InOrder(
		first.EXPECT().Has(ctx, "Test", "siteName", male).Return(false, nil),
		second.EXPECT().Has(ctx, "Test", "siteName", male).Return(false, nil),
		first.EXPECT().Has(ctx, "Test", "siteName", models.GlobalScope).Return(false, nil),
		second.EXPECT().Has(ctx, "Test", "siteName", models.GlobalScope).Return(true, nil),
		second.EXPECT().Get(ctx, "Test", "siteName", models.GlobalScope).Return("global", nil),
	)

	s := New([]Link{{Name: "first", Handler: first}, {Name: "second", Handler: second}})

	got, found, err := s.Get(ctx, "Test.siteName", male)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "global", got)
}

func TestSettings_Set_AllWritableHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	readOnly := mock.NewMockHandler(ctrl)
	first := mock.NewMockHandler(ctrl)
	second := mock.NewMockHandler(ctrl)
	ctx := testContext()

	gomock.InOrder(
		first.EXPECT().Set(ctx, "Test", "siteName", "Foo", male).Return(nil),
		second.EXPECT().Set(ctx, "Test", "siteName", "Foo", male).Return(nil),
	)

	s := New([]Link{
		{Name: "static", Handler: readOnly},
		{Name: "first", Handler: first, Writable: true},
		{Name: "second", Handler: second, Writable: true},
	})

	require.NoError(t, s.Set(ctx, "Test.siteName", "Foo", male))
}

func TestSettings_Set_StopsAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock.NewMockHandler(ctrl)
	second := mock.NewMockHandler(ctrl)
	ctx := testContext()

	backendErr := errors.New("connection refused")
	first.EXPECT().Set(ctx, "Test", "siteName", "Foo", models.GlobalScope).Return(backendErr)

	s := New([]Link{
		{Name: "first", Handler: first, Writable: true},
		{Name: "second", Handler: second, Writable: true},
	})

	err := s.Set(ctx, "Test.siteName", "Foo", models.GlobalScope)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, backendErr)
	assert.Contains(t, err.Error(), `"first"`)
}

func TestSettings_Set_UnsupportedValue_TouchesNoHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := mock.NewMockHandler(ctrl)

	s := New([]Link{{Name: "mock", Handler: h, Writable: true}})

	err := s.Set(testContext(), "Test.callback", func() {}, models.GlobalScope)
	assert.ErrorIs(t, err, codec.ErrUnsupportedValue)
}

func TestSettings_Set_UnsignedOverflow_KeepsKeyReadable(t *testing.T) {
	s, _ := newTestEngine(t)
	ctx := testContext()

	require.NoError(t, s.Set(ctx, "Test.perPage", 50, models.GlobalScope))

	err := s.Set(ctx, "Test.perPage", uint64(math.MaxUint64), models.GlobalScope)
	require.ErrorIs(t, err, codec.ErrUnsupportedValue)

	got, found, err := s.Get(ctx, "Test.perPage", models.GlobalScope)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 50, got)
}

func TestSettings_StructuredValue_KeepsNumbers(t *testing.T) {
	s, _ := newTestEngine(t)
	ctx := testContext()

	value := map[string]any{"port": 8080, "id": int64(9007199254740993), "weights": []any{1, 2.5}}
	require.NoError(t, s.Set(ctx, "Test.cfg", value, models.GlobalScope))

	got, found, err := s.Get(ctx, "Test.cfg", models.GlobalScope)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, map[string]any{"port": 8080, "id": 9007199254740993, "weights": []any{1, 2.5}}, got)
}

func TestSettings_NoWritableHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := mock.NewMockHandler(ctrl)
	ctx := testContext()

	s := New([]Link{{Name: "static", Handler: h}})

	assert.ErrorIs(t, s.Set(ctx, "Test.siteName", "Foo", models.GlobalScope), ErrNoWritableHandler)
	assert.ErrorIs(t, s.Forget(ctx, "Test.siteName", models.GlobalScope), ErrNoWritableHandler)
	assert.ErrorIs(t, s.Flush(ctx), ErrNoWritableHandler)

	empty := New(nil)
	assert.ErrorIs(t, empty.Set(ctx, "Test.siteName", "Foo", models.GlobalScope), ErrNoWritableHandler)
}

func TestSettings_Forget_NotSupported(t *testing.T) {
	ctx := testContext()

	links := func() []Link {
		static, err := NewStaticHandler(StaticOverrides{}, nil)
		require.NoError(t, err)
		return []Link{
			{Name: "static", Handler: static, Writable: true},
			{Name: "array", Handler: NewArrayHandler(), Writable: true},
		}
	}

	t.Run("propagated by default", func(t *testing.T) {
		s := New(links())

		err := s.Forget(ctx, "Test.siteName", models.GlobalScope)
		assert.ErrorIs(t, err, ErrNotSupported)
		assert.NotErrorIs(t, err, ErrStorage)
	})

	t.Run("ignored when configured", func(t *testing.T) {
		s := New(links(), WithIgnoreUnsupportedForget())

		assert.NoError(t, s.Forget(ctx, "Test.siteName", models.GlobalScope))
	})
}

func TestSettings_Get_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := mock.NewMockHandler(ctrl)
	ctx := testContext()

	h.EXPECT().Has(ctx, "Test", "siteName", models.GlobalScope).Return(false, errors.New("timeout"))

	s := New([]Link{{Name: "database", Handler: h, Writable: true}})

	_, found, err := s.Get(ctx, "Test.siteName", models.GlobalScope)
	assert.False(t, found)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestSettings_Get_CorruptValueIsNotStorageError(t *testing.T) {
	array := NewArrayHandler()
	raw := "not json"
	array.Store("Test", "siteName", models.GlobalScope, models.StoredValue{Raw: &raw, Type: models.TypeArray})

	s := New([]Link{{Name: "array", Handler: array, Writable: true}})

	_, _, err := s.Get(testContext(), "Test.siteName", models.GlobalScope)
	assert.ErrorIs(t, err, codec.ErrCorruptValue)
	assert.NotErrorIs(t, err, ErrStorage)
}

func TestSettings_Handlers_ReturnsCopy(t *testing.T) {
	s := New([]Link{{Name: "array", Handler: NewArrayHandler(), Writable: true}})

	links := s.Handlers()
	require.Len(t, links, 1)
	links[0].Writable = false

	assert.True(t, s.Handlers()[0].Writable)
}
