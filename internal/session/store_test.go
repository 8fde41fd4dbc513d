package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evaluapro/desempeno-cli/internal/entity"
	"github.com/evaluapro/desempeno-cli/internal/session"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()

	return session.NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStore_SaveTokenAndClear(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	require.False(t, store.HasToken())

	require.NoError(t, store.SaveToken("abc123", "Bearer"))
	require.True(t, store.HasToken())
	require.Equal(t, "abc123", store.Token())
	require.Equal(t, "Bearer", store.TokenKind())

	require.NoError(t, store.Clear())
	require.False(t, store.HasToken())
	require.Empty(t, store.Token())
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	require.NoError(t, store.SaveToken("abc123", "Bearer"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	require.False(t, store.HasToken())

	_, ok := store.Profile()
	require.False(t, ok)
}

func TestStore_TokenKindDefault(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	require.NoError(t, store.SaveToken("abc123", ""))
	require.Equal(t, session.DefaultTokenKind, store.TokenKind())
}

func TestStore_ProfileRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	profile := entity.Profile{
		UserID:   7,
		Nombre:   "Ana",
		Apellido: "García",
		Email:    "ana@empresa.com",
		Rol:      entity.RoleManager,
		RolID:    5,
		Area:     "Ventas",
		Cargo:    "Jefa de equipo",
	}

	require.NoError(t, store.SaveProfile(profile))

	got, ok := store.Profile()
	require.True(t, ok)
	require.Equal(t, profile, got)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")

	first := session.NewStore(path)
	require.NoError(t, first.SaveToken("abc123", "Bearer"))
	require.NoError(t, first.SaveProfile(entity.Profile{UserID: 1, Nombre: "Ana", Rol: entity.RoleRRHH}))

	second := session.NewStore(path)
	require.True(t, second.HasToken())
	require.Equal(t, "abc123", second.Token())

	got, ok := second.Profile()
	require.True(t, ok)
	require.Equal(t, entity.RoleRRHH, got.Rol)
}

func TestStore_MalformedDataReadsAsAbsent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "not-json{{"},
		{"wrong value types", `{"access_token": 42, "current_user": "nope"}`},
		{"empty file", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "session.json")
			require.NoError(t, os.WriteFile(path, []byte(test.content), 0o600))

			store := session.NewStore(path)
			require.False(t, store.HasToken())
			require.Empty(t, store.Token())

			_, ok := store.Profile()
			require.False(t, ok)
		})
	}
}

func TestStore_TokenWithoutProfileIsValid(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	require.NoError(t, store.SaveToken("abc123", "Bearer"))
	require.True(t, store.HasToken())

	_, ok := store.Profile()
	require.False(t, ok)
}
