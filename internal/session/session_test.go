package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authModels "github.com/maxturnos/turnos-service/internal/service/auth/models"
)

func adminSession() *Session {
	code := "barberia_clasica"
	return &Session{User: &User{
		UserResponse: authModels.UserResponse{
			Email:         "dueno@mail.com",
			Nombre:        "Carlos",
			Rol:           "admin",
			CodigoNegocio: &code,
		},
		Token: "tok",
	}}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	empty, err := store.Load()
	require.NoError(t, err)
	assert.False(t, empty.LoggedIn())

	require.NoError(t, store.Save(adminSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.True(t, loaded.LoggedIn())
	assert.True(t, loaded.IsAdmin())
	assert.False(t, loaded.IsSuperAdmin())
	assert.Equal(t, "barberia_clasica", loaded.BusinessCode())
	assert.Equal(t, "dueno@mail.com", loaded.Email())
}

func TestFileStore_JSONKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	s := &Session{BusinessNotFound: &BusinessNotFound{Email: "dueno@mail.com", NombreNegocio: "Barberia"}}
	require.NoError(t, store.Save(s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "negocioNoEncontrado")
	assert.NotContains(t, raw, "user")

	require.NoError(t, store.Save(adminSession()))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	raw = nil
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "user")
}

func TestFileStore_ClearInvalidatesEverything(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	s := adminSession()
	s.BusinessNotFound = &BusinessNotFound{Email: "x@mail.com"}
	require.NoError(t, store.Save(s))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded.User)
	assert.Nil(t, loaded.BusinessNotFound)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(adminSession()))

	s, err := store.Load()
	require.NoError(t, err)
	assert.True(t, s.IsAdmin())

	require.NoError(t, store.Clear())
	s, err = store.Load()
	require.NoError(t, err)
	assert.False(t, s.LoggedIn())
}

func TestGuestSession(t *testing.T) {
	var s *Session
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.BusinessCode())
	assert.Empty(t, s.Email())
}
