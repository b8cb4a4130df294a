package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Register("alice", "alice@ex.com", "hunter2")
	require.NoError(t, err)

	user, err := env.auth.Authenticate("alice@ex.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// Email lookup is case- and whitespace-insensitive.
	user, err = env.auth.Authenticate("  Alice@Ex.Com ", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Register("alice", "alice@ex.com", "hunter2")
	require.NoError(t, err)

	_, wrongPassword := env.auth.Authenticate("alice@ex.com", "wrong")
	_, unknownEmail := env.auth.Authenticate("ghost@ex.com", "whatever")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestBindAndCurrent(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.accounts.Register("alice", "alice@ex.com", "hunter2")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, env.auth.Bind(rec, user, false))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	// Not a remember session: no explicit expiry.
	assert.True(t, cookies[0].Expires.IsZero())

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(cookies[0])

	current := env.auth.Current(req)
	require.NotNil(t, current)
	assert.Equal(t, user.ID, current.ID)
}

func TestBindRememberSetsExpiry(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.accounts.Register("alice", "alice@ex.com", "hunter2")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, env.auth.Bind(rec, user, true))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.False(t, cookies[0].Expires.IsZero())
}

func TestCurrentAnonymous(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	assert.Nil(t, env.auth.Current(req))

	req.AddCookie(&http.Cookie{Name: "session_token", Value: "garbage"})
	assert.Nil(t, env.auth.Current(req))
}

func TestCurrentAfterUserDeleted(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.accounts.Register("alice", "alice@ex.com", "hunter2")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, env.auth.Bind(rec, user, false))

	require.NoError(t, env.accounts.Delete(user.ID))

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	assert.Nil(t, env.auth.Current(req))
}

func TestRevokeClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.auth.Revoke(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.LessOrEqual(t, cookies[0].Expires.Year(), 1970)
}
