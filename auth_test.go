package mealpress

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginSetsCookie(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/login", map[string]string{
		"username": "admin",
		"password": "admin",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeJSON(t, rec)["success"])

	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == AuthCookieName {
			found = ck
		}
	}
	require.NotNil(t, found, "login must set the session cookie")
	assert.True(t, found.HttpOnly)
	assert.Equal(t, "/", found.Path)
	assert.Equal(t, http.SameSiteStrictMode, found.SameSite)
}

func TestLoginWrongCredential(t *testing.T) {
	a := newTestApp(t)

	for _, creds := range []map[string]string{
		{"username": "admin", "password": "nope"},
		{"username": "root", "password": "admin"},
		{"username": "", "password": ""},
	} {
		rec := doJSON(t, a, http.MethodPost, "/api/login", creds)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, false, decodeJSON(t, rec)["success"])
		for _, ck := range rec.Result().Cookies() {
			assert.NotEqual(t, AuthCookieName, ck.Name, "failed login must not set a session cookie")
		}
	}
}

func TestLoginRateLimited(t *testing.T) {
	a := newTestApp(t)

	bad := map[string]string{"username": "admin", "password": "wrong"}
	for i := 0; i < 5; i++ {
		rec := doJSON(t, a, http.MethodPost, "/api/login", bad)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := doJSON(t, a, http.MethodPost, "/api/login", bad)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	rec := doJSON(t, a, http.MethodPost, "/api/admin/logout", nil, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/", rec.Header().Get("Location"))

	var cleared *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == AuthCookieName {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0, "logout must expire the cookie")
}

func TestGateDistinguishesExpiredFromInvalid(t *testing.T) {
	a := newTestApp(t)

	// Token signed with the right secret but already past its window.
	short := NewTokenService([]byte(a.Config.SessionSecret), time.Millisecond, false)
	token, err := short.Issue("admin")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	a.Tokens.ttl = time.Millisecond

	rec := doJSON(t, a, http.MethodPost, "/api/recipes", spicyTofu(), &http.Cookie{Name: AuthCookieName, Value: token})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session expired")

	a.Tokens.ttl = a.Config.SessionTTL
	rec = doJSON(t, a, http.MethodPost, "/api/recipes", spicyTofu(), &http.Cookie{Name: AuthCookieName, Value: "garbage"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid session token")
}

func TestBcryptCredential(t *testing.T) {
	a := newTestApp(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("kitchen-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	a.Config.AdminPasswordHash = string(hash)

	assert.True(t, a.checkCredentials("admin", "kitchen-secret"))
	assert.False(t, a.checkCredentials("admin", "admin"), "plaintext fallback must be ignored when a hash is set")
}
