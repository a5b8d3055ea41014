package mealpress

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// AuthCookieName is the cookie carrying the session token.
const AuthCookieName = "auth_token"

var (
	// ErrTokenInvalid is returned for malformed or tampered tokens.
	ErrTokenInvalid = errors.New("invalid session token")
	// ErrTokenExpired is returned for well-signed tokens past their TTL.
	ErrTokenExpired = errors.New("session token expired")
)

// Claims is the authentication assertion carried by a session token.
type Claims struct {
	Subject  string
	IssuedAt time.Time
}

// TokenService issues and verifies stateless HMAC-signed session tokens.
// Validity is entirely self-contained: there is no revocation list, so a
// token discarded at logout stays cryptographically valid until its
// expiry window lapses.
type TokenService struct {
	codec  *securecookie.SecureCookie
	ttl    time.Duration
	secure bool
}

// NewTokenService builds a TokenService signing with secret. Tokens
// expire ttl after issue; secure controls the cookie's Secure attribute.
func NewTokenService(secret []byte, ttl time.Duration, secure bool) *TokenService {
	codec := securecookie.New(secret, nil)
	// Expiry is enforced from the IssuedAt claim so that expired and
	// tampered tokens are distinguishable to the caller.
	codec.MaxAge(0)
	return &TokenService{codec: codec, ttl: ttl, secure: secure}
}

// Issue signs a token asserting the given subject.
func (t *TokenService) Issue(subject string) (string, error) {
	return t.codec.Encode(AuthCookieName, Claims{
		Subject:  subject,
		IssuedAt: time.Now().UTC(),
	})
}

// Verify checks signature and expiry, returning the embedded claims.
func (t *TokenService) Verify(token string) (Claims, error) {
	var claims Claims
	if err := t.codec.Decode(AuthCookieName, token, &claims); err != nil {
		return Claims{}, ErrTokenInvalid
	}
	if time.Since(claims.IssuedAt) > t.ttl {
		return Claims{}, ErrTokenExpired
	}
	return claims, nil
}

// Cookie wraps a token in the session cookie.
func (t *TokenService) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(t.ttl.Seconds()),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie returns a cookie that removes the session token from the
// client. This is the whole of logout; see the TokenService doc comment.
func (t *TokenService) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
