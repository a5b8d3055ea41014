package mealpress

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin checks the admin credential and, on success, issues a
// session token carried back as the auth_token cookie.
func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	if !a.checkCredentials(req.Username, req.Password) {
		a.loginLimiter.Record(c.RealIP())
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false})
	}

	token, err := a.Tokens.Issue(req.Username)
	if err != nil {
		return err
	}
	c.SetCookie(a.Tokens.Cookie(token))
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// checkCredentials compares against the configured admin credential.
// When a bcrypt hash is configured it takes precedence over the
// plaintext password.
func (a *App) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Config.AdminUsername)) == 1
	var passOK bool
	if a.Config.AdminPasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(a.Config.AdminPasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.Config.AdminPassword)) == 1
	}
	return userOK && passOK
}

// handleLogout clears the session cookie and sends the client back to
// the login page. The token itself is not revoked; see TokenService.
func (a *App) handleLogout(c echo.Context) error {
	c.SetCookie(a.Tokens.ClearCookie())
	return c.Redirect(http.StatusSeeOther, "/admin/")
}
