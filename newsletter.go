package mealpress

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// handleNewsletterSubscribe validates the address and stores it. A
// repeat subscription answers 200 rather than leaking whether the
// address was already known as an error.
func (a *App) handleNewsletterSubscribe(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	addr, err := mail.ParseAddress(req.Email)
	if req.Email == "" || err != nil || addr.Address != req.Email {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email address is required")
	}

	err = a.Data.AddSubscriber(addr.Address, time.Now().UTC().Format(time.RFC3339))
	if err != nil && !errors.Is(err, ErrExists) {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "subscribed to the newsletter",
	})
}
