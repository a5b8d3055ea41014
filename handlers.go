package mealpress

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	recipes, err := a.Cache.List(KindRecipe)
	if err != nil {
		return err
	}
	posts, err := a.Cache.List(KindPost)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(recipes, posts, a.Config))
}

func (a *App) handleRecipe(c echo.Context) error {
	rec, err := a.Cache.Get(KindRecipe, c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		}
		return err
	}
	return Render(c, a.Views.Recipe(rec, a.Config))
}

func (a *App) handleBlogPost(c echo.Context) error {
	rec, err := a.Cache.Get(KindPost, c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config))
		}
		return err
	}
	return Render(c, a.Views.Post(rec, a.Config))
}

// handleAdminPage serves the login form, or the dashboard once the
// session cookie verifies.
func (a *App) handleAdminPage(c echo.Context) error {
	if !a.isAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.Config))
	}
	recipes, err := a.Content.List(KindRecipe)
	if err != nil {
		return err
	}
	posts, err := a.Content.List(KindPost)
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(recipes, posts, a.Config))
}

func (a *App) handleSitemap(c echo.Context) error {
	recipes, err := a.Cache.List(KindRecipe)
	if err != nil {
		return err
	}
	posts, err := a.Cache.List(KindPost)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, append(recipes, posts...))
}

func (a *App) handleFeed(c echo.Context) error {
	recipes, err := a.Cache.List(KindRecipe)
	if err != nil {
		return err
	}
	posts, err := a.Cache.List(KindPost)
	if err != nil {
		return err
	}
	return a.renderRSS(c, append(recipes, posts...))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

// httpErrorHandler maps every error crossing a handler boundary to one
// response: JSON under /api/, rendered pages elsewhere. Causes of 5xx
// responses are logged server-side and never echoed to the client.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprintf("%v", he.Message)
	}
	if code >= 500 {
		message = "internal server error"
		c.Logger().Errorf("server error: %v", err)
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		_ = c.JSON(code, map[string]any{
			"success": false,
			"error":   message,
		})
		return
	}

	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, a.Views.NotFound(a.Config))
	case code >= 500:
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config))
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
