package mealpress

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleRecipeCreate(c echo.Context) error {
	return a.createContent(c, KindRecipe)
}

func (a *App) handlePostCreate(c echo.Context) error {
	return a.createContent(c, KindPost)
}

// createContent runs the publishing pipeline: bind, validate, derive the
// slug, serialize, persist. Each step maps its failure to one HTTP
// response at this boundary; nothing propagates unhandled.
func (a *App) createContent(c echo.Context, kind Kind) error {
	var sub ContentSubmission
	if err := c.Bind(&sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err := ValidateSubmission(kind, sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if sub.Author == "" {
		sub.Author = a.Config.Author
	}

	rec := NewRecord(kind, sub)
	if rec.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title does not produce a usable slug")
	}

	data, err := MarshalRecord(rec)
	if err != nil {
		return err
	}
	if err := a.Content.Create(kind, rec.Slug, data); err != nil {
		if errors.Is(err, ErrExists) {
			return echo.NewHTTPError(http.StatusConflict,
				fmt.Sprintf("a %s with slug %q already exists", kind.Noun(), rec.Slug))
		}
		return err
	}
	a.Cache.Invalidate()

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"slug":    rec.Slug,
	})
}

func (a *App) handleRecipeDelete(c echo.Context) error {
	return a.deleteContent(c, KindRecipe)
}

func (a *App) handlePostDelete(c echo.Context) error {
	return a.deleteContent(c, KindPost)
}

// deleteContent hard-deletes a record by slug. No tombstone is kept.
func (a *App) deleteContent(c echo.Context, kind Kind) error {
	var req struct {
		Slug string `json:"slug"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if req.Slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "slug is required")
	}

	if err := a.Content.Delete(kind, req.Slug); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound,
				fmt.Sprintf("no %s with slug %q", kind.Noun(), req.Slug))
		}
		return err
	}
	a.Cache.Invalidate()

	return c.JSON(http.StatusOK, map[string]any{
		"message": kind.Noun() + " deleted",
		"slug":    req.Slug,
	})
}
