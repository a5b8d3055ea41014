package mealpress

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spicyTofu() ContentSubmission {
	return ContentSubmission{
		Title:        "Spicy Tofu",
		Description:  "Weeknight tofu with plenty of chili.",
		Ingredients:  []string{"tofu", "chili"},
		Instructions: []string{"cook"},
	}
}

func TestCreateRecipe(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	rec := doJSON(t, a, http.MethodPost, "/api/recipes", spicyTofu(), cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeJSON(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "spicy-tofu", body["slug"])

	stored, err := a.Content.Read(KindRecipe, "spicy-tofu")
	require.NoError(t, err)
	assert.Equal(t, "Spicy Tofu", stored.Title)
	assert.Equal(t, []string{"tofu", "chili"}, stored.Ingredients)
	assert.Equal(t, []string{"cook"}, stored.Instructions)
	assert.Equal(t, StatusPublished, stored.Status)
	assert.NotEmpty(t, stored.ID)
	assert.NotEmpty(t, stored.Date)
}

func TestCreateRecipeMissingFields(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	sub := spicyTofu()
	sub.Description = ""
	sub.Instructions = nil

	rec := doJSON(t, a, http.MethodPost, "/api/recipes", sub, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeJSON(t, rec)
	msg, _ := body["error"].(string)
	assert.Contains(t, msg, "description")
	assert.Contains(t, msg, "instructions")

	entries, err := os.ReadDir(filepath.Join(a.Config.ContentDir, string(KindRecipe)))
	require.NoError(t, err)
	assert.Empty(t, entries, "no record may be written on validation failure")
}

func TestCreateRecipeDuplicateSlug(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	rec := doJSON(t, a, http.MethodPost, "/api/recipes", spicyTofu(), cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, a, http.MethodPost, "/api/recipes", spicyTofu(), cookie)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "spicy-tofu")
}

func TestCreateRecipeMalformedBody(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed request body")
}

func TestCreateRecipeRequiresAuth(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/recipes", spicyTofu())
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
	assert.False(t, a.Content.Exists(KindRecipe, "spicy-tofu"))
}

func TestCreateBlogPost(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	rec := doJSON(t, a, http.MethodPost, "/api/blog", ContentSubmission{
		Title:       "Knife Care 101",
		Description: "Keeping your knives sharp.",
		Body:        "# Sharpening\n\nUse a whetstone.",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeJSON(t, rec)
	assert.Equal(t, "knife-care-101", body["slug"])

	stored, err := a.Content.Read(KindPost, "knife-care-101")
	require.NoError(t, err)
	assert.True(t, strings.Contains(stored.Body, "whetstone"))
}

func TestSlugNamespacesAreIndependent(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	rec := doJSON(t, a, http.MethodPost, "/api/recipes", spicyTofu(), cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, a, http.MethodPost, "/api/blog", ContentSubmission{
		Title:       "Spicy Tofu",
		Description: "The story behind the recipe.",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, "same slug must be allowed in the other namespace")
}

func TestDeleteRecipe(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	doJSON(t, a, http.MethodPost, "/api/recipes", spicyTofu(), cookie)

	rec := doJSON(t, a, http.MethodPost, "/api/admin/recipes/delete", map[string]string{"slug": "spicy-tofu"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeJSON(t, rec)
	assert.Equal(t, "spicy-tofu", body["slug"])
	assert.NotEmpty(t, body["message"])
	assert.False(t, a.Content.Exists(KindRecipe, "spicy-tofu"))
}

func TestDeleteRequiresAuth(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	doJSON(t, a, http.MethodPost, "/api/recipes", spicyTofu(), cookie)

	rec := doJSON(t, a, http.MethodPost, "/api/admin/recipes/delete", map[string]string{"slug": "spicy-tofu"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, a.Content.Exists(KindRecipe, "spicy-tofu"), "record must survive an unauthorized delete")
}

func TestDeleteMissingSlugField(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	rec := doJSON(t, a, http.MethodPost, "/api/admin/blog/delete", map[string]string{}, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "slug is required")
}

func TestDeleteUnknownSlug(t *testing.T) {
	a := newTestApp(t)
	cookie := loginCookie(t, a)

	rec := doJSON(t, a, http.MethodPost, "/api/admin/blog/delete", map[string]string{"slug": "never-written"}, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
