package mealpress

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsletterSubscribe(t *testing.T) {
	a := newTestApp(t)

	rec := doJSON(t, a, http.MethodPost, "/api/newsletter/subscribe", map[string]string{
		"email": "elena@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "subscribed")

	n, err := a.Data.SubscriberCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewsletterSubscribeDuplicateIsIdempotent(t *testing.T) {
	a := newTestApp(t)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, a, http.MethodPost, "/api/newsletter/subscribe", map[string]string{
			"email": "elena@example.com",
		})
		require.Equal(t, http.StatusOK, rec.Code, "repeat subscription must not error")
	}

	n, err := a.Data.SubscriberCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewsletterSubscribeRejectsInvalidEmail(t *testing.T) {
	a := newTestApp(t)

	for _, email := range []string{
		"",
		"not-an-email",
		"Elena <elena@example.com>",
		"spaces in@example.com",
	} {
		rec := doJSON(t, a, http.MethodPost, "/api/newsletter/subscribe", map[string]string{"email": email})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "email %q should be rejected", email)
	}

	n, err := a.Data.SubscriberCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
