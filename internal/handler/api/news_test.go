package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesbago101/promo-back/internal/model"
)

func TestNewsLifecycle(t *testing.T) {
	env := testSetup(t)
	_, token := env.createTestUser(t, "editor", "pw12345", model.RoleEditor)

	// Create
	rec := env.do(t, http.MethodPost, "/news",
		`{"date":"2026-03-15","category":"Updates","title":"Launch","excerpt":"We launched."}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.NewsItem
	decodeBody(t, rec, &created)
	assert.Equal(t, "2026-03-15", created.Date)
	assert.Equal(t, model.DefaultTimezone, created.Timezone)
	assert.False(t, created.Featured)

	// List formats the date for display
	rec = env.do(t, http.MethodGet, "/news", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []model.NewsItem
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "March 15, 2026", list[0].Date)

	// Get one returns both raw and formatted dates
	rec = env.do(t, http.MethodGet, "/news/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Date          string `json:"date"`
		DateFormatted string `json:"dateFormatted"`
	}
	decodeBody(t, rec, &detail)
	assert.Equal(t, "2026-03-15", detail.Date)
	assert.Equal(t, "March 15, 2026", detail.DateFormatted)

	// Update
	rec = env.do(t, http.MethodPut, "/news/1",
		`{"date":"2026-03-16","category":"Updates","title":"Launch day two","excerpt":"Still going.","featured":true}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.NewsItem
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Launch day two", updated.Title)
	assert.True(t, updated.Featured)

	// Delete
	rec = env.do(t, http.MethodDelete, "/news/1", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/news/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"News item not found"}`, rec.Body.String())
}

func TestNewsCreateMissingFields(t *testing.T) {
	env := testSetup(t)
	_, token := env.createTestUser(t, "editor", "pw12345", model.RoleEditor)

	rec := env.do(t, http.MethodPost, "/news",
		`{"date":"2026-03-15","title":"no category or excerpt"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, rec.Body.String())
}

func TestNewsMutationsRequireToken(t *testing.T) {
	env := testSetup(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/news"},
		{http.MethodPut, "/news/1"},
		{http.MethodDelete, "/news/1"},
	} {
		rec := env.do(t, tc.method, tc.path, `{}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestNewsUpdateNotFound(t *testing.T) {
	env := testSetup(t)
	_, token := env.createTestUser(t, "editor", "pw12345", model.RoleEditor)

	rec := env.do(t, http.MethodPut, "/news/99",
		`{"date":"2026-01-01","category":"c","title":"t","excerpt":"e"}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/news/99", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFormatNewsDate(t *testing.T) {
	assert.Equal(t, "January 02, 2026", formatNewsDate("2026-01-02"))
	assert.Equal(t, "not-a-date", formatNewsDate("not-a-date"))
}
