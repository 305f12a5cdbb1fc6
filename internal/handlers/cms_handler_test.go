package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

func newCmsRouter(env *testEnv, admin models.User) *gin.Engine {
	h := NewCmsHandler(env.db, env.audit)
	r := gin.New()
	r.GET("/api/cms/:key", h.Get)
	r.PUT("/api/cms/:key", asUser(admin), h.Set)
	return r
}

func TestCmsGetUnknownKeyReturnsNull(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin@example.com", "9111111111", true)
	r := newCmsRouter(env, admin)

	w := doJSON(r, "GET", "/api/cms/homepage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestCmsSetThenGet(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin@example.com", "9111111111", true)
	r := newCmsRouter(env, admin)

	w := doJSON(r, "PUT", "/api/cms/homepage", map[string]any{
		"value": map[string]any{"headline": "Book your service today"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, "GET", "/api/cms/homepage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Book your service today", decodeBody(t, w)["headline"])
}

func TestCmsSetOverwrites(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin@example.com", "9111111111", true)
	r := newCmsRouter(env, admin)

	w := doJSON(r, "PUT", "/api/cms/banner", map[string]any{"value": map[string]any{"text": "v1"}})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, "PUT", "/api/cms/banner", map[string]any{"value": map[string]any{"text": "v2"}})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.gorm(t).Model(&models.CmsContent{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w = doJSON(r, "GET", "/api/cms/banner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "v2", decodeBody(t, w)["text"])
}

func TestCmsValueCanBeAnyJSON(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin@example.com", "9111111111", true)
	r := newCmsRouter(env, admin)

	w := doJSON(r, "PUT", "/api/cms/faq", map[string]any{
		"value": []any{map[string]any{"q": "How long?", "a": "About an hour"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, "GET", "/api/cms/faq", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeArray(t, w), 1)
}
