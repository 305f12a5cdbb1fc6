package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

func newUserRouter(env *testEnv, user models.User) *gin.Engine {
	h := NewUserHandler(env.db, env.cfg, env.audit)
	r := gin.New()
	r.GET("/api/users/profile", asUser(user), h.GetProfile)
	r.PUT("/api/users/profile", asUser(user), h.UpdateProfile)
	r.POST("/api/users/avatar", asUser(user), h.UploadAvatar)
	r.GET("/api/users", asUser(user), h.List)
	r.PUT("/api/users/:id/role", asUser(user), h.UpdateRole)
	return r
}

func TestGetProfileHidesPasswordHash(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "asha@example.com", "9876543210", false)
	r := newUserRouter(env, user)

	w := doJSON(r, "GET", "/api/users/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "asha@example.com", body["email"])
	_, leaked := body["passwordHash"]
	assert.False(t, leaked)
	assert.NotContains(t, w.Body.String(), user.PasswordHash)
}

func TestUpdateProfilePartial(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "asha@example.com", "9876543210", false)
	r := newUserRouter(env, user)

	w := doJSON(r, "PUT", "/api/users/profile", map[string]any{"name": "Asha R."})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, env.gorm(t).First(&stored, user.ID).Error)
	assert.Equal(t, "Asha R.", stored.Name)
	assert.Equal(t, "asha@example.com", stored.Email)
}

func TestUpdateProfileRejectsInvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "asha@example.com", "9876543210", false)
	r := newUserRouter(env, user)

	w := doJSON(r, "PUT", "/api/users/profile", map[string]any{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "valid email address")
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "asha@example.com", "9876543210", false)
	env.seedUser(t, "taken@example.com", "9000000001", false)
	r := newUserRouter(env, user)

	w := doJSON(r, "PUT", "/api/users/profile", map[string]any{"email": "taken@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestUploadAvatarRejectsUnknownExtension(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.UploadDir = t.TempDir()
	user := env.seedUser(t, "asha@example.com", "9876543210", false)
	r := newUserRouter(env, user)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", "payload.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/users/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Avatar must be an image file")
}

func TestUploadAvatarStoresFileAndPath(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.UploadDir = t.TempDir()
	user := env.seedUser(t, "asha@example.com", "9876543210", false)
	r := newUserRouter(env, user)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("pngdata"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/users/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, env.gorm(t).First(&stored, user.ID).Error)
	assert.Contains(t, stored.Avatar, "/uploads/avatar_")
	assert.Contains(t, stored.Avatar, ".png")
}

func TestUserListSortFallsBackOnUnknownField(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin@example.com", "9111111111", true)
	env.seedUser(t, "asha@example.com", "9876543210", false)
	r := newUserRouter(env, admin)

	w := doJSON(r, "GET", "/api/users?sortBy=__proto__&page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "createdAt", body["sortBy"])
	assert.Equal(t, float64(2), body["total"])
}

func TestUpdateRole(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin@example.com", "9111111111", true)
	target := env.seedUser(t, "asha@example.com", "9876543210", false)
	r := newUserRouter(env, admin)

	w := doJSON(r, "PUT", "/api/users/"+itoa(target.ID)+"/role", map[string]any{"isAdmin": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, env.gorm(t).First(&stored, target.ID).Error)
	assert.True(t, stored.IsAdmin)
}

func TestUpdateRoleRequiresBody(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin@example.com", "9111111111", true)
	r := newUserRouter(env, admin)

	w := doJSON(r, "PUT", "/api/users/1/role", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "isAdmin is required")
}

func TestUpdateRoleUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "admin@example.com", "9111111111", true)
	r := newUserRouter(env, admin)

	w := doJSON(r, "PUT", "/api/users/999/role", map[string]any{"isAdmin": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}
