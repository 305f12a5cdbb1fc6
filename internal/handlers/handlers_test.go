package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wheelsup-garage/vehicle-care-api/internal/audit"
	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/middleware"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

// testEnv wires an in-memory store and the pieces handlers depend on. Each
// test gets its own database, so tests stay independent and parallelizable.
type testEnv struct {
	db    *db.Manager
	cfg   *config.Config
	audit *audit.Dispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	log := logrus.New()
	log.SetOutput(io.Discard)

	dbm := db.NewWithDB(gdb)
	return &testEnv{
		db:    dbm,
		cfg:   &config.Config{JWTSecret: "handler-test-secret"},
		audit: audit.NewDispatcher(audit.New(dbm, log), log),
	}
}

func (e *testEnv) gorm(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := e.db.DB()
	require.NoError(t, err)
	return gdb
}

// asUser simulates the auth middleware having already resolved the subject.
func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, user.ID)
		c.Set(middleware.ContextUserEmail, user.Email)
		c.Set(middleware.ContextIsAdmin, user.IsAdmin)
	}
}

func (e *testEnv) seedUser(t *testing.T, email, phone string, isAdmin bool) models.User {
	t.Helper()
	user := models.User{
		Name:         "Seed User",
		Email:        email,
		PasswordHash: "$2a$10$invalidhashforseedusersxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx",
		PhoneNumber:  phone,
		IsAdmin:      isAdmin,
		Vehicles:     models.JSONRaw("[]"),
	}
	require.NoError(t, e.gorm(t).Create(&user).Error)
	return user
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeArray(t *testing.T, w *httptest.ResponseRecorder) []any {
	t.Helper()
	var out []any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
