package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gigflow/gigflow-backend/config"
	"github.com/gigflow/gigflow-backend/internal/auth/token"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	issuer, err := token.NewIssuer(token.Config{
		Secret:     []byte("router-test-secret-0123456789abcd"),
		Issuer:     "gigflow",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	})
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{CORSOrigins: []string{"*"}},
		Auth:   config.AuthConfig{LoginRateLimit: 0.001, LoginBurst: 1},
		Redis:  config.RedisConfig{CacheTTL: time.Minute},
	}

	r := BuildRouter(RouterDeps{
		ServiceName: "gigflow-api",
		Version:     "test",
		Config:      cfg,
		DB:          db,
		Issuer:      issuer,
	})
	return r, mock
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestBuildRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := serve(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"cache":"disabled"`)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}

func TestBuildRouter_TokenEndpointIsThrottled(t *testing.T) {
	r, _ := newTestRouter(t)

	first := serve(r, http.MethodPost, "/api/v1/auth/token", `{}`)
	assert.Equal(t, http.StatusBadRequest, first.Code)

	second := serve(r, http.MethodPost, "/api/v1/auth/token", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestBuildRouter_StaffOnlyWrites(t *testing.T) {
	r, _ := newTestRouter(t)

	rr := serve(r, http.MethodPost, "/api/v1/categories", `{"name":"Design"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(r, http.MethodDelete, "/api/v1/skills/1", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBuildRouter_BadBearer(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBuildRouter_ProjectFilterReachesDatabase(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("strpos(lower(c.name), lower($1)) > 0")).
		WithArgs("dev", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rr := serve(r, http.MethodGet, "/api/v1/projects?category=dev", "")
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildRouter_NonIntegerID(t *testing.T) {
	r, _ := newTestRouter(t)
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodGet, "/api/v1/sample-works/abc", "").Code)
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	cfg := corsConfig([]string{"https://app.example"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.Equal(t, []string{"https://app.example"}, cfg.AllowOrigins)
}
