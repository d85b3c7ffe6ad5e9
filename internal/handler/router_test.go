package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-leave-gateway/internal/models"
	"github.com/noah-isme/sma-leave-gateway/internal/service"
	"github.com/noah-isme/sma-leave-gateway/pkg/config"
	"github.com/noah-isme/sma-leave-gateway/pkg/credentials"
)

func newTestRouter(t *testing.T, backend http.HandlerFunc, store credentials.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	metrics := service.NewMetricsService()
	descriptors := service.NewDescriptorService(config.BackendConfig{EnvURL: server.URL}, store, nil, nil, metrics)
	return NewRouter(RouterOptions{
		APIPrefix:   "/api/v1",
		Metrics:     metrics,
		Descriptors: descriptors,
		Leave:       service.NewLeaveService(descriptors, config.UpstreamConfig{Timeout: time.Second}, nil, metrics),
		Redirects:   service.NewRedirectService(config.AuthConfig{}, store, nil, metrics),
	})
}

func TestRouterLeaveRequestsEndToEnd(t *testing.T) {
	var gotURL, gotAuth string
	// a configured shared store acts as the fallback for anonymous callers
	store := credentials.NewMemoryStore(map[string]string{"token_admin": "adm"})
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		gotURL = req.URL.String()
		gotAuth = req.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[{"id":"1"},{"id":"2"}]`))
	}, store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leave/requests?role=all&status=cancelled", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/leave/admin/requests?status=cancelled", gotURL)
	assert.Equal(t, "Bearer adm", gotAuth)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `descriptor_builds_total{route="requests"} 1`)
	assert.Contains(t, w.Body.String(), `credential_resolutions_total{outcome="token_admin"} 1`)
}

func TestRouterLeaveRequestsForwardsCallerBearer(t *testing.T) {
	var gotAuth string
	store := credentials.NewMemoryStore(map[string]string{"admin_token": "stored-admin"})
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leave/requests", nil)
	req.Header.Set("Authorization", "Bearer student-own-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer student-own-token", gotAuth)
}

func TestRouterLeaveRequestsRejectsAnonymousWithoutSharedStore(t *testing.T) {
	called := false
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		called = true
	}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leave/requests", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"CREDENTIAL_MISSING"`)
	assert.False(t, called)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/descriptors/requests?token=own", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestRouterRedirect(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {}, nil)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.SessionClaims{Role: "student"}).SignedString([]byte("k"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/redirect", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"path":"/student/dashboard"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/redirect", nil))
	assert.Contains(t, w.Body.String(), `"path":"/login"`)
}

func TestRouterHealth(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
