package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(ping func(context.Context) error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(RouterDeps{
		Logger:         zerolog.Nop(),
		Ping:           ping,
		CORSOrigins:    []string{"*"},
		MetricsEnabled: true,
	})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestWelcome(t *testing.T) {
	w := get(newTestRouter(nil), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	ok := newTestRouter(func(context.Context) error { return nil })
	assert.Equal(t, http.StatusOK, get(ok, "/health").Code)

	down := newTestRouter(func(context.Context) error { return errors.New("dial tcp: connection refused") })
	w := get(down, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(nil)
	get(r, "/")

	w := get(r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "playnext_http_requests_total"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(nil)

	for _, path := range []string{"/users/me", "/ratings", "/backlog", "/recommendations/user", "/users/me/recommendations"} {
		assert.Equal(t, http.StatusUnauthorized, get(r, path).Code, path)
	}
}
