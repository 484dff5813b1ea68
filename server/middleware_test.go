package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestLogging_SetsRequestID(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	wrapped := RequestLogging(zap.NewNop())(inner)

	first := httptest.NewRecorder()
	wrapped.ServeHTTP(first, httptest.NewRequest("GET", "/ping", nil))

	assert.Equal(t, http.StatusTeapot, first.Code)
	assert.NotEmpty(t, first.Header().Get("X-Request-ID"))

	second := httptest.NewRecorder()
	wrapped.ServeHTTP(second, httptest.NewRequest("GET", "/ping", nil))

	assert.NotEqual(t,
		first.Header().Get("X-Request-ID"),
		second.Header().Get("X-Request-ID"),
		"request IDs must be unique per request")
}
