package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msomdec/items-api/internal/handler"
	"github.com/msomdec/items-api/internal/service"
)

func TestRecover_PanicBecomes500(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	handler.Recover(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Server error"}`, w.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	handler.SecurityHeaders(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRateLimit_KeyedByClientIP(t *testing.T) {
	limiter := service.NewTokenBucket(1)
	t.Cleanup(limiter.Stop)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := handler.RateLimit(limiter)(inner)

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5678"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	called := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
	})
	h := handler.RateLimit(nil)(inner)

	for i := 0; i < 5; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	}
	assert.Equal(t, 5, called)
}

func TestRateLimit_ForwardedHeadersIgnoredByDefault(t *testing.T) {
	srv := newTestServer(t, 1)
	creds := map[string]string{"email": "nobody@example.com", "password": "pw"}

	resp, _ := srv.do(t, http.MethodPost, "/users/login", creds, http.Header{"X-Forwarded-For": {"203.0.113.1"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodPost, "/users/login", creds, http.Header{"X-Forwarded-For": {"203.0.113.2"}})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodPost, "/users/login", creds, http.Header{"X-Real-IP": {"203.0.113.3"}})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimit_ForwardedHeadersUsedBehindProxy(t *testing.T) {
	srv := newTestServerWithProxy(t, 1, true)
	creds := map[string]string{"email": "nobody@example.com", "password": "pw"}

	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		resp, _ := srv.do(t, http.MethodPost, "/users/login", creds, http.Header{"X-Forwarded-For": {ip}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "ip %s", ip)
	}

	resp, _ := srv.do(t, http.MethodPost, "/users/login", creds, http.Header{"X-Forwarded-For": {"203.0.113.1"}})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
