package router

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/storefront-api/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	hits map[string]int64
	keys []string
	err  error
}

func (f *fakeCounter) hit(_ context.Context, key string, windowSeconds int) (int64, int64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	if f.hits == nil {
		f.hits = map[string]int64{}
	}
	f.hits[key]++
	f.keys = append(f.keys, key)
	return f.hits[key], 42, nil
}

func newRateLimitedEngine(counter WindowCounter, rule RateLimitRule, keyFunc RateLimitKeyFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(counter, rule, keyFunc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Locale", "en-US")
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(`{"email":" Test@Example.com "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("email")(c)
	require.Equal(t, "test@example.com|1.2.3.4", key)

	body, err := io.ReadAll(c.Request.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Test@Example.com")
}

func TestRateLimitMiddlewareWithoutCounter(t *testing.T) {
	r := newRateLimitedEngine(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP)
	for i := 0; i < 3; i++ {
		w := postLogin(r, `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"ok":true`)
	}
}

func TestLoginRateLimitRejectsAfterMaxAttempts(t *testing.T) {
	counter := &fakeCounter{}
	rule := LoginRateLimitRule(config.LoginRateLimitConfig{WindowSeconds: 300, MaxAttempts: 2})
	r := newRateLimitedEngine(counter.hit, rule, KeyByIPAndJSONField("email"))

	require.Contains(t, postLogin(r, `{"email":"a@example.com"}`).Body.String(), `"ok":true`)
	require.Contains(t, postLogin(r, `{"email":"a@example.com"}`).Body.String(), `"ok":true`)

	blocked := postLogin(r, `{"email":"a@example.com"}`)
	require.Equal(t, http.StatusOK, blocked.Code)
	require.Equal(t, "42", blocked.Header().Get("Retry-After"))
	require.Contains(t, blocked.Body.String(), `"status_code":429`)
	require.Contains(t, blocked.Body.String(), "42 seconds")

	other := postLogin(r, `{"email":"b@example.com"}`)
	require.Contains(t, other.Body.String(), `"ok":true`)
	require.Equal(t, "rate:login:a@example.com|10.0.0.1", counter.keys[0])
}

func TestRateLimitCounterFailureAborts(t *testing.T) {
	counter := &fakeCounter{err: errors.New("redis down")}
	rule := RegisterRateLimitRule(config.LoginRateLimitConfig{WindowSeconds: 60, MaxAttempts: 5})
	r := newRateLimitedEngine(counter.hit, rule, KeyByIP)

	w := postLogin(r, `{}`)
	require.Contains(t, w.Body.String(), `"status_code":500`)
	require.NotContains(t, w.Body.String(), `"ok":true`)
}

func TestResolveWaitSeconds(t *testing.T) {
	require.Equal(t, 30, resolveWaitSeconds(30, 60))
	require.Equal(t, 60, resolveWaitSeconds(-1, 60))
	require.Equal(t, 1, resolveWaitSeconds(0, 0))
}
