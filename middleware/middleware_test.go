package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/blog-api/auth"
	"github.com/dev-mohitbeniwal/blog-api/config"
	"github.com/dev-mohitbeniwal/blog-api/model"
	"github.com/dev-mohitbeniwal/blog-api/util"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRateConfig() config.RateLimitConfiguration {
	return config.RateLimitConfiguration{
		ClientIPHeader: "CF-Connecting-IP",
		FailOpen:       true,
		Buckets: map[string]config.Bucket{
			"general": {Limit: 100, Window: time.Hour},
			"auth":    {Limit: 5, Window: 15 * time.Minute},
		},
	}
}

func newLimitedRouter(t *testing.T, cfg config.RateLimitConfiguration, bucket string) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := gin.New()
	r.Use(CORS(), RateLimiter(util.NewRateLimiter(client), cfg, bucket))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r, mr
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterRejectsRequest101(t *testing.T) {
	r, _ := newLimitedRouter(t, testRateConfig(), "general")
	client := map[string]string{"CF-Connecting-IP": "203.0.113.7"}

	for i := 1; i <= 100; i++ {
		w := get(r, "/ping", client)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}
	w := get(r, "/ping", client)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "100", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	var body model.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Rate limit exceeded", body.Error)

	// Other clients have their own counter.
	w = get(r, "/ping", map[string]string{"CF-Connecting-IP": "203.0.113.8"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "99", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiterRetryAfterCountsDownWindow(t *testing.T) {
	r, mr := newLimitedRouter(t, testRateConfig(), "auth")
	client := map[string]string{"CF-Connecting-IP": "203.0.113.9"}

	for i := 1; i <= 5; i++ {
		require.Equal(t, http.StatusOK, get(r, "/ping", client).Code, "request %d", i)
	}
	w := get(r, "/ping", client)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "900", w.Header().Get("Retry-After"))

	mr.FastForward(12 * time.Minute)
	w = get(r, "/ping", client)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "180", w.Header().Get("Retry-After"))
}

func TestRateLimiterUnknownClient(t *testing.T) {
	r, mr := newLimitedRouter(t, testRateConfig(), "auth")
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/ping", nil).Code)
	assert.True(t, mr.Exists("ratelimit:auth:unknown"))
}

func TestRateLimiterUnknownBucketUsesGeneral(t *testing.T) {
	r, mr := newLimitedRouter(t, testRateConfig(), "nope")
	assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
	assert.True(t, mr.Exists("ratelimit:general:unknown"))
}

func TestRateLimiterStoreDown(t *testing.T) {
	cfg := testRateConfig()
	r, mr := newLimitedRouter(t, cfg, "general")
	mr.Close()
	assert.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)

	cfg.FailOpen = false
	r, mr = newLimitedRouter(t, cfg, "general")
	mr.Close()
	assert.Equal(t, http.StatusInternalServerError, get(r, "/ping", nil).Code)
}

func TestCORSPreflight(t *testing.T) {
	r, mr := newLimitedRouter(t, testRateConfig(), "general")

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, mr.Keys(), "preflight must not consume rate limit")

	w = get(r, "/ping", nil)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func newAuthRouter(issuer *auth.TokenIssuer, cfg config.AuthConfiguration) *gin.Engine {
	r := gin.New()
	handler := func(c *gin.Context) {
		p, _ := util.GetPrincipal(c)
		c.JSON(http.StatusOK, p)
	}
	r.GET("/me", RequireAuth(issuer), handler)
	r.GET("/admin", RequireAdmin(issuer, cfg), handler)
	return r
}

func TestRequireAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	r := newAuthRouter(issuer, config.AuthConfiguration{AdminAPIKey: "master"})
	token, err := issuer.Issue(7, "ada@example.com", model.RoleAuthor)
	require.NoError(t, err)

	var body model.Response
	w := get(r, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Authorization required", body.Error)

	w = get(r, "/me", map[string]string{"Authorization": "bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/me", map[string]string{"Authorization": "Bearer " + token + "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Invalid or expired token", body.Error)

	w = get(r, "/me", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	var principal model.Principal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &principal))
	assert.Equal(t, int64(7), principal.UserID)
}

func TestRequireAdmin(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	r := newAuthRouter(issuer, config.AuthConfiguration{AdminAPIKey: "master", AdminRoles: []string{model.RoleAdmin}})

	assert.Equal(t, http.StatusOK, get(r, "/admin", map[string]string{"X-API-Key": "master"}).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/admin", map[string]string{"X-API-Key": "wrong"}).Code)

	admin, err := issuer.Issue(1, "root@example.com", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, "/admin", map[string]string{"Authorization": "Bearer " + admin}).Code)

	author, err := issuer.Issue(2, "ada@example.com", model.RoleAuthor)
	require.NoError(t, err)
	w := get(r, "/admin", map[string]string{"Authorization": "Bearer " + author})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminDefaultRolesAdmitAuthors(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	r := newAuthRouter(issuer, config.AuthConfiguration{AdminAPIKey: "master", AdminRoles: []string{model.RoleAdmin, model.RoleAuthor}})

	author, err := issuer.Issue(2, "ada@example.com", model.RoleAuthor)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, "/admin", map[string]string{"Authorization": "Bearer " + author}).Code)
}

func TestRecoveryAndMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), Metrics(), Logger("CF-Connecting-IP"))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, http.StatusOK, get(r, "/ok", nil).Code)
}
