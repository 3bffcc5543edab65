package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trialvo/trialvo-backend/internal/config"
	"github.com/trialvo/trialvo-backend/internal/model"
)

// run executes h behind mw and returns the recorder after echo's default
// error handling.
func run(t *testing.T, req *http.Request, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Any("/*", h, mw...)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

type lookupFunc func(ctx context.Context, id string) (model.Admin, error)

func (f lookupFunc) Lookup(ctx context.Context, id string) (model.Admin, error) { return f(ctx, id) }

func TestIdentity(t *testing.T) {
	_, ok := AdminFrom(context.Background())
	assert.False(t, ok)

	ctx := WithAdmin(context.Background(), model.Admin{ID: "a1", Role: model.RoleEditor})
	a, ok := AdminFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "a1", a.ID)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, "anon", userID(c))
	c.SetRequest(c.Request().WithContext(ctx))
	assert.Equal(t, "a1", userID(c))
}

func TestRequireRole(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	withRole := func(role string) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.SetRequest(c.Request().WithContext(WithAdmin(c.Request().Context(), model.Admin{ID: "a", Role: role})))
				return next(c)
			}
		}
	}

	rec := run(t, httptest.NewRequest(http.MethodDelete, "/x", nil), ok,
		withRole(model.RoleEditor), RequireRole(model.RoleSuperAdmin, model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = run(t, httptest.NewRequest(http.MethodDelete, "/x", nil), ok,
		withRole(model.RoleAdmin), RequireRole(model.RoleSuperAdmin, model.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = run(t, httptest.NewRequest(http.MethodGet, "/x", nil), ok, RequireRole(model.Roles...))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCacheKey(t *testing.T) {
	e := echo.New()
	mk := func(target string) echo.Context {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/api/products/:slug")
		return c
	}

	cfg := cacheConfig()
	a := cacheKeyFrom(cfg, mk("/api/products/fashion-store-pro"))
	b := cacheKeyFrom(cfg, mk("/api/products/gift-shop-starter"))
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^test:cache:[0-9a-f]{40}$`, a)
	assert.Equal(t, a, cacheKeyFrom(cfg, mk("/api/products/fashion-store-pro")))
}

func TestPayloadCodec(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 0})
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	mr, rdb := newRedis(t)
	require.NoError(t, mr.Set("test:cache:a", "1"))
	require.NoError(t, mr.Set("test:cache:b", "2"))
	require.NoError(t, mr.Set("test:rl:x", "3"))

	n, err := Purge(context.Background(), rdb, "test:cache")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, mr.Exists("test:cache:a"))
	assert.True(t, mr.Exists("test:rl:x"))
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{http.MethodGet: true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "test:cache",
		MaxBodyBytes: 1 << 20,
	}
}
