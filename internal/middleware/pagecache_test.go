package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	rdb "inkwell/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedEngine(t *testing.T, ttl time.Duration, hits *int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	require.NoError(t, rdb.Init(mr.Addr(), "", 0))

	r := gin.New()
	r.GET("/page/", PageCache(ttl), func(c *gin.Context) {
		*hits++
		c.String(http.StatusOK, fmt.Sprintf("render %d", *hits))
	})
	r.GET("/missing/", PageCache(ttl), func(c *gin.Context) {
		*hits++
		c.String(http.StatusNotFound, "nope")
	})
	return r, mr
}

func fetch(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPageCacheServesSecondRequestFromCache(t *testing.T) {
	var hits int
	r, _ := cachedEngine(t, 20*time.Second, &hits)

	first := fetch(r, "/page/")
	require.Equal(t, http.StatusOK, first.Code)
	second := fetch(r, "/page/")
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestPageCacheKeyIncludesQuery(t *testing.T) {
	var hits int
	r, _ := cachedEngine(t, 20*time.Second, &hits)

	fetch(r, "/page/?page=1")
	fetch(r, "/page/?page=2")
	assert.Equal(t, 2, hits)
}

func TestPageCacheExpires(t *testing.T) {
	var hits int
	r, mr := cachedEngine(t, 20*time.Second, &hits)

	fetch(r, "/page/")
	mr.FastForward(21 * time.Second)
	fetch(r, "/page/")
	assert.Equal(t, 2, hits)
}

func TestPageCacheDisabledWithZeroTTL(t *testing.T) {
	var hits int
	r, _ := cachedEngine(t, 0, &hits)

	fetch(r, "/page/")
	fetch(r, "/page/")
	assert.Equal(t, 2, hits)
}

func TestPageCacheSkipsNon200(t *testing.T) {
	var hits int
	r, _ := cachedEngine(t, 20*time.Second, &hits)

	fetch(r, "/missing/")
	fetch(r, "/missing/")
	assert.Equal(t, 2, hits)
}
