package middleware

import (
	"bytes"
	"net/http"
	"time"

	rdb "inkwell/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

type cacheWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *cacheWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache serves GET responses from redis for up to ttl, keyed by
// path and query. Writes do not invalidate entries; a page may be stale
// for at most the ttl. A ttl of zero disables caching.
func PageCache(ttl time.Duration) gin.HandlerFunc {
	repo := &rdb.PageCacheRepository{}
	return func(c *gin.Context) {
		if ttl <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if body, ok, err := repo.Get(c.Request.Context(), key); err == nil && ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}

		cw := &cacheWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		if cw.Status() == http.StatusOK {
			_ = repo.Set(c.Request.Context(), key, cw.buf.Bytes(), ttl)
		}
	}
}
