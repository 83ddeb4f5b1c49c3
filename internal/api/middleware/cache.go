package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a best-effort response cache for hot public GET routes, keyed by
// the full request URI. A nil client disables it entirely; redis being down
// never fails a request.
func Cache(client *redis.Client, ttl time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.Named("middleware.cache")
	return func(next http.Handler) http.Handler {
		if client == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := "cache:" + r.URL.RequestURI()
			if body, err := client.Get(r.Context(), key).Bytes(); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}

			rec := &cacheRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK && rec.buf.Len() > 0 {
				if err := client.Set(r.Context(), key, rec.buf.Bytes(), ttl).Err(); err != nil {
					log.Debug("cache store failed", zap.String("key", key), zap.Error(err))
				}
			}
		})
	}
}

type cacheRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *cacheRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *cacheRecorder) Write(b []byte) (int, error) {
	if r.status == http.StatusOK {
		r.buf.Write(b)
	}
	return r.ResponseWriter.Write(b)
}
