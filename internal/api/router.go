package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/samvad-hq/trends-proxy/internal/logger"
)

// TrendsPath is the public route of the proxy.
const TrendsPath = "/api/trends"

// NewRouter mounts the trends routes and the health probe.
func NewRouter(h *Handler, log logger.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(accessLog(logger.Ensure(log)))

	r.Get("/health", h.Health)
	r.Get(TrendsPath, h.Trends)
	r.Options(TrendsPath, h.Preflight)

	return r
}

func accessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.DebugObj("http request", "http_request", map[string]any{
				"request_id": chiMiddleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"elapsed_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
