package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/book"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/explore"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/search"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/session"
	"github.com/bookburst/bookburst/service-api-go-stdlib/internal/user"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// RequestIDMiddleware attaches a request id and echoes it in X-Request-Id.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
				"request_id", w.Header().Get("X-Request-Id"),
			)
		})
	}
}

// SecurityHeadersMiddleware sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RecoverMiddleware converts panics into the opaque 500 payload. The panic
// value is logged server-side only.
func RecoverMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Errorw("panic in handler", "panic", rec, "path", r.URL.Path)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{"error": "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Deps carries the wired services the routes are built on.
type Deps struct {
	Users    *user.Service
	Sessions session.Manager
	Books    *book.Service
	Search   search.Provider
	Explore  *explore.Service
}

// RegisterRoutes mounts HTTP handlers using the standard library's
// http.ServeMux. Method-qualified patterns keep wiring simple and testable.
func RegisterRoutes(logger *zap.SugaredLogger, d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	authHandler := user.NewHandler(d.Users, d.Sessions, logger)
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)

	bookHandler := book.NewHandler(d.Books, logger)
	mux.HandleFunc("GET /api/books", session.RequireUser(d.Sessions, bookHandler.List))
	mux.HandleFunc("POST /api/books", session.RequireUser(d.Sessions, bookHandler.Create))
	mux.HandleFunc("PATCH /api/books/{id}", session.RequireUser(d.Sessions, bookHandler.Patch))
	mux.HandleFunc("DELETE /api/books/{id}", session.RequireUser(d.Sessions, bookHandler.Delete))

	searchHandler := search.NewHandler(d.Search, logger)
	mux.HandleFunc("GET /api/books/search", searchHandler.Search)

	exploreHandler := explore.NewHandler(d.Explore, logger)
	mux.HandleFunc("GET /api/explore/reviews", exploreHandler.Reviews)
	mux.HandleFunc("GET /api/explore/trending", exploreHandler.Trending)
	mux.HandleFunc("GET /api/timeline", session.RequireUser(d.Sessions, exploreHandler.Timeline))

	handler := RequestIDMiddleware()(LoggingMiddleware(logger)(SecurityHeadersMiddleware()(mux)))
	return RecoverMiddleware(logger)(handler)
}
