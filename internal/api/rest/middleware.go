package rest

import (
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// RecoveryMiddleware turns handler panics into 500s instead of killing the
// connection.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[rest] ⚠️ panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				respondError(w, http.StatusInternalServerError, "Internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		log.Printf("[rest] %s %s %d %s", r.Method, r.URL.Path, recorder.status, time.Since(start))
	})
}

// CORSMiddleware allows the dashboard frontend to call the API from
// another origin.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Admin-Token")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AdminAuthMiddleware gates the admin subrouter on the X-Admin-Token
// header. With no token configured the admin surface is disabled outright.
func AdminAuthMiddleware(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				respondError(w, http.StatusForbidden, "Admin endpoints disabled: no ADMIN_TOKEN configured", nil)
				return
			}

			provided := r.Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				respondError(w, http.StatusUnauthorized, "Invalid admin token", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
