// Package middleware holds the HTTP middlewares of the fake daemon.
package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	data *responseData
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.data.size += n
	return n, err
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	w.ResponseWriter.WriteHeader(status)
	w.data.status = status
}

// WithLogging returns a middleware that logs method, path, status, size and
// duration of each request to l. Query strings are left out since they carry
// search terms. A nil l discards the entries.
func WithLogging(l *zap.SugaredLogger) func(http.Handler) http.Handler {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			// handlers that never call WriteHeader answer 200
			data := &responseData{status: http.StatusOK}
			next.ServeHTTP(&loggingResponseWriter{ResponseWriter: w, data: data}, r)
			l.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", data.status,
				"size", data.size,
				"duration", time.Since(start),
			)
		})
	}
}
