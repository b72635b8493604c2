package middleware

import (
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// AccessLog пишет строку на каждый запрос; 5xx на уровне WARN
func AccessLog(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log := logger.Info
			if rec.status >= http.StatusInternalServerError {
				log = logger.Warn
			}
			log("%s %s - %d in %s, request_id=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start), RequestIDFromContext(r.Context()))
		})
	}
}
