package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/oasisdoc/logger"
	"github.com/kbukum/oasisdoc/observability"
)

var quietPaths = map[string]bool{
	"/health": true,
	"/info":   true,
}

// RequestLogger logs every request with method, path, status and duration
// and records request metrics. Health and info probes are not logged but
// still counted. metrics may be nil.
func RequestLogger(log *logger.Logger, metrics *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := record(w)
			next.ServeHTTP(rec, r)
			duration, status := time.Since(start), rec.Status()

			metrics.RecordRequest(r.Context(), r.Method, r.URL.Path, status, duration)
			if quietPaths[r.URL.Path] {
				return
			}

			fields := map[string]interface{}{
				"method":             r.Method,
				"path":               r.URL.Path,
				"bytes":              rec.bytes,
				logger.FieldStatus:   status,
				logger.FieldDuration: duration.Milliseconds(),
			}
			logByStatus(log.WithContext(r.Context()), fields, status)
		})
	}
}

func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
