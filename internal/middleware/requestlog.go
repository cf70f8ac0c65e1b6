package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type loggerKey struct{}

// Logger returns the request scoped logger stored by RequestLogger, or fallback.
func Logger(ctx context.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if l, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok {
		return l
	}
	return fallback
}

// RequestLogger assigns a request id, stores a logger carrying it in the
// context and logs one line per request.
func RequestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			entry := log.WithField("request_id", id)
			ctx := context.WithValue(r.Context(), loggerKey{}, logrus.FieldLogger(entry))

			start := time.Now()
			wrapped := wrap(w)
			next.ServeHTTP(wrapped, r.WithContext(ctx))

			fields := logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   wrapped.statusCode,
				"duration": time.Since(start).String(),
			}
			if wrapped.statusCode >= http.StatusInternalServerError {
				entry.WithFields(fields).Error("request failed")
				return
			}
			entry.WithFields(fields).Info("request")
		})
	}
}
