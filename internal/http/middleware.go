package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/wavewonders/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKeyRequestID struct{}

// RequestIDMiddleware reuses an incoming X-Request-ID or mints a new one and
// echoes it on the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKeyRequestID{}).(string); ok {
		return id
	}
	return ""
}

// LoggingMiddleware attaches a request-scoped logger to the context and logs
// one line per request once the handler returns.
func LoggingMiddleware(base logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			log := base.WithFields(logrus.Fields{
				"http.req.id":     RequestIDFromContext(r.Context()),
				"http.req.method": r.Method,
				"http.req.path":   r.URL.Path,
			})
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := logger.WithLogger(r.Context(), log)

			defer func() {
				log.WithFields(logrus.Fields{
					"http.resp.status": ww.Status(),
					"http.resp.bytes":  ww.BytesWritten(),
					"http.resp.took":   time.Since(start).String(),
				}).WithContext(ctx).Debug("request complete")
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}
