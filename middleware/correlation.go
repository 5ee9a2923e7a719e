package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const CorrelationIDKey contextKey = "correlationID"

// CorrelationID returns the request's correlation id, or "unknown" when the
// request never passed through CorrelationMiddleware.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return "unknown"
}

// CorrelationMiddleware tags every request with a unique id, exposed to
// handlers through the context and to clients through X-Correlation-ID.
func CorrelationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := uuid.NewString()

		ctx := context.WithValue(r.Context(), CorrelationIDKey, correlationID)

		// Set before the handler runs so the header survives WriteHeader.
		w.Header().Set("X-Correlation-ID", correlationID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
