package middleware

import (
	"net/http"

	"creatorvault/pkg/httperr"
	"creatorvault/pkg/logger"
)

// RecoverMiddleware converts panics into the generic 500 response. The real
// cause is logged with the correlation id; the client only sees the id.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				correlationID := CorrelationID(r.Context())
				logger.Sugar.Errorw("unhandled panic",
					"panic", rec,
					"correlation_id", correlationID,
					"method", r.Method,
					"path", r.URL.Path,
				)
				httperr.Write(w, correlationID, httperr.Internal())
			}
		}()
		next.ServeHTTP(w, r)
	})
}
