package middleware

import (
	"context"
	"net/http"

	"guardian-vault-api/pkg/uid"
)

// contextKey keeps request-scoped values from colliding with other packages.
type contextKey string

// RequestIDKey is the context key the request identifier is stored under.
const RequestIDKey contextKey = "request_id"

// RequestID tags every request with an identifier for log correlation. A
// client-supplied X-Request-ID is honored; otherwise one is generated. The
// identifier is echoed back on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uid.New()
		}

		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), RequestIDKey, requestID)))
	})
}

// GetRequestID returns the request identifier, or "" outside the middleware.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
