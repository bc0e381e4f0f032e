package middleware

import (
	"net/http"

	"github.com/google/uuid"

	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
)

const requestIDHeader = "X-Request-Id"

// RequestID injects a request ID into the context and echoes it back in
// the response headers. An incoming X-Request-Id is reused.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := wrap.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
