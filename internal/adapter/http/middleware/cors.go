package middleware

import "net/http"

// defaultOrigins are the local dev frontends.
var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://127.0.0.1:5173",
	"http://127.0.0.1:3000",
}

// CORS allows the known frontend origins, with credentials. frontendURL
// adds the deployed frontend on top of the local dev origins.
func (m *Middleware) CORS(frontendURL string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(defaultOrigins)+1)
	for _, o := range defaultOrigins {
		allowed[o] = struct{}{}
	}
	if frontendURL != "" {
		allowed[frontendURL] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			w.Header().Add("Vary", "Origin")

			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Session-Id, X-Request-Id")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
