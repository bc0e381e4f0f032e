package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/beetracked/fleet-ops/internal/domain/models"
	"github.com/beetracked/fleet-ops/internal/domain/types"
	wrap "github.com/beetracked/fleet-ops/pkg/logger/wrapper"
)

const sessionIDHeader = "X-Session-Id"

// ValidateSession checks that the caller's session is still alive and
// refreshes its activity timestamp. The user comes from the verified
// token, the request body or the query string, in that order. Requests
// that identify no user at all pass through, so the frontend keeps
// working without logins.
func (m *Middleware) ValidateSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body := peekBody(r)

		userID := ""
		if u := models.UserFromContext(ctx); u != nil {
			userID = u.Username
		}
		if userID == "" {
			userID = stringField(body, "userId")
		}
		if userID == "" {
			userID = r.URL.Query().Get("userId")
		}
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		sessionID := r.Header.Get(sessionIDHeader)
		if sessionID == "" {
			sessionID = stringField(body, "sessionId")
		}
		if sessionID == "" {
			sessionID = r.URL.Query().Get("sessionId")
		}

		// No session id at all is tolerated, old clients never send one.
		if sessionID != "" && !m.sessions.IsValid(userID, sessionID) {
			m.log.Info(wrap.WithUserID(ctx, userID), "rejected expired or invalid session")
			err := writeJSON(w, http.StatusUnauthorized, envelope{
				"success": false,
				"error":   types.ErrSessionInvalid.Error(),
				"code":    types.SessionExpiredCode,
			}, nil)
			if err != nil {
				w.WriteHeader(500)
			}
			return
		}

		m.sessions.Touch(userID)
		next.ServeHTTP(w, r.WithContext(wrap.WithUserID(ctx, userID)))
	})
}

// peekBody reads and restores the request body so the handler can still
// decode it, and returns the top-level JSON object if there is one.
func peekBody(r *http.Request) map[string]any {
	if r.Body == nil || r.Method == http.MethodGet {
		return nil
	}

	data, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil
	}
	return body
}

func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}
