package server

import (
	"context"
	"net/http"
	"time"

	"github.com/ojavier0506-ui/golf-carts/internal/auth"
	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
)

type contextKey string

const sessionKey contextKey = "session"

// statusRecorder captures the response status for the request log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// withSession resolves the session cookie, when present and valid, into the
// request context. It never rejects; gating is done per-route.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.sessions != nil {
			if c, err := r.Cookie(SessionCookie); err == nil {
				if sess, ok := s.sessions.Get(c.Value); ok {
					r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// session returns the resolved session, if any.
func (s *Server) session(r *http.Request) (auth.Session, bool) {
	sess, ok := r.Context().Value(sessionKey).(auth.Session)
	return sess, ok
}

// actor returns the identity history entries are attributed to.
func (s *Server) actor(r *http.Request) string {
	if sess, ok := s.session(r); ok {
		return sess.Username
	}
	return fleet.UnknownActor
}

// requireUser gates a handler behind any authenticated session.
// A no-op when the login gate is disabled.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.gated {
			if _, ok := s.session(r); !ok {
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "login required")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin gates a handler behind an admin session.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.gated {
			writeError(w, http.StatusNotFound, "AUTH_DISABLED", "user management requires the login gate")
			return
		}
		sess, ok := s.session(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "login required")
			return
		}
		if sess.Role != auth.RoleAdmin {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
