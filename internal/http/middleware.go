package httpx

import (
	"net/http"
	"net/url"
	"time"

	"yatube/internal/auth"
)

const CookieName = "session_id"

// withSession validates the session cookie and, when it is live, puts the
// user id on the request context. Anonymous requests pass through untouched.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			if uid, exp, err2 := auth.UserFromSession(s.DB, c.Value); err2 == nil && exp.After(time.Now()) {
				r = r.WithContext(auth.WithUserID(r.Context(), uid))
			} else {
				s.Log.Debug().Str("sid", c.Value).Err(err2).Msg("session rejected")
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth sends anonymous visitors to the login page with a next
// parameter pointing back at the page they asked for.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFrom(r.Context()); !ok {
			http.Redirect(w, r, "/auth/login/?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRW struct {
	http.ResponseWriter
	status int
}

func (w *statusRW) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusRW{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.Log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// recoverPanics turns an unhandled fault into the generic 500 page.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.Log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				s.renderServerError(w, r)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
