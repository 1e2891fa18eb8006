package httpx

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"yatube/internal/auth"
	"yatube/internal/forms"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	data := &pageData{Title: "Sign up"}

	if r.Method == http.MethodGet {
		s.render(w, r, "auth_signup.html", data)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	data.Form = formVM{Email: email, Username: username}

	if err := auth.Register(s.DB, email, username, password); err != nil {
		msg := "Could not sign you up"
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			msg = "Email already taken"
		case errors.Is(err, auth.ErrUsernameTaken):
			msg = "Username already taken"
		default:
			s.Log.Warn().Err(err).Str("email", email).Msg("signup failed")
		}
		res := forms.Result{}
		res.Fail("signup", msg)
		data.Form.Errors = res.Errors
		s.render(w, r, "auth_signup.html", data)
		return
	}

	http.Redirect(w, r, "/auth/login/", http.StatusFound)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.FormValue("next"))
	if next == "" {
		next = safeNext(r.URL.Query().Get("next"))
	}
	data := &pageData{Title: "Log in", Form: formVM{Next: next}}

	if r.Method == http.MethodGet {
		s.render(w, r, "auth_login.html", data)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	data.Form.Email = email

	sid, uid, err := auth.Login(s.DB, email, password, s.Cfg.SessionLifetime)
	if err != nil {
		s.Log.Warn().Err(err).Str("email", email).Msg("login failed")
		res := forms.Result{}
		res.Fail("login", "Invalid email or password")
		data.Form.Errors = res.Errors
		s.render(w, r, "auth_login.html", data)
		return
	}
	s.Log.Info().Int64("uid", uid).Msg("login ok")

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.Cfg.SessionLifetime),
	})
	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		_ = auth.Logout(s.DB, c.Value)
		c.MaxAge = -1
		c.Path = "/"
		http.SetCookie(w, c)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// safeNext keeps the post-login redirect on this site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
