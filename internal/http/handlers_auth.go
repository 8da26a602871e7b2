package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cashflowin/internal/auth"
)

const sessionCookieName = "cashflowin_session"

type contextKey string

const identityKey contextKey = "identity"

// identityFrom returns the authenticated identity stored by requireAuth.
func identityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// requireAuth redirects unauthenticated requests to the login page.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			s.redirectToLogin(w, r)
			return
		}

		identity, err := auth.ParseSessionToken(s.sessionSecret, cookie.Value)
		if err != nil {
			slog.DebugContext(r.Context(), "Invalid session token", "error", err)
			s.clearSessionCookie(w)
			s.redirectToLogin(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	// htmx swaps cannot follow a plain 3xx into a full page
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderLogin(w, r, "")
	case http.MethodPost:
		s.processLogin(w, r)
	default:
		MethodNotAllowedError("GET, POST").Write(w)
	}
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, errorMsg string) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Error string
	}{Error: errorMsg}

	if err := s.templates.ExecuteTemplate(w, "login.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Login template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) processLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse login form error", "error", err)
		s.renderLogin(w, r, "Permintaan tidak valid")
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	password := r.Form.Get("password")

	identity, err := s.guard.CheckCredentials(r.Context(), name, password)
	if err != nil {
		s.metrics.LoginFailures.Add(1)
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrAccountInactive):
			w.WriteHeader(http.StatusUnauthorized)
			s.renderLogin(w, r, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Credential check failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			s.renderLogin(w, r, "Terjadi kesalahan, coba lagi")
		}
		return
	}

	token, err := auth.MintSessionToken(s.sessionSecret, time.Now(), identity)
	if err != nil {
		slog.ErrorContext(r.Context(), "Mint session token failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		s.renderLogin(w, r, "Terjadi kesalahan, coba lagi")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.InfoContext(r.Context(), "User logged in", "user", identity.Name, "role", identity.Role)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}

	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
