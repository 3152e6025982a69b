package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pandodao/card-transfer/core"
)

type sessionKey struct{}

func withSession(ctx context.Context, session *core.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func sessionFrom(ctx context.Context) *core.Session {
	session, _ := ctx.Value(sessionKey{}).(*core.Session)
	return session
}

func bearerToken(r *http.Request) string {
	const prefix = "Bearer "

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			s.renderError(w, r, core.ErrUnauthenticated)
			return
		}

		session, err := s.authz.Authenticate(r.Context(), token)
		if err != nil {
			s.renderError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	}

	return http.HandlerFunc(fn)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type pendingView struct {
	PendingToken string    `json:"pending_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		s.renderError(w, r, err)
		return
	}

	pending, err := s.authz.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, pendingView{
		PendingToken: pending.Token,
		ExpiresAt:    pending.ExpiresAt,
	})
}

type verifyRequest struct {
	PendingToken string `json:"pending_token"`
	Code         string `json:"code"`
}

type sessionView struct {
	SessionToken string    `json:"session_token"`
	Login        string    `json:"login"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decode(r, &req); err != nil {
		s.renderError(w, r, err)
		return
	}

	session, err := s.authz.Verify(r.Context(), req.PendingToken, req.Code)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, sessionView{
		SessionToken: session.Token,
		Login:        session.Login,
		ExpiresAt:    session.ExpiresAt,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authz.Logout(r.Context(), bearerToken(r)); err != nil {
		s.renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
