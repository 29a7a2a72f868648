package http

import (
	"net/http"

	applog "storefront/internal/log"
	"storefront/internal/session"
)

// SessionCookie names the cookie that carries the workspace id.
const SessionCookie = "sf_session"

// workspace resolves the caller's workspace, issuing a new session cookie
// when the old one is missing or no longer known.
func (s *Server) workspace(w http.ResponseWriter, r *http.Request) *session.Workspace {
	var id string
	if c, err := r.Cookie(SessionCookie); err == nil {
		id = c.Value
	}

	ws, created := s.sessions.Resolve(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    ws.ID(),
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		applog.FromContext(r.Context()).Debug("Session started",
			applog.FieldSessionID, ws.ID(),
			"replaced", id != "")
	}
	return ws
}
