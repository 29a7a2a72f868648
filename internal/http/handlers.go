package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	applog "storefront/internal/log"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady reports whether templates and the session store are usable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.sessions == nil {
		checks["sessions"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["sessions"] = map[string]any{
			"active": s.sessions.Len(),
			"status": "ok",
		}
	}

	checks["editors"] = len(s.schemas)
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.rateLimiter.ActiveClients(),
		"status":         "ok",
	}

	writeJSON(w, r, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics provides application metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	traceMetrics := s.traceMiddleware.GetMetrics()
	rateLimitMetrics := s.rateLimiter.GetMetrics()
	sessions := 0
	if s.sessions != nil {
		sessions = s.sessions.Len()
	}

	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Requests rejected by the rate limiter\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", rateLimitMetrics.TotalHits)

	fmt.Fprintf(w, "# HELP rate_limit_clients Clients tracked by the rate limiter\n")
	fmt.Fprintf(w, "# TYPE rate_limit_clients gauge\n")
	fmt.Fprintf(w, "rate_limit_clients %d\n\n", rateLimitMetrics.ClientCount)

	fmt.Fprintf(w, "# HELP editor_sessions_active Live editor sessions\n")
	fmt.Fprintf(w, "# TYPE editor_sessions_active gauge\n")
	fmt.Fprintf(w, "editor_sessions_active %d\n\n", sessions)

	fmt.Fprintf(w, "# HELP app_uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE app_uptime_seconds gauge\n")
	fmt.Fprintf(w, "app_uptime_seconds %.0f\n", time.Since(s.startedAt).Seconds())
}

// handleIndex lists the editors with their current sizes.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	ws := s.workspace(w, r)

	s.writePage(w, r, "index.html", pageData{
		Title:           "Dashboard",
		Nav:             s.nav(ws.Counts(), ""),
		ToastDurationMs: s.toastDurationMs(),
	})
}

// handleNotificationStream streams the session's toasts over a websocket.
func (s *Server) handleNotificationStream(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "notification stream disabled", http.StatusNotFound)
		return
	}
	ws := s.workspace(w, r)
	logger := applog.FromContext(r.Context()).WithComponent(applog.ComponentNotify)

	logger.Debug("Notification stream opened", applog.FieldSessionID, ws.ID())
	err := s.hub.Stream(w, r, ws.ID())
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Notification stream ended with error",
			applog.FieldSessionID, ws.ID(),
			applog.FieldError, err)
		return
	}
	logger.Debug("Notification stream closed", applog.FieldSessionID, ws.ID())
}
