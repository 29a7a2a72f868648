package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront/internal/core"
	applog "storefront/internal/log"
)

// sanitizeInput removes control characters except tab, newline and
// carriage return. Surrounding whitespace is kept: draft values are stored
// exactly as typed.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// isHTMX reports whether the request was issued by htmx.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// parseEntityID reads the {id} path parameter.
func parseEntityID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &invalidIDError{raw: raw}
	}
	return id, nil
}

type invalidIDError struct{ raw string }

func (e *invalidIDError) Error() string { return "invalid entity id: " + strconv.Quote(e.raw) }

// lastNotification picks the toast to show in HX-Trigger. Every editor
// operation emits at most one, so this is the only one in practice.
func lastNotification(notes []core.Notification) (core.Notification, bool) {
	if len(notes) == 0 {
		return core.Notification{}, false
	}
	return notes[len(notes)-1], true
}

func hasErrorNotification(notes []core.Notification) bool {
	for _, n := range notes {
		if n.Kind == core.NotifyError {
			return true
		}
	}
	return false
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.FromContext(r.Context()).Error("JSON encode failed", applog.FieldError, err)
	}
}
