package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"storefront/internal/editor"
	applog "storefront/internal/log"
)

var templateFuncs = template.FuncMap{
	"inc": func(n int) int { return n + 1 },
}

// navItem is one entry of the editor navigation.
type navItem struct {
	Kind   string
	Title  string
	Count  int
	Active bool
}

// pageData feeds index.html and editor.html.
type pageData struct {
	Title           string
	Nav             []navItem
	View            *editor.View
	ToastDurationMs int64
}

func (s *Server) nav(counts map[string]int, active string) []navItem {
	items := make([]navItem, len(s.schemas))
	for i, schema := range s.schemas {
		items[i] = navItem{
			Kind:   schema.Kind,
			Title:  schema.Title,
			Count:  counts[schema.Kind],
			Active: schema.Kind == active,
		}
	}
	return items
}

func (s *Server) toastDurationMs() int64 {
	if s.toastDuration <= 0 {
		return DefaultNotificationDuration.Milliseconds()
	}
	return s.toastDuration.Milliseconds()
}

// renderTemplate executes name into a buffer so a failing template never
// leaves a half-written response.
func (s *Server) renderTemplate(r *http.Request, name string, data any) ([]byte, error) {
	if s.templates == nil {
		return nil, fmt.Errorf("templates not loaded")
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.slog.LogError(r.Context(), "Template execution failed", err,
			applog.ComponentTemplate, applog.OpRender, applog.LogFields{"template": name})
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	body, err := s.renderTemplate(r, name, data)
	if err != nil {
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
		return
	}
	NewHTMXResponse().BodyHTML(body).Write(w)
}
