package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/core"
	"storefront/internal/editor"
	applog "storefront/internal/log"
)

// actionParser turns a request into the editor actions it stands for.
type actionParser func(r *http.Request, schema core.Schema) ([]editor.Action, error)

func parseDraft(r *http.Request, schema core.Schema) ([]editor.Action, error) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return DraftActions(p, schema), nil
}

// parseSubmit applies whatever the form posted before submitting, so a
// submit never races a pending draft update.
func parseSubmit(r *http.Request, schema core.Schema) ([]editor.Action, error) {
	actions, err := parseDraft(r, schema)
	if err != nil {
		return nil, err
	}
	return append(actions, editor.Submit{}), nil
}

func parseBeginEdit(r *http.Request, _ core.Schema) ([]editor.Action, error) {
	id, err := parseEntityID(r)
	if err != nil {
		return nil, err
	}
	return []editor.Action{editor.BeginEdit{ID: id}}, nil
}

func parseRequestDelete(r *http.Request, _ core.Schema) ([]editor.Action, error) {
	id, err := parseEntityID(r)
	if err != nil {
		return nil, err
	}
	return []editor.Action{editor.RequestDelete{ID: id}}, nil
}

func fixed(a editor.Action) actionParser {
	return func(*http.Request, core.Schema) ([]editor.Action, error) {
		return []editor.Action{a}, nil
	}
}

func (s *Server) lookupSchema(w http.ResponseWriter, r *http.Request) (core.Schema, bool) {
	kind := chi.URLParam(r, "kind")
	schema, ok := s.byKind[kind]
	if !ok {
		applog.FromContext(r.Context()).Debug("Unknown editor kind", applog.FieldEditorKind, kind)
		NotFoundError("Unknown editor: " + kind).Write(w)
		return core.Schema{}, false
	}
	return schema, true
}

// handleEditorPage renders the full page of one editor.
func (s *Server) handleEditorPage(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.lookupSchema(w, r)
	if !ok {
		return
	}
	ws := s.workspace(w, r)

	view, err := ws.View(schema.Kind)
	if err != nil {
		s.writeEditorError(w, r, err)
		return
	}

	s.writePage(w, r, "editor.html", pageData{
		Title:           schema.Title,
		Nav:             s.nav(ws.Counts(), schema.Kind),
		View:            &view,
		ToastDurationMs: s.toastDurationMs(),
	})
}

// handleEditorSnapshot returns the editor view as JSON.
func (s *Server) handleEditorSnapshot(w http.ResponseWriter, r *http.Request) {
	schema, ok := s.lookupSchema(w, r)
	if !ok {
		return
	}
	ws := s.workspace(w, r)

	view, err := ws.View(schema.Kind)
	if err != nil {
		s.writeEditorError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// editorAction runs the parsed actions against the session's editor and
// answers htmx with the re-rendered panel plus the toast. Plain form posts
// are redirected back to the editor page.
func (s *Server) editorAction(parse actionParser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schema, ok := s.lookupSchema(w, r)
		if !ok {
			return
		}

		actions, err := parse(r, schema)
		if err != nil {
			applog.FromContext(r.Context()).Warn("Invalid editor request",
				applog.FieldEditorKind, schema.Kind,
				applog.FieldError, err)
			BadRequestError(badRequestMessage(err)).Write(w)
			return
		}

		ws := s.workspace(w, r)
		var (
			notes     []core.Notification
			view      editor.View
			submitted bool
		)
		err = ws.Do(schema.Kind, func(e *editor.Editor) {
			for _, a := range actions {
				if _, ok := a.(editor.Submit); ok {
					submitted = true
				}
				notes = append(notes, e.Dispatch(r.Context(), a)...)
			}
			view = e.View()
		})
		if err != nil {
			s.writeEditorError(w, r, err)
			return
		}

		if !isHTMX(r) {
			http.Redirect(w, r, "/editors/"+schema.Kind, http.StatusSeeOther)
			return
		}

		// Draft updates only touch the form the user is typing into.
		if isDraftOnly(actions) {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		body, err := s.renderTemplate(r, "panel", view)
		if err != nil {
			InternalServerError("Could not render editor").Write(w)
			return
		}

		resp := NewHTMXResponse().
			BodyHTML(body).
			TriggerEditorChanged(schema.Kind, len(view.Rows))
		if n, ok := lastNotification(notes); ok {
			resp.Notify(n, s.toastDuration)
		}
		if submitted && hasErrorNotification(notes) {
			resp.Status(http.StatusUnprocessableEntity)
		}
		resp.Write(w)
	}
}

func isDraftOnly(actions []editor.Action) bool {
	for _, a := range actions {
		if _, ok := a.(editor.UpdateDraftField); !ok {
			return false
		}
	}
	return true
}

func badRequestMessage(err error) string {
	var idErr *invalidIDError
	if errors.As(err, &idErr) {
		return idErr.Error()
	}
	return "Invalid request body"
}

func (s *Server) writeEditorError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrUnknownKind) {
		NotFoundError("Unknown editor").Write(w)
		return
	}
	s.slog.LogError(r.Context(), "Editor operation failed", err, applog.ComponentEditor, applog.OpRender, nil)
	InternalServerError("Editor operation failed").Write(w)
}
