package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"storefront/internal/core"
	"storefront/internal/editor"
	applog "storefront/internal/log"
	"storefront/internal/middleware/ratelimit"
	"storefront/internal/middleware/security"
	"storefront/internal/middleware/trace"
	"storefront/internal/notify"
	"storefront/internal/session"
	appweb "storefront/web"
)

// Options wires the server to the rest of the application.
type Options struct {
	Logger   *applog.Logger
	Sessions *session.Store
	Hub      *notify.Hub
	// Schemas lists the editors in navigation order.
	Schemas []core.Schema

	RateLimitPerMinute   int
	NotificationDuration time.Duration
	// SecureCookies marks the session cookie Secure; set behind TLS.
	SecureCookies bool
}

type Server struct {
	http.Server
	templates *template.Template
	logger    *applog.Logger
	slog      *applog.StructuredLogger

	sessions *session.Store
	hub      *notify.Hub
	schemas  []core.Schema
	byKind   map[string]core.Schema

	rateLimiter     *ratelimit.Limiter
	traceMiddleware *trace.Middleware
	toastDuration   time.Duration
	secureCookies   bool
	startedAt       time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger:          logger,
		slog:            applog.NewStructuredLogger(logger),
		sessions:        opts.Sessions,
		hub:             opts.Hub,
		schemas:         opts.Schemas,
		byKind:          make(map[string]core.Schema, len(opts.Schemas)),
		rateLimiter:     ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		traceMiddleware: trace.NewMiddleware(logger, extractClientIP),
		toastDuration:   opts.NotificationDuration,
		secureCookies:   opts.SecureCookies,
		startedAt:       time.Now(),
	}
	for _, schema := range opts.Schemas {
		s.byKind[schema.Kind] = schema
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err)
	} else {
		s.templates = t
	}

	s.Handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.traceMiddleware.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(s.rateLimiter.Middleware(extractClientIP, s.onRateLimit))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", s.handleMetrics)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	r.Group(func(r chi.Router) {
		r.Use(security.NoStore)

		r.Get("/", s.handleIndex)
		r.Get("/ws/notifications", s.handleNotificationStream)
		r.Get("/api/editors/{kind}", s.handleEditorSnapshot)

		r.Route("/editors/{kind}", func(r chi.Router) {
			r.Get("/", s.handleEditorPage)
			r.Post("/draft", s.editorAction(parseDraft))
			r.Post("/submit", s.editorAction(parseSubmit))
			r.Post("/edit/{id}", s.editorAction(parseBeginEdit))
			r.Post("/delete/confirm", s.editorAction(fixed(editor.ConfirmDelete{})))
			r.Post("/delete/cancel", s.editorAction(fixed(editor.CancelDelete{})))
			r.Post("/delete/{id}", s.editorAction(parseRequestDelete))
		})
	})

	return r
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).Warn("Rate limit exceeded",
		applog.FieldClientIP, extractClientIP(r),
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	TooManyRequestsError().Write(w)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		// Websocket streams are hijacked connections that http.Server does
		// not track; closing the hub ends them.
		if s.hub != nil {
			s.hub.Close()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
