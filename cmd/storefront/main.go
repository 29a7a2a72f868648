package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/cli"
	"storefront/internal/editor"
	apphttp "storefront/internal/http"
	applog "storefront/internal/log"
	"storefront/internal/notify"
	"storefront/internal/session"
)

func main() {
	cli.LoadEnvFile()

	// Bootstrap logger for config errors; replaced once LOG_* are known.
	logger := cli.SetupLogger(nil)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg)

	schemas := catalog.All()
	for _, s := range schemas {
		if err := s.Validate(); err != nil {
			logger.Error("Invalid editor schema", applog.FieldEditorKind, s.Kind, applog.FieldError, err)
			os.Exit(1)
		}
	}

	hub := notify.NewHub(0, logger)
	sessions := session.NewStore(
		session.Config{TTL: cfg.SessionTTL, MaxSessions: cfg.MaxSessions},
		schemas,
		session.WithLogger(logger),
		session.WithEditorOptions(func(sessionID, kind string) []editor.Option {
			editorLogger := logger.With(applog.FieldSessionID, sessionID)
			return []editor.Option{
				editor.WithLogger(editorLogger),
				editor.WithNotifier(notify.Multi{
					notify.NewLogger(editorLogger, kind),
					hub.Topic(sessionID),
				}),
			}
		}),
	)

	cacheLogger := logger.WithComponent(applog.ComponentCache)
	cacheManager := cache.NewManager(func(removed int) {
		cacheLogger.Debug("Cache cleanup completed", "sessions_removed", removed)
	})
	cacheManager.Register(sessions.Cleaner())
	cacheManager.StartCleanup(cfg.CacheCleanupInterval)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Options{
		Logger:               logger,
		Sessions:             sessions,
		Hub:                  hub,
		Schemas:              schemas,
		RateLimitPerMinute:   cfg.RateLimitPerMinute,
		NotificationDuration: cfg.NotificationDuration,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting storefront admin server",
			"port", cfg.Port,
			"editors", len(schemas),
			"session_ttl", cfg.SessionTTL.String(),
			applog.FieldOperation, applog.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		cacheManager.Stop()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
