package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"bookcal/pkg/config"
	"bookcal/pkg/contracts"
	"bookcal/pkg/middleware"
)

// Application owns the HTTP server and its middleware chain. Health and
// readiness endpoints bypass the application middleware and get only
// recovery and logging.
type Application struct {
	cfg    *config.Config
	server *http.Server
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

func (a *Application) SetApp(handlers ...contracts.Handler) {
	appRouter := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(appRouter)
	}

	var appHandler http.Handler = appRouter
	appHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHandler)
	appHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHandler)
	appHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHandler)
	appHandler = middleware.RequestLogging(a.cfg.Log)(appHandler)
	appHandler = middleware.Recovery(a.cfg.Log)(appHandler)

	healthRouter := httprouter.New()
	health := newHealthHandler(a.cfg)
	health.RegisterRoutes(healthRouter)

	var healthHandler http.Handler = healthRouter
	healthHandler = middleware.RequestLogging(a.cfg.Log)(healthHandler)
	healthHandler = middleware.Recovery(a.cfg.Log)(healthHandler)

	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler)
	mux.Handle("/ready", healthHandler)
	mux.Handle("/", appHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.GracefulShutdown()
	a.cfg.Log.Info("Server stopped gracefully")
}
