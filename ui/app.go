// Package ui exposes the analysis engine over HTTP. Every request gets an
// independent engine invocation; there is no cache or shared state between
// calls.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"datalens/internal"
	"datalens/internal/analysis"
	"datalens/internal/config"
	"datalens/ports"
)

// App represents the HTTP application
type App struct {
	router *chi.Mux
	engine *analysis.Engine
	repo   ports.AnalysisRepository
	cfg    *config.Config
	log    *internal.Logger
}

// NewApp creates a new HTTP application
func NewApp(cfg *config.Config, repo ports.AnalysisRepository) *App {
	app := &App{
		router: chi.NewRouter(),
		engine: analysis.NewEngine(),
		repo:   repo,
		cfg:    cfg,
		log:    internal.DefaultLogger,
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Post("/api/analyze", a.handleAnalyze)
	a.router.Post("/api/analyze/upload", a.handleAnalyzeUpload)

	a.router.Get("/api/analyses", a.handleListAnalyses)
	a.router.Get("/api/analyses/{id}", a.handleGetAnalysis)
	a.router.Delete("/api/analyses/{id}", a.handleDeleteAnalysis)
	a.router.Post("/api/analyses/{id}/reanalyze", a.handleReanalyze)
	a.router.Get("/api/analyses/{id}/report", a.handleAnalysisReport)

	a.router.Get("/health", a.handleHealth)
}

// Router returns the configured HTTP handler
func (a *App) Router() http.Handler {
	return a.router
}

// Serve starts the HTTP server on the configured port
func (a *App) Serve() error {
	addr := ":" + a.cfg.Server.Port
	a.log.Info("listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
