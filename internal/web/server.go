// Package web serves the dashboard: page handlers that read through the
// query cache and render templ components. Handlers derive views from cached
// raw responses on every render; nothing here mutates a cache entry.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/ecazzaniga/fnolwatch/internal/api"
	"github.com/ecazzaniga/fnolwatch/internal/query"
	"github.com/ecazzaniga/fnolwatch/internal/shared/middleware"
)

//go:embed static/*
var staticFiles embed.FS

// Config holds server-specific configuration.
type Config struct {
	Port         int
	PageSize     int
	PollInterval time.Duration
}

type Server struct {
	router *http.ServeMux
	cfg    Config
	client *api.Client
	cache  *query.Cache
}

func NewServer(cfg Config, client *api.Client, cache *query.Cache) *Server {
	s := &Server{
		router: http.NewServeMux(),
		cfg:    cfg,
		client: client,
		cache:  cache,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages
	s.router.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/fnols", http.StatusFound)
	})
	s.router.HandleFunc("GET /dashboard", s.handleDashboard)
	s.router.HandleFunc("GET /fnols", s.handleFNOLList)
	s.router.HandleFunc("GET /fnols/{id}", s.handleFNOLDetail)
	s.router.HandleFunc("GET /metrics", s.handleMetrics)
	s.router.HandleFunc("GET /ingest", s.handleIngestForm)
	s.router.HandleFunc("POST /ingest", s.handleIngestSubmit)
}

func (s *Server) Start(ctx context.Context) error {
	// Keep the always-on views warm while the server runs. Polling is
	// timer-driven only and stops when the last subscriber unsubscribes.
	stop := s.startPolling()
	defer stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      middleware.HTMX(s.router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("Starting server at http://localhost:%d\n", s.cfg.Port)

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Server shutdown error: %v\n", err)
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Graceful shutdown
	}
	return err
}
