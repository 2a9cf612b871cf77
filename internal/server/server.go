package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gamely-app/webclient/config"
	"github.com/gamely-app/webclient/internal/gamely"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wraps the HTTP server and router for the web frontend.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
}

// New constructs a Server with basic middleware and defaults.
func New(cfg config.Config) (*Server, error) {
	api := gamely.New(cfg.API.BaseURL)
	sessions := newRegistry(api)

	handler, err := NewHandler(api, sessions, cfg.CookieSecure)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", Healthz)
	handler.Routes(router)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	return s.httpServer.Close()
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
