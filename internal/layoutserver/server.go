// Package layoutserver exposes the layout generator over HTTP for editor and
// preview tooling.
package layoutserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/emberline/stagegen/internal/config"
	"github.com/emberline/stagegen/internal/stage/generate"
	"github.com/emberline/stagegen/internal/stage/schema"
)

// Server serves catalog listings, one-shot generation, and the live preview
// socket. It is run as a daemon component.
type Server struct {
	cfg     config.Config
	catalog *schema.Catalog
	gen     *generate.Generator
	logger  *zap.Logger
	cache   *layoutCache

	httpSrv *http.Server
}

// NewServer creates a Server generating from catalog.
//
// Precondition: catalog, gen, and logger must be non-nil.
func NewServer(cfg config.Config, catalog *schema.Catalog, gen *generate.Generator, logger *zap.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		catalog: catalog,
		gen:     gen,
		logger:  logger,
		cache:   newLayoutCache(),
	}
	s.httpSrv = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/stages", s.handleListStages)
	mux.HandleFunc("GET /api/stages/{id}", s.handleGetStage)
	mux.HandleFunc("POST /api/layouts/generate", s.handleGenerate)
	mux.HandleFunc("GET /ws/preview", s.handlePreview)
	return mux
}

// Serve begins serving and blocks until the listener closes.
func (s *Server) Serve() error {
	s.logger.Info("layout server listening",
		zap.String("addr", s.httpSrv.Addr),
	)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("layout server: %w", err)
	}
	return nil
}

// Shutdown gracefully closes the listener, bounded by the configured shutdown
// timeout.
func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Warn("layout server shutdown incomplete", zap.Error(err))
	}
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// The status line is already written; nothing to recover here.
		return
	}
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, map[string]string{"error": message})
}
