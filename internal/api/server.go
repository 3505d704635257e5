// Package api exposes the optimizer over HTTP. The API layer only decodes
// requests, calls the engine and serializes results; all placement logic
// lives in the engine package.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/loadwise/trailerpack/internal/apperrors"
	"github.com/loadwise/trailerpack/internal/engine"
	"github.com/loadwise/trailerpack/internal/logging"
	"github.com/loadwise/trailerpack/internal/model"
	"github.com/loadwise/trailerpack/internal/scenario"
)

// Server is the API server.
type Server struct {
	mux     *http.ServeMux
	version string
}

// NewServer creates a new API server.
func NewServer(version string) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		version: version,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /optimize", s.handleOptimize)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /demos", s.handleListDemos)
	s.mux.HandleFunc("GET /demos/{id}", s.handleGetDemo)
}

// handleOptimize handles POST /optimize.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.New().String()[:8]

	var req model.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		s.writeError(w, "VALIDATION_ERROR", errMessage(err), http.StatusBadRequest)
		return
	}

	result, err := engine.Solve(req)
	if err != nil {
		if apperrors.IsType(err, apperrors.TypeInput) {
			s.writeError(w, "VALIDATION_ERROR", errMessage(err), http.StatusBadRequest)
			return
		}
		// Overlap or bounds violations mean the packer is broken, not
		// that the input was infeasible.
		logging.Error("engine invariant violation",
			zap.String("request_id", requestID), zap.Error(err))
		s.writeError(w, "INTERNAL_ERROR", errMessage(err), http.StatusInternalServerError)
		return
	}

	logging.Info("optimize request served",
		zap.String("request_id", requestID),
		zap.Int("box_types", len(req.Boxes)),
		zap.Int("placed", result.Stats.TotalBoxesPlaced),
		zap.Bool("fits", result.Fits),
		zap.Duration("duration", time.Since(start)))

	s.writeJSON(w, result, http.StatusOK)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"status":  "healthy",
		"version": s.version,
	}, http.StatusOK)
}

// handleListDemos handles GET /demos.
func (s *Server) handleListDemos(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, scenario.Demos(), http.StatusOK)
}

// handleGetDemo handles GET /demos/{id}.
func (s *Server) handleGetDemo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	demo, ok := scenario.Demo(id)
	if !ok {
		s.writeError(w, "NOT_FOUND", "demo '"+id+"' not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, demo, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// errMessage strips the taxonomy prefix for client-facing messages.
func errMessage(err error) string {
	var e *apperrors.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ServeHTTP implements http.Handler with permissive CORS so browser
// frontends can call the API directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe(addr string) error {
	logging.Info("starting API server", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}
