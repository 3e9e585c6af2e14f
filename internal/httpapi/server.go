package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campushot/server/internal/config"
	"github.com/campushot/server/internal/engagement"
	"github.com/campushot/server/internal/logging"
	"github.com/campushot/server/internal/trending"
)

// Server is the HTTP surface consumed by the UI layer
type Server struct {
	engagementSvc *engagement.Service
	trendingSvc   *trending.Service
	defaults      config.TrendingConfig
	logger        *logging.Logger
	server        *http.Server
}

// New creates a new HTTP server
func New(engagementSvc *engagement.Service, trendingSvc *trending.Service, defaults config.TrendingConfig, logger *logging.Logger) *Server {
	return &Server{
		engagementSvc: engagementSvc,
		trendingSvc:   trendingSvc,
		defaults:      defaults,
		logger:        logger,
	}
}

// Start registers routes and serves until Shutdown
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	hotAPI := NewHotAPI(s.engagementSvc, s.trendingSvc, s.defaults, s.logger)
	hotAPI.RegisterRoutes(mux, s.middleware)

	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.logger.Info("HTTP API server starting", logging.WithField("addr", addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// middleware applies CORS headers and tags each request with an id
func (s *Server) middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		s.logger.Debug("Request", logging.WithFields(map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": requestID,
		}))

		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
