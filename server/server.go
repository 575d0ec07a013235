// Package server exposes the game manager over HTTP+JSON, with a
// long-poll wait endpoint and a WebSocket event stream.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gyscos/coinched/domain"
)

// Server routes HTTP requests to a game manager.
type Server struct {
	cfg     Config
	manager *domain.GameManager
	mux     *http.ServeMux
}

// NewServer builds a server and its manager from the config.
func NewServer(cfg Config) *Server {
	s := &Server{
		cfg:     cfg,
		manager: domain.NewGameManager(cfg.ManagerOptions()),
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /join", s.handleJoin)
	s.mux.HandleFunc("POST /leave/{pid}", s.handleLeave)
	s.mux.HandleFunc("POST /pass/{pid}", s.handlePass)
	s.mux.HandleFunc("POST /coinche/{pid}", s.handleCoinche)
	s.mux.HandleFunc("POST /bid/{pid}", s.handleBid)
	s.mux.HandleFunc("POST /play/{pid}", s.handlePlay)
	s.mux.HandleFunc("GET /wait/{pid}/{eid}", s.handleWait)
	s.mux.HandleFunc("GET /hand/{pid}", s.handleHand)
	s.mux.HandleFunc("GET /trick/{pid}", s.handleTrick)
	s.mux.HandleFunc("GET /last_trick/{pid}", s.handleLastTrick)
	s.mux.HandleFunc("GET /scores/{pid}", s.handleScores)
	s.mux.HandleFunc("GET /pos/{pid}", s.handlePos)
	s.mux.HandleFunc("GET /ws/{pid}", s.handleWebSocket)
	s.mux.HandleFunc("/", s.handleHelp)
}

// Handler returns the routed handler, wrapped with CORS headers.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.mux.ServeHTTP)
}

// Start listens on the configured address and serves until failure.
func (s *Server) Start() error {
	log.Infof("listening on %s", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

// Stop terminates the manager's background work.
func (s *Server) Stop() {
	s.manager.Stop()
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warnf("writing response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors to HTTP statuses. Rules violations are
// client errors; a wait timeout is an empty success so clients simply
// re-poll.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrWaitTimeout):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrBadPlayerID):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrJoinTimeout):
		writeJSON(w, http.StatusRequestTimeout, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
}

// handleHelp documents the API on any unmatched route.
func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	help := map[string]any{
		"title": "coinched API",
		"routes": []string{
			"POST /join",
			"POST /leave/{pid}",
			"POST /pass/{pid}",
			"POST /coinche/{pid}",
			"POST /bid/{pid} {\"target\":\"80\",\"suit\":\"H\"}",
			"POST /play/{pid} {\"card\":\"8C\"}",
			"GET /wait/{pid}/{eid}",
			"GET /hand/{pid}",
			"GET /trick/{pid}",
			"GET /last_trick/{pid}",
			"GET /scores/{pid}",
			"GET /pos/{pid}",
			"GET /ws/{pid}",
		},
	}
	writeJSON(w, http.StatusNotFound, help)
}
