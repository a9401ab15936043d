package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

// Config holds the HTTP server's listen address and optional CORS origin.
type Config struct {
	Addr       string
	CORSOrigin string
}

// DefaultConfig returns a Config listening on addr with no CORS origin.
func DefaultConfig(addr string) Config {
	return Config{Addr: addr}
}

// Server wires a GraphHandle to a small HTTP surface: POST /connect-nets
// routes a batch of nets, GET /stats reports the built graph's size.
type Server struct {
	cfg    Config
	handle *GraphHandle
	http   *http.Server
}

// NewServer builds a Server bound to handle. Build must already have been
// called on handle, or every request will fail with a precondition error.
func NewServer(cfg Config, handle *GraphHandle) *Server {
	s := &Server{cfg: cfg, handle: handle}
	mux := http.NewServeMux()
	mux.HandleFunc("/connect-nets", s.withMiddleware(s.handleConnectNets))
	mux.HandleFunc("/stats", s.withMiddleware(s.handleStats))
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe runs srv until it errors or the process is asked to stop.
func ListenAndServe(srv *Server) error {
	return srv.http.ListenAndServe()
}

// Shutdown gracefully stops srv, per net/http's drain-then-close contract.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.CORSOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		}
		start := time.Now()
		next(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	}
}

type connectNetsHTTPRequest struct {
	Nets    []netHTTP `json:"nets"`
	MaxNets int       `json:"max_nets,omitempty"`
}

func (s *Server) handleConnectNets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	var req connectNetsHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := ConnectNets(s.handle, ConnectNetsRequest{Nets: toNets(req.Nets), MaxNets: req.MaxNets})
	if err != nil {
		writeError(w, statusFor(CodeOf(err)), err)
		return
	}
	writeJSON(w, http.StatusOK, toWireViews(resp.Results))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.handle.ready() {
		writeError(w, statusFor(CodePrecondition), ErrNotBuilt)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"num_nodes": s.handle.NumNodes()})
}

func statusFor(code ErrorCode) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidPoint, CodeNotEnoughEndpoints:
		return http.StatusBadRequest
	case CodeCapacityExceeded:
		return http.StatusRequestEntityTooLarge
	case CodePrecondition:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: write response: %v", err)
	}
}
