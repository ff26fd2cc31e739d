package cli

import (
	"context"
	"encoding/json"
	"fixturecheck/internal/core/ports"
	"fixturecheck/internal/shared/version"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// healthStatus is the JSON body of /health.
type healthStatus struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Runs        int       `json:"runs"`
	LastRun     time.Time `json:"last_run,omitempty"`
	Files       int       `json:"files"`
	Diagnostics int       `json:"diagnostics"`
	LastError   string    `json:"last_error,omitempty"`
}

// healthState tracks the outcome of the latest watch-mode run.
type healthState struct {
	mu     sync.Mutex
	status healthStatus
}

func newHealthState() *healthState {
	return &healthState{status: healthStatus{Status: "up", Version: version.Version}}
}

func (h *healthState) Record(result ports.CheckResult, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.status.Runs++
	h.status.LastRun = time.Now().UTC()
	if err != nil {
		h.status.Status = "degraded"
		h.status.LastError = err.Error()
		return
	}
	h.status.Status = "up"
	h.status.LastError = ""
	h.status.Files = len(result.Files)
	h.status.Diagnostics = len(result.Diagnostics)
}

func (h *healthState) Snapshot() healthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

type ObservabilityServer struct {
	addr     string
	health   *healthState
	server   *http.Server
	listener net.Listener
}

func NewObservabilityServer(addr string, health *healthState) *ObservabilityServer {
	return &ObservabilityServer{
		addr:   addr,
		health: health,
	}
}

// Start binds addr and serves /metrics and /health in the background.
func (s *ObservabilityServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := s.health.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		if status.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(status)
	})

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("observability server starting", "addr", listener.Addr().String())

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()

	return nil
}

// Addr is the bound address, useful when addr used port 0.
func (s *ObservabilityServer) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

func (s *ObservabilityServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
