package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"syscall"
	"time"

	"spyglass/internal/domain"
	"spyglass/internal/logging"
	"spyglass/internal/ports"
)

const (
	// DefaultTTL is how long an artifact stays retrievable
	DefaultTTL = time.Hour
	// DefaultSweepInterval is how often expired artifacts are evicted
	DefaultSweepInterval = 30 * time.Minute
)

// ContentServer serves in-memory artifacts over loopback HTTP. Content is
// never written to disk and disappears when the process exits.
type ContentServer struct {
	store         *store
	ttl           time.Duration
	sweepInterval time.Duration

	mu       sync.Mutex
	httpSrv  *http.Server
	baseURL  string
	done     chan struct{}
	disposed bool
}

var _ ports.ArtifactStore = (*ContentServer)(nil)

// Info describes a started server
type Info struct {
	Port    int
	BaseURL string
}

// Option tweaks server construction
type Option func(*ContentServer)

// WithTTL overrides the artifact lifetime
func WithTTL(ttl time.Duration) Option {
	return func(s *ContentServer) { s.ttl = ttl }
}

// WithSweepInterval overrides how often the eviction pass runs
func WithSweepInterval(interval time.Duration) Option {
	return func(s *ContentServer) { s.sweepInterval = interval }
}

// NewContentServer creates a server that is not yet listening
func NewContentServer(opts ...Option) *ContentServer {
	s := &ContentServer{
		store:         newStore(),
		ttl:           DefaultTTL,
		sweepInterval: DefaultSweepInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds a loopback listener on port (0 picks a free port), launches
// the HTTP handler and the sweep loop, and returns the base URL
func (s *ContentServer) Start(port int) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpSrv != nil {
		return Info{}, domain.NewServerError(domain.CodeServerError,
			"server already started", nil)
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return Info{}, domain.NewServerError(domain.CodePortInUse,
				fmt.Sprintf("port %d is already in use", port), err)
		}
		return Info{}, domain.NewServerError(domain.CodeServerError,
			fmt.Sprintf("failed to listen on %s", addr), err)
	}

	boundPort := listener.Addr().(*net.TCPAddr).Port
	s.baseURL = fmt.Sprintf("http://127.0.0.1:%d", boundPort)

	mux := http.NewServeMux()
	mux.HandleFunc("/file/", s.handleFile)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleNotFound)

	srv := &http.Server{Handler: mux}
	s.httpSrv = srv
	s.done = make(chan struct{})

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Error("Content server error", "error", err)
		}
	}()

	go s.sweepLoop()

	logging.Logger.Info("Content server started", "url", s.baseURL, "ttl", s.ttl)

	return Info{Port: boundPort, BaseURL: s.baseURL}, nil
}

// Put stores content and returns its id and fetch URL. The server must be
// started first.
func (s *ContentServer) Put(content, filename string) (ports.PutResult, error) {
	s.mu.Lock()
	baseURL := s.baseURL
	started := s.httpSrv != nil
	s.mu.Unlock()

	if !started {
		return ports.PutResult{}, domain.NewServerError(domain.CodeServerError,
			"content server is not running", nil)
	}

	a, err := s.store.put(content, filename)
	if err != nil {
		return ports.PutResult{}, domain.NewServerError(domain.CodeServerError,
			"failed to store artifact", err)
	}

	logging.Logger.Debug("Artifact stored", "id", a.ID, "filename", filename, "bytes", len(content))

	return ports.PutResult{ID: a.ID, URL: baseURL + "/file/" + a.ID}, nil
}

// Count returns the number of live artifacts
func (s *ContentServer) Count() int {
	return s.store.count()
}

// Dispose stops the listener and the sweep loop. Idempotent.
func (s *ContentServer) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.disposed = true

	if s.done != nil {
		close(s.done)
	}
	if s.httpSrv != nil {
		if err := s.httpSrv.Close(); err != nil {
			logging.Logger.Warn("Failed to close content server", "error", err)
		}
		s.httpSrv = nil
	}

	s.store.clear()

	logging.Logger.Info("Content server stopped")
}

func (s *ContentServer) sweepLoop() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.store.sweep(s.ttl)
		case <-s.done:
			return
		}
	}
}

func (s *ContentServer) handleFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.notFound(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/file/")
	a, ok := s.store.get(id)
	if !ok {
		logging.Logger.Debug("Artifact not found", "id", id)
		s.notFound(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	fmt.Fprint(w, a.Content)
}

func (s *ContentServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.notFound(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"tempFiles": s.store.count(),
	})
}

func (s *ContentServer) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.notFound(w)
}

func (s *ContentServer) notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprint(w, "not found")
}
