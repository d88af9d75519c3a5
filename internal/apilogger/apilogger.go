package apilogger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"github.com/denlabs/den/internal/errors"
)

const (
	// DefaultTarget is the upstream API the proxy forwards to.
	DefaultTarget = "https://api.anthropic.com"

	// DefaultPort is the port the proxy listens on inside the sandbox network.
	DefaultPort = 8000

	// maxCaptureBytes bounds how much of a response body is buffered for
	// preview extraction. Streamed bodies larger than this still pass
	// through untouched; only the captured copy is truncated.
	maxCaptureBytes = 1 << 20
)

// Config holds proxy configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8000")
	ListenAddr string

	// Project is the slug traffic is attributed to.
	Project string

	// LogRoot is the directory holding per-project log directories.
	LogRoot string

	// TargetURL is the upstream API URL. Defaults to DefaultTarget.
	TargetURL string

	// Logger for proxy operations
	Logger *slog.Logger

	// Transport is an optional HTTP transport for the reverse proxy.
	// Used in tests to supply a TLS-aware transport for test servers.
	Transport http.RoundTripper
}

// Proxy forwards model API requests upstream and records one JSONL entry
// per exchange.
type Proxy struct {
	config       *Config
	store        *Store
	router       *mux.Router
	reverseProxy *httputil.ReverseProxy
}

// New creates a new logging proxy.
func New(cfg *Config) (*Proxy, error) {
	if cfg.TargetURL == "" {
		cfg.TargetURL = DefaultTarget
	}
	target, err := url.Parse(cfg.TargetURL)
	if err != nil {
		return nil, errors.LoggerError("invalid upstream URL", err)
	}

	// Refuse plaintext upstreams so API keys never cross the wire unencrypted
	if target.Scheme != "https" {
		return nil, errors.LoggerError(fmt.Sprintf("upstream must use HTTPS (got %q)", target.Scheme), nil)
	}

	if cfg.Project == "" {
		cfg.Project = "default"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	store, err := NewStore(cfg.LogRoot, cfg.Project)
	if err != nil {
		return nil, err
	}

	p := &Proxy{
		config: cfg,
		store:  store,
	}

	p.reverseProxy = &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = target.Scheme
			req.URL.Host = target.Host
			req.Host = target.Host

			// Let the transport negotiate compression and decompress
			// transparently, so captured bodies are plaintext.
			req.Header.Del("Accept-Encoding")

			// Remove hop-by-hop headers
			req.Header.Del("Connection")
			req.Header.Del("Proxy-Connection")
			req.Header.Del("Proxy-Authenticate")
			req.Header.Del("Proxy-Authorization")
		},
		ErrorHandler: p.errorHandler,
	}
	if cfg.Transport != nil {
		p.reverseProxy.Transport = cfg.Transport
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", p.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/stats", p.handleStats).Methods(http.MethodGet)
	router.PathPrefix("/").HandlerFunc(p.handleProxy)
	p.router = router

	return p, nil
}

// Store returns the proxy's log store.
func (p *Proxy) Store() *Store {
	return p.store
}

// ServeHTTP implements http.Handler
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.router.ServeHTTP(w, r)
}

func (p *Proxy) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"project": p.config.Project,
	})
}

func (p *Proxy) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := summarizeFile(p.store.todayFile(), today())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary.Project = p.config.Project
	writeJSON(w, http.StatusOK, summary)
}

func (p *Proxy) handleProxy(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	r.ContentLength = int64(len(body))

	model, prompt := requestMeta(body)

	cw := &captureWriter{ResponseWriter: w, statusCode: http.StatusOK}
	p.reverseProxy.ServeHTTP(cw, r)

	if cw.upstreamErr {
		// The upstream never answered; there is no exchange to record.
		return
	}

	durationMS := time.Since(start).Milliseconds()
	preview, inputTokens, outputTokens := responseMeta(cw.body.Bytes())

	rec := Record{
		Timestamp:       time.Now(),
		Project:         p.config.Project,
		Model:           model,
		PromptPreview:   prompt,
		ResponsePreview: preview,
		InputTokens:     inputTokens,
		OutputTokens:    outputTokens,
		DurationMS:      durationMS,
		StatusCode:      cw.statusCode,
		Path:            r.URL.RequestURI(),
	}
	if err := p.store.Append(rec); err != nil {
		p.config.Logger.Warn("failed to write log entry", "error", err)
	}

	p.config.Logger.Info("proxied request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", cw.statusCode,
		"duration_ms", durationMS,
		"input_tokens", inputTokens,
		"output_tokens", outputTokens)
}

func (p *Proxy) errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	p.config.Logger.Error("proxy error", "error", err, "path", r.URL.Path)
	if cw, ok := w.(*captureWriter); ok {
		cw.upstreamErr = true
	}
	writeJSONError(w, http.StatusBadGateway, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// captureWriter passes the response through while keeping a bounded copy
// for preview extraction.
type captureWriter struct {
	http.ResponseWriter
	statusCode  int
	body        bytes.Buffer
	upstreamErr bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if remaining := maxCaptureBytes - cw.body.Len(); remaining > 0 {
		if len(b) <= remaining {
			cw.body.Write(b)
		} else {
			cw.body.Write(b[:remaining])
		}
	}
	return cw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer, which
// the reverse proxy needs for flushing streamed responses.
func (cw *captureWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

// Server wraps the proxy with lifecycle management
type Server struct {
	proxy  *Proxy
	server *http.Server
}

// NewServer creates a new proxy server
func NewServer(cfg *Config) (*Server, error) {
	proxy, err := New(cfg)
	if err != nil {
		return nil, err
	}

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      proxy,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 310 * time.Second, // model responses can take minutes
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		proxy:  proxy,
		server: server,
	}, nil
}

// Start starts the proxy server
func (s *Server) Start() error {
	s.proxy.config.Logger.Info("starting api logger",
		"addr", s.server.Addr,
		"project", s.proxy.config.Project,
		"upstream", s.proxy.config.TargetURL,
		"log_dir", s.proxy.store.Dir())
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.LoggerError("api logger failed", err)
	}
	return nil
}

// Stop stops the proxy server
func (s *Server) Stop() error {
	return s.server.Close()
}
