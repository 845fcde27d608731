// Package proxy runs the local development proxy: a CORS-permissive reverse
// proxy in front of the hosted backend, so browser-based frontends on other
// origins can talk to the API during development.
package proxy

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/aiutodesk/desk/internal/errors"
	"github.com/aiutodesk/desk/internal/log"
)

// Config holds proxy server configuration.
type Config struct {
	// Address is the listen address (e.g., ":3001").
	Address string

	// Upstream is the backend base URL all requests are forwarded to.
	Upstream string

	// ShutdownTimeout is the maximum time to wait for in-flight requests
	// to drain. Defaults to 10 seconds.
	ShutdownTimeout time.Duration

	Logger *log.Logger
}

// Server is the development proxy.
type Server struct {
	httpServer      *http.Server
	upstream        *url.URL
	shutdownTimeout time.Duration
	logger          *log.Logger
}

// NewServer builds the proxy for cfg. The upstream URL must be absolute.
func NewServer(cfg Config) (*Server, error) {
	upstream, err := url.Parse(cfg.Upstream)
	if err != nil || upstream.Scheme == "" || upstream.Host == "" {
		return nil, errors.New(errors.ErrCodeConfigInvalid, "upstream must be an absolute URL").
			WithSuggestion("Example: desk proxy --upstream https://aiutodesk-backend.onrender.com")
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger()
	}

	s := &Server{
		upstream:        upstream,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}

	reverse := httputil.NewSingleHostReverseProxy(upstream)
	baseDirector := reverse.Director
	reverse.Director = func(req *http.Request) {
		baseDirector(req)
		// The upstream routes by Host; keep it aligned with the target.
		req.Host = upstream.Host
	}
	reverse.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		s.logger.WithError(err).Error("upstream request failed", "path", r.URL.Path)
		w.WriteHeader(http.StatusBadGateway)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.withCORS(reverse),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// withCORS answers preflight requests directly and stamps permissive CORS
// headers on everything else before forwarding.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Accept, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		s.logger.Debug("proxying request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// Handler exposes the proxy handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the proxy until it is stopped. It returns
// http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("development proxy listening",
		"address", s.httpServer.Addr,
		"upstream", s.upstream.String())
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, waiting up to ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.httpServer.SetKeepAlivesEnabled(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
