// Package http provides the gin HTTP server, its middlewares and the metrics server.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	codecHTTP "github.com/allisson/textcodec/internal/codec/http"
	"github.com/allisson/textcodec/internal/codec/http/dto"
	"github.com/allisson/textcodec/internal/config"
	"github.com/allisson/textcodec/internal/metrics"
)

// Server represents the API HTTP server.
type Server struct {
	server       *http.Server
	logger       *slog.Logger
	codecHandler *codecHTTP.CodecHandler
	shuttingDown atomic.Bool
	stopLimiter  context.CancelFunc
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// newHTTPServer applies the timeouts shared by the API and metrics listeners.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// SetupRouter builds the gin engine with the middleware chain and routes.
// A nil metricsProvider disables HTTP metrics.
func (s *Server) SetupRouter(
	cfg *config.Config,
	codecHandler *codecHTTP.CodecHandler,
	metricsProvider *metrics.Provider,
) {
	s.codecHandler = codecHandler

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.CORSEnabled {
		if corsMiddleware := newCORSMiddleware(cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
			router.Use(corsMiddleware)
		}
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(BodyLimitMiddleware(dto.MaxRequestBodyBytes(cfg.CodecMaxPlaintextBytes)))
	if cfg.RateLimitEnabled {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopLimiter = cancel
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	if codecHandler != nil {
		codecHandler.RegisterRoutes(v1.Group("/codec"))
	}

	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return fmt.Errorf("router not configured")
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown marks the server as not ready and gracefully shuts it down.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.shuttingDown.Store(true)

	if s.stopLimiter != nil {
		s.stopLimiter()
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready once the codec is wired and until shutdown starts.
func (s *Server) readinessHandler(c *gin.Context) {
	codecStatus := "ok"
	if s.codecHandler == nil {
		codecStatus = "error"
	}

	if codecStatus != "ok" || s.shuttingDown.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"codec": codecStatus},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"codec": codecStatus},
	})
}
