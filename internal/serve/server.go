// Package serve exposes project generation over HTTP for the web front-end.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/react-three/create/internal/engine"
	"github.com/react-three/create/internal/output"
	"github.com/react-three/create/internal/project"
	"github.com/rs/zerolog"
)

// Server provides the HTTP API of the generator
type Server interface {
	Start(ctx context.Context, port int) error
	Handler() http.Handler
}

// TokenExchanger trades an OAuth authorization code for an access token
type TokenExchanger interface {
	Exchange(ctx context.Context, code string) (string, error)
}

// ProjectPublisher pushes generated files to a new repository and returns its URL
type ProjectPublisher interface {
	Publish(ctx context.Context, name string, files project.FileMap, token string) (string, error)
}

// Config holds the dependencies and settings of a Server. Remote files in
// requests are only fetched from RemoteHosts, over https.
type Config struct {
	Exchanger      TokenExchanger
	Publisher      ProjectPublisher
	Fetcher        output.Fetcher
	AllowedOrigins []string
	RemoteHosts    []string
	Logger         zerolog.Logger
}

// server is the internal implementation of Server
type server struct {
	exchanger   TokenExchanger
	publisher   ProjectPublisher
	fetcher     output.Fetcher
	remoteHosts map[string]bool
	generator   *engine.Engine
	logger      zerolog.Logger
	metrics     *metrics

	// randomName picks repository names for callbacks without one
	randomName func() string

	router *gin.Engine
	server *http.Server
}

// NewServer creates a new server
func NewServer(cfg Config) Server {
	s := &server{
		exchanger:   cfg.Exchanger,
		publisher:   cfg.Publisher,
		fetcher:     cfg.Fetcher,
		remoteHosts: hostSet(cfg.RemoteHosts),
		generator:   engine.New(cfg.Logger),
		logger:      cfg.Logger,
		metrics:     newMetrics(),
		randomName:  RandomName,
	}
	s.router = s.routes(cfg.AllowedOrigins)
	return s
}

func (s *server) routes(origins []string) *gin.Engine {
	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(s.metrics.handler()))

	api := router.Group("/api/v1")
	api.GET("/health", s.handleHealth)
	api.GET("/github/callback", s.handleCallback)
	api.POST("/generate", s.handleGenerateZip)
	api.POST("/generate/files", s.handleGenerateFiles)

	return router
}

// Handler returns the routed HTTP handler
func (s *server) Handler() http.Handler {
	return s.router
}

// Start starts the server on the specified port
func (s *server) Start(ctx context.Context, port int) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	s.logger.Info().Int("port", port).Msg("server listening")

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("failed to serve: %w", err)
	}
}

func (s *server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		s.metrics.observeRequest(c.Request.Method, route, status, elapsed)

		event := s.logger.Debug()
		if status >= http.StatusInternalServerError {
			event = s.logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("route", route).
			Int("status", status).
			Dur("duration", elapsed).
			Msg("request handled")
	}
}
