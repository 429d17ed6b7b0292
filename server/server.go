// Package server exposes the analyzer over HTTP: one analysis endpoint
// plus health. Authorization is a static bearer token supplied by the
// deployment; there is no identity or account handling here.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/funcscope/funcscope/analysis"
)

const (
	// ServiceVersion reported by /health.
	ServiceVersion = "0.1.0"

	maxBodyBytes = 1 << 20

	readTimeout       = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownGrace     = 5 * time.Second
)

// Server wires the analyzer behind a gin engine.
type Server struct {
	analyzer *analysis.Analyzer
	logger   *slog.Logger
	token    string
}

type Option func(*Server)

// WithToken enables the bearer-token gate. An empty token leaves the
// server open.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithAnalyzer(a *analysis.Analyzer) Option {
	return func(s *Server) {
		if a != nil {
			s.analyzer = a
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		analyzer: analysis.NewAnalyzer(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the engine with recovery, request IDs, body limits, and
// the optional auth gate on the analysis route.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestIDMiddleware())

	r.GET("/health", s.handleHealth)

	v1 := r.Group("/v1", s.authMiddleware(), limitBody())
	v1.POST("/analyze", s.handleAnalyze)
	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr, "auth", s.token != "")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		getOrCreateRequestID(c)
		c.Next()
	}
}

// authMiddleware enforces the configured bearer token; with no token
// configured every caller is authorized.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.token == "" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		got, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || got != s.token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "missing or invalid bearer token",
				Code:  "UNAUTHORIZED",
			})
			return
		}
		c.Next()
	}
}

func limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}

// getOrCreateRequestID gets or creates a request ID.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
