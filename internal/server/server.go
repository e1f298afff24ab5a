// Package server exposes the trip catalog over HTTP with gin.
//
// Routes:
//
//	GET  /api/health        liveness plus catalog status
//	GET  /api/trips         one page of trips (q, sort, page, page_size)
//	GET  /api/trips/:id     a single trip
//	POST /api/reload        reload the catalog, bypassing the cache
//	GET  /data.json         the raw catalog document
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rshade/tripexplorer/internal/catalog"
	"github.com/rshade/tripexplorer/internal/engine"
)

// HTTP server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 20 * time.Second
	writeTimeout      = 20 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// CatalogStore is what the server needs from catalog.Store.
type CatalogStore interface {
	Current() *catalog.Snapshot
	Load(ctx context.Context) (*catalog.Snapshot, error)
	Reload(ctx context.Context) (*catalog.Snapshot, error)
}

// Options configures a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	PageSize       int
	Logger         zerolog.Logger
}

// Server serves the catalog API.
type Server struct {
	store    CatalogStore
	router   *gin.Engine
	addr     string
	pageSize int
	logger   zerolog.Logger
}

// New builds a Server and its routes.
func New(store CatalogStore, opts Options) *Server {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = engine.DefaultPageSize
	}

	s := &Server{
		store:    store,
		addr:     opts.Addr,
		pageSize: pageSize,
		logger:   opts.Logger,
	}
	s.router = s.newRouter(opts.AllowedOrigins)
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) newRouter(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(s.logger), Recovery(s.logger), CORS(allowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		s.logger.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/data.json", s.handleDocument)

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/reload", s.handleReload)

		trips := api.Group("/trips")
		trips.GET("", s.handleListTrips)
		trips.GET("/:id", s.handleGetTrip)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", lis.Addr().String()).Msg("server listening")
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	<-errCh
	return nil
}
