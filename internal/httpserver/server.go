// Package httpserver exposes the tracking workflow to the frontend.
package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/auth"
)

// Server wraps the gin engine behind a Start/Stop lifecycle.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer builds the router and binds all routes.
func NewServer(
	listenAddress string,
	corsOrigins []string,
	verifier auth.TokenVerifier,
	handlers *Handlers,
	logger *zap.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware(corsOrigins))

	engine.GET("/", handlers.health)

	api := engine.Group("/api")
	api.GET("/applications", handlers.listApplications)

	guarded := api.Group("")
	guarded.Use(bearerAuth(verifier))
	guarded.GET("/emails", handlers.listEmails)
	guarded.GET("/emails/:id", handlers.getEmail)
	guarded.POST("/applications/save/:id", handlers.saveApplication)
	guarded.POST("/applications/process-latest", handlers.processLatest)

	return &Server{
		httpServer: &http.Server{
			Addr:    listenAddress,
			Handler: engine,
		},
		logger: logger,
	}
}

// Start begins serving in the background.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("address", s.httpServer.Addr))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server failed", zap.Error(err))
		}
	}()
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.httpServer.Shutdown(ctx)
}
