package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/janhq/jan-translator/internal/config"
	"github.com/janhq/jan-translator/internal/domain/backend"
	"github.com/janhq/jan-translator/internal/infrastructure/auth"
	"github.com/janhq/jan-translator/internal/interfaces/httpserver/handlers"
	"github.com/janhq/jan-translator/internal/interfaces/httpserver/middlewares"
	"github.com/janhq/jan-translator/internal/interfaces/httpserver/routes"
	v1 "github.com/janhq/jan-translator/internal/interfaces/httpserver/routes/v1"
)

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// New constructs the sandbox backend with default middleware and routes.
func New(cfg *config.Config, log zerolog.Logger, service *backend.Service, validator *auth.Validator) *HttpServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middlewares.RequestID(log))
	engine.Use(middlewares.TracingMiddleware(cfg.ServiceName))
	engine.Use(middlewares.LoggingMiddleware(service.Redactor()))
	engine.Use(middlewares.MetricsMiddleware())

	handlerProvider := handlers.NewProvider(service, log)
	routeProvider := routes.NewProvider(v1.NewRoutes(handlerProvider, validator.Middleware(service.UserByUsername)))
	registerCoreRoutes(engine, cfg, routeProvider)

	return &HttpServer{
		cfg:    cfg,
		engine: engine,
		log:    log,
	}
}

// Handler exposes the engine for in-process callers.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured sandbox address until ctx is cancelled.
func (s *HttpServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.SandboxAddr())
	if err != nil {
		return err
	}
	return s.Serve(ctx, listener)
}

// Serve handles connections from listener and shuts down gracefully once ctx
// is cancelled.
func (s *HttpServer) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", listener.Addr().String()).Msg("HTTP server listening")
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("HTTP server error")
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("Context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config, routeProvider *routes.Provider) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.ServiceName,
			"status":  "ok",
			"message": "Welcome to the Intelligent Translator Backend!",
		})
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routeProvider.Register(engine)
}
