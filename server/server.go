package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"namenorm/database"
	"namenorm/dictionaries"
	"namenorm/internal/config"
	"namenorm/normalization"
	"namenorm/server/middleware"
)

// Server HTTP-сервер нормализации наименований
type Server struct {
	cfg        *config.Config
	store      *dictionaries.Store
	normalizer *normalization.Normalizer
	serviceDB  *database.ServiceDB
	engine     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer создает сервер с собранным роутером.
// serviceDB может быть nil: эндпоинты аудита ответят 503.
func NewServer(
	cfg *config.Config,
	store *dictionaries.Store,
	normalizer *normalization.Normalizer,
	serviceDB *database.ServiceDB,
) *Server {
	s := &Server{
		cfg:        cfg,
		store:      store,
		normalizer: normalizer,
		serviceDB:  serviceDB,
		logger:     slog.Default().With("component", "server"),
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.LoggerMiddleware(s.logger))
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.GzipMiddleware())
	engine.Use(middleware.RateLimitMiddleware(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst))

	api := engine.Group("/api")
	{
		api.POST("/normalize", s.handleNormalize)
		api.POST("/normalize/batch", s.handleNormalizeBatch)
		api.GET("/records/recent", s.handleRecentRecords)
		api.GET("/records/stats", s.handleRecordsStats)
		api.GET("/health", s.handleHealth)
	}

	return engine
}

// Engine возвращает роутер. Нужен тестам обработчиков.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run запускает сервер и блокируется до SIGINT/SIGTERM,
// затем выполняет graceful shutdown.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "port", s.cfg.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		s.logger.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}
