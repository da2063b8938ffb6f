package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pointbreak45/Street-Eye/internal/api/handlers"
	"github.com/pointbreak45/Street-Eye/internal/config"
	"github.com/pointbreak45/Street-Eye/internal/services/analysis"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	server *http.Server

	healthHandler   *handlers.HealthHandler
	analysisHandler *handlers.AnalysisHandler
}

func NewServer(cfg *config.Config, svc *analysis.Service) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	return &Server{
		config:          cfg,
		router:          router,
		healthHandler:   handlers.NewHealthHandler(cfg, svc),
		analysisHandler: handlers.NewAnalysisHandler(svc),
	}
}

func (s *Server) Setup() error {
	s.setupMiddleware()

	s.setupRoutes()

	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
	}

	return nil
}

func (s *Server) Start() error {
	log.Info().Int("port", s.config.Port).Msg("Starting Street-Eye API")
	return s.server.ListenAndServe()
}

func (s *Server) Stop() error {
	log.Info().Msg("Stopping Street-Eye API")
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) GetServer() *http.Server {
	return s.server
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
