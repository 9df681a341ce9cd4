// Package server wires the HTTP API: gin routing, CORS, identity, metrics
// and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bigschedule/internal/config"
	"bigschedule/internal/identity"
	"bigschedule/internal/logging"
	"bigschedule/internal/server/handlers"
	"bigschedule/internal/server/middleware"
)

// Server is the Big Schedule HTTP server.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	logger     logging.Logger
	startTime  time.Time
	version    string
}

// Options collects the collaborators the server routes to.
type Options struct {
	Config  *config.Config
	Store   handlers.AgendaStore
	Drafter handlers.Drafter
	Version string
}

// New builds a configured server; call Start to begin serving.
func New(opts Options) *Server {
	cfg := opts.Config

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogging())
	engine.Use(middleware.Metrics())

	if cfg.Server.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{
			"Origin", "Content-Type", "Authorization", "X-Requested-With",
			identity.HeaderUserID, identity.HeaderUserName, identity.HeaderUserEmail,
		}
		corsConfig.AllowWebSockets = true
		engine.Use(cors.New(corsConfig))
	}

	server := &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      engine,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		},
		logger:    logging.NewComponentLogger("Server"),
		startTime: time.Now(),
		version:   opts.Version,
	}

	server.setupRoutes(opts)
	return server
}

func (s *Server) setupRoutes(opts Options) {
	agendaHandler := handlers.NewAgendaHandler(opts.Store)
	generateHandler := handlers.NewGenerateHandler(opts.Drafter)
	timelineHandler := handlers.NewTimelineHandler(opts.Store)
	userHandler := handlers.NewUserHandler(opts.Store)

	refresh := time.Duration(opts.Config.Timeline.RefreshInterval) * time.Second
	streamHandler := handlers.NewStreamHandler(opts.Store, refresh)

	api := s.engine.Group("/api")
	api.Use(middleware.JSONMiddleware())
	api.Use(identity.Middleware())

	api.GET("/health", s.handleHealth)
	api.GET("/me", userHandler.Me)

	// The frontend's existing routes keep their exact paths and shapes.
	api.GET("/agendas", agendaHandler.Get)
	api.PUT("/agendas", agendaHandler.Put)
	api.DELETE("/agendas", agendaHandler.Delete)
	api.POST("/openai", generateHandler.Post)

	agendas := api.Group("/agendas/:id")
	{
		agendas.GET("/timeline", timelineHandler.Get)
		agendas.GET("/timeline/stream", streamHandler.Stream)
		agendas.DELETE("/items/:itemId", agendaHandler.DeleteItem)
		agendas.GET("/shares", agendaHandler.ListShares)
		agendas.POST("/shares", agendaHandler.Share)
	}

	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

type healthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, handlers.APIResponse{
		Success: true,
		Data: healthResponse{
			Status:    "ok",
			Version:   s.version,
			Timestamp: time.Now(),
			Uptime:    time.Since(s.startTime).String(),
		},
	})
}

// Start serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.logger.Info("listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}
