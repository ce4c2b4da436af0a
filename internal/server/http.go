// Package server - HTTP и WebSocket вход в сервер боёв.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"skirmish-server/internal/config"
	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
	"skirmish-server/internal/matchmaking"
	"skirmish-server/internal/network"
	"skirmish-server/internal/session"
	"skirmish-server/internal/version"
	"skirmish-server/pkg/logger"
)

type Server struct {
	cfg      *config.Config
	sessions *session.Manager
	hub      *network.Broadcaster
	feed     *matchmaking.Feed
	log      *logrus.Entry

	// Состояние песочницы POST /simulate живет между запросами
	simMu    sync.Mutex
	simState domain.CombatState

	// Боты живут до остановки сервера
	botCtx   context.Context
	stopBots context.CancelFunc

	router *gin.Engine
}

func New(cfg *config.Config, sessions *session.Manager, hub *network.Broadcaster, feed *matchmaking.Feed) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		hub:      hub,
		feed:     feed,
		log:      logger.Component("http"),
		simState: newSimulationState(),
	}
	s.botCtx, s.stopBots = context.WithCancel(context.Background())
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log), enableCORS())

	r.GET("/ws", s.handleWS)
	r.GET("/health", s.handleHealth)
	r.GET("/version", s.handleVersion)
	r.GET("/kits", s.handleKits)
	r.POST("/simulate", s.handleSimulate)
	r.POST("/matchmaking/matches", s.handleCreateMatch)

	debug := r.Group("/debug")
	{
		debug.GET("/sessions", s.handleListSessions)
		debug.GET("/sessions/:id", s.handleSessionState)
		debug.POST("/sessions/:id/bots", s.handleSpawnBot)
	}
	return r
}

// Handler - роутер целиком (для httptest).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run слушает порт до отмены контекста, затем мягко останавливается.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("Skirmish server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")
	s.stopBots()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func enableCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Разрешаем запросы с фронтенда
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// WebSocket живет долго, его логирует клиент
		if c.FullPath() == "/ws" {
			return
		}
		log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debug("HTTP request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "port": s.cfg.Server.Port})
}

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, version.Info())
}

// engineConfig - параметры движка сервера.
func (s *Server) engineConfig() engine.Config {
	return s.sessions.Config()
}
