package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skirmish-server/internal/agent"
	"skirmish-server/pkg/api"
)

// /debug/sessions - список живых матчей
func (s *Server) handleListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, s.sessions.Sessions())
}

// /debug/sessions/:id - полное состояние матча, включая RNG и лог
func (s *Server) handleSessionState(c *gin.Context) {
	state, ok := s.sessions.Snapshot(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "match-not-found"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// /debug/sessions/:id/bots - посадить бота на место игрока
func (s *Server) handleSpawnBot(c *gin.Context) {
	matchID := c.Param("id")
	if _, ok := s.sessions.Snapshot(matchID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "match-not-found"})
		return
	}

	var req api.BotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bot := agent.NewBot(s.hub, s.sessions, matchID, req.UserID)
	go bot.Run(s.botCtx)

	c.JSON(http.StatusAccepted, gin.H{"connId": bot.ConnID, "entityId": bot.EntityID})
}
