package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skirmish-server/internal/matchmaking"
	"skirmish-server/pkg/api"
)

// Сколько ждем места в ленте, если менеджер не успевает разбирать события
const publishTimeout = 2 * time.Second

// POST /matchmaking/matches - вход для внешнего подборщика.
// Матч создается асинхронно, ответ содержит его ID.
func (s *Server) handleCreateMatch(c *gin.Context) {
	var req api.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match := matchmaking.NewMatch(req.Players, req.Queue)

	ctx, cancel := context.WithTimeout(c.Request.Context(), publishTimeout)
	defer cancel()
	if err := s.feed.Publish(ctx, match); err != nil {
		s.log.WithError(err).WithField("match_id", match.ID).Warn("Failed to publish match")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "matchmaking unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"matchId":   match.ID,
		"queue":     match.Queue,
		"ticketIds": match.TicketIDs,
	})
}
