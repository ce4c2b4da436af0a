package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
	"skirmish-server/internal/kits"
	"skirmish-server/pkg/api"
)

// defaultSimulationRounds - лимит раундов, если клиент его не передал.
const defaultSimulationRounds = 10

var simulationSeed = domain.RngSeed{Seed: 1337}

func newSimulationState() domain.CombatState {
	return engine.CreateCombatState([]domain.Entity{
		{
			ID: "player-1", Name: "Hero", IsPlayerControlled: true,
			Stats: domain.Stats{Health: 30, Attack: 8, Defense: 3, Speed: 6},
		},
		{
			ID: "enemy-1", Name: "Goblin",
			Stats: domain.Stats{Health: 18, Attack: 5, Defense: 2, Speed: 4},
		},
	}, simulationSeed, domain.ModePvE)
}

// POST /simulate - прогоняет действия по серверной песочнице и сохраняет результат.
func (s *Server) handleSimulate(c *gin.Context) {
	var req api.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := s.engineConfig().WithMode(domain.ModePvE)
	cfg.MaxRounds = defaultSimulationRounds
	if req.MaxRounds != nil {
		cfg.MaxRounds = *req.MaxRounds
	}

	s.simMu.Lock()
	result := engine.SimulateRound(s.simState, req.Actions, cfg)
	s.simState = result.State
	s.simMu.Unlock()

	s.log.WithField("actions", len(req.Actions)).WithField("completed", result.Completed).Debug("Simulation applied")
	c.JSON(http.StatusOK, result)
}

// GET /kits
func (s *Server) handleKits(c *gin.Context) {
	all := kits.All()
	out := make([]api.KitView, 0, len(all))
	for _, k := range all {
		out = append(out, api.KitView{
			ID:          k.ID,
			Title:       k.Title,
			Description: k.Description,
			BaseStats:   k.BaseStats,
			Charged:     k.Charged.Name,
			Burst:       k.Burst.Name,
			BurstCost:   k.Burst.BurstCost,
		})
	}
	c.JSON(http.StatusOK, out)
}
