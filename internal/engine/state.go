package engine

import (
	"skirmish-server/internal/domain"
	"skirmish-server/internal/systems"
)

// CreateCombatState собирает стартовое состояние: раунд 1, время 0,
// сущности и их статусы нормализованы, порядок ходов посчитан.
// Повторяющиеся ID: побеждает последняя запись, позиция остаётся от первой.
func CreateCombatState(entities []domain.Entity, seed domain.RngSeed, mode domain.BattleMode) domain.CombatState {
	if mode == "" {
		mode = domain.ModePvE
	}

	state := domain.CombatState{
		Round:       1,
		Entities:    make(map[string]domain.Entity, len(entities)),
		Log:         []domain.CombatLogEntry{},
		Rng:         systems.NewRngState(seed),
		Mode:        mode,
		EntityOrder: make([]string, 0, len(entities)),
	}
	for _, e := range entities {
		n := domain.NormalizeEntity(e)
		for i, st := range n.Statuses {
			n.Statuses[i] = systems.NormalizeStatus(st)
		}
		if _, exists := state.Entities[n.ID]; !exists {
			state.EntityOrder = append(state.EntityOrder, n.ID)
		}
		state.Entities[n.ID] = n
	}
	state.Initiative = systems.CreateInitiative(state.OrderedEntities())
	return state
}
