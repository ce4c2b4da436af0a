package engine

import (
	"skirmish-server/internal/domain"
	"skirmish-server/internal/systems"
)

// AdvanceTurn передает ход следующему в порядке инициативы.
// На переходе через конец списка начинается новый раунд. Порядок каждый раз
// пересчитывается заново по всем сущностям (включая мертвых), индекс при этом
// просто сдвигается на единицу.
func AdvanceTurn(state domain.CombatState, cfg Config) domain.CombatState {
	cfg = cfg.Normalize()
	next := state.Clone()
	next.Mode = cfg.Mode

	n := len(state.Initiative.Order)
	if n == 0 {
		return next
	}

	idx := (state.Initiative.CurrentIndex + 1) % n
	if idx == 0 {
		next.Round++
	}
	next.Initiative = systems.CreateInitiative(next.OrderedEntities())
	next.Initiative.CurrentIndex = idx
	return next
}

// AdvanceTime прокручивает статусы всех сущностей на deltaMs в порядке добавления.
// Один общий RNG проходит через все тики по очереди.
func AdvanceTime(state domain.CombatState, deltaMs int64) domain.CombatState {
	next := state.Clone()
	rng := state.Rng
	for _, id := range state.EntityOrder {
		e, ok := state.Entities[id]
		if !ok {
			continue
		}
		var logs []domain.CombatLogEntry
		e, rng, logs = systems.ApplyStatusTicks(e, deltaMs, rng, state.Round)
		next.Entities[id] = e
		next.Log = append(next.Log, logs...)
	}
	next.Rng = rng
	next.TimeMs = state.TimeMs + deltaMs
	return next
}

// SimulationResult - итог пакетной симуляции.
type SimulationResult struct {
	State     domain.CombatState `json:"state"`
	Completed bool               `json:"completed"`
}

// SimulateRound применяет список действий по порядку: время -> действие -> ход.
// Останавливается, как только бой завершён (нет живых игроков, нет живых
// противников или превышен лимит раундов). Остальные действия отбрасываются.
func SimulateRound(state domain.CombatState, actions []domain.Action, cfg Config) SimulationResult {
	cfg = cfg.Normalize()
	current := state.Clone()
	current.Mode = cfg.Mode

	for _, a := range actions {
		current = AdvanceTime(current, cfg.TickIntervalMs)
		current = ApplyAction(current, a, cfg).State
		current = AdvanceTurn(current, cfg)

		if roundComplete(current, cfg) {
			return SimulationResult{State: current, Completed: true}
		}
	}
	return SimulationResult{State: current, Completed: false}
}

func roundComplete(state domain.CombatState, cfg Config) bool {
	playersAlive, enemiesAlive := false, false
	for _, e := range state.Entities {
		if !e.IsAlive() {
			continue
		}
		if e.IsPlayerControlled {
			playersAlive = true
		} else {
			enemiesAlive = true
		}
	}
	return !playersAlive || !enemiesAlive || state.Round > cfg.MaxRounds
}
