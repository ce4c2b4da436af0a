package engine

import (
	"skirmish-server/internal/domain"
	"skirmish-server/internal/systems"
)

// MaxAutoTurns ограничивает число автоматических ходов подряд
// (ходы ИИ и пропуск мертвых), чтобы цикл гарантированно завершался.
const MaxAutoTurns = 64

// Outcome - итог боя для сессии и внешних сервисов.
type Outcome struct {
	Finished bool     `json:"finished"`
	Winners  []string `json:"winners"`
}

// ResolveOutcome определяет, закончен ли бой.
// Если в бою есть сущности без игрока - это две стороны (игроки против ИИ),
// и бой закончен, когда одна из сторон полностью мертва.
// Если все сущности под игроками (PvP) - бой закончен, когда живых осталось не больше одного.
func ResolveOutcome(state domain.CombatState) Outcome {
	var players, others []string
	hasOthers := false
	for _, e := range state.OrderedEntities() {
		if !e.IsPlayerControlled {
			hasOthers = true
		}
		if !e.IsAlive() {
			continue
		}
		if e.IsPlayerControlled {
			players = append(players, e.ID)
		} else {
			others = append(others, e.ID)
		}
	}

	if !hasOthers {
		if len(players) <= 1 {
			return Outcome{Finished: true, Winners: nonNil(players)}
		}
		return Outcome{Winners: []string{}}
	}

	switch {
	case len(players) == 0:
		return Outcome{Finished: true, Winners: nonNil(others)}
	case len(others) == 0:
		return Outcome{Finished: true, Winners: players}
	default:
		return Outcome{Winners: []string{}}
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// TurnResult - результат хода в сессии.
type TurnResult struct {
	State   domain.CombatState
	Entries []domain.CombatLogEntry
	Outcome Outcome
}

// StartMatch создает состояние для живой сессии и сразу отыгрывает ходы ИИ,
// если первым ходит не игрок.
func StartMatch(entities []domain.Entity, seed domain.RngSeed, cfg Config) domain.CombatState {
	cfg = cfg.Normalize()
	state := CreateCombatState(entities, seed, cfg.Mode)
	return RunAutoTurns(state, cfg)
}

// Step - один полный ход: время -> действие -> передача хода.
func Step(state domain.CombatState, action domain.Action, cfg Config) domain.CombatState {
	cfg = cfg.Normalize()
	state = AdvanceTime(state, cfg.TickIntervalMs)
	state = ApplyAction(state, action, cfg).State
	return AdvanceTurn(state, cfg)
}

// RunAutoTurns отыгрывает ходы, не требующие игрока: мертвые пропускают ход,
// сущности без игрока действуют через systems.ChooseAction.
// Останавливается на ходе живого игрока, по завершении боя или по лимиту.
func RunAutoTurns(state domain.CombatState, cfg Config) domain.CombatState {
	cfg = cfg.Normalize()
	for i := 0; i < MaxAutoTurns; i++ {
		if ResolveOutcome(state).Finished {
			return state
		}
		current, ok := state.Entity(state.Initiative.Current())
		if !ok {
			return state
		}
		switch {
		case !current.IsAlive():
			state = AdvanceTurn(state, cfg)
		case !current.IsPlayerControlled:
			state = Step(state, systems.ChooseAction(state, current.ID), cfg)
		default:
			return state
		}
	}
	return state
}

// PlayTurn применяет ход игрока и все последующие автоматические ходы.
// Entries - записи лога, появившиеся за это время.
func PlayTurn(state domain.CombatState, action domain.Action, cfg Config) TurnResult {
	before := len(state.Log)
	next := RunAutoTurns(Step(state, action, cfg), cfg)

	entries := make([]domain.CombatLogEntry, len(next.Log)-before)
	copy(entries, next.Log[before:])
	return TurnResult{State: next, Entries: entries, Outcome: ResolveOutcome(next)}
}
