package systems

import (
	"skirmish-server/internal/domain"
	"skirmish-server/internal/kits"
)

// ChooseAction решает, что делает сущность без игрока.
// Цель - первый живой противник в порядке добавления (противник = другая сторона
// по IsPlayerControlled; если управляемы все, противники все остальные). Burst, если хватает CE и навык не запрещён в режиме,
// иначе обычная атака. Без цели - ожидание.
func ChooseAction(state domain.CombatState, actorID string) domain.Action {
	wait := domain.Action{ActorID: actorID, Type: domain.ActionWait}

	actor, ok := state.Entity(actorID)
	if !ok || !actor.IsAlive() {
		return wait
	}
	if StatusStacks(actor, domain.StatusBind) > 0 {
		return wait
	}

	ordered := state.OrderedEntities()
	freeForAll := allPlayerControlled(ordered)

	var target *domain.Entity
	for _, e := range ordered {
		if e.ID == actorID || !e.IsAlive() {
			continue
		}
		if !freeForAll && e.IsPlayerControlled == actor.IsPlayerControlled {
			continue
		}
		target = &e
		break
	}
	if target == nil {
		return wait
	}

	act := domain.Action{ActorID: actorID, TargetID: target.ID, Type: domain.ActionAttack}
	if canBurst(actor, state.Mode) {
		act.Type = domain.ActionBurst
	}
	return act
}

func canBurst(actor domain.Entity, mode domain.BattleMode) bool {
	if actor.CE.BurstCost <= 0 || actor.CE.Current < actor.CE.BurstCost {
		return false
	}
	return !kits.IsPrevented(actor.CharacterID, mode, kits.SkillBurst)
}

func allPlayerControlled(entities []domain.Entity) bool {
	for _, e := range entities {
		if !e.IsPlayerControlled {
			return false
		}
	}
	return len(entities) > 0
}
