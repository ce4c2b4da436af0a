package engine

import (
	"fmt"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/kits"
	"skirmish-server/internal/systems"
)

// Resolution - результат применения одного действия.
// Entry == nil, если действие ничего не изменило (нет актора/цели, актор мертв).
type Resolution struct {
	State domain.CombatState
	Entry *domain.CombatLogEntry
}

// ApplyAction применяет действие к состоянию и возвращает новое состояние.
// Входное состояние не изменяется. Некорректное с точки зрения игры действие
// не считается ошибкой: оно либо игнорируется, либо заменяется ожиданием.
func ApplyAction(state domain.CombatState, action domain.Action, cfg Config) Resolution {
	cfg = cfg.Normalize()

	actor, okActor := state.Entities[action.ActorID]
	target, okTarget := state.Entities[action.Target()]
	if !okActor || !okTarget || !actor.IsAlive() {
		return Resolution{State: state}
	}

	// Связанный актор может только ждать
	effective := action
	if systems.StatusStacks(actor, domain.StatusBind) > 0 && action.Type != domain.ActionWait {
		effective.Type = domain.ActionWait
	}

	rng, v := systems.NextRandom(state.Rng)
	variance := systems.Variance(v)

	skill := systems.ResolveSkill(actor, effective, cfg.Mode)
	if skill.Prevented {
		return rejected(state, rng, actor.ID, target.ID, effective.Type, "Skill prevented by PvP rules")
	}

	incoming := systems.MergeStatuses(skill.Statuses, systems.PassiveStatuses(actor, effective.Type))

	skillName, ok := action.Skill()
	if !ok {
		skillName = string(kits.SkillBasic)
	}
	combo := systems.UpdateCombo(actor.Combo, fmt.Sprintf("%s:%s", effective.Type, skillName), state.TimeMs, cfg.ComboDecayMs)

	if effective.Type == domain.ActionBurst && actor.CE.Current < actor.CE.BurstCost {
		return rejected(state, rng, actor.ID, target.ID, effective.Type, "Burst failed (insufficient CE)")
	}

	ceBase := skill.CEGain
	switch effective.Type {
	case domain.ActionCharge:
		ceBase = domain.CEGainCharge
	case domain.ActionWait, domain.ActionDefend:
		ceBase = domain.CEGainPassive
	}
	charge := systems.UpdateChargeMeter(actor.CE, ceBase+systems.Round(combo.Momentum*10))

	baseDamage := 0
	if effective.Type.IsOffensive() {
		baseDamage = systems.Damage(actor, target, skill.Multiplier, combo.Momentum, variance)
	}

	updatedTarget := target
	finalDamage := 0
	if baseDamage > 0 {
		updatedTarget, rng, finalDamage = systems.ApplyDefense(target, baseDamage, rng)
	}

	// Актор собирается из исходного состояния и пишется после цели:
	// при атаке на себя урон остаётся только в логе.
	updatedActor := systems.ApplyHealing(actor, skill.HealPercent).Clone()
	updatedActor.CE = charge
	updatedActor.Combo = combo
	updatedActor.Statuses = systems.MergeStatuses(updatedActor.Statuses, incoming)

	next := state.Clone()
	next.Entities[updatedTarget.ID] = updatedTarget
	next.Entities[updatedActor.ID] = updatedActor
	next.Rng = rng

	entry := domain.CombatLogEntry{
		Round:       state.Round,
		ActorID:     actor.ID,
		TargetID:    updatedTarget.ID,
		Action:      effective.Type,
		Delta:       -finalDamage,
		Description: describeAction(effective.Type, finalDamage),
	}
	next.Log = append(next.Log, entry)
	return Resolution{State: next, Entry: &entry}
}

// rejected - действие отклонено правилами: тратится только бросок разброса,
// в лог пишется причина.
func rejected(state domain.CombatState, rng domain.RngState, actorID, targetID string, t domain.ActionType, reason string) Resolution {
	next := state.Clone()
	next.Rng = rng
	entry := domain.CombatLogEntry{
		Round:       state.Round,
		ActorID:     actorID,
		TargetID:    targetID,
		Action:      t,
		Delta:       0,
		Description: reason,
	}
	next.Log = append(next.Log, entry)
	return Resolution{State: next, Entry: &entry}
}

func describeAction(t domain.ActionType, damage int) string {
	switch t {
	case domain.ActionAttack:
		return fmt.Sprintf("Attack hits for %d", damage)
	case domain.ActionDefend:
		return "Defend reduces incoming damage"
	case domain.ActionWait:
		return "Waits for an opening"
	case domain.ActionAbility:
		return fmt.Sprintf("Ability used for %d effect", damage)
	case domain.ActionCharge:
		return "Charges energy"
	case domain.ActionBurst:
		return fmt.Sprintf("Unleashes burst for %d", damage)
	default:
		return "Action resolved"
	}
}
