package systems

import (
	"skirmish-server/internal/domain"
	"skirmish-server/internal/kits"
)

// SkillResult - параметры навыка, которым актор выполняет действие.
type SkillResult struct {
	Key         kits.SkillKey
	Multiplier  float64
	CEGain      int
	Statuses    []domain.StatusEffect
	HealPercent float64
	Prevented   bool
}

// SkillKeyFor определяет навык действия: явный metadata.skill или
// burst / charged (ability) / basic по типу.
func SkillKeyFor(a domain.Action) kits.SkillKey {
	if skill, ok := a.Skill(); ok {
		return kits.SkillKey(skill)
	}
	switch a.Type {
	case domain.ActionBurst:
		return kits.SkillBurst
	case domain.ActionAbility:
		return kits.SkillCharged
	default:
		return kits.SkillBasic
	}
}

// ResolveSkill подбирает множитель, прирост CE и статусы по киту актора.
// Без кита действие считается обычной атакой. Burst использует навык burst,
// всё остальное - заряженный навык кита.
func ResolveSkill(actor domain.Entity, a domain.Action, mode domain.BattleMode) SkillResult {
	key := SkillKeyFor(a)
	kit, ok := kits.Get(actor.CharacterID)
	if !ok {
		gain := domain.CEGainNoKit
		if a.Type == domain.ActionCharge {
			gain = domain.CEGainCharge
		}
		return SkillResult{Key: key, Multiplier: 1, CEGain: gain}
	}

	if kits.IsPrevented(kit.ID, mode, key) {
		return SkillResult{Key: key, Prevented: true}
	}

	skill := kit.Charged
	mult := domain.DefaultChargedMultiplier
	gain := domain.CEGainChargedSkill
	if key == kits.SkillBurst {
		skill = kit.Burst
		mult = domain.DefaultBurstMultiplier
		gain = -kit.Burst.BurstCost
	}
	if skill.BonusMultiplier != nil {
		mult = *skill.BonusMultiplier
	}
	if skill.CEGain != nil {
		gain = *skill.CEGain
	}

	return SkillResult{
		Key:         key,
		Multiplier:  mult,
		CEGain:      gain,
		Statuses:    domain.CloneStatuses(skill.StatusApplies),
		HealPercent: skill.HealPercent,
	}
}

// PassiveStatuses - эффекты пассивок кита, срабатывающих на этот тип действия.
func PassiveStatuses(actor domain.Entity, t domain.ActionType) []domain.StatusEffect {
	kit, ok := kits.Get(actor.CharacterID)
	if !ok {
		return nil
	}
	var out []domain.StatusEffect
	for _, p := range kit.Passives {
		if p.Matches(t) && p.Effect != nil {
			out = append(out, *p.Effect)
		}
	}
	return out
}
