package systems

import (
	"fmt"

	"skirmish-server/internal/domain"
)

// Статусы, чью длительность продлевает Afterglow
var afterglowExtends = map[domain.StatusType]bool{
	domain.StatusShield: true,
	domain.StatusRegen:  true,
	domain.StatusHaste:  true,
	domain.StatusDodge:  true,
}

// NormalizeStatus приводит стаки в [1, maxStacks] и подставляет базовую силу,
// если Potency не задана.
func NormalizeStatus(s domain.StatusEffect) domain.StatusEffect {
	d := s.Type.Defaults()
	if s.Potency == 0 {
		s.Potency = d.BasePotency
	}
	s.Stacks = clamp(s.Stacks, 1, d.MaxStacks)
	return s
}

// potencyOf - сила одного экземпляра статуса (с учётом значения по умолчанию).
func potencyOf(s domain.StatusEffect) float64 {
	if s.Potency == 0 {
		return s.Type.Defaults().BasePotency
	}
	return s.Potency
}

// StatusStacks - сумма стаков статуса на сущности.
func StatusStacks(e domain.Entity, t domain.StatusType) int {
	total := 0
	for _, s := range e.Statuses {
		if s.Type == t {
			total += s.Stacks
		}
	}
	return total
}

// StatusPotency - сумма potency*stacks по всем экземплярам статуса.
func StatusPotency(e domain.Entity, t domain.StatusType) float64 {
	total := 0.0
	for _, s := range e.Statuses {
		if s.Type == t {
			total += potencyOf(s) * float64(s.Stacks)
		}
	}
	return total
}

// MergeStatuses накладывает incoming на existing.
// Для уже имеющегося типа: стаки складываются с ограничением, длительность - максимум,
// сила берётся от нового эффекта. Новые типы добавляются в конец.
// Входные срезы не изменяются.
func MergeStatuses(existing, incoming []domain.StatusEffect) []domain.StatusEffect {
	combined := domain.CloneStatuses(existing)
	for _, raw := range incoming {
		n := NormalizeStatus(raw)
		idx := -1
		for i, cur := range combined {
			if cur.Type == n.Type {
				idx = i
				break
			}
		}
		if idx < 0 {
			combined = append(combined, n)
			continue
		}
		cur := combined[idx]
		cur.Stacks = clamp(cur.Stacks+n.Stacks, 1, n.Type.Defaults().MaxStacks)
		if n.DurationMs > cur.DurationMs {
			cur.DurationMs = n.DurationMs
		}
		cur.Potency = n.Potency
		combined[idx] = cur
	}
	return combined
}

// ApplyStatusTicks прокручивает статусы сущности на deltaMs.
// Burn и Regen меняют здоровье, Echo тянет число из RNG и бьёт по носителю.
// Истёкшие статусы удаляются, после чего Afterglow продлевает оставшиеся баффы.
func ApplyStatusTicks(e domain.Entity, deltaMs int64, rng domain.RngState, round int) (domain.Entity, domain.RngState, []domain.CombatLogEntry) {
	var logs []domain.CombatLogEntry
	updated := e.Clone()
	next := make([]domain.StatusEffect, 0, len(e.Statuses))

	for _, s := range e.Statuses {
		remaining := s.DurationMs - deltaMs
		potency := potencyOf(s)
		delta := 0

		switch s.Type {
		case domain.StatusBurn:
			delta = -Round(potency * float64(s.Stacks))
		case domain.StatusRegen:
			delta = Round(potency * float64(s.Stacks))
		case domain.StatusEcho:
			var v float64
			rng, v = NextRandom(rng)
			echo := Round((potency + float64(s.Stacks)) * (0.5 + v))
			delta -= echo
			target, _ := e.Tag("echo-target")
			logs = append(logs, domain.CombatLogEntry{
				Round:       round,
				ActorID:     e.ID,
				TargetID:    target,
				Action:      domain.ActionAbility,
				Delta:       -echo,
				Description: "Echo reverberates",
			})
		}

		if delta != 0 {
			updated.Stats = updated.Stats.WithDamage(-delta)
			logs = append(logs, domain.CombatLogEntry{
				Round:       round,
				ActorID:     e.ID,
				TargetID:    e.ID,
				Action:      domain.ActionWait,
				Delta:       delta,
				Description: fmt.Sprintf("%s tick", s.Type),
			})
		}

		if remaining > 0 {
			s.DurationMs = remaining
			next = append(next, s)
		}
	}

	for _, s := range next {
		if s.Type != domain.StatusAfterglow {
			continue
		}
		bonus := int64(Round(float64(deltaMs) * potencyOf(s)))
		for i := range next {
			if afterglowExtends[next[i].Type] {
				next[i].DurationMs += bonus
			}
		}
		break
	}

	updated.Statuses = next
	return updated, rng, logs
}
