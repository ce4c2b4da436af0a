package systems

import "skirmish-server/internal/domain"

// Damage - расчёт базового урона до защиты цели.
//
//	weakened = attack * (1 - Weaken) * (1 + momentum)
//	base     = max(0, round(weakened * multiplier * variance - defense * 0.35))
func Damage(attacker, target domain.Entity, multiplier, momentum, variance float64) int {
	weakened := float64(attacker.Stats.Attack) *
		(1 - StatusPotency(attacker, domain.StatusWeaken)) *
		(1 + momentum)
	dmg := Round(weakened*multiplier*variance - float64(target.Stats.Defense)*0.35)
	if dmg < 0 {
		return 0
	}
	return dmg
}

// Variance переводит число из RNG в разброс урона [0.85, 1.15).
func Variance(v float64) float64 {
	return 0.85 + v*0.3
}

// ApplyDefense применяет Vulnerable и Shield цели, затем бросок Dodge.
// RNG тратится только если у цели есть Dodge.
func ApplyDefense(target domain.Entity, damage int, rng domain.RngState) (domain.Entity, domain.RngState, int) {
	shield := StatusPotency(target, domain.StatusShield)
	vulnerable := 1 + StatusPotency(target, domain.StatusVulnerable)
	dodge := StatusPotency(target, domain.StatusDodge)

	final := Round(float64(damage)*vulnerable - shield)
	if final < 0 {
		final = 0
	}

	if dodge > 0 {
		var v float64
		rng, v = NextRandom(rng)
		if v < dodge {
			final = 0
		}
	}

	out := target.Clone()
	out.Stats = out.Stats.WithDamage(final)
	return out, rng, final
}

// ApplyHealing лечит на долю от максимального здоровья.
func ApplyHealing(e domain.Entity, percent float64) domain.Entity {
	if percent == 0 || e.Stats.MaxHealth == 0 {
		return e
	}
	out := e.Clone()
	out.Stats = out.Stats.WithDamage(-Round(float64(e.Stats.MaxHealth) * percent))
	return out
}
