package systems

import "skirmish-server/internal/domain"

// UpdateChargeMeter добавляет delta к заряду (может быть отрицательной) и
// пересчитывает уровень: номер старшего пройденного порога.
func UpdateChargeMeter(ce domain.ChargeMeter, delta int) domain.ChargeMeter {
	out := ce
	if ce.Tiers != nil {
		out.Tiers = make([]int, len(ce.Tiers))
		copy(out.Tiers, ce.Tiers)
	}
	out.Current = clamp(ce.Current+delta, 0, domain.MaxCE)
	out.Tier = 0
	for i, threshold := range ce.Tiers {
		if out.Current >= threshold {
			out.Tier = i + 1
		}
	}
	return out
}

// UpdateCombo продлевает цепочку действий или начинает новую, если окно истекло.
// Импульс = длина цепочки * MomentumPerLink, но не больше MomentumCap.
func UpdateCombo(combo domain.ComboState, key string, now, decayMs int64) domain.ComboState {
	var chain []string
	if now > combo.ExpiresAt {
		chain = []string{key}
	} else {
		chain = make([]string, 0, len(combo.Chain)+1)
		chain = append(chain, combo.Chain...)
		chain = append(chain, key)
	}

	momentum := float64(len(chain)) * domain.MomentumPerLink
	if momentum > domain.MomentumCap {
		momentum = domain.MomentumCap
	}
	return domain.ComboState{
		Chain:     chain,
		ExpiresAt: now + decayMs,
		Momentum:  momentum,
	}
}
