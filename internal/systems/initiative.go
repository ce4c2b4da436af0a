package systems

import (
	"sort"

	"skirmish-server/internal/domain"
)

// EffectiveSpeed - скорость с учётом Haste/Slow. Каждый стак даёт ±10%
// (базовая сила Haste), результат не меньше 1.
func EffectiveSpeed(e domain.Entity) int {
	haste := StatusStacks(e, domain.StatusHaste)
	slow := StatusStacks(e, domain.StatusSlow)
	mod := 1 + float64(haste-slow)*domain.StatusHaste.Defaults().BasePotency
	speed := Round(float64(e.Stats.Speed) * mod)
	if speed < 1 {
		return 1
	}
	return speed
}

// CreateInitiative сортирует сущности по убыванию эффективной скорости.
// Сортировка стабильная: при равной скорости сохраняется входной порядок.
func CreateInitiative(entities []domain.Entity) domain.InitiativeTrack {
	type slot struct {
		id    string
		speed int
	}
	slots := make([]slot, 0, len(entities))
	for _, e := range entities {
		n := domain.NormalizeEntity(e)
		slots = append(slots, slot{id: n.ID, speed: EffectiveSpeed(n)})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].speed > slots[j].speed
	})

	order := make([]string, len(slots))
	for i, s := range slots {
		order[i] = s.id
	}
	return domain.InitiativeTrack{Order: order, CurrentIndex: 0}
}
