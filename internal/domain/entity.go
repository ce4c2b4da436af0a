package domain

import "strings"

// --- КОМПОНЕНТЫ ---

// Stats - Характеристики и здоровье.
// MaxHealth == 0 до нормализации означает "взять стартовое Health".
type Stats struct {
	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth,omitempty"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	Speed     int `json:"speed"`
}

// ChargeMeter - шкала заряда (CE), открывает burst.
type ChargeMeter struct {
	Current   int   `json:"current"`
	Tier      int   `json:"tier"`
	Tiers     []int `json:"tiers"`
	BurstCost int   `json:"burstCost"`
}

// ComboState - цепочка последовательных действий и набранный импульс.
type ComboState struct {
	Chain     []string `json:"chain"`
	ExpiresAt int64    `json:"expiresAt"`
	Momentum  float64  `json:"momentum"`
}

// --- СУЩНОСТЬ ---

type Entity struct {
	// Идентификация
	ID                 string `json:"id"`
	Name               string `json:"name"`
	IsPlayerControlled bool   `json:"isPlayerControlled"`
	CharacterID        string `json:"characterId,omitempty"`

	Stats    Stats          `json:"stats"`
	Statuses []StatusEffect `json:"statuses"`
	CE       ChargeMeter    `json:"ce"`
	Combo    ComboState     `json:"combo"`
	Tags     []string       `json:"tags"`
}

// NewChargeMeter - пустая шкала с порогами по умолчанию.
func NewChargeMeter() ChargeMeter {
	tiers := make([]int, len(DefaultCETiers))
	copy(tiers, DefaultCETiers)
	return ChargeMeter{Tiers: tiers, BurstCost: DefaultBurstCost}
}

// NormalizeEntity заполняет все необязательные поля один раз, при входе сущности в бой.
// Дальше движок работает только с полностью заполненными значениями.
// Статусы здесь не трогаются: при входе в бой их нормализует systems.NormalizeStatus.
func NormalizeEntity(e Entity) Entity {
	out := e.Clone()
	if out.Stats.MaxHealth <= 0 {
		out.Stats.MaxHealth = out.Stats.Health
	}
	out.Stats.Health = clampInt(out.Stats.Health, 0, out.Stats.MaxHealth)

	if out.CE.Tiers == nil {
		out.CE.Tiers = NewChargeMeter().Tiers
	}
	if out.CE.BurstCost == 0 {
		out.CE.BurstCost = DefaultBurstCost
	}
	if out.Statuses == nil {
		out.Statuses = []StatusEffect{}
	}
	if out.Combo.Chain == nil {
		out.Combo.Chain = []string{}
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

// Clone - глубокая копия. Все изменения сущности идут через копию.
// nil-срезы остаются nil, пустые - пустыми.
func (e Entity) Clone() Entity {
	out := e
	if e.Statuses != nil {
		out.Statuses = CloneStatuses(e.Statuses)
	}
	if e.CE.Tiers != nil {
		out.CE.Tiers = make([]int, len(e.CE.Tiers))
		copy(out.CE.Tiers, e.CE.Tiers)
	}
	if e.Combo.Chain != nil {
		out.Combo.Chain = cloneIDs(e.Combo.Chain)
	}
	if e.Tags != nil {
		out.Tags = cloneIDs(e.Tags)
	}
	return out
}

// IsAlive - здоровье больше нуля.
func (e Entity) IsAlive() bool {
	return e.Stats.Health > 0
}

// Tag ищет тег вида "<prefix>:<value>[:...]" и возвращает value до следующего ':'.
func (e Entity) Tag(prefix string) (string, bool) {
	p := prefix + ":"
	for _, t := range e.Tags {
		if len(t) > len(p) && strings.HasPrefix(t, p) {
			value, _, _ := strings.Cut(t[len(p):], ":")
			return value, true
		}
	}
	return "", false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
