package domain

// StatusType - тип эффекта (бафф или дебафф).
type StatusType string

const (
	StatusShield     StatusType = "Shield"
	StatusBurn       StatusType = "Burn"
	StatusRegen      StatusType = "Regen"
	StatusVulnerable StatusType = "Vulnerable"
	StatusHaste      StatusType = "Haste"
	StatusSlow       StatusType = "Slow"
	StatusBind       StatusType = "Bind"
	StatusWeaken     StatusType = "Weaken"
	StatusDodge      StatusType = "Dodge"
	StatusEcho       StatusType = "Echo"
	StatusAfterglow  StatusType = "Afterglow"
)

// StatusDefaults - фиксированные параметры типа эффекта.
type StatusDefaults struct {
	MaxStacks   int
	BasePotency float64
}

var statusDefaults = map[StatusType]StatusDefaults{
	StatusShield:     {MaxStacks: 5, BasePotency: 5},
	StatusBurn:       {MaxStacks: 5, BasePotency: 4},
	StatusRegen:      {MaxStacks: 5, BasePotency: 4},
	StatusVulnerable: {MaxStacks: 4, BasePotency: 0.2},
	StatusHaste:      {MaxStacks: 3, BasePotency: 0.1},
	StatusSlow:       {MaxStacks: 3, BasePotency: 0.1},
	StatusBind:       {MaxStacks: 1, BasePotency: 1},
	StatusWeaken:     {MaxStacks: 3, BasePotency: 0.1},
	StatusDodge:      {MaxStacks: 2, BasePotency: 0.25},
	StatusEcho:       {MaxStacks: 1, BasePotency: 0.5},
	StatusAfterglow:  {MaxStacks: 2, BasePotency: 0.2},
}

// Defaults возвращает параметры типа. Для неизвестного типа - (1, 0).
func (t StatusType) Defaults() StatusDefaults {
	if d, ok := statusDefaults[t]; ok {
		return d
	}
	return StatusDefaults{MaxStacks: 1}
}

// Known сообщает, описан ли тип в таблице.
func (t StatusType) Known() bool {
	_, ok := statusDefaults[t]
	return ok
}

// StatusEffect - временный эффект на сущности.
// Potency == 0 означает "не задано" и заменяется базовым значением при нормализации.
type StatusEffect struct {
	Type       StatusType `json:"type"`
	Stacks     int        `json:"stacks"`
	DurationMs int64      `json:"durationMs"`
	Potency    float64    `json:"potency,omitempty"`
	SourceID   string     `json:"sourceId,omitempty"`
}

// CloneStatuses копирует срез (StatusEffect - чистое значение).
func CloneStatuses(in []StatusEffect) []StatusEffect {
	out := make([]StatusEffect, len(in))
	copy(out, in)
	return out
}
