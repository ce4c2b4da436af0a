package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionAttack
	ActionDefend
	ActionWait
	ActionAbility
	ActionCharge
	ActionBurst
)

// Маппинг для конвертации JSON -> Domain
var actionStringToType = map[string]ActionType{
	"attack":  ActionAttack,
	"defend":  ActionDefend,
	"wait":    ActionWait,
	"ability": ActionAbility,
	"charge":  ActionCharge,
	"burst":   ActionBurst,
}

// Маппинг для логов и протокола Domain -> String
var actionTypeToString = map[ActionType]string{
	ActionAttack:  "attack",
	ActionDefend:  "defend",
	ActionWait:    "wait",
	ActionAbility: "ability",
	ActionCharge:  "charge",
	ActionBurst:   "burst",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Нечувствительно к регистру
	if val, ok := actionStringToType[strings.ToLower(s)]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionTypeToString[a]; ok {
		return val
	}
	return "unknown"
}

// IsOffensive - действия, которые наносят урон цели.
func (a ActionType) IsOffensive() bool {
	return a == ActionAttack || a == ActionAbility || a == ActionBurst
}

func (a ActionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON не падает на незнакомых строках: они превращаются в ActionUnknown,
// а отказ формирует уже слой валидации.
func (a *ActionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("action type must be a string: %w", err)
	}
	*a = ParseAction(s)
	return nil
}

// Action - одно действие участника боя.
type Action struct {
	ActorID  string         `json:"actorId"`
	TargetID string         `json:"targetId,omitempty"`
	Type     ActionType     `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Skill возвращает metadata.skill, если он задан строкой.
func (a Action) Skill() (string, bool) {
	if a.Metadata == nil {
		return "", false
	}
	s, ok := a.Metadata["skill"].(string)
	return s, ok
}

// Target - цель действия. Без targetId актор бьет сам себя (это легально).
func (a Action) Target() string {
	if a.TargetID == "" {
		return a.ActorID
	}
	return a.TargetID
}
