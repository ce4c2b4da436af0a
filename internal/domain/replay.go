package domain

import "encoding/json"

// ReplayAction - это запись одного принятого действия игрока
type ReplayAction struct {
	Round   int             `json:"round"`   // Раунд, в котором действие принято
	Action  ActionType      `json:"action"`  // Что сделал
	ActorID string          `json:"actorId"` // Кто сделал
	Payload json.RawMessage `json:"payload"` // Полное действие в JSON
}

// ReplaySession - полная запись матча: стартовый состав, зерно и лента действий.
// Ходы ИИ не пишутся: они детерминированно восстанавливаются движком.
type ReplaySession struct {
	MatchID   string          `json:"matchId"`
	Seed      RngSeed         `json:"seed"`
	Mode      BattleMode      `json:"mode"`
	Timestamp int64           `json:"timestamp"`
	Roster    json.RawMessage `json:"roster,omitempty"` // []Entity на момент создания матча
	Actions   []ReplayAction  `json:"actions"`
}

// NewReplayAction упаковывает действие для записи.
func NewReplayAction(round int, a Action) (ReplayAction, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return ReplayAction{}, err
	}
	return ReplayAction{Round: round, Action: a.Type, ActorID: a.ActorID, Payload: payload}, nil
}

// Decode распаковывает записанное действие.
func (r ReplayAction) Decode() (Action, error) {
	var a Action
	if len(r.Payload) == 0 {
		return Action{ActorID: r.ActorID, Type: r.Action}, nil
	}
	if err := json.Unmarshal(r.Payload, &a); err != nil {
		return Action{}, err
	}
	return a, nil
}
