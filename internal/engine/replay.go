package engine

import (
	"encoding/json"
	"fmt"

	"skirmish-server/internal/domain"
)

// Replay воспроизводит записанный матч: тот же состав, сид и режим,
// затем записанные ходы игроков по порядку. Ходы ИИ восстанавливаются движком.
func Replay(session domain.ReplaySession, cfg Config) (domain.CombatState, error) {
	var roster []domain.Entity
	if err := json.Unmarshal(session.Roster, &roster); err != nil {
		return domain.CombatState{}, fmt.Errorf("decode roster: %w", err)
	}

	cfg = cfg.WithMode(session.Mode).Normalize()
	state := StartMatch(roster, session.Seed, cfg)

	for i, ra := range session.Actions {
		action, err := ra.Decode()
		if err != nil {
			return state, fmt.Errorf("action %d: %w", i, err)
		}
		state = PlayTurn(state, action, cfg).State
	}
	return state, nil
}
