package api

import (
	"errors"
	"fmt"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p JoinPayload) Validate() error {
	if p.UserID == "" {
		return errors.New("userId is required")
	}
	return nil
}

func (p ActionPayload) Validate() error {
	if p.Action == nil {
		return errors.New("action is required")
	}
	return nil
}

func (r SimulateRequest) Validate() error {
	if r.MaxRounds != nil && *r.MaxRounds <= 0 {
		return errors.New("maxRounds must be positive")
	}
	for i, a := range r.Actions {
		if a.ActorID == "" {
			return fmt.Errorf("actions[%d]: actorId is required", i)
		}
	}
	return nil
}

func (r MatchRequest) Validate() error {
	if len(r.Players) < 2 {
		return errors.New("at least two players are required")
	}
	seen := make(map[string]bool, len(r.Players))
	for _, p := range r.Players {
		if p.UserID == "" {
			return errors.New("userId is required")
		}
		if seen[p.UserID] {
			return fmt.Errorf("duplicate player %q", p.UserID)
		}
		seen[p.UserID] = true
	}
	return nil
}

func (r BotRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("userId is required")
	}
	return nil
}
