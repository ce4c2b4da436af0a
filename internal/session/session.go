package session

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
	"skirmish-server/pkg/api"
)

// MatchSession - один живой матч. Все поля защищены mu: любой обработчик
// сообщения для матча выполняется целиком под этой блокировкой.
type MatchSession struct {
	mu sync.Mutex

	id        string
	state     domain.CombatState
	cfg       engine.Config
	seed      domain.RngSeed
	createdAt time.Time
	finished  bool

	// ConnID -> UserID
	clients map[string]string

	replay domain.ReplaySession
}

func newMatchSession(id string, roster []domain.Entity, seed domain.RngSeed, cfg engine.Config, now time.Time) (*MatchSession, error) {
	rosterJSON, err := json.Marshal(roster)
	if err != nil {
		return nil, err
	}

	state := engine.StartMatch(roster, seed, cfg)
	return &MatchSession{
		id:        id,
		state:     state,
		cfg:       cfg,
		seed:      seed,
		createdAt: now,
		finished:  engine.ResolveOutcome(state).Finished,
		clients:   make(map[string]string),
		replay: domain.ReplaySession{
			MatchID:   id,
			Seed:      seed,
			Mode:      cfg.Mode,
			Timestamp: now.Unix(),
			Roster:    rosterJSON,
			Actions:   make([]domain.ReplayAction, 0),
		},
	}, nil
}

// ID матча
func (s *MatchSession) ID() string { return s.id }

// authorize проверяет право подключения сделать ход. Порядок проверок фиксирован.
func (s *MatchSession) authorize(connID string, a domain.Action) error {
	userID, ok := s.clients[connID]
	if !ok {
		return ErrUnauthorized
	}
	if a.ActorID != userID && a.ActorID != "player-"+userID {
		return ErrUnauthorizedActor
	}
	if _, ok := s.state.Entities[a.ActorID]; !ok {
		return ErrUnknownActor
	}
	if s.finished {
		return ErrCombatFinished
	}
	if s.state.Initiative.Current() != a.ActorID {
		return ErrNotYourTurn
	}
	return nil
}

// play записывает ход и применяет его вместе с последующими ходами ИИ.
func (s *MatchSession) play(a domain.Action) (engine.TurnResult, error) {
	rec, err := domain.NewReplayAction(s.state.Round, a)
	if err != nil {
		return engine.TurnResult{}, err
	}
	s.replay.Actions = append(s.replay.Actions, rec)

	res := engine.PlayTurn(s.state, a, s.cfg)
	s.state = res.State
	s.finished = res.Outcome.Finished
	return res, nil
}

// connIDs - подключения матча в стабильном порядке.
func (s *MatchSession) connIDs() []string {
	ids := make([]string, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *MatchSession) summary() api.SessionSummary {
	return api.SessionSummary{
		ID:       s.id,
		Mode:     s.state.Mode,
		Round:    s.state.Round,
		Clients:  len(s.clients),
		Actions:  len(s.replay.Actions),
		Finished: s.finished,
		Current:  s.state.Initiative.Current(),
	}
}

func (s *MatchSession) replayCopy() domain.ReplaySession {
	out := s.replay
	out.Actions = append([]domain.ReplayAction(nil), s.replay.Actions...)
	return out
}
