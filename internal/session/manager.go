// Package session держит живые матчи: подключение клиентов, проверку ходов
// и рассылку состояния всем участникам матча.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
	"skirmish-server/internal/kits"
	"skirmish-server/internal/matchmaking"
	"skirmish-server/pkg/api"
	"skirmish-server/pkg/logger"
)

// SandboxID - матч-песочница, доступный всегда.
const SandboxID = "sandbox"

// DefaultSandboxSeed - зерно песочницы, если не задано другое.
const DefaultSandboxSeed int64 = 1337

// Базовые характеристики игрока без кита
var baselineStats = domain.Stats{Health: 30, Attack: 8, Defense: 3, Speed: 6}

// Manager - реестр матчей.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*MatchSession

	sender Sender
	cfg    engine.Config
	log    *logrus.Entry
	clock  func() time.Time

	sandboxSeed int64
}

// Option настраивает Manager при создании.
type Option func(*Manager)

// WithSandboxSeed задает зерно песочницы (флаг -seed).
func WithSandboxSeed(seed int64) Option {
	return func(m *Manager) { m.sandboxSeed = seed }
}

// NewManager создает менеджер и сразу поднимает песочницу.
func NewManager(sender Sender, cfg engine.Config, opts ...Option) *Manager {
	m := &Manager{
		sessions:    make(map[string]*MatchSession),
		sender:      sender,
		cfg:         cfg.Normalize(),
		log:         logger.Component("session"),
		clock:       time.Now,
		sandboxSeed: DefaultSandboxSeed,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.createSandbox()
	return m
}

func (m *Manager) createSandbox() {
	roster := []domain.Entity{
		{
			ID: "player-sandbox", Name: "Hero", IsPlayerControlled: true,
			Stats: baselineStats,
		},
		{
			ID: "enemy-sandbox", Name: "Goblin",
			Stats: domain.Stats{Health: 18, Attack: 5, Defense: 2, Speed: 4},
		},
	}
	s, err := newMatchSession(SandboxID, roster, domain.RngSeed{Seed: m.sandboxSeed}, m.cfg.WithMode(domain.ModeSandbox), m.clock())
	if err != nil {
		// Статичный состав всегда сериализуется
		panic(err)
	}
	m.sessions[SandboxID] = s
}

// --- Входящие сообщения ---

// HandleMessage разбирает сырое сообщение клиента и вызывает обработчик.
// Ошибки отправляются только отправителю.
func (m *Manager) HandleMessage(connID string, raw []byte) {
	var env api.ClientMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		m.reject(connID, fmt.Errorf("%w: %v", ErrInvalidPayload, err))
		return
	}

	handler, ok := messageHandlers[env.Type]
	if !ok {
		m.reject(connID, ErrUnsupportedMessage)
		return
	}
	if err := handler(m, connID, raw); err != nil {
		m.reject(connID, err)
	}
}

func (m *Manager) reject(connID string, err error) {
	m.log.WithFields(logrus.Fields{
		"conn_id": connID,
		"reason":  Reason(err),
	}).WithError(err).Debug("Message rejected")
	m.sender.SendTo(connID, api.ErrorMessage(Reason(err)))
}

// Join регистрирует подключение в матче и отправляет ему текущее состояние.
// Повторный join с того же подключения меняет userId.
func (m *Manager) Join(connID, matchID, userID string) error {
	s := m.session(matchID)
	if s == nil {
		return ErrMatchNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[connID] = userID
	m.sender.SendTo(connID, api.StateMessage(s.id, s.state))

	m.log.WithFields(logrus.Fields{
		"match_id": matchID,
		"conn_id":  connID,
		"user_id":  userID,
		"clients":  len(s.clients),
	}).Info("Client joined match")
	return nil
}

// Sync отправляет состояние матча. Для неизвестного матча ничего не делает.
func (m *Manager) Sync(connID, matchID string) error {
	s := m.session(matchID)
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m.sender.SendTo(connID, api.StateMessage(s.id, s.state))
	return nil
}

// Act проверяет и применяет ход, затем рассылает новое состояние всем в матче.
func (m *Manager) Act(connID, matchID string, a domain.Action) error {
	s := m.session(matchID)
	if s == nil {
		return ErrMatchNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.authorize(connID, a); err != nil {
		return err
	}

	res, err := s.play(a)
	if err != nil {
		return fmt.Errorf("record action: %w", err)
	}

	fields := logrus.Fields{
		"match_id": matchID,
		"actor_id": a.ActorID,
		"action":   a.Type,
		"round":    res.State.Round,
		"entries":  len(res.Entries),
	}
	if res.Outcome.Finished {
		fields["winners"] = res.Outcome.Winners
		m.log.WithFields(fields).Info("Match finished")
	} else {
		m.log.WithFields(fields).Debug("Action resolved")
	}

	ids := s.connIDs()
	if sent := m.sender.Multicast(ids, api.StateMessage(s.id, s.state)); sent < len(ids) {
		m.log.WithFields(logrus.Fields{
			"match_id": matchID,
			"clients":  len(ids),
			"sent":     sent,
		}).Warn("State update dropped")
	}
	return nil
}

// Disconnect убирает подключение из всех матчей.
func (m *Manager) Disconnect(connID string) {
	m.mu.RLock()
	sessions := make([]*MatchSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s.mu.Lock()
		delete(s.clients, connID)
		s.mu.Unlock()
	}
}

// --- Создание матчей ---

// Bootstrap создает PvP-матч из события подборщика.
// Игроки становятся сущностями player-<userId>; с characterId - по киту.
func (m *Manager) Bootstrap(match matchmaking.MatchCreated) (*MatchSession, error) {
	roster := make([]domain.Entity, 0, len(match.Players))
	for i, p := range match.Players {
		id := "player-" + p.UserID
		name := fmt.Sprintf("Player %d", i+1)

		if p.CharacterID != "" {
			e, err := kits.NewEntity(p.CharacterID, id, name, true)
			if err != nil {
				return nil, fmt.Errorf("match %s: %w", match.ID, err)
			}
			roster = append(roster, e)
			continue
		}
		roster = append(roster, domain.Entity{ID: id, Name: name, IsPlayerControlled: true, Stats: baselineStats})
	}

	now := m.clock()
	seed := domain.RngSeed{Seed: now.UnixMilli() % 10000}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[match.ID]; exists {
		return nil, fmt.Errorf("match %s already exists", match.ID)
	}

	s, err := newMatchSession(match.ID, roster, seed, m.cfg.WithMode(domain.ModePvP), now)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", match.ID, err)
	}
	m.sessions[match.ID] = s

	m.log.WithFields(logrus.Fields{
		"match_id": match.ID,
		"players":  len(roster),
		"queue":    match.Queue,
		"seed":     seed.Seed,
	}).Info("Match bootstrapped")
	return s, nil
}

// Run принимает события подборщика до закрытия канала или отмены контекста.
func (m *Manager) Run(ctx context.Context, events <-chan matchmaking.MatchCreated) error {
	m.log.Info("Matchmaking consumer started")
	for {
		select {
		case <-ctx.Done():
			m.log.Info("Matchmaking consumer stopped")
			return nil
		case ev, ok := <-events:
			if !ok {
				m.log.Info("Matchmaking feed closed")
				return nil
			}
			if _, err := m.Bootstrap(ev); err != nil {
				m.log.WithError(err).WithField("match_id", ev.ID).Error("Failed to bootstrap match")
			}
		}
	}
}

// --- Чтение ---

func (m *Manager) session(id string) *MatchSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

func (m *Manager) ordered() []*MatchSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*MatchSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Sessions - сводка по всем матчам, по возрастанию ID.
func (m *Manager) Sessions() []api.SessionSummary {
	sessions := m.ordered()
	out := make([]api.SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		s.mu.Lock()
		out = append(out, s.summary())
		s.mu.Unlock()
	}
	return out
}

// Snapshot - копия состояния матча.
func (m *Manager) Snapshot(id string) (domain.CombatState, bool) {
	s := m.session(id)
	if s == nil {
		return domain.CombatState{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), true
}

// Replays - записи всех матчей, в которых был хотя бы один ход.
func (m *Manager) Replays() []domain.ReplaySession {
	var out []domain.ReplaySession
	for _, s := range m.ordered() {
		s.mu.Lock()
		if len(s.replay.Actions) > 0 {
			out = append(out, s.replayCopy())
		}
		s.mu.Unlock()
	}
	return out
}

// Config - параметры движка, с которыми работают матчи.
func (m *Manager) Config() engine.Config {
	return m.cfg
}
