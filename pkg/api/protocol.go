package api

import "skirmish-server/internal/domain"

// Типы сообщений WebSocket
const (
	MsgJoin        = "join"
	MsgAction      = "action"
	MsgSyncRequest = "sync-request"

	MsgState = "state"
	MsgError = "error"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerMessage - всё, что сервер отправляет клиенту.
// Type "state": полный снимок боя в Payload. Type "error": причина в Message.
type ServerMessage struct {
	Type    string              `json:"type"`
	MatchID string              `json:"matchId,omitempty"`
	Payload *domain.CombatState `json:"payload,omitempty"`
	Message string              `json:"message,omitempty"`
}

// StateMessage - снимок состояния матча.
func StateMessage(matchID string, state domain.CombatState) ServerMessage {
	return ServerMessage{Type: MsgState, MatchID: matchID, Payload: &state}
}

// ErrorMessage - сообщение об ошибке для отправителя.
func ErrorMessage(reason string) ServerMessage {
	return ServerMessage{Type: MsgError, Message: reason}
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientMessage - конверт входящего сообщения. По Type выбирается обработчик,
// который разбирает исходный JSON в свой payload.
type ClientMessage struct {
	Type string `json:"type"`
}

// --- Payloads ---

// JoinPayload - подключение к матчу.
type JoinPayload struct {
	MatchID string `json:"matchId"`
	UserID  string `json:"userId"`
}

// ActionPayload - ход игрока.
type ActionPayload struct {
	MatchID string         `json:"matchId"`
	Action  *domain.Action `json:"action"`
}

// SyncPayload - запрос текущего состояния.
type SyncPayload struct {
	MatchID string `json:"matchId"`
}

// --- HTTP ---

// SimulateRequest - тело POST /simulate.
type SimulateRequest struct {
	Actions   []domain.Action `json:"actions"`
	MaxRounds *int            `json:"maxRounds,omitempty"`
}

// MatchPlayer - участник найденного матча.
// CharacterID - необязательный кит; без него игрок получает базовые характеристики.
type MatchPlayer struct {
	UserID      string `json:"userId"`
	MMR         int    `json:"mmr"`
	CharacterID string `json:"characterId,omitempty"`
}

// MatchRequest - тело POST /matchmaking/matches.
type MatchRequest struct {
	Players []MatchPlayer `json:"players"`
	Queue   string        `json:"queue"`
}

// BotRequest - тело POST /debug/sessions/:id/bots.
// Бот занимает место player-<userId>.
type BotRequest struct {
	UserID string `json:"userId"`
}

// KitView - запись реестра для GET /kits.
type KitView struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	BaseStats   domain.Stats `json:"baseStats"`
	Charged     string       `json:"chargedSkill"`
	Burst       string       `json:"burst"`
	BurstCost   int          `json:"burstCost"`
}

// SessionSummary - краткая информация о матче для /debug/sessions.
type SessionSummary struct {
	ID       string            `json:"id"`
	Mode     domain.BattleMode `json:"mode"`
	Round    int               `json:"round"`
	Clients  int               `json:"clients"`
	Actions  int               `json:"actions"`
	Finished bool              `json:"finished"`
	Current  string            `json:"current"`
}
