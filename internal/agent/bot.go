// Package agent - серверный бот, который занимает место игрока в матче.
package agent

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"skirmish-server/internal/engine"
	"skirmish-server/internal/network"
	"skirmish-server/internal/systems"
	"skirmish-server/pkg/api"
	"skirmish-server/pkg/logger"
)

// MessageHandler - то, через что бот общается с матчами (session.Manager).
type MessageHandler interface {
	HandleMessage(connID string, raw []byte)
	Disconnect(connID string)
}

// Bot представляет собой "Игрока-компьютера".
// Он подключается так же, как обычный клиент: свой connID в хабе, join
// сообщением, ходы сообщениями action. Решения принимает systems.ChooseAction.
//
// Жизненный цикл:
//  1. NewBot -> регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> join в матч, затем слушает Inbox.
//  3. Если в пришедшем состоянии сейчас ход бота - отправляет действие.
//  4. Бой окончен, канал закрыт или контекст отменен -> выход.
type Bot struct {
	UserID   string
	EntityID string
	MatchID  string
	ConnID   string

	hub     *network.Broadcaster
	handler MessageHandler
	inbox   <-chan api.ServerMessage
	log     *logrus.Entry
}

func NewBot(hub *network.Broadcaster, handler MessageHandler, matchID, userID string) *Bot {
	connID := "bot-" + userID
	b := &Bot{
		UserID:   userID,
		EntityID: "player-" + userID,
		MatchID:  matchID,
		ConnID:   connID,
		hub:      hub,
		handler:  handler,
		inbox:    hub.Register(connID),
		log: logger.Component("bot").WithFields(logrus.Fields{
			"match_id": matchID,
			"user_id":  userID,
		}),
	}
	b.log.Info("Bot created")
	return b
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer func() {
		b.handler.Disconnect(b.ConnID)
		b.hub.Unregister(b.ConnID)
		b.log.Info("Bot shut down")
	}()

	b.send(joinMessage{Type: api.MsgJoin, JoinPayload: api.JoinPayload{MatchID: b.MatchID, UserID: b.UserID}})

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-b.inbox:
			if !ok {
				return
			}
			if done := b.onMessage(msg); done {
				return
			}
		}
	}
}

// onMessage возвращает true, когда боту больше нечего делать.
func (b *Bot) onMessage(msg api.ServerMessage) bool {
	if msg.Type == api.MsgError {
		b.log.WithField("reason", msg.Message).Debug("Server rejected bot message")
		return false
	}
	if msg.Type != api.MsgState || msg.Payload == nil || msg.MatchID != b.MatchID {
		return false
	}

	state := *msg.Payload
	if engine.ResolveOutcome(state).Finished {
		return true
	}
	// Бот реагирует только тогда, когда сейчас его ход.
	if state.Initiative.Current() != b.EntityID {
		return false
	}

	action := systems.ChooseAction(state, b.EntityID)
	b.send(actionMessage{Type: api.MsgAction, ActionPayload: api.ActionPayload{MatchID: b.MatchID, Action: &action}})
	return false
}

// Сообщения клиента плоские: type и поля payload на одном уровне.
type joinMessage struct {
	Type string `json:"type"`
	api.JoinPayload
}

type actionMessage struct {
	Type string `json:"type"`
	api.ActionPayload
}

func (b *Bot) send(msg any) {
	raw, err := json.Marshal(msg)
	if err != nil {
		b.log.WithError(err).Error("Error marshalling bot message")
		return
	}
	b.handler.HandleMessage(b.ConnID, raw)
}
