package session

import (
	"encoding/json"
	"fmt"

	"skirmish-server/pkg/api"
)

// handlerFunc - контракт обработчика входящего сообщения.
type handlerFunc func(m *Manager, connID string, raw json.RawMessage) error

// typedHandlerFunc - обработчик, который работает с готовой структурой T
type typedHandlerFunc[T any] func(m *Manager, connID string, payload T) error

// withPayload превращает типизированный обработчик в handlerFunc.
// Берет на себя Unmarshal и Validate; любая ошибка здесь - ErrInvalidPayload.
func withPayload[T any](handler typedHandlerFunc[T]) handlerFunc {
	return func(m *Manager, connID string, raw json.RawMessage) error {
		var payload T

		// 1. Распаковка JSON
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}

		// 2. Автоматическая валидация
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
			}
		}

		// 3. Вызов чистой логики
		return handler(m, connID, payload)
	}
}

var messageHandlers = map[string]handlerFunc{
	api.MsgJoin: withPayload(func(m *Manager, connID string, p api.JoinPayload) error {
		return m.Join(connID, p.MatchID, p.UserID)
	}),
	api.MsgAction: withPayload(func(m *Manager, connID string, p api.ActionPayload) error {
		return m.Act(connID, p.MatchID, *p.Action)
	}),
	api.MsgSyncRequest: withPayload(func(m *Manager, connID string, p api.SyncPayload) error {
		return m.Sync(connID, p.MatchID)
	}),
}
