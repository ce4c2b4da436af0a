// Package matchmaking - точка передачи найденных матчей в игровой сервер.
// Сам подбор игроков живет во внешнем сервисе; сюда приходит только результат.
package matchmaking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"skirmish-server/pkg/api"
)

// ErrFeedClosed - публикация в закрытую ленту.
var ErrFeedClosed = errors.New("matchmaking feed closed")

// MatchCreated - событие "матч найден".
type MatchCreated struct {
	ID        string            `json:"id"`
	Players   []api.MatchPlayer `json:"players"`
	Queue     string            `json:"queue"`
	TicketIDs []string          `json:"ticketIds"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewMatch создает событие со свежим ID и тикетом на каждого игрока.
func NewMatch(players []api.MatchPlayer, queue string) MatchCreated {
	tickets := make([]string, len(players))
	for i := range players {
		tickets[i] = uuid.NewString()
	}
	if queue == "" {
		queue = "ranked"
	}
	return MatchCreated{
		ID:        uuid.NewString(),
		Players:   append([]api.MatchPlayer(nil), players...),
		Queue:     queue,
		TicketIDs: tickets,
		CreatedAt: time.Now(),
	}
}

// Feed - буферизированный канал событий от подборщика к менеджеру сессий.
type Feed struct {
	mu     sync.RWMutex
	ch     chan MatchCreated
	closed bool
}

func NewFeed(buffer int) *Feed {
	if buffer < 0 {
		buffer = 0
	}
	return &Feed{ch: make(chan MatchCreated, buffer)}
}

// Publish отправляет событие. Блокируется, пока в буфере нет места,
// или до отмены контекста.
func (f *Feed) Publish(ctx context.Context, m MatchCreated) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return ErrFeedClosed
	}

	select {
	case f.ch <- m:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events - канал для потребителя.
func (f *Feed) Events() <-chan MatchCreated {
	return f.ch
}

// Close закрывает ленту. Повторный вызов безопасен.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}
