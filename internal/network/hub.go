package network

import (
	"sync"

	"skirmish-server/pkg/api"
)

// Размер личной очереди сообщений подключения
const sendBuffer = 64

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Подписчик - одно WebSocket-подключение, ключ - его ID.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ConnID -> Личный канал
	subscribers map[string]chan api.ServerMessage
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerMessage),
	}
}

// Register создает личный канал для подключения
func (b *Broadcaster) Register(connID string) <-chan api.ServerMessage {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[connID]; ok {
		close(old)
	}

	ch := make(chan api.ServerMessage, sendBuffer)
	b.subscribers[connID] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(connID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[connID]; ok {
		close(ch)
		delete(b.subscribers, connID)
	}
}

// SendTo отправляет сообщение конкретному подключению (Unicast).
// Возвращает false, если подписчика нет или его очередь переполнена.
func (b *Broadcaster) SendTo(connID string, msg api.ServerMessage) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[connID]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		return false
	}
}

// Multicast отправляет сообщение списку подключений, возвращает число доставленных
func (b *Broadcaster) Multicast(connIDs []string, msg api.ServerMessage) int {
	sent := 0
	for _, id := range connIDs {
		if b.SendTo(id, msg) {
			sent++
		}
	}
	return sent
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
