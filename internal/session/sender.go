package session

import "skirmish-server/pkg/api"

//go:generate go tool mockgen -destination=./mocks/sender_mock.go -package=mocks . Sender

// Sender доставляет сообщения подключениям. Реализуется network.Broadcaster.
type Sender interface {
	SendTo(connID string, msg api.ServerMessage) bool
	// Multicast возвращает число доставленных сообщений.
	Multicast(connIDs []string, msg api.ServerMessage) int
}
