package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"skirmish-server/internal/network"
	"skirmish-server/internal/session"
	"skirmish-server/pkg/api"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и менеджером матчей.
// Одно подключение = один connID; матчей у подключения может быть несколько.
type Client struct {
	connID   string
	conn     *websocket.Conn
	updates  <-chan api.ServerMessage
	sessions *session.Manager
	hub      *network.Broadcaster
	log      *logrus.Entry
}

// handleWS поднимает WebSocket. ?matchId=..&userId=.. сразу выполняет join.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WithError(err).Warn("Upgrade error")
		return
	}

	connID := uuid.NewString()
	client := &Client{
		connID:   connID,
		conn:     conn,
		updates:  s.hub.Register(connID),
		sessions: s.sessions,
		hub:      s.hub,
		log:      s.log.WithField("conn_id", connID),
	}
	client.log.Info("Client connected")

	// Запускаем пампы
	go client.writePump()

	if matchID := c.Query("matchId"); matchID != "" {
		userID := c.Query("userId")
		if userID == "" {
			userID = "guest-" + uuid.NewString()
		}
		if err := s.sessions.Join(connID, matchID, userID); err != nil {
			s.hub.SendTo(connID, api.ErrorMessage(session.Reason(err)))
		}
	}

	go client.readPump()
}

// readPump читает сообщения клиента и передает их менеджеру
func (c *Client) readPump() {
	defer func() {
		c.sessions.Disconnect(c.connID)
		c.hub.Unregister(c.connID)
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WS read error")
			}
			return
		}
		c.sessions.HandleMessage(c.connID, raw)
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.updates:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// Hub закрыл канал
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
