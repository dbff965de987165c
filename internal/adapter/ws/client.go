package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"wildbound/internal/app/ports"
	"wildbound/pkg/logger"
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	slot string
	send chan ports.BattleEvent
}

// readPump only drains control frames; the feed is server to client.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		if err := c.conn.Close(); err != nil {
			logger.L().WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.L().WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.L().WithError(err).WithField("slot", c.slot).Warn("Websocket closed unexpectedly")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			logger.L().WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case evt, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.L().WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.L().WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.conn.WriteJSON(evt); err != nil {
				logger.L().WithError(err).Debug("write json message failed")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.L().WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.L().WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
