package ws

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"wildbound/internal/app/ports"
	"wildbound/internal/app/session"
	"wildbound/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Hub fans battle events out to the websocket clients watching a save slot.
type Hub struct {
	mu       sync.RWMutex
	subs     map[string]map[*Client]struct{}
	allow    []string
	upgrader websocket.Upgrader
}

// NewHub accepts upgrades from the given browser origins. An empty list or
// "*" allows any origin, matching the HTTP CORS setting.
func NewHub(allowOrigins []string) *Hub {
	h := &Hub{
		subs:  map[string]map[*Client]struct{}{},
		allow: allowOrigins,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin lets requests without an Origin header through; those do not
// come from a browser page.
func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.allow) == 0 || slices.Contains(h.allow, "*") {
		return true
	}
	return slices.Contains(h.allow, origin)
}

// Publish never blocks; a client whose buffer is full misses the event.
func (h *Hub) Publish(evt ports.BattleEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.subs[evt.Slot] {
		select {
		case c.send <- evt:
		default:
			logger.L().WithFields(logrus.Fields{
				"component": "ws",
				"slot":      evt.Slot,
				"kind":      evt.Kind,
			}).Debug("Dropped battle event for slow client")
		}
	}
}

func (h *Hub) Subscribers(slot string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[slot])
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[c.slot] == nil {
		h.subs[c.slot] = map[*Client]struct{}{}
	}
	h.subs[c.slot][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[c.slot][c]; !ok {
		return
	}
	delete(h.subs[c.slot], c)
	if len(h.subs[c.slot]) == 0 {
		delete(h.subs, c.slot)
	}
	close(c.send)
}

// ServeHTTP upgrades the request and subscribes it to the slot named by the
// "slot" query parameter.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slot, err := session.NormalizeSlot(r.URL.Query().Get("slot"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.L().WithError(err).WithField("component", "ws").Warn("Websocket upgrade failed")
		return
	}
	c := &Client{hub: h, conn: conn, slot: slot, send: make(chan ports.BattleEvent, sendBuffer)}
	h.register(c)
	logger.L().WithFields(logrus.Fields{"component": "ws", "slot": slot}).Info("Client subscribed")

	go c.writePump()
	go c.readPump()
}

var _ ports.BattleEventPublisher = (*Hub)(nil)
