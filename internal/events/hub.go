// apps/go-server/internal/events/hub.go
//
// WebSocket fan-out for room channels.
//   - ServeWS upgrades a request and subscribes the connection to a channel.
//   - Publish encodes one envelope and queues it on every subscriber.
//   - A subscriber whose queue is full is dropped instead of stalling
//     the publisher.
//   - Clients only listen; anything they send is discarded.

package events

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendQueue  = 32
)

// Envelope is the frame written to subscribers.
type Envelope struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Data    any    `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub is the websocket Publisher.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

// NewHub returns a Hub accepting upgrades from origins allowed by
// checkOrigin. A nil checkOrigin accepts any origin.
func NewHub(checkOrigin func(*http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Hub{
		channels: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeWS upgrades the request and subscribes it to channel until the peer
// disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, channel string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("websocket upgrade failed")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendQueue)}
	h.subscribe(channel, c)

	go h.writePump(c)
	h.readPump(channel, c)
}

func (h *Hub) subscribe(channel string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.channels[channel]
	if !ok {
		subs = make(map[*client]struct{})
		h.channels[channel] = subs
	}
	subs[c] = struct{}{}
	log.Debug().Str("channel", channel).Int("subscribers", len(subs)).Msg("subscribed")
}

func (h *Hub) unsubscribe(channel string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.channels[channel]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.channels, channel)
		}
	}
	c.close()
}

func (h *Hub) readPump(channel string, c *client) {
	defer func() {
		h.unsubscribe(channel, c)
		_ = c.conn.Close()
	}()
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Publish queues event on every subscriber of channel.
func (h *Hub) Publish(ctx context.Context, channel, event string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := json.Marshal(Envelope{Channel: channel, Event: event, Data: payload})
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.channels[channel] {
		select {
		case c.send <- msg:
		default:
			log.Warn().Str("channel", channel).Msg("subscriber too slow; dropping")
			delete(h.channels[channel], c)
			c.close()
		}
	}
	if len(h.channels[channel]) == 0 {
		delete(h.channels, channel)
	}
	return nil
}

// Subscribers returns the number of live subscribers on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// CloseChannel disconnects every subscriber of channel.
func (h *Hub) CloseChannel(channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.channels[channel] {
		c.close()
	}
	delete(h.channels, channel)
}
