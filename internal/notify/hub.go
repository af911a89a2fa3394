package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/icpcsp/compreg/internal/domain"
	"github.com/icpcsp/compreg/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

type envelope struct {
	userID  uint
	payload []byte
}

// Hub fans stored notifications out to each user's open websocket connections.
type Hub struct {
	upgrader websocket.Upgrader

	clientsMutex sync.RWMutex
	clients      map[uint]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	publish    chan envelope
	done       chan struct{}
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// NewHub builds a hub. An empty allowedOrigins accepts any origin.
func NewHub(allowedOrigins []string) *Hub {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
		clients:    make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan envelope, 256),
		done:       make(chan struct{}),
	}
}

// Run owns client registration until ctx is done, then closes every connection.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-h.register:
			h.clientsMutex.Lock()
			if h.clients[c.userID] == nil {
				h.clients[c.userID] = make(map[*Client]struct{})
			}
			h.clients[c.userID][c] = struct{}{}
			h.clientsMutex.Unlock()
			metrics.StreamConnections.Inc()
		case c := <-h.unregister:
			h.remove(c)
		case env := <-h.publish:
			h.clientsMutex.RLock()
			var slow []*Client
			for c := range h.clients[env.userID] {
				select {
				case c.send <- env.payload:
				default:
					slow = append(slow, c)
				}
			}
			h.clientsMutex.RUnlock()
			for _, c := range slow {
				zap.L().Warn("dropping slow notification stream", zap.Uint("user_id", c.userID))
				h.remove(c)
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	conns, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := conns[c]; !ok {
		return
	}
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	metrics.StreamConnections.Dec()
}

func (h *Hub) closeAll() {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	for userID, conns := range h.clients {
		for c := range conns {
			close(c.send)
			metrics.StreamConnections.Dec()
		}
		delete(h.clients, userID)
	}
}

// Publish queues n for userID. It never blocks the caller: when the hub has stopped
// or the queue is full the live push is skipped, the notification stays stored.
func (h *Hub) Publish(userID uint, n domain.Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		zap.L().Warn("marshal notification", zap.Error(err))
		return
	}

	select {
	case h.publish <- envelope{userID: userID, payload: payload}:
	case <-h.done:
	default:
		zap.L().Warn("notification queue full", zap.Uint("user_id", userID))
	}
}

// Connections reports how many live streams userID has open.
func (h *Hub) Connections(userID uint) int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients[userID])
}

// ServeWS upgrades the request and blocks until the connection closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID uint) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		userID: userID,
	}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return nil
	}

	go c.writePump()
	c.readPump()
	return nil
}

// readPump only drains control frames. Clients do not send notifications.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("notification stream closed", zap.Uint("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
