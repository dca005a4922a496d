package devserver

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
)

// Message types pushed to browsers.
const (
	MessageReload = "reload"
	MessageError  = "error"
)

// Message is the JSON frame sent over the reload websocket.
type Message struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// Client is one connected browser tab.
type Client struct {
	ID   string
	send chan Message
}

// NewClient returns a client with a small outgoing buffer.
func NewClient() *Client {
	return &Client{ID: uuid.NewString(), send: make(chan Message, 8)}
}

// Send yields the messages for this client. It is closed when the hub drops
// the client.
func (c *Client) Send() <-chan Message {
	return c.send
}

// Hub fans messages out to every registered client. All bookkeeping happens
// on the Run goroutine.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	done       chan struct{}

	clients map[*Client]struct{}
	count   atomic.Int64
	metrics *Metrics
}

// NewHub returns a hub. metrics may be nil.
func NewHub(metrics *Metrics) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		metrics:    metrics,
	}
}

// Run serves the hub until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return nil
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setCount()
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// A tab that stopped reading gets dropped rather than stalling the rest.
					h.drop(c)
				}
			}
		}
	}
}

// Register adds c. It is a no-op once the hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes c and closes its channel.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues msg for every client.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// Len reports the number of registered clients.
func (h *Hub) Len() int {
	return int(h.count.Load())
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.setCount()
}

func (h *Hub) setCount() {
	h.count.Store(int64(len(h.clients)))
	if h.metrics != nil {
		h.metrics.Clients.Set(float64(len(h.clients)))
	}
}
