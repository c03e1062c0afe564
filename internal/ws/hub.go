package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"jobboard/internal/pkg/logging"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	log        *logging.Logger
}

func NewHub(log *logging.Logger) *Hub {
	if log == nil {
		log = logging.Nop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		log:        log,
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug("ws connected", "total_clients", total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case message := <-h.broadcast:
			h.mutex.RLock()
			clientsSnapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				clientsSnapshot = append(clientsSnapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range clientsSnapshot {
				if !client.enqueue(message) {
					h.remove(client)
					continue
				}
				client.requestRefresh()
			}
			h.log.Debug("ws broadcast", "clients", len(clientsSnapshot))
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	_, ok := h.clients[client]
	delete(h.clients, client)
	total := len(h.clients)
	h.mutex.Unlock()

	if ok {
		client.close()
		h.log.Debug("ws disconnected", "total_clients", total)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	clients := h.clients
	h.clients = make(map[*Client]bool)
	h.mutex.Unlock()

	for c := range clients {
		c.close()
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.log.Warn("ws broadcast dropped", "reason", "buffer_full")
	}
}

// ListingsChanged tells every live browser that the listing table changed.
// Each connection re-runs its current filter.
func (h *Hub) ListingsChanged() {
	b, err := json.Marshal(jobsUpdatedEvent{
		Type:      MessageJobsUpdated,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
