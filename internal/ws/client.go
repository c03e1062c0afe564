package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"jobboard/internal/filter"
	"jobboard/internal/pkg/logging"
	"jobboard/internal/usecase/browser"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client is one live-browse connection. It owns a Browser; every accepted
// browser transition is pushed to the socket as a snapshot.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	log     *logging.Logger
	browser *browser.Browser

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	send    chan []byte
	closed  bool
	refresh chan struct{}
}

// BrowserFactory builds the browser for a new connection with the given
// options appended.
type BrowserFactory func(opts ...browser.Option) *browser.Browser

func NewClient(hub *Hub, conn *websocket.Conn, newBrowser BrowserFactory, log *logging.Logger) *Client {
	if log == nil {
		log = logging.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		hub:     hub,
		conn:    conn,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		send:    make(chan []byte, sendBuffer),
		refresh: make(chan struct{}, 1),
	}
	c.browser = newBrowser(browser.OnChange(c.pushSnapshot))
	return c
}

// Start runs the initial filter and the pumps.
func (c *Client) Start(initial filter.State) {
	go c.WritePump()
	go c.refreshLoop()
	go c.apply(initial)
	go c.ReadPump()
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("ws read failed", "error", err)
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.pushError("malformed message")
			continue
		}

		switch msg.Type {
		case MessageFilter:
			go c.apply(filter.Decode(msg.Query))
		case MessageRefresh:
			c.requestRefresh()
		default:
			c.pushError("unknown message type")
		}
	}
}

func (c *Client) WritePump() {
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

// apply runs in its own goroutine so a slow query never blocks newer
// filters; the browser discards whichever result is superseded.
func (c *Client) apply(f filter.State) {
	if _, err := c.browser.Apply(c.ctx, f); err != nil && !errors.Is(err, browser.ErrSuperseded) {
		c.log.Debug("ws browse failed", "query", filter.Encode(f), "error", err)
	}
}

func (c *Client) refreshLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.refresh:
			if _, err := c.browser.Refresh(c.ctx); err != nil && !errors.Is(err, browser.ErrSuperseded) {
				c.log.Debug("ws refresh failed", "error", err)
			}
		}
	}
}

// requestRefresh coalesces refresh requests that arrive while one is pending.
func (c *Client) requestRefresh() {
	select {
	case c.refresh <- struct{}{}:
	default:
	}
}

// pushSnapshot closes the client when a snapshot does not fit in its send
// buffer. Snapshots are never dropped silently.
func (c *Client) pushSnapshot(s browser.Snapshot) {
	b, err := json.Marshal(newSnapshotEvent(s))
	if err != nil {
		return
	}
	if !c.enqueue(b) {
		c.log.Debug("ws snapshot not delivered, closing client", "state", s.State.String())
		c.close()
	}
}

func (c *Client) pushError(message string) {
	b, err := json.Marshal(errorEvent{Type: MessageError, Message: message})
	if err != nil {
		return
	}
	c.enqueue(b)
}

// enqueue reports false when the client is gone or too slow to keep up.
func (c *Client) enqueue(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	c.cancel()
}
