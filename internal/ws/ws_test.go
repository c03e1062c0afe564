package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository/memory"
	"jobboard/internal/usecase/browser"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type liveEnv struct {
	t     *testing.T
	hub   *Hub
	store listing.Store
	owner uuid.UUID
	url   string
}

func newLiveEnv(t *testing.T) *liveEnv {
	t.Helper()

	db := memory.NewDB()
	owner := uuid.New()
	if err := db.Users().Create(context.Background(), user.User{ID: owner, Email: "owner@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("create owner: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(nil)
	go hub.Run(ctx)

	store := db.Listings()
	h := NewHandler(hub, func(opts ...browser.Option) *browser.Browser {
		return browser.New(store, opts...)
	}, nil)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &liveEnv{t: t, hub: hub, store: store, owner: owner, url: "ws" + strings.TrimPrefix(srv.URL, "http")}
}

func (e *liveEnv) insert(title, company string, category listing.Category) {
	e.t.Helper()
	_, err := e.store.Insert(context.Background(), e.owner, listing.Fields{
		Title:       title,
		Company:     company,
		Description: strings.Repeat("d", 60),
		Location:    "Remote",
		Category:    category,
	})
	if err != nil {
		e.t.Fatalf("insert: %v", err)
	}
}

func (e *liveEnv) dial(query string) *websocket.Conn {
	e.t.Helper()
	url := e.url
	if query != "" {
		url += "?" + query
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		e.t.Fatalf("dial: %v", err)
	}
	e.t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// nextLoaded reads until a loaded snapshot for query arrives.
func nextLoaded(t *testing.T, conn *websocket.Conn, query string) snapshotEvent {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	_ = conn.SetReadDeadline(deadline)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %q: %v", query, err)
		}
		var ev snapshotEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if ev.Type == MessageSnapshot && ev.State == "loaded" && ev.Query == query {
			return ev
		}
	}
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLiveBrowse_InitialFilterAndRefilter(t *testing.T) {
	env := newLiveEnv(t)
	env.insert("Backend Developer", "Acme", listing.CategoryFullTime)
	env.insert("Designer", "Pixel", listing.CategoryContract)

	conn := env.dial("type=Contract")
	first := nextLoaded(t, conn, "type=Contract")
	if first.Count != 1 || first.Jobs[0].Title != "Designer" {
		t.Fatalf("unexpected initial snapshot: %+v", first)
	}
	if first.Location != "/jobs?type=Contract" {
		t.Fatalf("location: %q", first.Location)
	}

	if err := conn.WriteJSON(inbound{Type: MessageFilter, Query: "search=BACKEND"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	second := nextLoaded(t, conn, "search=BACKEND")
	if second.Count != 1 || second.Jobs[0].Title != "Backend Developer" {
		t.Fatalf("unexpected refiltered snapshot: %+v", second)
	}
}

func TestLiveBrowse_RefreshesOnListingsChanged(t *testing.T) {
	env := newLiveEnv(t)
	env.insert("Backend Developer", "Acme", listing.CategoryFullTime)

	conn := env.dial("")
	if got := nextLoaded(t, conn, ""); got.Count != 1 {
		t.Fatalf("initial count %d", got.Count)
	}
	waitForClients(t, env.hub, 1)

	env.insert("Backend Engineer", "Other", listing.CategoryPartTime)
	env.hub.ListingsChanged()

	if got := nextLoaded(t, conn, ""); got.Count != 2 || got.Jobs[0].Title != "Backend Engineer" {
		t.Fatalf("expected refreshed snapshot with newest first, got %+v", got)
	}
}

func TestLiveBrowse_UnknownMessage(t *testing.T) {
	env := newLiveEnv(t)
	conn := env.dial("")
	nextLoaded(t, conn, "")

	if err := conn.WriteJSON(inbound{Type: "subscribe"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var ev errorEvent
		if json.Unmarshal(raw, &ev) == nil && ev.Type == MessageError {
			if ev.Message != "unknown message type" {
				t.Fatalf("unexpected error message %q", ev.Message)
			}
			return
		}
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	env := newLiveEnv(t)
	conn := env.dial("")
	nextLoaded(t, conn, "")
	waitForClients(t, env.hub, 1)

	_ = conn.Close()
	waitForClients(t, env.hub, 0)
}

func TestClient_EnqueueAfterCloseIsRejected(t *testing.T) {
	c := &Client{send: make(chan []byte, 1), refresh: make(chan struct{}, 1), cancel: func() {}}
	if !c.enqueue([]byte("a")) {
		t.Fatalf("first message should fit")
	}
	if c.enqueue([]byte("b")) {
		t.Fatalf("full buffer must reject")
	}
	c.close()
	c.close()
	if c.enqueue([]byte("c")) {
		t.Fatalf("closed client must reject")
	}
}

func TestClient_FullBufferClosesOnSnapshot(t *testing.T) {
	c := NewClient(nil, nil, func(opts ...browser.Option) *browser.Browser {
		return browser.New(nil, opts...)
	}, nil)
	for i := 0; i < sendBuffer; i++ {
		if !c.enqueue([]byte("{}")) {
			t.Fatalf("message %d should fit", i)
		}
	}

	c.pushSnapshot(browser.Snapshot{State: browser.Loaded, Location: "/jobs"})

	select {
	case <-c.ctx.Done():
	default:
		t.Fatalf("client with a full buffer must be closed")
	}
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if !closed {
		t.Fatalf("expected closed client")
	}
}
