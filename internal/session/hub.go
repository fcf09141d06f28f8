// Package session runs live sketch sessions over websockets. Every
// connection gets its own app, touched only by that connection's
// goroutine; the hub only tracks who is connected.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/inamate/pathguide/internal/app"
	"github.com/inamate/pathguide/internal/typeid"
)

var errNoSketch = errors.New("no sketch is shown")

// AppFactory builds the app for a new session.
type AppFactory func() (*app.App, error)

type Hub struct {
	mu         sync.RWMutex
	clients    map[string]*Client // session id -> client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	newApp AppFactory
	log    *slog.Logger
}

func NewHub(newApp AppFactory, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		newApp:     newApp,
		log:        log,
	}
}

// Run tracks connections until ctx is done, then closes every session.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// NewSession creates the client for an accepted connection.
func (h *Hub) NewSession(conn *websocket.Conn) (*Client, error) {
	a, err := h.newApp()
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	return NewClient(h, conn, a, typeid.NewSessionID(), uuid.New().String()), nil
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Len returns the number of connected sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	h.log.Info("session started", "session", client.ID, "client", client.ClientID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ID)
	client.close()
	h.mu.Unlock()

	h.log.Info("session ended", "session", client.ID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.close()
		delete(h.clients, id)
	}
}

// handleMessage applies one client message to the client's app and
// answers with a frame or an error.
func (h *Hub) handleMessage(c *Client, msg *Message) {
	if err := h.dispatch(c, msg); err != nil {
		c.log.Warn("message failed", "type", msg.Type, "error", err)
		c.sendError(msg.Type, err.Error())
	}
}

func (h *Hub) dispatch(c *Client, msg *Message) error {
	if msg.Type == TypeSketchShow {
		if err := c.app.Show(msg.Sketch); err != nil {
			return err
		}
		c.sendFrame()
		return nil
	}

	s := c.app.Active()
	if s == nil {
		return errNoSketch
	}
	if msg.Sketch != "" && msg.Sketch != s.Name {
		return fmt.Errorf("%s is not shown", msg.Sketch)
	}

	switch msg.Type {
	case TypeSketchReset:
		if err := s.Reset(); err != nil {
			return err
		}

	case TypePointerMove, TypePointerDown, TypePointerDrag, TypePointerUp:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("invalid pointer payload: %w", err)
		}
		switch msg.Type {
		case TypePointerMove:
			s.PointerMove(p.X, p.Y)
		case TypePointerDown:
			s.PointerDown(p.X, p.Y)
		case TypePointerDrag:
			moved, err := s.PointerDrag(p.X, p.Y)
			if err != nil {
				return err
			}
			if !moved {
				return nil
			}
		case TypePointerUp:
			s.PointerUp(p.X, p.Y)
		}

	case TypeKey:
		var k KeyPayload
		if err := json.Unmarshal(msg.Payload, &k); err != nil {
			return fmt.Errorf("invalid key payload: %w", err)
		}
		used, err := s.Key(k.Key)
		if err != nil {
			return err
		}
		if !used {
			return nil
		}

	case TypeSettingSet:
		var sp SettingPayload
		if err := json.Unmarshal(msg.Payload, &sp); err != nil {
			return fmt.Errorf("invalid setting payload: %w", err)
		}
		if err := s.SetSetting(sp.Name, sp.Value); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}

	c.sendFrame()
	return nil
}

// Handler accepts websocket connections from the given origin patterns and
// runs one session per connection until it closes.
func (h *Hub) Handler(originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			h.log.Error("websocket accept", "error", err)
			return
		}

		client, err := h.NewSession(conn)
		if err != nil {
			h.log.Error("new session", "error", err)
			conn.Close(websocket.StatusInternalError, "session unavailable")
			return
		}

		// queued before ReadPump so it is always the first message
		client.sendWelcome()
		h.Register(client)

		ctx := r.Context()
		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}
}
