package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/inamate/pathguide/internal/app"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 256
)

// Client is one browser tab. It owns its own App; only ReadPump touches it.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	app  *app.App
	log  *slog.Logger

	sendMu sync.Mutex
	send   chan []byte
	closed bool

	// ID is the session typeid, ClientID the connection id.
	ID       string
	ClientID string
	seq      atomic.Int64
}

func NewClient(hub *Hub, conn *websocket.Conn, a *app.App, id, clientID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		app:      a,
		log:      hub.log.With("session", id),
		ID:       id,
		ClientID: clientID,
	}
}

func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			c.log.Debug("read error", "error", err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Warn("invalid message", "error", err)
			c.sendError("", "invalid message")
			continue
		}
		msg.SessionID = c.ID

		c.hub.handleMessage(c, &msg)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.log.Debug("write error", "error", err)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues a message. It drops the message when the buffer is full.
func (c *Client) Send(msg *Message) {
	msg.Seq = c.seq.Add(1)
	msg.SessionID = c.ID

	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("marshal message", "error", err)
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("client send buffer full, dropping message", "type", msg.Type)
	}
}

// close ends WritePump. Later sends are dropped.
func (c *Client) close() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) sendPayload(typ, sketchName string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.log.Error("marshal payload", "error", err, "type", typ)
		return
	}
	c.Send(&Message{Type: typ, Sketch: sketchName, Payload: data})
}

func (c *Client) sendError(request, message string) {
	c.sendPayload(TypeError, "", ErrorPayload{Message: message, Request: request})
}

// sendWelcome introduces the session: its id, the page title and the
// navigation links.
func (c *Client) sendWelcome() {
	title := ""
	if c.app.Page != nil {
		title = c.app.Page.Title
	}
	c.sendPayload(TypeWelcome, "", WelcomePayload{
		SessionID: c.ID,
		Title:     title,
		Links:     c.app.Links(),
	})
}

// sendFrame repaints the shown sketch.
func (c *Client) sendFrame() {
	s := c.app.Active()
	if s == nil {
		return
	}
	c.sendPayload(TypeFrame, s.Name, FramePayload{Frame: s.Frame(), Links: c.app.Links()})
}
