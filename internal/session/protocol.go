package session

import (
	"encoding/json"

	"github.com/inamate/pathguide/internal/app"
	"github.com/inamate/pathguide/internal/sketch"
)

// Message is the envelope of every websocket frame in both directions.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Sketch    string          `json:"sketch,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client to server
	TypeSketchShow  = "sketch.show"
	TypeSketchReset = "sketch.reset"
	TypePointerMove = "pointer.move"
	TypePointerDown = "pointer.down"
	TypePointerDrag = "pointer.drag"
	TypePointerUp   = "pointer.up"
	TypeKey         = "key"
	TypeSettingSet  = "setting.set"

	// Server to client
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeError   = "error"
)

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type KeyPayload struct {
	Key string `json:"key"`
}

type SettingPayload struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type WelcomePayload struct {
	SessionID string     `json:"sessionId"`
	Title     string     `json:"title"`
	Links     []app.Link `json:"links"`
}

// FramePayload is a full repaint of the shown sketch.
type FramePayload struct {
	sketch.Frame
	Links []app.Link `json:"links"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	// Request is the type of the message that failed.
	Request string `json:"request,omitempty"`
}
