// Package engine is the in-browser face of the guide: it owns one app and
// answers queries as JSON strings for the wasm bridge.
package engine

import (
	"encoding/json"
	"errors"

	"github.com/inamate/pathguide/internal/app"
	"github.com/inamate/pathguide/internal/document"
	"github.com/inamate/pathguide/internal/scene"
	"github.com/inamate/pathguide/internal/sketch"
)

// ErrNoSketch is returned for input sent before any sketch is shown.
var ErrNoSketch = errors.New("no sketch is shown")

// Engine holds the page's sketches. It is not safe for concurrent use;
// the browser drives it from a single goroutine.
type Engine struct {
	app *app.App
}

// New builds the engine for the built-in page.
func New(cfg sketch.Config) (*Engine, error) {
	page, err := document.Default()
	if err != nil {
		return nil, err
	}
	return NewFromPage(page, cfg)
}

// NewFromPage builds the engine for a page manifest.
func NewFromPage(page *document.Page, cfg sketch.Config) (*Engine, error) {
	a, err := app.FromManifest(page, cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{app: a}, nil
}

// --- Commands (frontend → engine) ---

// Show makes the named sketch the visible one.
func (e *Engine) Show(name string) error {
	return e.app.Show(name)
}

// Reset restores the shown sketch to its initial path.
func (e *Engine) Reset() error {
	s, err := e.active()
	if err != nil {
		return err
	}
	return s.Reset()
}

// Key forwards a key press and reports whether it changed anything.
func (e *Engine) Key(key string) (bool, error) {
	s, err := e.active()
	if err != nil {
		return false, err
	}
	return s.Key(key)
}

// PointerMove reports whether the pointer is over a draggable point.
func (e *Engine) PointerMove(x, y float64) bool {
	s := e.app.Active()
	return s != nil && s.PointerMove(x, y)
}

func (e *Engine) PointerDown(x, y float64) bool {
	s := e.app.Active()
	return s != nil && s.PointerDown(x, y)
}

// PointerDrag reports whether a point moved.
func (e *Engine) PointerDrag(x, y float64) (bool, error) {
	s, err := e.active()
	if err != nil {
		return false, err
	}
	return s.PointerDrag(x, y)
}

func (e *Engine) PointerUp(x, y float64) {
	if s := e.app.Active(); s != nil {
		s.PointerUp(x, y)
	}
}

// SetSetting changes a settings widget of the shown sketch.
func (e *Engine) SetSetting(name string, value any) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	return s.SetSetting(name, value)
}

// --- Queries (frontend ← engine) ---

// Render returns the shown sketch's draw commands as JSON.
func (e *Engine) Render() string {
	s := e.app.Active()
	if s == nil {
		return "[]"
	}
	result, _ := scene.DrawCommandsToJSON(scene.CompileDrawCommands(s.Scene()))
	return result
}

// Code returns the shown sketch's code as plain text.
func (e *Engine) Code() string {
	if s := e.app.Active(); s != nil {
		return s.Code().CopyText()
	}
	return ""
}

// CodeHTML returns the shown sketch's highlighted code.
func (e *Engine) CodeHTML() string {
	if s := e.app.Active(); s != nil {
		return s.Code().HTML()
	}
	return ""
}

// Settings returns the shown sketch's widgets as JSON.
func (e *Engine) Settings() string {
	s := e.app.Active()
	if s == nil {
		return "[]"
	}
	return toJSON(s.Settings().Controls(), "[]")
}

// Links returns the navigation links as JSON.
func (e *Engine) Links() string {
	return toJSON(e.app.Links(), "[]")
}

// Frame is one repaint: the sketch frame plus the navigation links.
type Frame struct {
	sketch.Frame
	Links []app.Link `json:"links"`
}

// Frame returns everything needed to repaint the shown sketch as JSON, in
// one call instead of Render, CodeHTML, Settings and Links.
func (e *Engine) Frame() string {
	s := e.app.Active()
	if s == nil {
		return "{}"
	}
	return toJSON(Frame{Frame: s.Frame(), Links: e.app.Links()}, "{}")
}

func (e *Engine) active() (*sketch.Sketch, error) {
	s := e.app.Active()
	if s == nil {
		return nil, ErrNoSketch
	}
	return s, nil
}

func toJSON(v any, empty string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return empty
	}
	return string(data)
}
