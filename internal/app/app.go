// Package app holds the sketches of one page and keeps exactly one of them
// on screen.
package app

import (
	"errors"
	"fmt"

	"github.com/inamate/pathguide/internal/document"
	"github.com/inamate/pathguide/internal/sketch"
)

var (
	ErrUnknownSketch   = errors.New("unknown sketch")
	ErrDuplicateSketch = errors.New("sketch already registered")
)

// Link is one entry of the page navigation.
type Link struct {
	Name   string `json:"name"`
	Title  string `json:"title"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// App is the registry of sketches. Nothing is visible until the first Show.
type App struct {
	Page *document.Page

	sketches []*sketch.Sketch
	byName   map[string]*sketch.Sketch
	active   *sketch.Sketch
}

func New() *App {
	return &App{byName: make(map[string]*sketch.Sketch)}
}

// FromManifest builds one sketch per manifest section, in section order.
// Section titles override the example titles.
func FromManifest(page *document.Page, cfg sketch.Config) (*App, error) {
	if page.Canvas.Width > 0 {
		cfg.Width = page.Canvas.Width
	}
	if page.Canvas.Height > 0 {
		cfg.Height = page.Canvas.Height
	}
	if page.Canvas.Scale > 0 {
		cfg.Scale = page.Canvas.Scale
	}

	a := New()
	a.Page = page
	for _, sec := range page.Sections {
		ex, ok := sketch.Lookup(sec.Sketch)
		if !ok {
			return nil, fmt.Errorf("section %q: %w", sec.Sketch, ErrUnknownSketch)
		}
		s, err := ex.Build(cfg)
		if err != nil {
			return nil, err
		}
		if sec.Title != "" {
			s.Title = sec.Title
		}
		if err := a.Add(s); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Add registers a hidden sketch.
func (a *App) Add(s *sketch.Sketch) error {
	if _, ok := a.byName[s.Name]; ok {
		return fmt.Errorf("%s: %w", s.Name, ErrDuplicateSketch)
	}
	s.Hide()
	a.byName[s.Name] = s
	a.sketches = append(a.sketches, s)
	return nil
}

// Show hides every sketch and shows the named one. An unknown name
// changes nothing.
func (a *App) Show(name string) error {
	target, ok := a.byName[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownSketch)
	}
	for _, s := range a.sketches {
		s.Hide()
	}
	target.Show()
	a.active = target
	return nil
}

// Active returns the visible sketch, or nil before the first Show.
func (a *App) Active() *sketch.Sketch {
	return a.active
}

func (a *App) Sketch(name string) (*sketch.Sketch, bool) {
	s, ok := a.byName[name]
	return s, ok
}

func (a *App) Sketches() []*sketch.Sketch {
	out := make([]*sketch.Sketch, len(a.sketches))
	copy(out, a.sketches)
	return out
}

// Links returns one navigation link per sketch in registration order.
func (a *App) Links() []Link {
	links := make([]Link, len(a.sketches))
	for i, s := range a.sketches {
		links[i] = Link{
			Name:   s.Name,
			Title:  s.Title,
			Href:   "#" + s.Name,
			Active: s == a.active,
		}
	}
	return links
}
