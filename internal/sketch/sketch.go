// Package sketch wires an editable path to pointer input, a settings panel
// and a code view. Each example on the page is one Sketch.
package sketch

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/inamate/pathguide/internal/codeview"
	"github.com/inamate/pathguide/internal/geom"
	"github.com/inamate/pathguide/internal/path2d"
	"github.com/inamate/pathguide/internal/scene"
	"github.com/inamate/pathguide/internal/settings"
)

// ErrHidden is returned for input sent to a sketch that is not shown.
var ErrHidden = errors.New("sketch is hidden")

const (
	DefaultWidth     = 640
	DefaultHeight    = 480
	DefaultTolerance = 8.0
	DefaultScale     = 1.0

	codeHeader = "Path2d path;"
	codeFooter = "gl::draw( path );"
)

// Config holds what every sketch on a page shares.
type Config struct {
	Width, Height int
	// Tolerance is the pointer hit radius in canvas pixels.
	Tolerance float64
	// Scale zooms the examples, which are laid out on a
	// DefaultWidth x DefaultHeight area centered on the canvas.
	Scale       float64
	Highlighter codeview.Highlighter
	Logger      *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.Scale <= 0 {
		c.Scale = DefaultScale
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// InitFunc draws the example's starting path.
type InitFunc func(s *Sketch) error

// Sketch is one interactive example.
type Sketch struct {
	Name  string
	Title string

	cfg      Config
	log      *slog.Logger
	scene    *scene.Scene
	path     *path2d.Path
	panel    *settings.Panel
	code     *codeview.Module
	bounds   *path2d.BoundingBox
	precise  *path2d.PreciseBoundingBox
	initPath InitFunc
	// onDrag runs after every accepted drag, before the code is refreshed
	onDrag func(s *Sketch)

	visible    bool
	showBounds bool
	hover      *path2d.Point
	dragging   *path2d.Point
}

// Option configures a sketch before its first Reset.
type Option func(*Sketch) error

// WithControls registers settings controls.
func WithControls(add func(s *Sketch) error) Option {
	return add
}

// OnDrag sets a hook run after every accepted drag.
func OnDrag(fn func(s *Sketch)) Option {
	return func(s *Sketch) error {
		s.onDrag = fn
		return nil
	}
}

// WithBounds shows the bounding box overlays from the start.
func WithBounds() Option {
	return func(s *Sketch) error {
		s.showBounds = true
		return nil
	}
}

// New creates a hidden sketch and draws its initial path.
func New(name, title string, init InitFunc, cfg Config, opts ...Option) (*Sketch, error) {
	cfg = cfg.withDefaults()
	log := cfg.Logger.With("sketch", name)
	sc := scene.New(cfg.Width, cfg.Height)
	sc.View = geom.Fit(
		geom.V(DefaultWidth, DefaultHeight),
		geom.V(float64(cfg.Width), float64(cfg.Height)),
		cfg.Scale,
	)
	path := path2d.New(sc, path2d.WithLogger(log))

	s := &Sketch{
		Name:     name,
		Title:    title,
		cfg:      cfg,
		log:      log,
		scene:    sc,
		path:     path,
		panel:    settings.New(),
		code:     codeview.New(cfg.Highlighter, log),
		bounds:   path2d.NewBoundingBox(path),
		precise:  path2d.NewPreciseBoundingBox(path),
		initPath: init,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("sketch %s: %w", name, err)
		}
	}
	if err := s.Reset(); err != nil {
		return nil, fmt.Errorf("sketch %s: %w", name, err)
	}
	return s, nil
}

func (s *Sketch) Path() *path2d.Path        { return s.path }
func (s *Sketch) Scene() *scene.Scene       { return s.scene }
func (s *Sketch) Settings() *settings.Panel { return s.panel }
func (s *Sketch) Code() *codeview.Module    { return s.code }
func (s *Sketch) Visible() bool             { return s.visible }
func (s *Sketch) BoundsShown() bool         { return s.showBounds }

// Show makes the sketch receive input.
func (s *Sketch) Show() {
	s.visible = true
}

// Hide stops input and drops any drag in progress.
func (s *Sketch) Hide() {
	s.visible = false
	s.hover, s.dragging = nil, nil
}

// Reset tears the sketch down and redraws the initial path.
func (s *Sketch) Reset() error {
	s.path.Reset()
	s.bounds.Reset()
	s.precise.Reset()
	s.hover, s.dragging = nil, nil

	s.code.Clear()
	s.code.Prepend(codeHeader)
	s.code.Inject(codeFooter)

	if s.initPath != nil {
		if err := s.initPath(s); err != nil {
			s.log.Error("draw initial path", "error", err)
			return err
		}
	}
	s.Refresh()
	return nil
}

// Refresh redraws the path and overlays and regenerates the code.
// The bounding boxes are drawn first so the point markers stay on top.
func (s *Sketch) Refresh() {
	var extras []codeview.Coder
	if s.showBounds {
		s.bounds.Draw()
		s.precise.Draw()
		extras = append(extras, s.bounds, s.precise)
	} else {
		s.bounds.Reset()
		s.precise.Reset()
	}
	s.path.DrawPath()
	s.code.Update(s.path, extras...)
}

// SetBounds shows or hides the bounding box overlays.
func (s *Sketch) SetBounds(on bool) {
	s.showBounds = on
	s.Refresh()
}

func (s *Sketch) toScene(x, y float64) (geom.Vec, float64) {
	view := s.scene.View
	p := view.Invert().Apply(geom.V(x, y))
	scale := math.Sqrt(math.Abs(view.Determinant()))
	if scale == 0 {
		scale = 1
	}
	return p, s.cfg.Tolerance / scale
}

// pointAt returns the active point under the canvas position, if any.
func (s *Sketch) pointAt(x, y float64) *path2d.Point {
	p, tol := s.toScene(x, y)
	n := s.scene.HitTest(p, tol)
	if n == nil || n.Type != scene.NodeMarker || !n.Active {
		return nil
	}
	pt, ok := s.path.PointByNode(n.ID)
	if !ok || !pt.Active {
		return nil
	}
	return pt
}

// PointerMove tracks hovering and reports whether the pointer is over a
// draggable point.
func (s *Sketch) PointerMove(x, y float64) bool {
	if !s.visible {
		return false
	}
	s.hover = s.pointAt(x, y)
	return s.hover != nil
}

// PointerDown starts a drag when it lands on a draggable point.
func (s *Sketch) PointerDown(x, y float64) bool {
	if !s.visible {
		return false
	}
	s.dragging = s.pointAt(x, y)
	return s.dragging != nil
}

// PointerDrag moves the point grabbed by PointerDown.
func (s *Sketch) PointerDrag(x, y float64) (bool, error) {
	if !s.visible || s.dragging == nil {
		return false, nil
	}
	p, _ := s.toScene(x, y)
	if err := s.path.MovePoint(s.dragging, p); err != nil {
		return false, err
	}
	if s.onDrag != nil {
		s.onDrag(s)
	}
	s.Refresh()
	return true, nil
}

// PointerUp ends a drag.
func (s *Sketch) PointerUp(x, y float64) {
	s.dragging = nil
	if s.visible {
		s.hover = s.pointAt(x, y)
	}
}

// Key handles a key press: "r" resets the sketch, "b" toggles the bounding
// boxes. It reports whether the key was used.
func (s *Sketch) Key(key string) (bool, error) {
	if !s.visible {
		return false, nil
	}
	switch key {
	case "r":
		return true, s.Reset()
	case "b":
		s.SetBounds(!s.showBounds)
		return true, nil
	}
	return false, nil
}

// SetSetting forwards a widget change to the settings panel.
func (s *Sketch) SetSetting(name string, value any) error {
	if !s.visible {
		return fmt.Errorf("%s: %w", s.Name, ErrHidden)
	}
	_, err := s.panel.Set(name, value)
	return err
}

// Frame is everything a client needs to paint the sketch.
type Frame struct {
	Sketch   string              `json:"sketch"`
	Width    int                 `json:"width"`
	Height   int                 `json:"height"`
	Commands []scene.DrawCommand `json:"commands"`
	Code     string              `json:"code"`
	HTML     string              `json:"html"`
	Settings []settings.Control  `json:"settings"`
	Hover    string              `json:"hover,omitempty"`
}

func (s *Sketch) Frame() Frame {
	f := Frame{
		Sketch:   s.Name,
		Width:    s.scene.Width,
		Height:   s.scene.Height,
		Commands: scene.CompileDrawCommands(s.scene),
		Code:     s.code.Text(),
		HTML:     s.code.HTML(),
		Settings: s.panel.Controls(),
	}
	if s.hover != nil {
		f.Hover = s.hover.ID
	}
	return f
}
