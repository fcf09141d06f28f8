package path2d

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/inamate/pathguide/internal/geom"
	"github.com/inamate/pathguide/internal/scene"
)

// Path is an editable path: an ordered list of segments, the flat list of
// control points they reference, and the scene nodes that draw them.
//
// Points are owned by the Path. Segments hold references into the point
// list that are set when the segment is appended and never reassigned.
type Path struct {
	scene  *scene.Scene
	log    *slog.Logger
	labels bool

	segments []Segment
	points   []*Point
}

// Option configures a Path.
type Option func(*Path)

// WithLogger sets the logger used to report rejected builder calls.
func WithLogger(l *slog.Logger) Option {
	return func(p *Path) { p.log = l }
}

// WithLabels toggles the coordinate labels drawn next to points.
func WithLabels(on bool) Option {
	return func(p *Path) { p.labels = on }
}

// New creates an empty path drawing into sc.
func New(sc *scene.Scene, opts ...Option) *Path {
	p := &Path{
		scene:  sc,
		log:    slog.Default(),
		labels: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PointOption configures the points a builder call creates.
type PointOption func(*pointConfig)

type pointConfig struct {
	active bool
	color  string
}

// Inactive makes the created points display-only.
func Inactive() PointOption {
	return func(c *pointConfig) { c.active = false }
}

// WithColor overrides the marker color of the created points.
func WithColor(color string) PointOption {
	return func(c *pointConfig) { c.color = color }
}

func pointOptions(opts []PointOption) pointConfig {
	c := pointConfig{active: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Scene returns the scene the path draws into.
func (p *Path) Scene() *scene.Scene {
	return p.scene
}

// Segments returns the segments in drawing order. The slice is a copy.
func (p *Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Points returns the control points in creation order. The slice is a copy.
func (p *Path) Points() []*Point {
	out := make([]*Point, len(p.points))
	copy(out, p.points)
	return out
}

// PointByNode returns the point whose marker is the given scene node.
func (p *Path) PointByNode(nodeID string) (*Point, bool) {
	for _, pt := range p.points {
		if pt.NodeID() == nodeID {
			return pt, true
		}
	}
	return nil, false
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool {
	return len(p.segments) == 0
}

// Reset removes every segment and point, and everything the path drew.
func (p *Path) Reset() {
	for _, pt := range p.points {
		p.scene.Remove(pt.NodeID())
	}
	p.scene.RemoveGroup(groupPath)
	p.scene.RemoveGroup(groupOverlay)
	p.segments = nil
	p.points = nil
}

// MoveTo starts a new subpath at pt.
func (p *Path) MoveTo(pt geom.Vec, opts ...PointOption) error {
	if err := checkVecs("moveTo", pt); err != nil {
		return err
	}
	c := pointOptions(opts)
	return p.appendSegment(KindMoveTo, nil, NewStartPoint(nil, pt, c.active, c.color))
}

// LineTo draws a straight line from the current point to pt.
func (p *Path) LineTo(pt geom.Vec, opts ...PointOption) error {
	if err := p.requireCurrent("lineTo"); err != nil {
		return err
	}
	if err := checkVecs("lineTo", pt); err != nil {
		return err
	}
	c := pointOptions(opts)
	return p.appendSegment(KindLineTo, nil, NewPathPoint(nil, pt, c.active, c.color))
}

// QuadTo draws a quadratic curve with one handle.
func (p *Path) QuadTo(handle, end geom.Vec, opts ...PointOption) error {
	if err := p.requireCurrent("quadTo"); err != nil {
		return err
	}
	if err := checkVecs("quadTo", handle, end); err != nil {
		return err
	}
	c := pointOptions(opts)
	return p.appendSegment(KindQuadTo, nil,
		NewHandlePoint(nil, handle, c.active),
		NewPathPoint(nil, end, c.active, c.color),
	)
}

// CurveTo draws a cubic curve with two handles.
func (p *Path) CurveTo(h1, h2, end geom.Vec, opts ...PointOption) error {
	if err := p.requireCurrent("curveTo"); err != nil {
		return err
	}
	if err := checkVecs("curveTo", h1, h2, end); err != nil {
		return err
	}
	c := pointOptions(opts)
	return p.appendSegment(KindCubicTo, nil,
		NewHandlePoint(nil, h1, c.active),
		NewHandlePoint(nil, h2, c.active),
		NewPathPoint(nil, end, c.active, c.color),
	)
}

// Arc draws a circular arc around center. On an empty path the subpath
// starts at the arc's start point, otherwise a line joins the current point
// to it.
func (p *Path) Arc(center geom.Vec, radius, startAngle, endAngle float64, forward bool, opts ...PointOption) error {
	if err := checkVecs("arc", center); err != nil {
		return err
	}
	if radius < 0 || !finite(radius) || !finite(startAngle) || !finite(endAngle) {
		return fmt.Errorf("arc(radius=%v, start=%v, end=%v): %w", radius, startAngle, endAngle, ErrInvalidArgument)
	}
	c := pointOptions(opts)
	return p.appendSegment(KindArc, func(s Segment) {
		arc := s.(*Arc)
		arc.Radius = radius
		arc.StartAngle = startAngle
		arc.EndAngle = endAngle
		arc.Forward = forward
	},
		NewCenterPoint(nil, center, c.active),
		NewPathPoint(nil, geom.Polar(center, radius, startAngle), c.active, c.color),
		NewPathPoint(nil, geom.Polar(center, radius, endAngle), c.active, c.color),
	)
}

// ArcTo draws an arc of the given radius tangent to the line from the
// current point to tangent and to the line from tangent to target.
func (p *Path) ArcTo(target, tangent geom.Vec, radius float64, opts ...PointOption) error {
	if err := p.requireCurrent("arcTo"); err != nil {
		return err
	}
	if err := checkVecs("arcTo", target, tangent); err != nil {
		return err
	}
	if radius < 0 || !finite(radius) {
		return fmt.Errorf("arcTo(radius=%v): %w", radius, ErrInvalidArgument)
	}
	c := pointOptions(opts)
	return p.appendSegment(KindArcTo, func(s Segment) {
		s.(*ArcTo).Radius = radius
	},
		NewHandlePoint(nil, tangent, c.active),
		NewPathPoint(nil, target, c.active, c.color),
	)
}

// Close closes the current subpath.
func (p *Path) Close() error {
	if err := p.requireCurrent("close"); err != nil {
		return err
	}
	return p.appendSegment(KindClose, nil)
}

// appendSegment builds a segment from pts, registers the points and their
// markers, links a new CubicTo to its predecessor and redraws. setup, if
// set, fills in kind-specific parameters before anything is registered.
func (p *Path) appendSegment(kind Kind, setup func(Segment), pts ...*Point) error {
	seg, err := newSegment(kind, pts)
	if err != nil {
		return err
	}
	if setup != nil {
		setup(seg)
	}

	if cubic, ok := seg.(*CubicTo); ok && len(p.segments) > 0 {
		if prev, ok := p.segments[len(p.segments)-1].(interface{ link(*Point) }); ok {
			prev.link(cubic.Handle1)
		}
	}

	for _, pt := range pts {
		p.scene.Add(pt.node)
		p.points = append(p.points, pt)
	}
	p.segments = append(p.segments, seg)

	p.DrawPath()
	return nil
}

func (p *Path) requireCurrent(op string) error {
	if len(p.segments) > 0 {
		return nil
	}
	err := &InvalidSequenceError{Op: op, Reason: "can only " + op + " as non-first point"}
	p.log.Warn("rejected path command", "op", op, "error", err)
	return err
}

// Code returns the generated source for every segment, one line each.
func (p *Path) Code() string {
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteString(s.Code())
		b.WriteByte('\n')
	}
	return b.String()
}

// Bounds returns the loose bounds of the rendered path, handles included.
func (p *Path) Bounds() geom.Rect {
	return geom.HandleBounds(p.render().commands)
}

// PreciseBounds returns the tight bounds of the rendered path.
func (p *Path) PreciseBounds() geom.Rect {
	return geom.PreciseBounds(p.render().commands)
}

func checkVecs(op string, vs ...geom.Vec) error {
	for _, v := range vs {
		if !v.IsFinite() {
			return fmt.Errorf("%s(%v): %w", op, v, ErrInvalidArgument)
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
