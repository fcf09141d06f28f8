package path2d

import (
	"fmt"
	"strconv"

	"github.com/inamate/pathguide/internal/geom"
)

// Kind identifies a drawing command.
type Kind int

const (
	KindMoveTo Kind = iota
	KindLineTo
	KindQuadTo
	KindCubicTo
	KindArc
	KindArcTo
	KindClose
)

func (k Kind) String() string {
	switch k {
	case KindMoveTo:
		return "moveTo"
	case KindLineTo:
		return "lineTo"
	case KindQuadTo:
		return "quadTo"
	case KindCubicTo:
		return "curveTo"
	case KindArc:
		return "arc"
	case KindArcTo:
		return "arcTo"
	case KindClose:
		return "close"
	default:
		return "unknown"
	}
}

// Arity returns how many control points a command of this kind holds.
func (k Kind) Arity() int {
	switch k {
	case KindMoveTo, KindLineTo:
		return 1
	case KindQuadTo, KindArcTo:
		return 2
	case KindCubicTo, KindArc:
		return 3
	default:
		return 0
	}
}

// Segment is one drawing command and the points that parameterize it.
// The set of implementations is closed: *MoveTo, *LineTo, *QuadTo,
// *CubicTo, *Arc, *ArcTo and *Close.
type Segment interface {
	Kind() Kind
	// Points returns the control points in creation order.
	Points() []*Point
	// Code renders the command as one line of target-language source.
	Code() string

	// drag returns the point that moves the whole segment and the points
	// that follow it by the same delta.
	drag() (primary *Point, companions []*Point)
}

// linked is embedded by segments that end on an anchor. LinkedHandle is
// the leading handle of a CubicTo appended right after the segment; it
// follows the anchor when the anchor is dragged.
type linked struct {
	LinkedHandle *Point
}

func (l *linked) link(h *Point) { l.LinkedHandle = h }

func (l *linked) companions(pts ...*Point) []*Point {
	if l.LinkedHandle != nil {
		pts = append(pts, l.LinkedHandle)
	}
	return pts
}

type MoveTo struct {
	linked
	To *Point
}

type LineTo struct {
	linked
	To *Point
}

type QuadTo struct {
	linked
	Handle *Point
	To     *Point
}

type CubicTo struct {
	linked
	Handle1 *Point
	Handle2 *Point
	To      *Point
}

// Arc is a circular arc. Start and End always lie on the circle given by
// Center, Radius and the respective angle.
type Arc struct {
	linked
	Center     *Point
	Start      *Point
	End        *Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Forward    bool
}

// ArcTo is an arc of the given radius tangent to the lines from the current
// point to Tangent and from Tangent to To.
type ArcTo struct {
	linked
	Tangent *Point
	To      *Point
	Radius  float64
}

type Close struct{}

// newSegment builds a segment of the given kind from its control points in
// creation order. It fails with ErrArity when the count does not match.
func newSegment(kind Kind, pts []*Point) (Segment, error) {
	if len(pts) != kind.Arity() {
		return nil, fmt.Errorf("%s needs %d points, got %d: %w", kind, kind.Arity(), len(pts), ErrArity)
	}
	for _, p := range pts {
		if p == nil {
			return nil, fmt.Errorf("%s: nil point: %w", kind, ErrArity)
		}
	}

	switch kind {
	case KindMoveTo:
		return &MoveTo{To: pts[0]}, nil
	case KindLineTo:
		return &LineTo{To: pts[0]}, nil
	case KindQuadTo:
		return &QuadTo{Handle: pts[0], To: pts[1]}, nil
	case KindCubicTo:
		return &CubicTo{Handle1: pts[0], Handle2: pts[1], To: pts[2]}, nil
	case KindArc:
		return &Arc{Center: pts[0], Start: pts[1], End: pts[2]}, nil
	case KindArcTo:
		return &ArcTo{Tangent: pts[0], To: pts[1]}, nil
	case KindClose:
		return &Close{}, nil
	default:
		return nil, fmt.Errorf("unknown segment kind %d: %w", kind, ErrInvalidArgument)
	}
}

func (*MoveTo) Kind() Kind  { return KindMoveTo }
func (*LineTo) Kind() Kind  { return KindLineTo }
func (*QuadTo) Kind() Kind  { return KindQuadTo }
func (*CubicTo) Kind() Kind { return KindCubicTo }
func (*Arc) Kind() Kind     { return KindArc }
func (*ArcTo) Kind() Kind   { return KindArcTo }
func (*Close) Kind() Kind   { return KindClose }

func (s *MoveTo) Points() []*Point  { return []*Point{s.To} }
func (s *LineTo) Points() []*Point  { return []*Point{s.To} }
func (s *QuadTo) Points() []*Point  { return []*Point{s.Handle, s.To} }
func (s *CubicTo) Points() []*Point { return []*Point{s.Handle1, s.Handle2, s.To} }
func (s *Arc) Points() []*Point     { return []*Point{s.Center, s.Start, s.End} }
func (s *ArcTo) Points() []*Point   { return []*Point{s.Tangent, s.To} }
func (*Close) Points() []*Point     { return nil }

func (s *MoveTo) Code() string {
	return "path.moveTo( " + formatVec(s.To) + " );"
}

func (s *LineTo) Code() string {
	return "path.lineTo( " + formatVec(s.To) + " );"
}

func (s *QuadTo) Code() string {
	return "path.quadTo( " + formatVec(s.Handle) + ", " + formatVec(s.To) + " );"
}

func (s *CubicTo) Code() string {
	return "path.curveTo( " + formatVec(s.Handle1) + ", " + formatVec(s.Handle2) + ", " + formatVec(s.To) + " );"
}

func (s *Arc) Code() string {
	return "path.arc( " + formatVec(s.Center) + ", " + FormatNum(s.Radius) + ", " +
		FormatRadians(s.StartAngle) + ", " + FormatRadians(s.EndAngle) + ", " +
		strconv.FormatBool(s.Forward) + " );"
}

func (s *ArcTo) Code() string {
	return "path.arcTo( " + formatVec(s.To) + ", " + formatVec(s.Tangent) + ", " + FormatNum(s.Radius) + " );"
}

func (*Close) Code() string {
	return "path.close();"
}

func (s *MoveTo) drag() (*Point, []*Point)  { return s.To, s.companions() }
func (s *LineTo) drag() (*Point, []*Point)  { return s.To, s.companions() }
func (s *QuadTo) drag() (*Point, []*Point)  { return s.To, s.companions(s.Handle) }
func (s *CubicTo) drag() (*Point, []*Point) { return s.To, s.companions(s.Handle1, s.Handle2) }
func (s *Arc) drag() (*Point, []*Point)     { return s.Center, s.companions(s.Start, s.End) }
func (s *ArcTo) drag() (*Point, []*Point)   { return s.To, s.companions() }
func (*Close) drag() (*Point, []*Point)     { return nil, nil }

// SetRadius changes the radius and moves both endpoints onto the new circle.
func (s *Arc) SetRadius(r float64) error {
	if r < 0 || !finite(r) {
		return fmt.Errorf("arc radius %v: %w", r, ErrInvalidArgument)
	}
	s.Radius = r
	s.reproject()
	return nil
}

// SetRadius changes the radius of the rounded corner.
func (s *ArcTo) SetRadius(r float64) error {
	if r < 0 || !finite(r) {
		return fmt.Errorf("arcTo radius %v: %w", r, ErrInvalidArgument)
	}
	s.Radius = r
	return nil
}

// SetForward changes the sweep direction.
func (s *Arc) SetForward(forward bool) {
	s.Forward = forward
}

// reproject places Start and End on the circle at their angles.
func (s *Arc) reproject() {
	s.Start.Pos = geom.Polar(s.Center.Pos, s.Radius, s.StartAngle)
	s.End.Pos = geom.Polar(s.Center.Pos, s.Radius, s.EndAngle)
}

// dragEndpoint moves Start or End to the angle of to, resizing the arc to
// the distance of to from the center. The other endpoint keeps its angle.
func (s *Arc) dragEndpoint(p *Point, to geom.Vec) {
	d := to.Sub(s.Center.Pos)
	r := d.Len()
	if r == 0 {
		// angle is undefined on the center
		return
	}
	s.Radius = r
	if p == s.Start {
		s.StartAngle = d.Angle()
	} else {
		s.EndAngle = d.Angle()
	}
	s.reproject()
}
