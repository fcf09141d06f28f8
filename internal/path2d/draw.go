package path2d

import (
	"fmt"
	"math"

	"github.com/inamate/pathguide/internal/geom"
	"github.com/inamate/pathguide/internal/scene"
)

const (
	groupPath    = "path"
	groupOverlay = "overlay"

	// spans at or below this are not drawn
	minArcSweep = 0.00001
	// below this |sin| the arcTo tangents are treated as collinear
	collinearEps = 1e-6
)

var (
	pathStyle    = scene.Style{Stroke: ColorPath, StrokeWidth: 2}
	lineToStyle  = scene.Style{Stroke: ColorLineTo, StrokeWidth: 3}
	guideStyle   = scene.Style{Stroke: ColorGuide, StrokeWidth: 1, Dashed: true}
	radiusStyle  = scene.Style{Stroke: ColorCenter, StrokeWidth: 1, Dashed: true}
	closingStyle = scene.Style{Stroke: ColorClosing, StrokeWidth: 1, Dashed: true}
	labelStyle   = scene.Style{Fill: ColorLabel}
)

// rendering is everything DrawPath puts on screen, computed from the
// current segments and points.
type rendering struct {
	commands []geom.PathCommand
	overlays []*scene.Node
	closed   bool
	// direction of travel at each subpath start, keyed by start point
	headings map[*Point]float64
}

// DrawPath tears down the rendered path and its guides and rebuilds them
// from the segments, then brings every point marker to the front.
func (p *Path) DrawPath() {
	p.scene.RemoveGroup(groupPath)
	p.scene.RemoveGroup(groupOverlay)

	r := p.render()
	if len(r.commands) > 0 {
		node := scene.NewPath(groupPath, r.commands, pathStyle)
		node.Closed = r.closed
		p.scene.Add(node)
	}
	for _, n := range r.overlays {
		p.scene.Add(n)
	}

	for _, pt := range p.points {
		pt.sync()
		if pt.node != nil {
			pt.node.Angle = r.headings[pt]
		}
		p.scene.BringToFront(pt.NodeID())
	}
}

func (p *Path) render() *rendering {
	r := &rendering{headings: make(map[*Point]float64)}
	var cur, start geom.Vec
	var startPt *Point
	has := false

	heading := func(to geom.Vec) {
		if startPt != nil {
			if d := to.Sub(start); d.Len() > 0 {
				r.headings[startPt] = d.Angle()
			}
			startPt = nil
		}
	}

	for _, seg := range p.segments {
		switch s := seg.(type) {
		case *MoveTo:
			cur, start, startPt, has = s.To.Pos, s.To.Pos, s.To, true
			r.commands = append(r.commands, geom.MoveCmd(cur))
			p.label(r, s.To)

		case *LineTo:
			heading(s.To.Pos)
			r.commands = append(r.commands, geom.LineCmd(s.To.Pos))
			r.overlays = append(r.overlays, scene.NewLine(groupOverlay, cur, s.To.Pos, lineToStyle))
			p.label(r, s.To)
			cur = s.To.Pos

		case *QuadTo:
			heading(s.Handle.Pos)
			r.commands = append(r.commands, geom.QuadCmd(s.Handle.Pos, s.To.Pos))
			r.overlays = append(r.overlays,
				scene.NewLine(groupOverlay, cur, s.Handle.Pos, guideStyle),
				scene.NewLine(groupOverlay, s.Handle.Pos, s.To.Pos, guideStyle),
			)
			p.label(r, s.Handle, s.To)
			cur = s.To.Pos

		case *CubicTo:
			heading(s.Handle1.Pos)
			r.commands = append(r.commands, geom.CubicCmd(s.Handle1.Pos, s.Handle2.Pos, s.To.Pos))
			r.overlays = append(r.overlays,
				scene.NewLine(groupOverlay, cur, s.Handle1.Pos, guideStyle),
				scene.NewLine(groupOverlay, s.Handle2.Pos, s.To.Pos, guideStyle),
			)
			p.label(r, s.Handle1, s.Handle2, s.To)
			cur = s.To.Pos

		case *Arc:
			if has {
				heading(s.Start.Pos)
				r.commands = append(r.commands, geom.LineCmd(s.Start.Pos))
			} else {
				start, has = s.Start.Pos, true
				r.commands = append(r.commands, geom.MoveCmd(s.Start.Pos))
			}
			r.commands = append(r.commands, arcCommands(s.Center.Pos, s.Radius, s.StartAngle, s.EndAngle, s.Forward)...)
			p.arcGuides(r, s)
			cur = s.End.Pos

		case *ArcTo:
			heading(s.Tangent.Pos)
			cmds, end := arcToCommands(cur, s.Tangent.Pos, s.To.Pos, s.Radius)
			r.commands = append(r.commands, cmds...)
			r.overlays = append(r.overlays,
				scene.NewLine(groupOverlay, cur, s.Tangent.Pos, guideStyle),
				scene.NewLine(groupOverlay, s.Tangent.Pos, s.To.Pos, guideStyle),
			)
			p.label(r, s.Tangent, s.To)
			cur = end

		case *Close:
			r.commands = append(r.commands, geom.CloseCmd())
			r.overlays = append(r.overlays, scene.NewLine(groupOverlay, cur, start, closingStyle))
			r.closed = true
			cur = start

		default:
			panic(fmt.Sprintf("path2d: unhandled segment %T", seg))
		}
	}
	return r
}

func (p *Path) label(r *rendering, pts ...*Point) {
	if !p.labels {
		return
	}
	for _, pt := range pts {
		pos := pt.Pos.Add(geom.V(labelOffsetX, labelOffsetY))
		text := "(" + FormatNum(pt.Pos.X) + ", " + FormatNum(pt.Pos.Y) + ")"
		r.overlays = append(r.overlays, scene.NewText(groupOverlay, pos, text, labelStyle))
	}
}

// arcGuides draws the radius lines and the radius and angle labels of an arc.
func (p *Path) arcGuides(r *rendering, s *Arc) {
	c := s.Center.Pos
	r.overlays = append(r.overlays,
		scene.NewCircle(groupOverlay, c, s.Radius, guideStyle),
		scene.NewLine(groupOverlay, c, s.Start.Pos, radiusStyle),
		scene.NewLine(groupOverlay, c, s.End.Pos, radiusStyle),
	)
	if !p.labels {
		return
	}
	mid := c.Lerp(s.Start.Pos, 0.5).Add(geom.V(labelOffsetX, labelOffsetY))
	r.overlays = append(r.overlays,
		scene.NewText(groupOverlay, mid, "radius: "+FormatNum(s.Radius), labelStyle),
		scene.NewText(groupOverlay, s.Start.Pos.Add(geom.V(labelOffsetX, -labelOffsetY)), "start: "+FormatRadians(s.StartAngle), labelStyle),
		scene.NewText(groupOverlay, s.End.Pos.Add(geom.V(labelOffsetX, -labelOffsetY)), "end: "+FormatRadians(s.EndAngle), labelStyle),
	)
}

// arcCommands approximates a circular arc with cubic beziers. Spans over
// half a turn are bisected; the rest are cut into pieces of at most a
// quarter turn.
func arcCommands(center geom.Vec, radius, startAngle, endAngle float64, forward bool) []geom.PathCommand {
	const twoPi = 2 * math.Pi
	if forward {
		if endAngle < startAngle {
			endAngle += math.Ceil((startAngle-endAngle)/twoPi) * twoPi
		}
	} else if endAngle > startAngle {
		endAngle -= math.Ceil((endAngle-startAngle)/twoPi) * twoPi
	}

	sweep := endAngle - startAngle
	if math.Abs(sweep) > math.Pi {
		mid := startAngle + sweep/2
		return append(
			arcCommands(center, radius, startAngle, mid, forward),
			arcCommands(center, radius, mid, endAngle, forward)...,
		)
	}
	if math.Abs(sweep) <= minArcSweep {
		return nil
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	cmds := make([]geom.PathCommand, 0, n)
	a := startAngle
	for i := 0; i < n; i++ {
		cmds = append(cmds, arcSegmentAsCubic(center, radius, a, a+step))
		a += step
	}
	return cmds
}

// arcSegmentAsCubic returns the cubic for a span of at most a quarter turn,
// with handle length 4/3·tan(Δ/4)·radius.
func arcSegmentAsCubic(center geom.Vec, radius, a, b float64) geom.PathCommand {
	rSinA, rCosA := radius*math.Sin(a), radius*math.Cos(a)
	rSinB, rCosB := radius*math.Sin(b), radius*math.Cos(b)
	h := 4.0 / 3.0 * math.Tan((b-a)/4)

	return geom.CubicCmd(
		geom.V(center.X+rCosA-h*rSinA, center.Y+rSinA+h*rCosA),
		geom.V(center.X+rCosB+h*rSinB, center.Y+rSinB-h*rCosB),
		geom.V(center.X+rCosB, center.Y+rSinB),
	)
}

// arcToCommands builds the arc tangent to p0→t and t→p1 with the given
// radius: a line to the first tangent point and one cubic to the second.
// It returns the commands and the point where the rendered arc ends.
//
// Collinear or zero-length tangents degrade to a line to p1, and a zero
// radius to a sharp corner at t.
func arcToCommands(p0, t, p1 geom.Vec, radius float64) ([]geom.PathCommand, geom.Vec) {
	v0, v1 := p0.Sub(t), p1.Sub(t)
	if v0.Len() == 0 || v1.Len() == 0 {
		return []geom.PathCommand{geom.LineCmd(p1)}, p1
	}
	u0, u1 := v0.Normalize(), v1.Normalize()

	cross := u0.Cross(u1)
	if math.Abs(cross) < collinearEps {
		return []geom.PathCommand{geom.LineCmd(p1)}, p1
	}
	if radius == 0 {
		return []geom.PathCommand{geom.LineCmd(t), geom.LineCmd(p1)}, p1
	}

	// tangent of half the arc's sweep
	halfTan := (1 + u0.Dot(u1)) / math.Abs(cross)
	d := radius * halfTan
	b0 := t.Add(u0.Mul(d))
	b3 := t.Add(u1.Mul(d))

	k := (4.0 / 3.0) / (1 + math.Sqrt(1+d*d/(radius*radius)))
	b1 := b0.Add(t.Sub(b0).Mul(k))
	b2 := b3.Add(t.Sub(b3).Mul(k))

	return []geom.PathCommand{geom.LineCmd(b0), geom.CubicCmd(b1, b2, b3)}, b3
}
