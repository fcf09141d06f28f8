package path2d

import (
	"fmt"

	"github.com/inamate/pathguide/internal/geom"
)

// MovePoint drags pt to the new position.
//
// Dragging the start or end point of an arc resizes and rotates the arc
// about its center. Dragging the primary point of a segment (the end point
// of a line or curve, the center of an arc) moves the segment's handles and
// the leading handle of a following curve by the same delta. Any other
// point moves alone.
//
// MovePoint does not redraw; call DrawPath afterwards.
func (p *Path) MovePoint(pt *Point, to geom.Vec) error {
	if !p.owns(pt) {
		return ErrUnknownPoint
	}
	if !to.IsFinite() {
		return fmt.Errorf("move to %v: %w", to, ErrInvalidArgument)
	}

	for _, seg := range p.segments {
		if arc, ok := seg.(*Arc); ok && (pt == arc.Start || pt == arc.End) {
			arc.dragEndpoint(pt, to)
			p.syncMarkers()
			return nil
		}

		primary, companions := seg.drag()
		if primary != pt {
			continue
		}
		delta := to.Sub(pt.Pos)
		pt.Pos = to
		for _, c := range companions {
			c.Pos = c.Pos.Add(delta)
		}
		p.syncMarkers()
		return nil
	}

	pt.Pos = to
	pt.sync()
	return nil
}

func (p *Path) owns(pt *Point) bool {
	if pt == nil {
		return false
	}
	for _, q := range p.points {
		if q == pt {
			return true
		}
	}
	return false
}

func (p *Path) syncMarkers() {
	for _, pt := range p.points {
		pt.sync()
	}
}
