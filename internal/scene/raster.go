package scene

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/inamate/pathguide/internal/geom"
)

// Background is the canvas clear color used by the page and snapshots.
const Background = "#1a1a2e"

// EncodePNG rasterizes the visible nodes of the scene and writes a PNG.
// Text labels are not rasterized since gg needs a loaded font face for them.
func EncodePNG(w io.Writer, s *Scene) error {
	if s == nil || s.Width <= 0 || s.Height <= 0 {
		return errors.New("scene has no canvas size")
	}

	dc := gg.NewContext(s.Width, s.Height)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(Background))

	for _, n := range s.nodes {
		if !n.Visible || n.Type == NodeText {
			continue
		}
		if err := rasterNode(dc, s.View, n); err != nil {
			return fmt.Errorf("raster node %s: %w", n.ID, err)
		}
	}

	return dc.EncodePNG(w)
}

func rasterNode(dc *gg.Context, view geom.Matrix2D, n *Node) error {
	scale := math.Sqrt(math.Abs(view.Determinant()))
	switch n.Type {
	case NodePath:
		tracePath(dc, view, n.Path)
		if n.Closed {
			dc.ClosePath()
		}
	case NodeLine:
		a, b := view.Apply(n.From), view.Apply(n.To)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
	case NodeCircle:
		c := view.Apply(n.Center)
		dc.DrawCircle(c.X, c.Y, n.Radius*scale)
	case NodeRect:
		r := view.ApplyRect(n.Rect)
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	case NodeMarker:
		traceMarker(dc, view.Apply(n.Center), n.Radius, n.Marker, n.Angle)
	}
	return paint(dc, n.Style)
}

func tracePath(dc *gg.Context, view geom.Matrix2D, path []geom.PathCommand) {
	for _, cmd := range path {
		pts := cmd.Points()
		for i := range pts {
			pts[i] = view.Apply(pts[i])
		}
		switch cmd.Op() {
		case "M":
			if len(pts) > 0 {
				dc.MoveTo(pts[0].X, pts[0].Y)
			}
		case "L":
			if len(pts) > 0 {
				dc.LineTo(pts[0].X, pts[0].Y)
			}
		case "Q":
			if len(pts) > 1 {
				dc.QuadraticTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
			}
		case "C":
			if len(pts) > 2 {
				dc.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			}
		case "Z":
			dc.ClosePath()
		}
	}
}

// traceMarker draws marker symbols at a fixed pixel size, like stamped symbols.
func traceMarker(dc *gg.Context, c geom.Vec, size float64, shape MarkerShape, angle float64) {
	switch shape {
	case MarkerCircle:
		dc.DrawCircle(c.X, c.Y, size)
	case MarkerTriangle:
		for i := 0; i < 3; i++ {
			p := geom.Polar(c, size*1.2, angle+float64(i)*2*math.Pi/3)
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.ClosePath()
	case MarkerCross:
		dc.MoveTo(c.X-size, c.Y)
		dc.LineTo(c.X+size, c.Y)
		dc.MoveTo(c.X, c.Y-size)
		dc.LineTo(c.X, c.Y+size)
	default:
		dc.DrawRectangle(c.X-size, c.Y-size, 2*size, 2*size)
	}
}

func paint(dc *gg.Context, st Style) error {
	if st.Fill != "" {
		dc.SetHexColor(st.Fill)
		if st.Stroke == "" {
			return dc.Fill()
		}
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	if st.Stroke == "" {
		dc.ClearPath()
		return nil
	}

	dc.SetHexColor(st.Stroke)
	dc.SetLineWidth(max(st.StrokeWidth, 1))
	if st.Dashed {
		dc.SetDash(4, 4)
	} else {
		dc.ClearDash()
	}
	return dc.Stroke()
}
