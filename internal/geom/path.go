package geom

import "math"

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["Q", cx, cy, x, y],
// ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []interface{}

func MoveCmd(p Vec) PathCommand { return PathCommand{"M", p.X, p.Y} }

func LineCmd(p Vec) PathCommand { return PathCommand{"L", p.X, p.Y} }

func QuadCmd(c, p Vec) PathCommand { return PathCommand{"Q", c.X, c.Y, p.X, p.Y} }

func CubicCmd(c1, c2, p Vec) PathCommand {
	return PathCommand{"C", c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y}
}

func CloseCmd() PathCommand { return PathCommand{"Z"} }

// Op returns the command letter, or "" for a malformed command.
func (c PathCommand) Op() string {
	if len(c) == 0 {
		return ""
	}
	op, _ := c[0].(string)
	return op
}

// Points returns the coordinate pairs carried by the command, in order.
func (c PathCommand) Points() []Vec {
	var pts []Vec
	for i := 1; i+1 < len(c); i += 2 {
		pts = append(pts, Vec{toFloat64(c[i]), toFloat64(c[i+1])})
	}
	return pts
}

// HandleBounds returns the bounding box of every point of the path,
// including bezier handles. This is the loose bounds.
func HandleBounds(path []PathCommand) Rect {
	var pts []Vec
	for _, cmd := range path {
		switch cmd.Op() {
		case "M", "L", "Q", "C":
			pts = append(pts, cmd.Points()...)
		}
	}
	return RectFromPoints(pts...)
}

// PreciseBounds returns the tight bounding box of the path: curve
// segments contribute their endpoints and their extrema only.
func PreciseBounds(path []PathCommand) Rect {
	var pts []Vec
	var cur, start Vec

	for _, cmd := range path {
		p := cmd.Points()
		switch cmd.Op() {
		case "M":
			if len(p) < 1 {
				continue
			}
			cur, start = p[0], p[0]
			pts = append(pts, cur)
		case "L":
			if len(p) < 1 {
				continue
			}
			cur = p[0]
			pts = append(pts, cur)
		case "Q":
			if len(p) < 2 {
				continue
			}
			for _, t := range quadExtrema(cur, p[0], p[1]) {
				pts = append(pts, QuadPoint(cur, p[0], p[1], t))
			}
			cur = p[1]
			pts = append(pts, cur)
		case "C":
			if len(p) < 3 {
				continue
			}
			for _, t := range cubicExtrema(cur, p[0], p[1], p[2]) {
				pts = append(pts, CubicPoint(cur, p[0], p[1], p[2], t))
			}
			cur = p[2]
			pts = append(pts, cur)
		case "Z":
			cur = start
		}
	}

	return RectFromPoints(pts...)
}

// QuadPoint evaluates a quadratic bezier at t.
func QuadPoint(p0, p1, p2 Vec, t float64) Vec {
	mt := 1 - t
	return p0.Mul(mt * mt).Add(p1.Mul(2 * mt * t)).Add(p2.Mul(t * t))
}

// CubicPoint evaluates a cubic bezier at t.
func CubicPoint(p0, p1, p2, p3 Vec, t float64) Vec {
	mt := 1 - t
	return p0.Mul(mt * mt * mt).
		Add(p1.Mul(3 * mt * mt * t)).
		Add(p2.Mul(3 * mt * t * t)).
		Add(p3.Mul(t * t * t))
}

// quadExtrema returns the parameters in (0, 1) where the derivative of
// either coordinate vanishes.
func quadExtrema(p0, p1, p2 Vec) []float64 {
	var ts []float64
	for _, axis := range [][3]float64{{p0.X, p1.X, p2.X}, {p0.Y, p1.Y, p2.Y}} {
		den := axis[0] - 2*axis[1] + axis[2]
		if math.Abs(den) < 1e-12 {
			continue
		}
		if t := (axis[0] - axis[1]) / den; t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

func cubicExtrema(p0, p1, p2, p3 Vec) []float64 {
	var ts []float64
	for _, axis := range [][4]float64{{p0.X, p1.X, p2.X, p3.X}, {p0.Y, p1.Y, p2.Y, p3.Y}} {
		// derivative / 3 = a t² + b t + c
		a := axis[3] - 3*axis[2] + 3*axis[1] - axis[0]
		b := 2 * (axis[2] - 2*axis[1] + axis[0])
		c := axis[1] - axis[0]
		for _, t := range solveQuadratic(a, b, c) {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

// solveQuadratic returns the real roots of a t² + b t + c.
func solveQuadratic(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// toFloat64 converts an interface{} to float64.
func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
