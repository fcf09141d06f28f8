package geom

import "math"

// Vec is a 2D point or direction in scene coordinates.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Polar returns the point at the given radius and angle (radians) around center.
func Polar(center Vec, radius, angle float64) Vec {
	return Vec{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Mul(s float64) Vec { return Vec{v.X * s, v.Y * s} }

func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between two points.
func (v Vec) Dist(o Vec) float64 { return o.Sub(v).Len() }

// Angle returns the angle of v in radians, in (-π, π].
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Normalize returns the unit vector in the direction of v, or the zero vector.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Lerp interpolates between v (t=0) and o (t=1).
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Near reports whether both coordinates differ by at most eps.
func (v Vec) Near(o Vec, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (v Vec) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
