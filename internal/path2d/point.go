package path2d

import (
	"github.com/inamate/pathguide/internal/geom"
	"github.com/inamate/pathguide/internal/scene"
	"github.com/inamate/pathguide/internal/typeid"
)

// Role decides how a point's marker looks.
type Role int

const (
	RoleAnchor Role = iota
	RoleStart
	RoleHandle
	RoleCenter
)

func (r Role) String() string {
	switch r {
	case RoleAnchor:
		return "anchor"
	case RoleStart:
		return "start"
	case RoleHandle:
		return "handle"
	case RoleCenter:
		return "center"
	default:
		return "unknown"
	}
}

// Marker colors.
const (
	ColorStart    = "#f5a623"
	ColorAnchor   = "#ffffff"
	ColorHandle   = "#00bcd4"
	ColorCenter   = "#e040fb"
	ColorInactive = "#777777"

	ColorPath    = "#d8d8d8"
	ColorLineTo  = "#7ed321"
	ColorGuide   = "#5a6b8c"
	ColorLabel   = "#b0b0c0"
	ColorClosing = "#f5a623"
)

const (
	groupMarker  = "marker"
	markerSize   = 5.0
	handleSize   = 4.0
	labelOffsetX = 8.0
	labelOffsetY = -8.0
)

// Point is a control point of a path: a position plus its on-canvas marker.
// Inactive points are display-only and are never dragged.
type Point struct {
	ID     string
	Pos    geom.Vec
	Active bool
	Role   Role
	Color  string

	node *scene.Node
}

// NodeID returns the id of the point's marker node.
func (p *Point) NodeID() string {
	if p.node == nil {
		return ""
	}
	return p.node.ID
}

// NewPathPoint creates an anchor point marker.
func NewPathPoint(sc *scene.Scene, pos geom.Vec, active bool, color ...string) *Point {
	return newPoint(sc, RoleAnchor, pos, active, color)
}

// NewStartPoint creates the directional marker for the start of a subpath.
func NewStartPoint(sc *scene.Scene, pos geom.Vec, active bool, color ...string) *Point {
	return newPoint(sc, RoleStart, pos, active, color)
}

// NewHandlePoint creates a bezier handle marker.
func NewHandlePoint(sc *scene.Scene, pos geom.Vec, active bool, color ...string) *Point {
	return newPoint(sc, RoleHandle, pos, active, color)
}

// NewCenterPoint creates an arc center marker.
func NewCenterPoint(sc *scene.Scene, pos geom.Vec, active bool, color ...string) *Point {
	return newPoint(sc, RoleCenter, pos, active, color)
}

func newPoint(sc *scene.Scene, role Role, pos geom.Vec, active bool, override []string) *Point {
	p := &Point{
		ID:     typeid.NewPointID(),
		Pos:    pos,
		Active: active,
		Role:   role,
		Color:  roleColor(role),
	}
	if len(override) > 0 && override[0] != "" {
		p.Color = override[0]
	}
	if !active {
		p.Color = ColorInactive
	}

	shape, size := scene.MarkerSquare, markerSize
	style := scene.Style{Fill: p.Color}
	switch role {
	case RoleStart:
		shape = scene.MarkerTriangle
	case RoleHandle:
		shape, size = scene.MarkerCircle, handleSize
	case RoleCenter:
		shape = scene.MarkerCross
		style = scene.Style{Stroke: p.Color, StrokeWidth: 2}
	}

	p.node = scene.NewMarker(groupMarker, shape, pos, size, style)
	p.node.Ref = p.ID
	p.node.Active = active
	if sc != nil {
		sc.Add(p.node)
	}
	return p
}

func roleColor(r Role) string {
	switch r {
	case RoleStart:
		return ColorStart
	case RoleHandle:
		return ColorHandle
	case RoleCenter:
		return ColorCenter
	default:
		return ColorAnchor
	}
}

// sync moves the marker to the point's current position.
func (p *Point) sync() {
	if p.node != nil {
		p.node.Center = p.Pos
	}
}
