package scene

import (
	"math"

	"github.com/inamate/pathguide/internal/geom"
	"github.com/inamate/pathguide/internal/typeid"
)

// NodeType identifies the primitive a node draws.
type NodeType string

const (
	NodePath   NodeType = "path"
	NodeLine   NodeType = "line"
	NodeCircle NodeType = "circle"
	NodeRect   NodeType = "rect"
	NodeText   NodeType = "text"
	NodeMarker NodeType = "marker"
)

// MarkerShape is the symbol stamped by a marker node.
type MarkerShape string

const (
	MarkerSquare   MarkerShape = "square"
	MarkerCircle   MarkerShape = "circle"
	MarkerTriangle MarkerShape = "triangle"
	MarkerCross    MarkerShape = "cross"
)

// Style holds the paint properties of a node.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
	Dashed      bool    `json:"dashed,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
}

// Node is a retained shape in the scene.
// Only the fields relevant to its Type are meaningful.
type Node struct {
	ID   string
	Type NodeType

	// Group tags nodes that are created and torn down together.
	Group string
	// Ref is the id of the model object the node visualizes, if any.
	Ref string

	Style   Style
	Visible bool
	Active  bool

	// path
	Path   []geom.PathCommand
	Closed bool

	// line
	From, To geom.Vec

	// circle, marker (Center is also the text anchor)
	Center geom.Vec
	Radius float64
	Marker MarkerShape
	Angle  float64

	// rect
	Rect geom.Rect

	// text
	Text string
}

// Scene is a retained list of nodes in painter's order (back to front).
type Scene struct {
	Width  int
	Height int
	// View maps scene coordinates to canvas pixels.
	View geom.Matrix2D

	nodes     []*Node
	nodesByID map[string]*Node
}

// New creates an empty scene.
func New(width, height int) *Scene {
	return &Scene{
		Width:     width,
		Height:    height,
		View:      geom.Identity(),
		nodesByID: make(map[string]*Node),
	}
}

// Add appends a node on top of the scene and returns it.
// A node without an ID is assigned one.
func (s *Scene) Add(n *Node) *Node {
	if n.ID == "" {
		n.ID = typeid.NewNodeID()
	}
	if old, ok := s.nodesByID[n.ID]; ok {
		s.remove(old)
	}
	s.nodes = append(s.nodes, n)
	s.nodesByID[n.ID] = n
	return n
}

// Get looks up a node by id.
func (s *Scene) Get(id string) (*Node, bool) {
	n, ok := s.nodesByID[id]
	return n, ok
}

// Remove deletes a node. It reports whether the node existed.
func (s *Scene) Remove(id string) bool {
	n, ok := s.nodesByID[id]
	if !ok {
		return false
	}
	s.remove(n)
	return true
}

func (s *Scene) remove(n *Node) {
	delete(s.nodesByID, n.ID)
	for i, c := range s.nodes {
		if c == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return
		}
	}
}

// RemoveGroup deletes every node tagged with group and returns how many were removed.
func (s *Scene) RemoveGroup(group string) int {
	kept := s.nodes[:0]
	removed := 0
	for _, n := range s.nodes {
		if n.Group == group {
			delete(s.nodesByID, n.ID)
			removed++
			continue
		}
		kept = append(kept, n)
	}
	// clear the tail so removed nodes can be collected
	for i := len(kept); i < len(s.nodes); i++ {
		s.nodes[i] = nil
	}
	s.nodes = kept
	return removed
}

// Clear removes every node.
func (s *Scene) Clear() {
	s.nodes = nil
	s.nodesByID = make(map[string]*Node)
}

// BringToFront moves a node to the top of the draw order.
func (s *Scene) BringToFront(id string) {
	n, ok := s.nodesByID[id]
	if !ok {
		return
	}
	s.remove(n)
	s.nodes = append(s.nodes, n)
	s.nodesByID[n.ID] = n
}

// Nodes returns the nodes in painter's order. The slice is a copy.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// HitTest returns the topmost visible node within tolerance of p, or nil.
// p is in scene coordinates.
func (s *Scene) HitTest(p geom.Vec, tolerance float64) *Node {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		n := s.nodes[i]
		if n.Visible && n.Contains(p, tolerance) {
			return n
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the node in scene space.
func (n *Node) Bounds() geom.Rect {
	switch n.Type {
	case NodePath:
		return geom.PreciseBounds(n.Path)
	case NodeLine:
		return geom.RectFromPoints(n.From, n.To)
	case NodeCircle, NodeMarker:
		return geom.Rect{X: n.Center.X - n.Radius, Y: n.Center.Y - n.Radius, Width: 2 * n.Radius, Height: 2 * n.Radius}
	case NodeRect:
		return n.Rect
	default:
		return geom.Rect{X: n.Center.X, Y: n.Center.Y}
	}
}

// Contains reports whether p lies on the node, allowing tolerance in scene units.
// Text nodes are never hit.
func (n *Node) Contains(p geom.Vec, tolerance float64) bool {
	half := n.Style.StrokeWidth / 2
	switch n.Type {
	case NodeCircle, NodeMarker:
		return p.Dist(n.Center) <= n.Radius+tolerance
	case NodeLine:
		return segmentDistance(p, n.From, n.To) <= tolerance+half
	case NodeRect:
		return n.Rect.Expand(tolerance).Contains(p)
	case NodePath:
		return pathDistance(p, n.Path, n.Closed) <= tolerance+half
	default:
		return false
	}
}

// segmentDistance returns the distance from p to the segment ab.
func segmentDistance(p, a, b geom.Vec) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Dist(a.Add(ab.Mul(t)))
}

const flattenSteps = 16

// pathDistance returns the distance from p to the stroke of a path,
// approximating curves by polylines.
func pathDistance(p geom.Vec, path []geom.PathCommand, closed bool) float64 {
	best := math.Inf(1)
	var cur, start geom.Vec
	seg := func(a, b geom.Vec) {
		best = math.Min(best, segmentDistance(p, a, b))
	}

	for _, cmd := range path {
		pts := cmd.Points()
		switch cmd.Op() {
		case "M":
			if len(pts) > 0 {
				cur, start = pts[0], pts[0]
			}
		case "L":
			if len(pts) > 0 {
				seg(cur, pts[0])
				cur = pts[0]
			}
		case "Q":
			if len(pts) > 1 {
				prev := cur
				for i := 1; i <= flattenSteps; i++ {
					q := geom.QuadPoint(cur, pts[0], pts[1], float64(i)/flattenSteps)
					seg(prev, q)
					prev = q
				}
				cur = pts[1]
			}
		case "C":
			if len(pts) > 2 {
				prev := cur
				for i := 1; i <= flattenSteps; i++ {
					q := geom.CubicPoint(cur, pts[0], pts[1], pts[2], float64(i)/flattenSteps)
					seg(prev, q)
					prev = q
				}
				cur = pts[2]
			}
		case "Z":
			seg(cur, start)
			cur = start
		}
	}
	if closed {
		seg(cur, start)
	}
	return best
}
