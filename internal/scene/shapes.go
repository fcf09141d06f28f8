package scene

import "github.com/inamate/pathguide/internal/geom"

// NewPath creates a path node from Canvas2D style commands.
func NewPath(group string, path []geom.PathCommand, style Style) *Node {
	return &Node{Type: NodePath, Group: group, Path: path, Style: style, Visible: true}
}

// NewLine creates a straight line node.
func NewLine(group string, from, to geom.Vec, style Style) *Node {
	return &Node{Type: NodeLine, Group: group, From: from, To: to, Style: style, Visible: true}
}

// NewCircle creates a circle node.
func NewCircle(group string, center geom.Vec, radius float64, style Style) *Node {
	return &Node{Type: NodeCircle, Group: group, Center: center, Radius: radius, Style: style, Visible: true}
}

// NewRect creates a rectangle node.
func NewRect(group string, r geom.Rect, style Style) *Node {
	return &Node{Type: NodeRect, Group: group, Rect: r, Style: style, Visible: true}
}

// NewText creates a text label anchored at pos.
func NewText(group string, pos geom.Vec, text string, style Style) *Node {
	return &Node{Type: NodeText, Group: group, Center: pos, Text: text, Style: style, Visible: true}
}

// NewMarker stamps a reusable marker symbol of the given size at center.
func NewMarker(group string, shape MarkerShape, center geom.Vec, size float64, style Style) *Node {
	return &Node{Type: NodeMarker, Group: group, Marker: shape, Center: center, Radius: size, Style: style, Visible: true}
}
