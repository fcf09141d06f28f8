package path2d

import (
	"github.com/inamate/pathguide/internal/geom"
	"github.com/inamate/pathguide/internal/scene"
)

const groupBounds = "bounds"

var boundsStyle = scene.Style{Stroke: ColorInactive, StrokeWidth: 1, Dashed: true}

// BoundingBox draws the loose bounds of a path, which include its handles.
type BoundingBox struct {
	path *Path
	node *scene.Node
}

// NewBoundingBox returns an overlay for path. Nothing is drawn until Draw.
func NewBoundingBox(path *Path) *BoundingBox {
	return &BoundingBox{path: path}
}

// Rect returns the current loose bounds.
func (b *BoundingBox) Rect() geom.Rect {
	return b.path.Bounds()
}

// Draw replaces the previously drawn rectangle.
func (b *BoundingBox) Draw() {
	b.node = drawBounds(b.path.scene, b.node, b.Rect())
}

// Reset removes the drawn rectangle.
func (b *BoundingBox) Reset() {
	removeBounds(b.path.scene, &b.node)
}

func (b *BoundingBox) Code() string {
	return "gl::drawStrokedRect( path.calcBoundingBox() );"
}

// PreciseBoundingBox draws the tight bounds of a path, computed from the
// curve extrema.
type PreciseBoundingBox struct {
	path *Path
	node *scene.Node
}

func NewPreciseBoundingBox(path *Path) *PreciseBoundingBox {
	return &PreciseBoundingBox{path: path}
}

func (b *PreciseBoundingBox) Rect() geom.Rect {
	return b.path.PreciseBounds()
}

func (b *PreciseBoundingBox) Draw() {
	b.node = drawBounds(b.path.scene, b.node, b.Rect())
}

func (b *PreciseBoundingBox) Reset() {
	removeBounds(b.path.scene, &b.node)
}

func (b *PreciseBoundingBox) Code() string {
	return "gl::drawStrokedRect( path.calcPreciseBoundingBox() );"
}

func drawBounds(sc *scene.Scene, prev *scene.Node, r geom.Rect) *scene.Node {
	if prev != nil {
		sc.Remove(prev.ID)
	}
	return sc.Add(scene.NewRect(groupBounds, r, boundsStyle))
}

func removeBounds(sc *scene.Scene, n **scene.Node) {
	if *n != nil {
		sc.Remove((*n).ID)
		*n = nil
	}
}
