package scene

import (
	"encoding/json"

	"github.com/inamate/pathguide/internal/geom"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op          string             `json:"op"`                    // "path", "line", "circle", "rect", "text", "marker"
	NodeID      string             `json:"nodeId,omitempty"`      // For hit correlation
	Ref         string             `json:"ref,omitempty"`         // Model object id
	Transform   []float64          `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Path        []geom.PathCommand `json:"path,omitempty"`        // Path data for "path" ops
	Closed      bool               `json:"closed,omitempty"`      // Path is closed
	Points      []float64          `json:"points,omitempty"`      // x1, y1, x2, y2 for "line"; cx, cy for circle/marker/text
	Radius      float64            `json:"radius,omitempty"`      // Circle radius or marker size
	Rect        *geom.Rect         `json:"rect,omitempty"`        // For "rect"
	Marker      string             `json:"marker,omitempty"`      // Marker symbol
	Angle       float64            `json:"angle,omitempty"`       // Marker rotation (radians)
	Text        string             `json:"text,omitempty"`        // Label text
	Fill        string             `json:"fill,omitempty"`        // Fill color
	Stroke      string             `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64            `json:"strokeWidth,omitempty"` // Stroke width
	Dashed      bool               `json:"dashed,omitempty"`      // Dashed stroke
	Opacity     float64            `json:"opacity,omitempty"`     // Global alpha
	Active      bool               `json:"active,omitempty"`      // Draggable
}

// CompileDrawCommands generates a draw command buffer from a scene.
// Commands are in painter's order (back to front).
func CompileDrawCommands(s *Scene) []DrawCommand {
	if s == nil {
		return nil
	}

	var transform []float64
	if !s.View.IsIdentity() {
		transform = s.View.ToSlice()
	}

	commands := make([]DrawCommand, 0, len(s.nodes))
	for _, n := range s.nodes {
		if !n.Visible {
			continue
		}
		cmd := DrawCommand{
			Op:          string(n.Type),
			NodeID:      n.ID,
			Ref:         n.Ref,
			Transform:   transform,
			Fill:        n.Style.Fill,
			Stroke:      n.Style.Stroke,
			StrokeWidth: n.Style.StrokeWidth,
			Dashed:      n.Style.Dashed,
			Opacity:     n.Style.Opacity,
			Active:      n.Active,
		}
		switch n.Type {
		case NodePath:
			cmd.Path = n.Path
			cmd.Closed = n.Closed
		case NodeLine:
			cmd.Points = []float64{n.From.X, n.From.Y, n.To.X, n.To.Y}
		case NodeCircle:
			cmd.Points = []float64{n.Center.X, n.Center.Y}
			cmd.Radius = n.Radius
		case NodeMarker:
			cmd.Points = []float64{n.Center.X, n.Center.Y}
			cmd.Radius = n.Radius
			cmd.Marker = string(n.Marker)
			cmd.Angle = n.Angle
		case NodeRect:
			r := n.Rect
			cmd.Rect = &r
		case NodeText:
			cmd.Points = []float64{n.Center.X, n.Center.Y}
			cmd.Text = n.Text
		}
		commands = append(commands, cmd)
	}
	return commands
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
