package sketch

import (
	"math"

	"github.com/inamate/pathguide/internal/geom"
	"github.com/inamate/pathguide/internal/path2d"
)

// Example is a sketch of the guide, built on demand.
type Example struct {
	Name  string
	Title string
	Build func(cfg Config) (*Sketch, error)
}

const (
	arcRadius      = 100.0
	arcMinRadius   = 10.0
	arcMaxRadius   = 200.0
	arcToRadius    = 40.0
	arcToMaxRadius = 150.0
)

var examples = []Example{
	simple("moveTo", "Move To", func(p *path2d.Path) error {
		return chain(
			func() error { return p.MoveTo(geom.V(120, 140)) },
			func() error { return p.LineTo(geom.V(320, 140)) },
			func() error { return p.MoveTo(geom.V(120, 300)) },
			func() error { return p.LineTo(geom.V(320, 300)) },
		)
	}),
	simple("lineTo", "Line To", func(p *path2d.Path) error {
		return chain(
			func() error { return p.MoveTo(geom.V(120, 340)) },
			func() error { return p.LineTo(geom.V(270, 140)) },
			func() error { return p.LineTo(geom.V(420, 340)) },
		)
	}),
	simple("quadTo", "Quad To", func(p *path2d.Path) error {
		return chain(
			func() error { return p.MoveTo(geom.V(120, 340)) },
			func() error { return p.QuadTo(geom.V(270, 80), geom.V(420, 340)) },
		)
	}),
	simple("curveTo", "Curve To", func(p *path2d.Path) error {
		return chain(
			func() error { return p.MoveTo(geom.V(80, 300)) },
			func() error { return p.CurveTo(geom.V(120, 100), geom.V(260, 100), geom.V(300, 240)) },
			func() error { return p.CurveTo(geom.V(340, 380), geom.V(480, 380), geom.V(540, 180)) },
		)
	}),
	{Name: "arc", Title: "Arc", Build: buildArc},
	{Name: "arcTo", Title: "Arc To", Build: buildArcTo},
	simple("close", "Close", func(p *path2d.Path) error {
		return chain(
			func() error { return p.MoveTo(geom.V(170, 360)) },
			func() error { return p.LineTo(geom.V(320, 110)) },
			func() error { return p.LineTo(geom.V(470, 360)) },
			func() error { return p.Close() },
		)
	}),
	{Name: "bounds", Title: "Bounding Box", Build: func(cfg Config) (*Sketch, error) {
		return New("bounds", "Bounding Box", func(s *Sketch) error {
			p := s.Path()
			return chain(
				func() error { return p.MoveTo(geom.V(100, 320)) },
				func() error { return p.CurveTo(geom.V(100, 60), geom.V(400, 60), geom.V(400, 320)) },
				func() error { return p.QuadTo(geom.V(500, 420), geom.V(260, 420)) },
			)
		}, cfg, WithBounds())
	}},
}

// Examples returns the built-in examples in page order.
func Examples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}

// Lookup finds a built-in example by name.
func Lookup(name string) (Example, bool) {
	for _, e := range examples {
		if e.Name == name {
			return e, true
		}
	}
	return Example{}, false
}

func simple(name, title string, draw func(p *path2d.Path) error) Example {
	return Example{
		Name:  name,
		Title: title,
		Build: func(cfg Config) (*Sketch, error) {
			return New(name, title, func(s *Sketch) error { return draw(s.Path()) }, cfg)
		},
	}
}

func chain(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func firstArc(p *path2d.Path) *path2d.Arc {
	for _, seg := range p.Segments() {
		if a, ok := seg.(*path2d.Arc); ok {
			return a
		}
	}
	return nil
}

func firstArcTo(p *path2d.Path) *path2d.ArcTo {
	for _, seg := range p.Segments() {
		if a, ok := seg.(*path2d.ArcTo); ok {
			return a
		}
	}
	return nil
}

// buildArc is the arc example: a radius slider, a direction toggle and a
// reset button that restores both.
func buildArc(cfg Config) (*Sketch, error) {
	init := func(s *Sketch) error {
		r, err := s.Settings().Number("radius")
		if err != nil {
			return err
		}
		forward, err := s.Settings().Bool("forward")
		if err != nil {
			return err
		}
		return s.Path().Arc(geom.V(320, 240), r, 0, math.Pi*1.5, forward)
	}

	controls := func(s *Sketch) error {
		panel := s.Settings()
		return chain(
			func() error {
				return panel.AddNumber("radius", "radius", arcRadius, arcMinRadius, arcMaxRadius, 1, func(r float64) {
					if a := firstArc(s.Path()); a != nil {
						if err := a.SetRadius(r); err != nil {
							s.log.Warn("set arc radius", "error", err)
							return
						}
						s.Refresh()
					}
				})
			},
			func() error {
				return panel.AddBool("forward", "forward", true, func(on bool) {
					if a := firstArc(s.Path()); a != nil {
						a.SetForward(on)
						s.Refresh()
					}
				})
			},
			func() error {
				return panel.AddButton("reset", "reset", func() {
					_ = panel.Sync("radius", arcRadius)
					_ = panel.Sync("forward", true)
					if err := s.Reset(); err != nil {
						s.log.Error("reset arc", "error", err)
					}
				})
			},
		)
	}

	// dragging an endpoint changes the radius, kept inside the slider range
	syncRadius := func(s *Sketch) {
		a := firstArc(s.Path())
		if a == nil {
			return
		}
		r := min(max(a.Radius, arcMinRadius), arcMaxRadius)
		if r != a.Radius {
			if err := a.SetRadius(r); err != nil {
				s.log.Warn("clamp arc radius", "error", err)
				return
			}
		}
		_ = s.Settings().Sync("radius", r)
	}

	return New("arc", "Arc", init, cfg, WithControls(controls), OnDrag(syncRadius))
}

// buildArcTo is the arcTo example with a radius slider.
func buildArcTo(cfg Config) (*Sketch, error) {
	init := func(s *Sketch) error {
		r, err := s.Settings().Number("radius")
		if err != nil {
			return err
		}
		p := s.Path()
		return chain(
			func() error { return p.MoveTo(geom.V(100, 360)) },
			func() error { return p.ArcTo(geom.V(500, 360), geom.V(300, 100), r) },
		)
	}

	controls := func(s *Sketch) error {
		return s.Settings().AddNumber("radius", "radius", arcToRadius, 0, arcToMaxRadius, 1, func(r float64) {
			if a := firstArcTo(s.Path()); a != nil {
				if err := a.SetRadius(r); err != nil {
					s.log.Warn("set arcTo radius", "error", err)
					return
				}
				s.Refresh()
			}
		})
	}

	return New("arcTo", "Arc To", init, cfg, WithControls(controls))
}
