// Package settings models the control panel shown next to a sketch:
// numeric sliders, toggles and buttons that feed values back to the sketch.
package settings

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDuplicateControl = errors.New("control already exists")
	ErrUnknownControl   = errors.New("unknown control")
	ErrOutOfRange       = errors.New("value out of range")
	ErrWrongType        = errors.New("wrong value type for control")
)

// ControlKind is the widget used to present a control.
type ControlKind string

const (
	KindNumber ControlKind = "number"
	KindBool   ControlKind = "bool"
	KindButton ControlKind = "button"
)

// Control is the serializable state of one widget.
type Control struct {
	Name  string      `json:"name"`
	Label string      `json:"label"`
	Kind  ControlKind `json:"kind"`

	Number float64 `json:"number,omitempty"`
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
	Step   float64 `json:"step,omitempty"`

	Bool bool `json:"bool,omitempty"`
}

type entry struct {
	Control
	onNumber func(float64)
	onBool   func(bool)
	onClick  func()
}

// Panel is an ordered set of named controls.
type Panel struct {
	entries []*entry
	byName  map[string]*entry
}

func New() *Panel {
	return &Panel{byName: make(map[string]*entry)}
}

// AddNumber adds a slider over [min, max] that snaps to step.
// onChange is called after every accepted Set.
func (p *Panel) AddNumber(name, label string, value, min, max, step float64, onChange func(float64)) error {
	if min > max || step < 0 || math.IsNaN(value) {
		return fmt.Errorf("%s: range [%v, %v] step %v: %w", name, min, max, step, ErrOutOfRange)
	}
	if value < min || value > max {
		return fmt.Errorf("%s: %v not in [%v, %v]: %w", name, value, min, max, ErrOutOfRange)
	}
	return p.add(&entry{
		Control:  Control{Name: name, Label: label, Kind: KindNumber, Number: value, Min: min, Max: max, Step: step},
		onNumber: onChange,
	})
}

// AddBool adds a toggle.
func (p *Panel) AddBool(name, label string, value bool, onChange func(bool)) error {
	return p.add(&entry{
		Control: Control{Name: name, Label: label, Kind: KindBool, Bool: value},
		onBool:  onChange,
	})
}

// AddButton adds a push button.
func (p *Panel) AddButton(name, label string, onClick func()) error {
	return p.add(&entry{
		Control: Control{Name: name, Label: label, Kind: KindButton},
		onClick: onClick,
	})
}

func (p *Panel) add(e *entry) error {
	if _, ok := p.byName[e.Name]; ok {
		return fmt.Errorf("%s: %w", e.Name, ErrDuplicateControl)
	}
	p.byName[e.Name] = e
	p.entries = append(p.entries, e)
	return nil
}

// Set applies a value coming from the widget. Numbers are clamped to the
// control's range and snapped to its step; buttons ignore the value and
// fire. The stored value is returned.
func (p *Panel) Set(name string, value any) (any, error) {
	e, ok := p.byName[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownControl)
	}

	switch e.Kind {
	case KindNumber:
		v, ok := toFloat(value)
		if !ok || math.IsNaN(v) {
			return nil, fmt.Errorf("%s: %v: %w", name, value, ErrWrongType)
		}
		e.Number = e.snap(v)
		if e.onNumber != nil {
			e.onNumber(e.Number)
		}
		return e.Number, nil

	case KindBool:
		v, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%s: %v: %w", name, value, ErrWrongType)
		}
		e.Bool = v
		if e.onBool != nil {
			e.onBool(v)
		}
		return v, nil

	default:
		if e.onClick != nil {
			e.onClick()
		}
		return nil, nil
	}
}

// Sync stores a value that changed elsewhere without calling the
// control's callback.
func (p *Panel) Sync(name string, value any) error {
	e, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrUnknownControl)
	}
	switch e.Kind {
	case KindNumber:
		v, ok := toFloat(value)
		if !ok || math.IsNaN(v) {
			return fmt.Errorf("%s: %v: %w", name, value, ErrWrongType)
		}
		e.Number = math.Max(e.Min, math.Min(e.Max, v))
	case KindBool:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%s: %v: %w", name, value, ErrWrongType)
		}
		e.Bool = v
	}
	return nil
}

func (e *entry) snap(v float64) float64 {
	v = math.Max(e.Min, math.Min(e.Max, v))
	if e.Step > 0 {
		v = e.Min + math.Round((v-e.Min)/e.Step)*e.Step
		v = math.Min(e.Max, v)
	}
	return v
}

// Number returns the current value of a numeric control.
func (p *Panel) Number(name string) (float64, error) {
	e, ok := p.byName[name]
	if !ok || e.Kind != KindNumber {
		return 0, fmt.Errorf("%s: %w", name, ErrUnknownControl)
	}
	return e.Number, nil
}

// Bool returns the current value of a toggle.
func (p *Panel) Bool(name string) (bool, error) {
	e, ok := p.byName[name]
	if !ok || e.Kind != KindBool {
		return false, fmt.Errorf("%s: %w", name, ErrUnknownControl)
	}
	return e.Bool, nil
}

// Controls returns a snapshot of every control in the order they were added.
func (p *Panel) Controls() []Control {
	out := make([]Control, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Control
	}
	return out
}

func (p *Panel) Len() int {
	return len(p.entries)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
