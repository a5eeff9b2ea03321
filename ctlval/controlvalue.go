package ctlval

import "fmt"

// ControlValueKind discriminates the two shapes of a control value.
type ControlValueKind int

const (
	// KindAbsolute marks a fader/button amplitude.
	KindAbsolute ControlValueKind = iota
	// KindRelative marks an encoder tick.
	KindRelative
)

// ControlValue is the boundary type between a source and the mapping
// engine: either an absolute amplitude or a relative increment.  It is
// a small value type so the control path stays allocation-free.
type ControlValue struct {
	kind ControlValueKind
	abs  UnitValue
	rel  DiscreteIncrement
}

// AbsoluteControlValue wraps a fader/button amplitude.
func AbsoluteControlValue(v UnitValue) ControlValue {
	return ControlValue{kind: KindAbsolute, abs: v}
}

// RelativeControlValue wraps an encoder tick.
func RelativeControlValue(i DiscreteIncrement) ControlValue {
	return ControlValue{kind: KindRelative, rel: i}
}

// Kind returns the discriminator.
func (c ControlValue) Kind() ControlValueKind {
	return c.kind
}

// IsAbsolute reports whether the value is an amplitude.
func (c ControlValue) IsAbsolute() bool {
	return c.kind == KindAbsolute
}

// Absolute returns the amplitude.  Meaningful only when IsAbsolute.
func (c ControlValue) Absolute() UnitValue {
	return c.abs
}

// Relative returns the increment.  Meaningful only when !IsAbsolute.
func (c ControlValue) Relative() DiscreteIncrement {
	return c.rel
}

// String renders the value for logs and the simulator.
func (c ControlValue) String() string {
	if c.kind == KindAbsolute {
		return fmt.Sprintf("abs(%v)", c.abs.Get())
	}
	return fmt.Sprintf("rel(%+d)", c.rel.Get())
}
