// Package ctlval provides the bounded scalar types a control mapping
// works in: values on the closed unit interval, signed discrete
// increments, and the closed intervals over both.  All arithmetic that
// decides whether and where a target moves lives here.
package ctlval

import (
	"fmt"
	"math"
)

// UnitValue is a value on the closed unit interval [0, 1].  It is the
// common currency between control sources and targets; keeping it a
// distinct type prevents raw floats from leaking across component
// boundaries.  Equality is exact bitwise equality, there is no epsilon
// comparison anywhere in the control path except via explicit snapping.
type UnitValue float64

// MinIsMaxBehavior selects which extreme a collapsed (one-value)
// interval projects onto when mapping into the unit interval.
type MinIsMaxBehavior int

const (
	// PreferZero projects a collapsed interval onto 0.
	PreferZero MinIsMaxBehavior = iota
	// PreferOne projects a collapsed interval onto 1.
	PreferOne
)

// NewUnitValue returns v as a UnitValue, or an error if v is not a
// finite number within [0, 1].
func NewUnitValue(v float64) (UnitValue, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return 0, fmt.Errorf("value %v is not within the unit interval", v)
	}
	return UnitValue(v), nil
}

// ClampedUnitValue returns v clamped into [0, 1].  NaN clamps to 0.
func ClampedUnitValue(v float64) UnitValue {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return UnitValue(v)
}

// MustUnitValue is NewUnitValue for values known to be valid at the
// call site.  It panics on out-of-range input.
func MustUnitValue(v float64) UnitValue {
	u, err := NewUnitValue(v)
	if err != nil {
		panic(err)
	}
	return u
}

// Get returns the value as a plain float64.
func (u UnitValue) Get() float64 {
	return float64(u)
}

// IsZero reports whether the value is exactly 0.
func (u UnitValue) IsZero() bool {
	return u == 0
}

// Inverse returns 1 - u.
func (u UnitValue) Inverse() UnitValue {
	return 1 - u
}

// DistanceFrom returns |u - other|.
func (u UnitValue) DistanceFrom(other UnitValue) UnitValue {
	if u > other {
		return u - other
	}
	return other - u
}

// IsWithinInterval reports whether the value lies inside iv.
func (u UnitValue) IsWithinInterval(iv UnitInterval) bool {
	return iv.Contains(u)
}

// MapToUnitIntervalFrom projects a value from src onto the full unit
// interval.  Values outside src clamp to the corresponding extreme.
// A collapsed src maps every value onto the extreme selected by mimb.
func (u UnitValue) MapToUnitIntervalFrom(src UnitInterval, mimb MinIsMaxBehavior) UnitValue {
	span := src.Span()
	if span == 0 {
		if mimb == PreferZero {
			return 0
		}
		return 1
	}
	return ClampedUnitValue((u.Get() - src.Min().Get()) / span.Get())
}

// MapFromUnitIntervalTo projects a full-unit-interval value into dst.
func (u UnitValue) MapFromUnitIntervalTo(dst UnitInterval) UnitValue {
	return ClampedUnitValue(dst.Min().Get() + u.Get()*dst.Span().Get())
}

// MapFromUnitIntervalToDiscreteIncrement scales a full-unit-interval
// value linearly into the given step-count interval.  The scale runs
// over the zero-less increment line, so intervals whose bounds
// straddle zero never produce a zero increment.
func (u UnitValue) MapFromUnitIntervalToDiscreteIncrement(dst IncrementInterval) DiscreteIncrement {
	lo := dst.Min().slot()
	hi := dst.Max().slot()
	p := lo + int(math.Round(u.Get()*float64(hi-lo)))
	return incrementAtSlot(p)
}

// SnapToGridByIntervalSize rounds the value to the nearest multiple of
// grid and clamps the result into the unit interval.  A zero grid is
// the identity.
func (u UnitValue) SnapToGridByIntervalSize(grid UnitValue) UnitValue {
	if grid == 0 {
		return u
	}
	return ClampedUnitValue(math.Round(u.Get()/grid.Get()) * grid.Get())
}

// ToIncrement attaches a direction to the value, producing a unit
// increment.  It reports false if the magnitude is zero.
func (u UnitValue) ToIncrement(negative bool) (UnitIncrement, bool) {
	if u == 0 {
		return 0, false
	}
	if negative {
		return UnitIncrement(-u), true
	}
	return UnitIncrement(u), true
}

// AddClamping adds inc to the value, clamping the sum at the bounds of
// iv.  A value that is outside iv in the first place moves to the
// bound on the side the increment points away from: positive
// increments land on iv's minimum, negative ones on its maximum.
func (u UnitValue) AddClamping(inc UnitIncrement, iv UnitInterval) UnitValue {
	if !iv.Contains(u) {
		return iv.boundForOutsider(inc)
	}
	sum := u.Get() + inc.Get()
	if sum < iv.Min().Get() {
		return iv.Min()
	}
	if sum > iv.Max().Get() {
		return iv.Max()
	}
	return UnitValue(sum)
}

// AddRotating adds inc to the value, wrapping around the bounds of iv:
// a sum past the maximum lands on the minimum and vice versa.  The
// out-of-interval rule is the same as AddClamping's.
func (u UnitValue) AddRotating(inc UnitIncrement, iv UnitInterval) UnitValue {
	if !iv.Contains(u) {
		return iv.boundForOutsider(inc)
	}
	sum := u.Get() + inc.Get()
	if sum < iv.Min().Get() {
		return iv.Max()
	}
	if sum > iv.Max().Get() {
		return iv.Min()
	}
	return UnitValue(sum)
}
