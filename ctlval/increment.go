package ctlval

import "fmt"

// DiscreteValue is a non-negative step count without a direction.
type DiscreteValue int

// DiscreteIncrement is a non-zero signed integer: an encoder tick or a
// step count with a direction.  Zero is not representable; the
// direction is always meaningful.
//
// Increments live on a zero-less number line (... -2, -1, 1, 2 ...).
// Interval arithmetic over increments (clamping, linear scaling)
// counts slots on that line, so an interval like [-4, 100] is a
// contiguous range of 104 speeds with no hole at zero.
type DiscreteIncrement int

// UnitIncrement is a UnitValue-sized delta with a direction; its
// magnitude is in (0, 1].  Zero is not representable.
type UnitIncrement float64

// NewDiscreteIncrement returns i as a DiscreteIncrement, or an error
// if i is zero.
func NewDiscreteIncrement(i int) (DiscreteIncrement, error) {
	if i == 0 {
		return 0, fmt.Errorf("discrete increment must not be zero")
	}
	return DiscreteIncrement(i), nil
}

// MustDiscreteIncrement is NewDiscreteIncrement for values known to be
// non-zero at the call site.  It panics on zero.
func MustDiscreteIncrement(i int) DiscreteIncrement {
	di, err := NewDiscreteIncrement(i)
	if err != nil {
		panic(err)
	}
	return di
}

// Get returns the increment as a plain int.
func (i DiscreteIncrement) Get() int {
	return int(i)
}

// IsPositive reports whether the increment points up.
func (i DiscreteIncrement) IsPositive() bool {
	return i > 0
}

// Signum returns +1 or -1.  It is never 0 because the increment
// itself is never 0.
func (i DiscreteIncrement) Signum() int {
	if i < 0 {
		return -1
	}
	return 1
}

// Inverse returns the increment with the direction flipped.
func (i DiscreteIncrement) Inverse() DiscreteIncrement {
	return -i
}

// WithDirection returns the increment with the same magnitude and the
// direction of signum.
func (i DiscreteIncrement) WithDirection(signum int) DiscreteIncrement {
	if signum < 0 {
		return -i.abs()
	}
	return i.abs()
}

// ToValue strips the direction, leaving the magnitude.
func (i DiscreteIncrement) ToValue() DiscreteValue {
	return DiscreteValue(i.abs())
}

// ToUnitIncrement converts the increment into a unit increment of
// magnitude |i| * atomicStepSize, clamped to at most 1.  It reports
// false if the magnitude would be zero.
func (i DiscreteIncrement) ToUnitIncrement(atomicStepSize UnitValue) (UnitIncrement, bool) {
	mag := float64(i.abs()) * atomicStepSize.Get()
	if mag == 0 {
		return 0, false
	}
	if mag > 1 {
		mag = 1
	}
	if i < 0 {
		return UnitIncrement(-mag), true
	}
	return UnitIncrement(mag), true
}

// ClampToInterval clamps the increment's magnitude onto iv, ignoring
// the increment's own direction.  A magnitude of m selects the value
// m-1 slots above iv's minimum on the zero-less line, clamped at iv's
// maximum.  The sign of the result is intrinsic to the interval:
// negative results encode throttling, positive results multipliers.
func (i DiscreteIncrement) ClampToInterval(iv IncrementInterval) DiscreteIncrement {
	p := iv.Min().slot() + int(i.abs()) - 1
	if hi := iv.Max().slot(); p > hi {
		p = hi
	}
	return incrementAtSlot(p)
}

func (i DiscreteIncrement) abs() DiscreteIncrement {
	if i < 0 {
		return -i
	}
	return i
}

// slot returns the increment's position on the zero-less line, where
// ... -2, -1, 1, 2 ... occupy consecutive slots.
func (i DiscreteIncrement) slot() int {
	if i > 0 {
		return int(i) - 1
	}
	return int(i)
}

// incrementAtSlot is the inverse of slot.
func incrementAtSlot(p int) DiscreteIncrement {
	if p >= 0 {
		return DiscreteIncrement(p + 1)
	}
	return DiscreteIncrement(p)
}

// ToIncrement attaches a direction to the value, producing a discrete
// increment.  It reports false if the value is zero.
func (v DiscreteValue) ToIncrement(negative bool) (DiscreteIncrement, bool) {
	if v == 0 {
		return 0, false
	}
	if negative {
		return DiscreteIncrement(-v), true
	}
	return DiscreteIncrement(v), true
}

// Get returns the value as a plain int.
func (v DiscreteValue) Get() int {
	return int(v)
}

// Get returns the increment as a plain float64.
func (u UnitIncrement) Get() float64 {
	return float64(u)
}

// IsPositive reports whether the increment points up.
func (u UnitIncrement) IsPositive() bool {
	return u > 0
}

// Signum returns +1 or -1.
func (u UnitIncrement) Signum() int {
	if u < 0 {
		return -1
	}
	return 1
}

// Abs returns the increment's magnitude as a UnitValue.
func (u UnitIncrement) Abs() UnitValue {
	if u < 0 {
		return UnitValue(-u)
	}
	return UnitValue(u)
}

// ClampToInterval clamps the increment's magnitude into iv, keeping
// the direction.
func (u UnitIncrement) ClampToInterval(iv UnitInterval) UnitIncrement {
	mag := u.Abs()
	if mag < iv.Min() {
		mag = iv.Min()
	}
	if mag > iv.Max() {
		mag = iv.Max()
	}
	if u < 0 {
		return UnitIncrement(-mag)
	}
	return UnitIncrement(mag)
}
