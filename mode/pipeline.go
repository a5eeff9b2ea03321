package mode

import "github.com/mdmayfield/ctlmap/ctlval"

// controlAbsoluteNormal maps a fader-style amplitude onto the target
// value through the full projection pipeline and the jump filter.
func (m *Mode) controlAbsoluteNormal(v ctlval.UnitValue, target Target) (ctlval.ControlValue, bool) {
	var boundValue ctlval.UnitValue
	var mimb ctlval.MinIsMaxBehavior
	switch {
	case v.IsWithinInterval(m.SourceValueInterval):
		boundValue, mimb = v, ctlval.PreferOne
	default:
		switch m.OutOfRangeBehavior {
		case MinOrMax:
			if v < m.SourceValueInterval.Min() {
				boundValue, mimb = m.SourceValueInterval.Min(), ctlval.PreferZero
			} else {
				boundValue, mimb = m.SourceValueInterval.Max(), ctlval.PreferOne
			}
		case Min:
			boundValue, mimb = m.SourceValueInterval.Min(), ctlval.PreferZero
		default: // Ignore
			return ctlval.ControlValue{}, false
		}
	}
	current, haveCurrent := target.CurrentValue()
	controlType := target.ControlType()
	pepped := m.pepUpControlValue(boundValue, controlType, current, haveCurrent, mimb)
	out, ok := m.hittingTargetConsideringMaxJump(pepped, current, haveCurrent, controlType)
	if !ok {
		return ctlval.ControlValue{}, false
	}
	return ctlval.AbsoluteControlValue(out), true
}

// pepUpControlValue runs the five projection steps of the absolute
// pipeline: source interval, transformation, reverse, target interval,
// rounding.
func (m *Mode) pepUpControlValue(v ctlval.UnitValue, controlType ControlType, current ctlval.UnitValue, haveCurrent bool, mimb ctlval.MinIsMaxBehavior) ctlval.UnitValue {
	v1 := v.MapToUnitIntervalFrom(m.SourceValueInterval, mimb)
	currentOutput := ctlval.UnitValue(0)
	if haveCurrent {
		currentOutput = current
	}
	v2 := applyTransformation(m.ControlTransformation, v1, currentOutput)
	v3 := v2
	if m.Reverse {
		v3 = v2.Inverse()
	}
	v4 := v3.MapFromUnitIntervalTo(m.TargetValueInterval)
	if !m.RoundTargetValue {
		return v4
	}
	grid, ok := controlType.roundingGrid()
	if !ok {
		return v4
	}
	// round() instead of floor() so slight numerical inaccuracies
	// don't turn into surprising jumps
	return v4.SnapToGridByIntervalSize(grid)
}

// hittingTargetConsideringMaxJump applies the jump filter: values that
// would move the target further than the jump interval allows are
// dropped or, with approach enabled, scaled into it; values that would
// move it less than the interval's minimum are dropped.
func (m *Mode) hittingTargetConsideringMaxJump(v, current ctlval.UnitValue, haveCurrent bool, controlType ControlType) (ctlval.UnitValue, bool) {
	if !haveCurrent {
		// No current value available, just deliver. Virtual targets
		// take this shortcut.
		return v, true
	}
	if m.JumpInterval.IsFull() {
		return m.hitIfChanged(v, current, controlType)
	}
	distance := v.DistanceFrom(current)
	if distance > m.JumpInterval.Max() {
		if !m.ApproachTargetValue {
			return 0, false
		}
		approachDistance := distance.MapFromUnitIntervalTo(m.JumpInterval)
		inc, ok := approachDistance.ToIncrement(v < current)
		if !ok {
			return 0, false
		}
		final := current.AddClamping(inc, m.TargetValueInterval)
		return m.hitIfChanged(final, current, controlType)
	}
	if distance < m.JumpInterval.Min() {
		return 0, false
	}
	return m.hitIfChanged(v, current, controlType)
}

// hitIfChanged suppresses values equal to the current one for all
// target characters except triggers.
func (m *Mode) hitIfChanged(desired, current ctlval.UnitValue, controlType ControlType) (ctlval.UnitValue, bool) {
	if !controlType.IsTrigger() && desired == current {
		return 0, false
	}
	return desired, true
}

// controlAbsoluteToggleButtons flips the target between the bounds of
// the target value interval: a press while the current value is above
// the interval center goes to the minimum, otherwise to the maximum.
// Releases are ignored.
func (m *Mode) controlAbsoluteToggleButtons(v ctlval.UnitValue, target Target) (ctlval.ControlValue, bool) {
	if v.IsZero() {
		return ctlval.ControlValue{}, false
	}
	// Nothing we can do without a current value. Virtual targets are
	// not supposed to be used with toggle mode.
	current, ok := target.CurrentValue()
	if !ok {
		return ctlval.ControlValue{}, false
	}
	desired := m.TargetValueInterval.Max()
	if current > m.TargetValueInterval.Center() {
		desired = m.TargetValueInterval.Min()
	}
	if desired == current {
		return ctlval.ControlValue{}, false
	}
	return ctlval.AbsoluteControlValue(desired), true
}

// controlAbsoluteIncrementalButtons interprets button presses as
// increments ("relative one-direction mode"), so sources without
// encoders can still step a target.  The press amplitude picks the
// step size or count.
func (m *Mode) controlAbsoluteIncrementalButtons(v ctlval.UnitValue, target Target) (ctlval.ControlValue, bool) {
	if v.IsZero() || !v.IsWithinInterval(m.SourceValueInterval) {
		return ctlval.ControlValue{}, false
	}
	controlType := target.ControlType()
	switch controlType.Character {
	case AbsoluteDiscrete:
		di, ok := m.convertToDiscreteIncrement(v)
		if !ok {
			return ctlval.ControlValue{}, false
		}
		return m.hitDiscreteTargetAbsolutely(di, controlType.StepSize, target)
	case Relative, VirtualMulti:
		// The target wants increments, so we generate them, e.g.
		// depending on how hard the button was pressed. A - button and
		// a + button on the same virtual multi simulate an encoder.
		di, ok := m.convertToDiscreteIncrement(v)
		if !ok {
			return ctlval.ControlValue{}, false
		}
		return ctlval.RelativeControlValue(di), true
	case VirtualButton:
		// Buttons are triggered, not fed with +/- n.
		return ctlval.ControlValue{}, false
	default:
		// Continuous target. The amplitude scales within the step
		// size interval.
		stepSize := v.
			MapToUnitIntervalFrom(m.SourceValueInterval, ctlval.PreferOne).
			MapFromUnitIntervalTo(m.StepSizeInterval)
		inc, ok := stepSize.ToIncrement(m.Reverse)
		if !ok {
			return ctlval.ControlValue{}, false
		}
		current, ok := target.CurrentValue()
		if !ok {
			return ctlval.ControlValue{}, false
		}
		return m.hitTargetAbsolutelyWithUnitIncrement(inc, m.StepSizeInterval.Min(), current)
	}
}

// controlRelative dispatches an encoder tick on the target character.
// Source min/max does not apply here; ignoring especially slow or fast
// encoder movements would only irritate.
func (m *Mode) controlRelative(i ctlval.DiscreteIncrement, target Target) (ctlval.ControlValue, bool) {
	controlType := target.ControlType()
	switch controlType.Character {
	case AbsoluteDiscrete:
		pepped, ok := m.pepUpDiscreteIncrement(i)
		if !ok {
			return ctlval.ControlValue{}, false
		}
		return m.hitDiscreteTargetAbsolutely(pepped, controlType.StepSize, target)
	case Relative, VirtualMulti:
		// The target wants increments, forward them after pep-up.
		pepped, ok := m.pepUpDiscreteIncrement(i)
		if !ok {
			return ctlval.ControlValue{}, false
		}
		return ctlval.RelativeControlValue(pepped), true
	case VirtualButton:
		// Controlling a button target with +/- n doesn't make sense.
		return ctlval.ControlValue{}, false
	default:
		// Continuous target. The tick magnitude scales within the
		// step size interval.
		if m.Reverse {
			i = i.Inverse()
		}
		inc, ok := i.ToUnitIncrement(m.StepSizeInterval.Min())
		if !ok {
			return ctlval.ControlValue{}, false
		}
		inc = inc.ClampToInterval(m.StepSizeInterval)
		current, ok := target.CurrentValue()
		if !ok {
			return ctlval.ControlValue{}, false
		}
		return m.hitTargetAbsolutelyWithUnitIncrement(inc, m.StepSizeInterval.Min(), current)
	}
}

// hitDiscreteTargetAbsolutely turns a pepped-up discrete increment
// into a unit increment of the target's atomic step size and applies
// it.
func (m *Mode) hitDiscreteTargetAbsolutely(di ctlval.DiscreteIncrement, atomicStepSize ctlval.UnitValue, target Target) (ctlval.ControlValue, bool) {
	inc, ok := di.ToUnitIncrement(atomicStepSize)
	if !ok {
		return ctlval.ControlValue{}, false
	}
	current, ok := target.CurrentValue()
	if !ok {
		return ctlval.ControlValue{}, false
	}
	return m.hitTargetAbsolutelyWithUnitIncrement(inc, atomicStepSize, current)
}

// hitTargetAbsolutelyWithUnitIncrement applies a unit increment to the
// current target value within the target value interval snapped to the
// grid, clamping or rotating at the bounds.
func (m *Mode) hitTargetAbsolutelyWithUnitIncrement(inc ctlval.UnitIncrement, grid ctlval.UnitValue, current ctlval.UnitValue) (ctlval.ControlValue, bool) {
	snappedInterval := ctlval.MustUnitInterval(
		m.TargetValueInterval.Min().SnapToGridByIntervalSize(grid),
		m.TargetValueInterval.Max().SnapToGridByIntervalSize(grid),
	)
	// The add functions don't add anything if the current value is
	// outside the interval; they return a bound instead. A current
	// value can appear out of range from numerical inaccuracy alone,
	// which would read as "it doesn't move", so snap it to the grid
	// first in that case.
	snappedCurrent := current
	if !snappedCurrent.IsWithinInterval(snappedInterval) {
		snappedCurrent = current.SnapToGridByIntervalSize(grid)
	}
	var desired ctlval.UnitValue
	if m.Rotate {
		desired = snappedCurrent.AddRotating(inc, snappedInterval)
	} else {
		desired = snappedCurrent.AddClamping(inc, snappedInterval)
	}
	if desired == current {
		return ctlval.ControlValue{}, false
	}
	return ctlval.AbsoluteControlValue(desired), true
}

// pepUpDiscreteIncrement normalizes an encoder tick through the step
// count interval: positive factors multiply the magnitude, negative
// factors throttle to every Nth event, and reverse flips the result.
func (m *Mode) pepUpDiscreteIncrement(i ctlval.DiscreteIncrement) (ctlval.DiscreteIncrement, bool) {
	factor := i.ClampToInterval(m.StepCountInterval)
	actual := factor
	if !factor.IsPositive() {
		nth := factor.ToValue().Get()
		fire, counter := m.itsTimeToFire(nth, i.Signum())
		m.incrementCounter = counter
		if !fire {
			return 0, false
		}
		actual = 1
	}
	result := actual.WithDirection(i.Signum())
	if m.Reverse {
		result = result.Inverse()
	}
	return result, true
}

// itsTimeToFire decides whether a throttled event fires.  nth is
// "fire every nth time", directionSignum +1 or -1.  It returns the
// decision and the new counter value.
func (m *Mode) itsTimeToFire(nth, directionSignum int) (bool, int) {
	if m.incrementCounter == 0 {
		// Initial fire.
		return true, directionSignum
	}
	if (m.incrementCounter < 0) != (directionSignum < 0) {
		// Change of direction always fires.
		return true, directionSignum
	}
	counter := m.incrementCounter
	if counter < 0 {
		counter = -counter
	}
	if counter >= nth {
		// Waited long enough, fire again.
		return true, directionSignum
	}
	return false, m.incrementCounter + directionSignum
}

// convertToDiscreteIncrement maps a button amplitude into the step
// count interval to obtain a signed factor.  Buttons only increment,
// so the throttle direction is fixed; reverse flips the final sign.
func (m *Mode) convertToDiscreteIncrement(v ctlval.UnitValue) (ctlval.DiscreteIncrement, bool) {
	factor := v.
		MapToUnitIntervalFrom(m.SourceValueInterval, ctlval.PreferOne).
		MapFromUnitIntervalToDiscreteIncrement(m.StepCountInterval)
	value := factor.ToValue()
	if !factor.IsPositive() {
		nth := factor.ToValue().Get()
		fire, counter := m.itsTimeToFire(nth, 1)
		m.incrementCounter = counter
		if !fire {
			return 0, false
		}
		value = 1
	}
	return value.ToIncrement(m.Reverse)
}
