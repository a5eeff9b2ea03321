// Package mode implements the per-mapping value-transformation engine
// that sits between a control source (encoder, button, fader) and a
// controllable target.  Given one raw control event and the target's
// current state it decides whether to emit a value, which value, and
// of what kind; the same engine computes the feedback value a source
// should display for a given target value.
package mode

import "github.com/mdmayfield/ctlmap/ctlval"

// AbsoluteMode selects how absolute control values are interpreted.
type AbsoluteMode int

const (
	// Normal maps the amplitude onto the target value directly.
	Normal AbsoluteMode = iota
	// IncrementalButtons converts button presses into increments, so
	// a button can step a target like an encoder would.
	IncrementalButtons
	// ToggleButtons flips the target between the bounds of the target
	// value interval.
	ToggleButtons
)

var absoluteModeNames = map[AbsoluteMode]string{
	Normal:             "normal",
	IncrementalButtons: "incremental-buttons",
	ToggleButtons:      "toggle-buttons",
}

func (m AbsoluteMode) String() string {
	return absoluteModeNames[m]
}

// OutOfRangeBehavior selects what happens to control values outside
// the source value interval (and target values outside the target
// value interval on the feedback path).
type OutOfRangeBehavior int

const (
	// MinOrMax clamps to the nearer interval bound.
	MinOrMax OutOfRangeBehavior = iota
	// Min clamps every out-of-range value to the low bound.
	Min
	// Ignore drops out-of-range values entirely.
	Ignore
)

var outOfRangeBehaviorNames = map[OutOfRangeBehavior]string{
	MinOrMax: "min-or-max",
	Min:      "min",
	Ignore:   "ignore",
}

func (b OutOfRangeBehavior) String() string {
	return outOfRangeBehaviorNames[b]
}

// Mode holds the complete processing configuration for one mapping.
// Fields are set once at configuration time; during event processing
// only the throttle counter and the press-duration state change.  A
// Mode must not be used from more than one goroutine at a time.
//
// Step sizes and step counts serve the same purpose for different
// target characters: targets that want absolute values and are
// continuous use StepSizeInterval, discrete and increment-consuming
// targets use StepCountInterval.  Negative step counts encode
// throttling ("fire every Nth event"), positive ones magnitude
// multipliers.
type Mode struct {
	AbsoluteMode        AbsoluteMode
	SourceValueInterval ctlval.UnitInterval
	TargetValueInterval ctlval.UnitInterval
	StepSizeInterval    ctlval.UnitInterval
	StepCountInterval   ctlval.IncrementInterval
	JumpInterval        ctlval.UnitInterval

	PressDuration PressDurationProcessor

	ApproachTargetValue bool
	Reverse             bool
	Rotate              bool
	RoundTargetValue    bool

	OutOfRangeBehavior OutOfRangeBehavior

	ControlTransformation  Transformation
	FeedbackTransformation Transformation

	// incrementCounter implements throttling.  Its sign remembers the
	// direction of the last increment so a direction change can reset
	// the throttle phase.
	incrementCounter int
}

// New returns a Mode with the default configuration: full source,
// target and jump intervals, step size 0.01, step count 1, min-or-max
// out-of-range handling, and no transformations.
func New() *Mode {
	return &Mode{
		AbsoluteMode:        Normal,
		SourceValueInterval: ctlval.FullUnitInterval(),
		TargetValueInterval: ctlval.FullUnitInterval(),
		// 0.01 corresponds to 1%: small enough to feel continuous,
		// equal min and max so the "dial harder = bigger steps"
		// feature stays off until asked for.
		StepSizeInterval:  ctlval.MustUnitInterval(0.01, 0.01),
		StepCountInterval: ctlval.MustIncrementInterval(1, 1),
		JumpInterval:      ctlval.FullUnitInterval(),
	}
}

// Control processes one control event against the target and returns
// the value to send, if any.  "No output" is the canonical outcome
// whenever the configured rules say to do nothing.
func (m *Mode) Control(cv ctlval.ControlValue, target Target) (ctlval.ControlValue, bool) {
	if cv.Kind() == ctlval.KindRelative {
		return m.controlRelative(cv.Relative(), target)
	}
	v, ok := m.PressDuration.Process(cv.Absolute())
	if !ok {
		return ctlval.ControlValue{}, false
	}
	switch m.AbsoluteMode {
	case IncrementalButtons:
		return m.controlAbsoluteIncrementalButtons(v, target)
	case ToggleButtons:
		return m.controlAbsoluteToggleButtons(v, target)
	default:
		return m.controlAbsoluteNormal(v, target)
	}
}

// Feedback takes a target value and returns the value the source
// should display for it, if any, under the same interval and reverse
// configuration as the control path.  It applies FeedbackTransformation
// in place of ControlTransformation.
func (m *Mode) Feedback(targetValue ctlval.UnitValue) (ctlval.UnitValue, bool) {
	var boundValue ctlval.UnitValue
	var mimb ctlval.MinIsMaxBehavior
	switch {
	case targetValue.IsWithinInterval(m.TargetValueInterval):
		boundValue, mimb = targetValue, ctlval.PreferOne
	default:
		switch m.OutOfRangeBehavior {
		case MinOrMax:
			if targetValue < m.TargetValueInterval.Min() {
				boundValue, mimb = m.TargetValueInterval.Min(), ctlval.PreferZero
			} else {
				boundValue, mimb = m.TargetValueInterval.Max(), ctlval.PreferOne
			}
		case Min:
			boundValue, mimb = m.TargetValueInterval.Min(), ctlval.PreferZero
		default: // Ignore
			return 0, false
		}
	}
	v1 := boundValue.MapToUnitIntervalFrom(m.TargetValueInterval, mimb)
	v2 := applyTransformation(m.FeedbackTransformation, v1, v1)
	v3 := v2
	if m.Reverse {
		v3 = v2.Inverse()
	}
	return v3.MapFromUnitIntervalTo(m.SourceValueInterval), true
}
