package mode

import (
	"time"

	"github.com/mdmayfield/ctlmap/ctlval"
)

// PressDurationProcessor gates absolute button samples on how long the
// button was held.  With a non-empty hold window, a press (value > 0)
// is swallowed and its amplitude remembered; the matching release
// (value == 0) re-emits that amplitude if and only if the hold
// duration fell inside the window.  The default zero window passes
// every sample through unchanged.
//
// The processor keeps its timer per instance; it consumes timestamps
// from Now and never sleeps.
type PressDurationProcessor struct {
	// MinDuration and MaxDuration bound the accepted hold window.
	// Both zero means no gating at all.
	MinDuration time.Duration
	MaxDuration time.Duration

	// Now supplies timestamps.  Nil means time.Now.
	Now func() time.Time

	pressTime  time.Time
	pressValue ctlval.UnitValue
	pressed    bool
}

// Process feeds one absolute sample through the gate.  It reports
// false when the sample is swallowed.
func (p *PressDurationProcessor) Process(v ctlval.UnitValue) (ctlval.UnitValue, bool) {
	if p.MinDuration == 0 && p.MaxDuration == 0 {
		return v, true
	}
	if v > 0 {
		// Press. Remember and swallow.
		p.pressTime = p.now()
		p.pressValue = v
		p.pressed = true
		return 0, false
	}
	// Release.
	if !p.pressed {
		return 0, false
	}
	held := p.now().Sub(p.pressTime)
	value := p.pressValue
	p.pressed = false
	p.pressValue = 0
	if held < p.MinDuration || held > p.MaxDuration {
		return 0, false
	}
	return value, true
}

func (p *PressDurationProcessor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
