package mode

import (
	"math"

	"github.com/mdmayfield/ctlmap/ctlval"
)

// Transformation is a user-supplied scalar hook applied inside the
// control and feedback pipelines, intended to be backed by some form
// of expression language.  It receives the pipeline value and the
// current output value and returns the transformed value.
//
// A transformation is treated as pure and is invoked at most once per
// event.  A failure, by error or by non-finite result, means "use the
// input unchanged"; it never aborts the pipeline.
type Transformation interface {
	Transform(input, currentOutput ctlval.UnitValue) (ctlval.UnitValue, error)
}

// applyTransformation runs t if present and returns the transformed
// value, falling back to input on absence or failure.
func applyTransformation(t Transformation, input, currentOutput ctlval.UnitValue) ctlval.UnitValue {
	if t == nil {
		return input
	}
	out, err := t.Transform(input, currentOutput)
	if err != nil || math.IsNaN(out.Get()) || math.IsInf(out.Get(), 0) {
		return input
	}
	return ctlval.ClampedUnitValue(out.Get())
}
