package ctlval_test

import (
	"testing"

	"github.com/mdmayfield/ctlmap/ctlval"
)

func TestNewUnitIntervalRejectsReversedBounds(t *testing.T) {
	if _, err := ctlval.NewUnitInterval(uv(0.6), uv(0.2)); err == nil {
		t.Error("expected min > max to be rejected")
	}
	if _, err := ctlval.NewUnitInterval(uv(0.5), uv(0.5)); err != nil {
		t.Errorf("expected a one-value interval to be accepted, got %v", err)
	}
}

func TestUnitIntervalContains(t *testing.T) {
	iv := uvi(0.2, 0.6)
	for _, c := range []struct {
		v    float64
		want bool
	}{
		{0.1, false},
		{0.2, true},
		{0.4, true},
		{0.6, true},
		{0.7, false},
	} {
		if got := iv.Contains(uv(c.v)); got != c.want {
			t.Errorf("contains(%v): expected %v, got %v", c.v, c.want, got)
		}
	}
}

func TestUnitIntervalSpanAndCenter(t *testing.T) {
	iv := uvi(0.2, 0.6)
	if got := iv.Span().Get(); !near(got, 0.4) {
		t.Errorf("expected span 0.4, got %v", got)
	}
	if got := iv.Center().Get(); got != 0.4 {
		t.Errorf("expected center 0.4, got %v", got)
	}
}

func TestUnitIntervalIsFull(t *testing.T) {
	if !ctlval.FullUnitInterval().IsFull() {
		t.Error("expected [0, 1] to be full")
	}
	if uvi(0, 0.999).IsFull() {
		t.Error("expected [0, 0.999] not to be full")
	}
}

func TestWithMinWidensCrossedMax(t *testing.T) {
	iv := uvi(0.2, 0.6)
	got := iv.WithMin(uv(0.8))
	if got.Min().Get() != 0.8 || got.Max().Get() != 0.8 {
		t.Errorf("expected [0.8, 0.8], got [%v, %v]", got.Min().Get(), got.Max().Get())
	}
	got = iv.WithMin(uv(0.1))
	if got.Min().Get() != 0.1 || got.Max().Get() != 0.6 {
		t.Errorf("expected [0.1, 0.6], got [%v, %v]", got.Min().Get(), got.Max().Get())
	}
}

func TestWithMaxWidensCrossedMin(t *testing.T) {
	iv := uvi(0.2, 0.6)
	got := iv.WithMax(uv(0.1))
	if got.Min().Get() != 0.1 || got.Max().Get() != 0.1 {
		t.Errorf("expected [0.1, 0.1], got [%v, %v]", got.Min().Get(), got.Max().Get())
	}
}

func TestNewIncrementIntervalValidation(t *testing.T) {
	if _, err := ctlval.NewIncrementInterval(di(4), di(-4)); err == nil {
		t.Error("expected min > max to be rejected")
	}
	if _, err := ctlval.NewIncrementInterval(di(-4), di(4)); err != nil {
		t.Errorf("expected [-4, 4] to be accepted, got %v", err)
	}
}

func TestIncrementIntervalSpanSkipsZero(t *testing.T) {
	if got := cii(-2, 2).Span(); got != 3 {
		t.Errorf("expected [-2, 2] to span 3 slots, got %d", got)
	}
	if got := cii(4, 8).Span(); got != 4 {
		t.Errorf("expected [4, 8] to span 4 slots, got %d", got)
	}
}

func TestIncrementIntervalContains(t *testing.T) {
	iv := cii(-4, 100)
	if !iv.Contains(di(-4)) || !iv.Contains(di(50)) {
		t.Error("expected bounds and interior to be contained")
	}
	if iv.Contains(di(-5)) || iv.Contains(di(101)) {
		t.Error("expected values outside the bounds not to be contained")
	}
}
