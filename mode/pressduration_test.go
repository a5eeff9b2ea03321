package mode_test

import (
	"testing"
	"time"

	"github.com/mdmayfield/ctlmap/ctlval"
	"github.com/mdmayfield/ctlmap/mode"
)

// fakeClock hands out a controllable sequence of instants.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func TestPressDurationDefaultIsIdentity(t *testing.T) {
	p := mode.PressDurationProcessor{}
	for _, v := range []float64{0.0, 0.5, 1.0} {
		out, ok := p.Process(ctlval.MustUnitValue(v))
		if !ok || out.Get() != v {
			t.Errorf("expected %v to pass through, got %v ok=%v", v, out.Get(), ok)
		}
	}
}

func TestPressDurationEmitsWithinWindow(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	p := mode.PressDurationProcessor{
		MinDuration: 100 * time.Millisecond,
		MaxDuration: 500 * time.Millisecond,
		Now:         clock.Now,
	}
	if _, ok := p.Process(ctlval.MustUnitValue(0.8)); ok {
		t.Error("press should be swallowed")
	}
	clock.advance(200 * time.Millisecond)
	out, ok := p.Process(ctlval.MustUnitValue(0.0))
	if !ok {
		t.Fatal("release inside the window should emit")
	}
	if out.Get() != 0.8 {
		t.Errorf("expected the press amplitude 0.8, got %v", out.Get())
	}
}

func TestPressDurationTooShort(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	p := mode.PressDurationProcessor{
		MinDuration: 100 * time.Millisecond,
		MaxDuration: 500 * time.Millisecond,
		Now:         clock.Now,
	}
	p.Process(ctlval.MustUnitValue(1.0))
	clock.advance(50 * time.Millisecond)
	if _, ok := p.Process(ctlval.MustUnitValue(0.0)); ok {
		t.Error("release before the window should emit nothing")
	}
}

func TestPressDurationTooLong(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	p := mode.PressDurationProcessor{
		MinDuration: 100 * time.Millisecond,
		MaxDuration: 500 * time.Millisecond,
		Now:         clock.Now,
	}
	p.Process(ctlval.MustUnitValue(1.0))
	clock.advance(2 * time.Second)
	if _, ok := p.Process(ctlval.MustUnitValue(0.0)); ok {
		t.Error("release after the window should emit nothing")
	}
}

func TestPressDurationStateResetsAfterEmission(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	p := mode.PressDurationProcessor{
		MinDuration: 0,
		MaxDuration: 500 * time.Millisecond,
		Now:         clock.Now,
	}
	p.Process(ctlval.MustUnitValue(1.0))
	clock.advance(100 * time.Millisecond)
	if _, ok := p.Process(ctlval.MustUnitValue(0.0)); !ok {
		t.Fatal("first release should emit")
	}
	// a second release without a press emits nothing
	if _, ok := p.Process(ctlval.MustUnitValue(0.0)); ok {
		t.Error("release without a press should emit nothing")
	}
}

func TestPressDurationGatesAbsoluteControl(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	m := mode.New()
	m.PressDuration = mode.PressDurationProcessor{
		MinDuration: 100 * time.Millisecond,
		MaxDuration: 500 * time.Millisecond,
		Now:         clock.Now,
	}
	target := continuousTarget(0.5)
	expectNone(t, m, target, abs(1.0))
	clock.advance(300 * time.Millisecond)
	expectAbs(t, m, target, abs(0.0), 1.0)
}

func TestPressDurationDoesNotGateRelative(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	m := mode.New()
	m.PressDuration = mode.PressDurationProcessor{
		MinDuration: time.Hour,
		MaxDuration: 2 * time.Hour,
		Now:         clock.Now,
	}
	target := continuousTarget(0.0)
	expectAbs(t, m, target, rel(1), 0.01)
}
