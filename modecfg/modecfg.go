// Package modecfg loads and validates the configuration for a single
// controller mapping and builds the matching mode engine.  The file
// format is yaml; defaults are prepopulated so a partial file works.
package modecfg

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	"github.com/mdmayfield/ctlmap/ctlval"
	"github.com/mdmayfield/ctlmap/mode"
)

// Span is a [min, max] pair in configuration units.
type Span struct {
	Min float64 `yaml:"min" koanf:"min"`
	Max float64 `yaml:"max" koanf:"max"`
}

// CountSpan is a [min, max] pair of signed step counts.  Negative
// values mean "fire every Nth event".
type CountSpan struct {
	Min int `yaml:"min" koanf:"min"`
	Max int `yaml:"max" koanf:"max"`
}

// TargetSetup describes the bench target the simulator drives.
type TargetSetup struct {
	// Character is one of the target character names, e.g.
	// absolute-continuous, absolute-discrete, relative, virtual-multi
	Character string `yaml:"character" koanf:"character"`

	// StepSize is the atomic or rounding step size for discrete and
	// roundable characters
	StepSize float64 `yaml:"stepSize" koanf:"stepSize"`

	// Current is the target's current value; ignored for virtual
	// characters, which have none
	Current float64 `yaml:"current" koanf:"current"`
}

// Config holds the initialization parameters for one mapping.  It is
// to be populated by a yaml unmarshal call.
type Config struct {
	// AbsoluteMode is normal, incremental-buttons or toggle-buttons
	AbsoluteMode string `yaml:"absoluteMode" koanf:"absoluteMode"`

	// SourceInterval is the relevant slice of source values
	SourceInterval Span `yaml:"sourceInterval" koanf:"sourceInterval"`

	// TargetInterval is the relevant slice of target values
	TargetInterval Span `yaml:"targetInterval" koanf:"targetInterval"`

	// StepSizeInterval bounds step sizes for continuous targets
	StepSizeInterval Span `yaml:"stepSizeInterval" koanf:"stepSizeInterval"`

	// StepCountInterval bounds step counts for discrete and
	// increment-consuming targets
	StepCountInterval CountSpan `yaml:"stepCountInterval" koanf:"stepCountInterval"`

	// JumpInterval bounds the distance a single event may move the
	// target
	JumpInterval Span `yaml:"jumpInterval" koanf:"jumpInterval"`

	// PressDurationMillis gates button samples on hold time; both
	// zero disables the gate
	PressDurationMillis CountSpan `yaml:"pressDurationMillis" koanf:"pressDurationMillis"`

	// OutOfRangeBehavior is min-or-max, min or ignore
	OutOfRangeBehavior string `yaml:"outOfRangeBehavior" koanf:"outOfRangeBehavior"`

	ApproachTargetValue bool `yaml:"approachTargetValue" koanf:"approachTargetValue"`
	Reverse             bool `yaml:"reverse" koanf:"reverse"`
	Rotate              bool `yaml:"rotate" koanf:"rotate"`
	RoundTargetValue    bool `yaml:"roundTargetValue" koanf:"roundTargetValue"`

	// Target is the bench target used by the sim command
	Target TargetSetup `yaml:"target" koanf:"target"`
}

// Default returns the configuration matching the engine defaults.
func Default() Config {
	return Config{
		AbsoluteMode:       "normal",
		SourceInterval:     Span{Min: 0, Max: 1},
		TargetInterval:     Span{Min: 0, Max: 1},
		StepSizeInterval:   Span{Min: 0.01, Max: 0.01},
		StepCountInterval:  CountSpan{Min: 1, Max: 1},
		JumpInterval:       Span{Min: 0, Max: 1},
		OutOfRangeBehavior: "min-or-max",
		Target: TargetSetup{
			Character: "absolute-continuous",
		},
	}
}

// Load reads the yaml file at path over the defaults.  A missing file
// is not an error; the defaults are used.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	k.Load(structs.Provider(Default(), "koanf"), nil)
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !strings.Contains(err.Error(), "no such") { // file missing, who cares
			return Config{}, err
		}
	}
	c := Config{}
	err := k.Unmarshal("", &c)
	return c, err
}

var absoluteModes = map[string]mode.AbsoluteMode{
	"normal":              mode.Normal,
	"incremental-buttons": mode.IncrementalButtons,
	"toggle-buttons":      mode.ToggleButtons,
}

var outOfRangeBehaviors = map[string]mode.OutOfRangeBehavior{
	"min-or-max": mode.MinOrMax,
	"min":        mode.Min,
	"ignore":     mode.Ignore,
}

var targetCharacters = map[string]mode.TargetCharacter{
	"absolute-continuous":           mode.AbsoluteContinuous,
	"absolute-continuous-roundable": mode.AbsoluteContinuousRoundable,
	"absolute-discrete":             mode.AbsoluteDiscrete,
	"absolute-trigger":              mode.AbsoluteTrigger,
	"absolute-switch":               mode.AbsoluteSwitch,
	"relative":                      mode.Relative,
	"virtual-multi":                 mode.VirtualMulti,
	"virtual-button":                mode.VirtualButton,
}

func unitInterval(name string, s Span) (ctlval.UnitInterval, error) {
	min, err := ctlval.NewUnitValue(s.Min)
	if err != nil {
		return ctlval.UnitInterval{}, fmt.Errorf("%s: %w", name, err)
	}
	max, err := ctlval.NewUnitValue(s.Max)
	if err != nil {
		return ctlval.UnitInterval{}, fmt.Errorf("%s: %w", name, err)
	}
	iv, err := ctlval.NewUnitInterval(min, max)
	if err != nil {
		return ctlval.UnitInterval{}, fmt.Errorf("%s: %w", name, err)
	}
	return iv, nil
}

// Mode validates the configuration and builds the engine for it.
func (c Config) Mode() (*mode.Mode, error) {
	m := mode.New()
	am, ok := absoluteModes[c.AbsoluteMode]
	if !ok {
		return nil, fmt.Errorf("unknown absolute mode %q", c.AbsoluteMode)
	}
	m.AbsoluteMode = am
	oorb, ok := outOfRangeBehaviors[c.OutOfRangeBehavior]
	if !ok {
		return nil, fmt.Errorf("unknown out-of-range behavior %q", c.OutOfRangeBehavior)
	}
	m.OutOfRangeBehavior = oorb

	var err error
	if m.SourceValueInterval, err = unitInterval("sourceInterval", c.SourceInterval); err != nil {
		return nil, err
	}
	if m.TargetValueInterval, err = unitInterval("targetInterval", c.TargetInterval); err != nil {
		return nil, err
	}
	if m.StepSizeInterval, err = unitInterval("stepSizeInterval", c.StepSizeInterval); err != nil {
		return nil, err
	}
	if m.JumpInterval, err = unitInterval("jumpInterval", c.JumpInterval); err != nil {
		return nil, err
	}
	min, err := ctlval.NewDiscreteIncrement(c.StepCountInterval.Min)
	if err != nil {
		return nil, fmt.Errorf("stepCountInterval: %w", err)
	}
	max, err := ctlval.NewDiscreteIncrement(c.StepCountInterval.Max)
	if err != nil {
		return nil, fmt.Errorf("stepCountInterval: %w", err)
	}
	if m.StepCountInterval, err = ctlval.NewIncrementInterval(min, max); err != nil {
		return nil, fmt.Errorf("stepCountInterval: %w", err)
	}
	if c.PressDurationMillis.Min < 0 || c.PressDurationMillis.Max < c.PressDurationMillis.Min {
		return nil, fmt.Errorf("pressDurationMillis: bad window [%d, %d]", c.PressDurationMillis.Min, c.PressDurationMillis.Max)
	}
	m.PressDuration.MinDuration = time.Duration(c.PressDurationMillis.Min) * time.Millisecond
	m.PressDuration.MaxDuration = time.Duration(c.PressDurationMillis.Max) * time.Millisecond

	m.ApproachTargetValue = c.ApproachTargetValue
	m.Reverse = c.Reverse
	m.Rotate = c.Rotate
	m.RoundTargetValue = c.RoundTargetValue
	return m, nil
}

// BenchTarget is a fixed-state Target for the simulator and tests.
type BenchTarget struct {
	Type    mode.ControlType
	Value   ctlval.UnitValue
	Virtual bool
}

// CurrentValue implements mode.Target.
func (t BenchTarget) CurrentValue() (ctlval.UnitValue, bool) {
	if t.Virtual {
		return 0, false
	}
	return t.Value, true
}

// ControlType implements mode.Target.
func (t BenchTarget) ControlType() mode.ControlType {
	return t.Type
}

// Build builds the bench target described by the setup.
func (s TargetSetup) Build() (BenchTarget, error) {
	char, ok := targetCharacters[s.Character]
	if !ok {
		return BenchTarget{}, fmt.Errorf("unknown target character %q", s.Character)
	}
	step, err := ctlval.NewUnitValue(s.StepSize)
	if err != nil {
		return BenchTarget{}, fmt.Errorf("target stepSize: %w", err)
	}
	cur, err := ctlval.NewUnitValue(s.Current)
	if err != nil {
		return BenchTarget{}, fmt.Errorf("target current: %w", err)
	}
	virtual := char == mode.VirtualMulti || char == mode.VirtualButton
	return BenchTarget{
		Type:    mode.ControlType{Character: char, StepSize: step},
		Value:   cur,
		Virtual: virtual,
	}, nil
}
