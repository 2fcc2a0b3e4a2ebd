package fields

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/view"
)

// SliderOptions configures a Slider binding. Zero Maximum and Step default to
// 100 and 1.
type SliderOptions struct {
	Common
	Minimum float64
	Maximum float64
	Step    float64
}

// Slider binds a number constrained to [Minimum, Maximum] on Step.
type Slider struct {
	base
	opts SliderOptions
}

// NewSlider binds a slider to name.
func NewSlider(ctx *orchestrator.Context, name string, opts SliderOptions) (*Slider, error) {
	if opts.Maximum == 0 && opts.Minimum == 0 {
		opts.Maximum = 100
	}
	if opts.Step == 0 {
		opts.Step = 1
	}
	if opts.Step < 0 || opts.Maximum < opts.Minimum {
		return nil, fmt.Errorf("%w: [%v, %v] step %v", ErrInvalidRange, opts.Minimum, opts.Maximum, opts.Step)
	}
	b, err := newBase(ctx, name, opts.Common)
	if err != nil {
		return nil, err
	}
	return &Slider{base: b, opts: opts}, nil
}

// Value returns the current value, or Minimum when unset.
func (s *Slider) Value() float64 {
	if v, ok := asFloat(s.raw()); ok {
		return v
	}
	return s.opts.Minimum
}

// Set snaps v to the nearest step and clamps it into range before writing.
func (s *Slider) Set(v float64) error { return s.write(s.Snap(v)) }

// Increment moves one step up.
func (s *Slider) Increment() error { return s.Set(s.Value() + s.opts.Step) }

// Decrement moves one step down.
func (s *Slider) Decrement() error { return s.Set(s.Value() - s.opts.Step) }

// Snap returns v constrained to the slider's range and step grid.
func (s *Slider) Snap(v float64) float64 {
	lo, hi, step := s.opts.Minimum, s.opts.Maximum, s.opts.Step
	if math.IsNaN(v) {
		return lo
	}
	snapped := lo + math.Round((v-lo)/step)*step
	if snapped > hi {
		snapped = lo + math.Floor((hi-lo)/step+1e-9)*step
	}
	if snapped < lo {
		snapped = lo
	}
	// Drop float noise such as 0.30000000000000004.
	snapped, _ = strconv.ParseFloat(strconv.FormatFloat(snapped, 'f', 10, 64), 64)
	return snapped
}

// View snapshots the binding.
func (s *Slider) View() view.Field {
	v := s.view(view.KindSlider)
	value := s.Value()
	v.Value = value
	v.Display = strconv.FormatFloat(value, 'f', -1, 64)
	v.Min = s.opts.Minimum
	v.Max = s.opts.Maximum
	v.Step = s.opts.Step
	return v
}

// Node implements view.Component.
func (s *Slider) Node() view.Node { return view.FieldNode(s.View()) }
