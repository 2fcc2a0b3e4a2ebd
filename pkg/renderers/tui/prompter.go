// Package tui fills a form interactively in a terminal. Every binding is
// prompted in screen order, invalid answers are reported inline and asked
// again, then the submit button is pressed and the banners are printed.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/internal/i18n"
	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/fields"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/view"
)

// Form is the part of *dynform.Form the prompter needs.
type Form interface {
	Components() []view.Component
	Context() *orchestrator.Context
}

// Prompter walks a form's bindings with a PromptDriver.
type Prompter struct {
	driver    PromptDriver
	out       io.Writer
	theme     Theme
	maxRounds int
	logger    *zap.Logger
}

// New constructs a Prompter backed by survey unless a driver is supplied.
func New(options ...Option) *Prompter {
	p := &Prompter{
		out:       os.Stdout,
		theme:     DefaultTheme,
		maxRounds: 3,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	if p.driver == nil {
		p.driver = newSurveyDriver(p.out)
	}
	return p
}

// Fill prompts every binding, presses submit and prints the banners. When the
// submission is rejected as invalid, only the failing bindings are prompted
// again, up to the configured number of rounds.
func (p *Prompter) Fill(ctx context.Context, form Form) (orchestrator.Result, error) {
	if form == nil {
		return orchestrator.Result{}, ErrNilForm
	}
	components := form.Components()
	octx := form.Context()

	var (
		button  *controls.SubmitButton
		banners []*controls.Banner
	)
	for _, c := range components {
		switch b := c.(type) {
		case *controls.SubmitButton:
			button = b
		case *controls.Banner:
			banners = append(banners, b)
		}
	}

	only := func(view.Component) bool { return true }
	for round := 1; ; round++ {
		for _, c := range components {
			if !only(c) {
				continue
			}
			if err := p.prompt(ctx, octx, c); err != nil {
				return orchestrator.Result{}, err
			}
		}

		res := p.submit(ctx, octx, button)
		p.logger.Debug("tui submit",
			zap.Int("round", round),
			zap.String("status", string(res.Status)),
			zap.String("attempt_id", res.AttemptID))
		if err := p.printBanners(ctx, octx, banners, res); err != nil {
			return res, err
		}
		if res.Status != orchestrator.StatusInvalid {
			return res, nil
		}
		if round >= p.maxRounds {
			return res, fmt.Errorf("%w after %d rounds", ErrTooManyRounds, round)
		}
		if err := p.info(ctx, p.theme.ErrorPrefix+octx.T(i18n.KeyValidationFailed)); err != nil {
			return res, err
		}
		invalid := res.Fields
		only = func(c view.Component) bool {
			n := c.Node()
			return n.Field != nil && invalid[n.Field.Name] != ""
		}
	}
}

func (p *Prompter) submit(ctx context.Context, octx *orchestrator.Context, button *controls.SubmitButton) orchestrator.Result {
	if button != nil {
		if res, pressed := button.Press(ctx); pressed {
			return res
		}
	}
	return octx.SubmitForm(ctx)
}

func (p *Prompter) printBanners(ctx context.Context, octx *orchestrator.Context, banners []*controls.Banner, res orchestrator.Result) error {
	printed := 0
	for _, b := range banners {
		if !b.Visible() {
			continue
		}
		prefix := p.theme.SuccessPrefix
		if b.Kind() == view.KindErrorBanner {
			prefix = p.theme.ErrorPrefix
		}
		if err := p.info(ctx, prefix+b.Text()); err != nil {
			return err
		}
		printed++
	}
	if printed > 0 {
		return nil
	}

	// Nothing visible on screen: report the result itself.
	switch {
	case res.Status == orchestrator.StatusFailed && res.Message != "":
		return p.info(ctx, p.theme.ErrorPrefix+res.Message)
	case res.Status == orchestrator.StatusSucceeded:
		msg := res.Message
		if msg == "" {
			msg = octx.T(i18n.KeySubmissionAccepted)
		}
		return p.info(ctx, p.theme.SuccessPrefix+msg)
	}
	return nil
}

func (p *Prompter) prompt(ctx context.Context, octx *orchestrator.Context, c view.Component) error {
	switch b := c.(type) {
	case *fields.Text:
		return p.promptText(ctx, octx, b)
	case *fields.Checkbox:
		return p.promptCheckbox(ctx, octx, b)
	case *fields.CheckboxGroup:
		return p.promptCheckboxGroup(ctx, octx, b)
	case *fields.RadioGroup:
		return p.promptRadio(ctx, octx, b)
	case *fields.Select:
		return p.promptSelect(ctx, octx, b)
	case *fields.FileUpload:
		return p.promptFiles(ctx, octx, b)
	case *fields.DatePicker:
		return p.promptDate(ctx, octx, b)
	case *fields.Slider:
		return p.promptSlider(ctx, octx, b)
	}
	return nil
}

// retry runs ask until the binding reports no validation message. Input the
// binding refused is reported the same way; driver failures end the session.
func (p *Prompter) retry(ctx context.Context, octx *orchestrator.Context, name, label string, current func() string, ask func() error) error {
	for {
		if err := ask(); err != nil {
			var derr driverError
			if errors.As(err, &derr) {
				return derr.err
			}
			if ierr := p.invalid(ctx, octx, label, err); ierr != nil {
				return ierr
			}
			continue
		}
		msg := current()
		if msg == "" {
			return nil
		}
		p.logger.Debug("tui invalid answer", zap.String("field", name), zap.String("message", msg))
		if ierr := p.invalid(ctx, octx, label, errors.New(msg)); ierr != nil {
			return ierr
		}
	}
}

// driverError marks failures of the terminal itself; they end the session
// instead of re-prompting.
type driverError struct{ err error }

func (e driverError) Error() string { return e.err.Error() }

func asked[T any](v T, err error) (T, error) {
	if err != nil {
		return v, driverError{err: err}
	}
	return v, nil
}

func (p *Prompter) invalid(ctx context.Context, octx *orchestrator.Context, label string, err error) error {
	return p.info(ctx, p.theme.ErrorPrefix+octx.T(i18n.KeyInvalidInput, label, err))
}

func (p *Prompter) info(ctx context.Context, msg string) error {
	return p.driver.Info(ctx, msg)
}

func message(f view.Field) string {
	label := f.Label
	if label == "" {
		label = f.Name
	}
	return label
}

func (p *Prompter) promptText(ctx context.Context, octx *orchestrator.Context, t *fields.Text) error {
	v := t.View()
	label := message(v)
	return p.retry(ctx, octx, t.Name(), label, t.Error, func() error {
		var (
			answer string
			err    error
		)
		switch {
		case v.Secure:
			answer, err = asked(p.driver.Password(ctx, InputConfig{Message: label, Help: v.Placeholder}))
		case v.Multiline:
			answer, err = asked(p.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: t.Value(), Help: v.Placeholder}))
		default:
			answer, err = asked(p.driver.Input(ctx, InputConfig{Message: label, Default: t.Value(), Help: v.Placeholder}))
		}
		if err != nil {
			return err
		}
		return t.SetText(answer)
	})
}

func (p *Prompter) promptCheckbox(ctx context.Context, octx *orchestrator.Context, c *fields.Checkbox) error {
	label := message(c.View())
	return p.retry(ctx, octx, c.Name(), label, c.Error, func() error {
		answer, err := asked(p.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: c.Checked()}))
		if err != nil {
			return err
		}
		return c.SetChecked(answer)
	})
}

func (p *Prompter) promptCheckboxGroup(ctx context.Context, octx *orchestrator.Context, g *fields.CheckboxGroup) error {
	v := g.View()
	label := message(v)
	labels, defaults := optionLabels(v.Options)
	return p.retry(ctx, octx, g.Name(), label, g.Error, func() error {
		picked, err := asked(p.driver.MultiSelect(ctx, SelectConfig{Message: label, Options: labels, Defaults: defaults}))
		if err != nil {
			return err
		}
		want := valuesAt(v.Options, picked)
		current := g.Selected()
		// Drop unselected options first so newly picked ones append in order.
		for _, option := range current {
			if !slices.Contains(want, option) {
				if err := g.Toggle(option); err != nil {
					return err
				}
			}
		}
		for _, option := range want {
			if !slices.Contains(current, option) {
				if err := g.Toggle(option); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (p *Prompter) promptRadio(ctx context.Context, octx *orchestrator.Context, g *fields.RadioGroup) error {
	v := g.View()
	label := message(v)
	labels, defaults := optionLabels(v.Options)
	return p.retry(ctx, octx, g.Name(), label, g.Error, func() error {
		idx, err := asked(p.driver.Select(ctx, SelectConfig{Message: label, Options: labels, DefaultIndex: first(defaults)}))
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(v.Options) {
			return fmt.Errorf("%w: %d", fields.ErrUnknownOption, idx)
		}
		return g.Select(v.Options[idx].Value)
	})
}

func (p *Prompter) promptSelect(ctx context.Context, octx *orchestrator.Context, s *fields.Select) error {
	v := s.View()
	if v.Disabled {
		return nil
	}
	label := message(v)
	options := s.Options()
	labels := make([]string, 0, len(options))
	for _, o := range options {
		labels = append(labels, o.Label)
	}
	selected := s.Values()
	defaults := make([]int, 0, len(selected))
	for i, o := range options {
		if slices.Contains(selected, o.Value) {
			defaults = append(defaults, i)
		}
	}

	var filter func(label, query string) bool
	help := v.Placeholder
	if s.Searchable() {
		filter = fields.MatchLabel
		help = v.SearchPlaceholder
	}

	return p.retry(ctx, octx, s.Name(), label, s.Error, func() error {
		if !s.Multiple() {
			idx, err := asked(p.driver.Select(ctx, SelectConfig{Message: label, Options: labels, DefaultIndex: first(defaults), Help: help, Filter: filter}))
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(options) {
				return fmt.Errorf("%w: %d", fields.ErrUnknownOption, idx)
			}
			return s.Select(options[idx].Value)
		}
		picked, err := asked(p.driver.MultiSelect(ctx, SelectConfig{Message: label, Options: labels, Defaults: defaults, Help: help, Filter: filter}))
		if err != nil {
			return err
		}
		if err := s.Clear(); err != nil {
			return err
		}
		for _, idx := range picked {
			if idx < 0 || idx >= len(options) {
				continue
			}
			if err := s.Select(options[idx].Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (p *Prompter) promptFiles(ctx context.Context, octx *orchestrator.Context, f *fields.FileUpload) error {
	v := f.View()
	label := message(v)
	return p.retry(ctx, octx, f.Name(), label, f.Error, func() error {
		answer, err := asked(p.driver.Input(ctx, InputConfig{Message: label, Help: v.Placeholder, Suggest: true}))
		if err != nil {
			return err
		}
		var paths []string
		for _, part := range strings.Split(answer, ",") {
			if part = strings.TrimSpace(part); part != "" {
				paths = append(paths, part)
			}
		}
		if len(paths) == 0 {
			octx.Form().Trigger(f.Name())
			return nil
		}
		return f.AddPaths(paths...)
	})
}

func (p *Prompter) promptDate(ctx context.Context, octx *orchestrator.Context, d *fields.DatePicker) error {
	v := d.View()
	label := message(v)
	return p.retry(ctx, octx, d.Name(), label, d.Error, func() error {
		current := ""
		if _, ok := d.Value(); ok {
			current = d.Format()
		}
		d.Show()
		answer, err := asked(p.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: d.Layout()}))
		if err != nil {
			d.Hide()
			return err
		}
		if strings.TrimSpace(answer) == "" {
			d.Hide()
			return d.Clear()
		}
		t, err := d.Parse(answer)
		if err != nil {
			return err
		}
		return d.Pick(t)
	})
}

func (p *Prompter) promptSlider(ctx context.Context, octx *orchestrator.Context, s *fields.Slider) error {
	v := s.View()
	label := message(v)
	help := strconv.FormatFloat(v.Min, 'f', -1, 64) + " – " + strconv.FormatFloat(v.Max, 'f', -1, 64)
	return p.retry(ctx, octx, s.Name(), label, s.Error, func() error {
		answer, err := asked(p.driver.Input(ctx, InputConfig{Message: label, Default: s.View().Display, Help: help}))
		if err != nil {
			return err
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if err != nil {
			return err
		}
		return s.Set(n)
	})
}

func optionLabels(options []view.Option) ([]string, []int) {
	labels := make([]string, 0, len(options))
	var selected []int
	for i, o := range options {
		labels = append(labels, o.Label)
		if o.Selected {
			selected = append(selected, i)
		}
	}
	return labels, selected
}

func valuesAt(options []view.Option, indices []int) []string {
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			out = append(out, options[idx].Value)
		}
	}
	return out
}

func first(indices []int) int {
	if len(indices) == 0 {
		return -1
	}
	return indices[0]
}
