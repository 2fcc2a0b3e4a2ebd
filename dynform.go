// Package dynform is the entry point for building declarative forms: a
// schema, a Form holding the submission context, and constructors for every
// binding, banner and button bound to that context.
package dynform

import (
	"context"
	"sync"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/fields"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/schema"
	"github.com/goliatone/go-dynform/pkg/view"
)

// Option configures a Form; see the orchestrator.With* helpers.
type Option = orchestrator.Option

// Result describes one submit attempt.
type Result = orchestrator.Result

// SubmissionState is the loading/error/success triple observed by banners
// and the submit button.
type SubmissionState = orchestrator.SubmissionState

// Schema aliases schema.Schema.
type Schema = schema.Schema

// Field aliases schema.Field.
type Field = schema.Field

// Form owns one submission context and every component built against it.
type Form struct {
	ctx *orchestrator.Context

	mu         sync.Mutex
	components []view.Component
	releases   []func()
}

// New builds a Form for s.
func New(s *schema.Schema, opts ...Option) (*Form, error) {
	ctx, err := orchestrator.New(s, opts...)
	if err != nil {
		return nil, err
	}
	return &Form{ctx: ctx}, nil
}

// NewFromDocument builds a Form using the document's endpoint and defaults.
// Options passed by the caller take precedence.
func NewFromDocument(doc *schema.Document, opts ...Option) (*Form, error) {
	s, err := doc.Schema()
	if err != nil {
		return nil, err
	}
	base := []Option{orchestrator.WithDefaultValues(doc.Defaults)}
	if doc.Endpoint != "" {
		base = append(base, orchestrator.WithEndpoint(doc.Endpoint))
	}
	return New(s, append(base, opts...)...)
}

// Context returns the shared submission context.
func (f *Form) Context() *orchestrator.Context { return f.ctx }

// State returns the submission state.
func (f *Form) State() SubmissionState { return f.ctx.State() }

// Submit runs the submission procedure.
func (f *Form) Submit(ctx context.Context) Result { return f.ctx.SubmitForm(ctx) }

// Values returns a snapshot of the current values.
func (f *Form) Values() map[string]any { return f.ctx.Form().Values() }

// Errors returns a snapshot of the current validation messages.
func (f *Form) Errors() map[string]string { return f.ctx.Form().Errors() }

// SetDefaults replaces the defaults and resets the form to them.
func (f *Form) SetDefaults(values map[string]any) { f.ctx.SetDefaults(values) }

// Components returns the components in construction order.
func (f *Form) Components() []view.Component {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]view.Component(nil), f.components...)
}

// Screen snapshots every component in construction order.
func (f *Form) Screen() []view.Node { return view.Screen(f.Components()...) }

// Close releases every binding and subscriber.
func (f *Form) Close() {
	f.mu.Lock()
	releases := f.releases
	f.releases = nil
	f.mu.Unlock()
	for _, release := range releases {
		release()
	}
	f.ctx.Close()
}

type releaser interface{ Release() }

func add[T view.Component](f *Form, c T, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	f.mu.Lock()
	f.components = append(f.components, c)
	if r, ok := any(c).(releaser); ok {
		f.releases = append(f.releases, r.Release)
	}
	f.mu.Unlock()
	return c, nil
}

// Text adds a text input.
func (f *Form) Text(name string, opts fields.TextOptions) (*fields.Text, error) {
	c, err := fields.NewText(f.ctx, name, opts)
	return add(f, c, err)
}

// Checkbox adds a checkbox.
func (f *Form) Checkbox(name string, opts fields.CheckboxOptions) (*fields.Checkbox, error) {
	c, err := fields.NewCheckbox(f.ctx, name, opts)
	return add(f, c, err)
}

// CheckboxGroup adds a checkbox group.
func (f *Form) CheckboxGroup(name string, opts fields.GroupOptions) (*fields.CheckboxGroup, error) {
	c, err := fields.NewCheckboxGroup(f.ctx, name, opts)
	return add(f, c, err)
}

// RadioGroup adds a radio group.
func (f *Form) RadioGroup(name string, opts fields.GroupOptions) (*fields.RadioGroup, error) {
	c, err := fields.NewRadioGroup(f.ctx, name, opts)
	return add(f, c, err)
}

// Select adds a select or multi-select.
func (f *Form) Select(name string, opts fields.SelectOptions) (*fields.Select, error) {
	c, err := fields.NewSelect(f.ctx, name, opts)
	return add(f, c, err)
}

// FileUpload adds a file picker.
func (f *Form) FileUpload(name string, opts fields.FileUploadOptions) (*fields.FileUpload, error) {
	c, err := fields.NewFileUpload(f.ctx, name, opts)
	return add(f, c, err)
}

// DatePicker adds a date/time picker.
func (f *Form) DatePicker(name string, opts fields.DatePickerOptions) (*fields.DatePicker, error) {
	c, err := fields.NewDatePicker(f.ctx, name, opts)
	return add(f, c, err)
}

// Slider adds a slider.
func (f *Form) Slider(name string, opts fields.SliderOptions) (*fields.Slider, error) {
	c, err := fields.NewSlider(f.ctx, name, opts)
	return add(f, c, err)
}

// ErrorBanner adds the error banner.
func (f *Form) ErrorBanner() (*controls.Banner, error) {
	c, err := controls.NewErrorBanner(f.ctx)
	return add(f, c, err)
}

// SuccessBanner adds the success banner.
func (f *Form) SuccessBanner() (*controls.Banner, error) {
	c, err := controls.NewSuccessBanner(f.ctx)
	return add(f, c, err)
}

// SubmitButton adds the submit button.
func (f *Form) SubmitButton(opts controls.SubmitButtonOptions) (*controls.SubmitButton, error) {
	c, err := controls.NewSubmitButton(f.ctx, opts)
	return add(f, c, err)
}
