package fields

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/schema"
	"github.com/goliatone/go-dynform/pkg/view"
)

// TextOptions configures a Text binding.
type TextOptions struct {
	Common
	Placeholder string
	Multiline   bool
	// Lines is the visible line count for multiline inputs.
	Lines int
	// Secure masks the input (passwords).
	Secure bool
}

// Text binds a string value.
type Text struct {
	base
	opts TextOptions
}

// NewText binds a text input to name.
func NewText(ctx *orchestrator.Context, name string, opts TextOptions) (*Text, error) {
	b, err := newBase(ctx, name, opts.Common)
	if err != nil {
		return nil, err
	}
	if opts.Multiline && opts.Lines <= 0 {
		opts.Lines = 4
	}
	return &Text{base: b, opts: opts}, nil
}

// Value returns the current text.
func (t *Text) Value() string { return asString(t.raw()) }

// SetText writes s. On number and integer fields finite numeric input is
// stored as float64, empty input clears the value and anything else
// (including NaN and infinities) is stored as typed so validation reports it.
func (t *Text) SetText(s string) error {
	f, ok := t.ctx.Schema().Field(t.name)
	if !ok || (f.Type != schema.TypeNumber && f.Type != schema.TypeInteger) {
		return t.write(s)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return t.write(nil)
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return t.write(n)
	}
	return t.write(s)
}

// View snapshots the binding. Secure inputs never expose their value.
func (t *Text) View() view.Field {
	v := t.view(view.KindText)
	v.Placeholder = t.opts.Placeholder
	v.Multiline = t.opts.Multiline
	v.Lines = t.opts.Lines
	v.Secure = t.opts.Secure
	if !t.opts.Secure {
		v.Value = t.Value()
		v.Display = t.Value()
	}
	return v
}

// Node implements view.Component.
func (t *Text) Node() view.Node { return view.FieldNode(t.View()) }
