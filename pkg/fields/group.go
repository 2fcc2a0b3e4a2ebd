package fields

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/view"
)

// GroupOptions configures checkbox and radio groups. Empty Options fall
// back to the schema's choices for the bound name.
type GroupOptions struct {
	Common
	Options []string
}

// CheckboxGroup binds a list of selected options.
type CheckboxGroup struct {
	base
	options []string
}

// NewCheckboxGroup binds a checkbox group to name.
func NewCheckboxGroup(ctx *orchestrator.Context, name string, opts GroupOptions) (*CheckboxGroup, error) {
	b, err := newBase(ctx, name, opts.Common)
	if err != nil {
		return nil, err
	}
	return &CheckboxGroup{base: b, options: groupOptions(ctx, name, opts.Options)}, nil
}

// Selected returns the selected options in first-selection order.
func (g *CheckboxGroup) Selected() []string { return asStrings(g.raw()) }

// Toggle removes option when selected and appends it otherwise. The order of
// the other options is preserved.
func (g *CheckboxGroup) Toggle(option string) error {
	if !slices.Contains(g.options, option) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	return g.write(toggle(g.Selected(), option))
}

func toggle(selected []string, option string) []string {
	if i := slices.Index(selected, option); i >= 0 {
		return slices.Delete(slices.Clone(selected), i, i+1)
	}
	return append(slices.Clone(selected), option)
}

// View snapshots the binding.
func (g *CheckboxGroup) View() view.Field {
	v := g.view(view.KindCheckboxGroup)
	selected := g.Selected()
	v.Value = selected
	v.Multiple = true
	v.Options = stringOptions(g.options, func(o string) bool { return slices.Contains(selected, o) })
	return v
}

// Node implements view.Component.
func (g *CheckboxGroup) Node() view.Node { return view.FieldNode(g.View()) }

// RadioGroup binds a single selected option.
type RadioGroup struct {
	base
	options []string
}

// NewRadioGroup binds a radio group to name.
func NewRadioGroup(ctx *orchestrator.Context, name string, opts GroupOptions) (*RadioGroup, error) {
	b, err := newBase(ctx, name, opts.Common)
	if err != nil {
		return nil, err
	}
	return &RadioGroup{base: b, options: groupOptions(ctx, name, opts.Options)}, nil
}

// Selected returns the selected option, or "".
func (g *RadioGroup) Selected() string { return asString(g.raw()) }

// Select replaces the selection with option.
func (g *RadioGroup) Select(option string) error {
	if !slices.Contains(g.options, option) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
	return g.write(option)
}

// View snapshots the binding.
func (g *RadioGroup) View() view.Field {
	v := g.view(view.KindRadioGroup)
	selected := g.Selected()
	v.Value = selected
	v.Display = selected
	v.Options = stringOptions(g.options, func(o string) bool { return o == selected })
	return v
}

// Node implements view.Component.
func (g *RadioGroup) Node() view.Node { return view.FieldNode(g.View()) }

func stringOptions(options []string, selected func(string) bool) []view.Option {
	out := make([]view.Option, 0, len(options))
	for _, o := range options {
		out = append(out, view.Option{Label: o, Value: o, Selected: selected(o)})
	}
	return out
}
