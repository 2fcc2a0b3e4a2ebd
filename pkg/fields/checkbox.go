package fields

import (
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/view"
)

// CheckboxOptions configures a Checkbox binding.
type CheckboxOptions struct {
	Common
}

// Checkbox binds a boolean value.
type Checkbox struct {
	base
}

// NewCheckbox binds a checkbox to name.
func NewCheckbox(ctx *orchestrator.Context, name string, opts CheckboxOptions) (*Checkbox, error) {
	b, err := newBase(ctx, name, opts.Common)
	if err != nil {
		return nil, err
	}
	return &Checkbox{base: b}, nil
}

// Checked returns the current value.
func (c *Checkbox) Checked() bool { return asBool(c.raw()) }

// SetChecked writes v.
func (c *Checkbox) SetChecked(v bool) error { return c.write(v) }

// Toggle flips the current value.
func (c *Checkbox) Toggle() error { return c.write(!c.Checked()) }

// View snapshots the binding.
func (c *Checkbox) View() view.Field {
	v := c.view(view.KindCheckbox)
	v.Value = c.Checked()
	return v
}

// Node implements view.Component.
func (c *Checkbox) Node() view.Node { return view.FieldNode(c.View()) }
