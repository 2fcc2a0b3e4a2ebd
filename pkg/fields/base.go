package fields

import (
	"slices"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/schema"
	"github.com/goliatone/go-dynform/pkg/view"
)

// Common holds the options every binding accepts.
type Common struct {
	Label string
	// Required forces the required mark; it is also shown when the schema
	// declares the field required.
	Required bool
}

type base struct {
	ctx      *orchestrator.Context
	name     string
	label    string
	required bool
	release  func()
}

func newBase(ctx *orchestrator.Context, name string, common Common) (base, error) {
	if ctx == nil {
		return base{}, ErrNilContext
	}
	release, err := ctx.Form().Register(name)
	if err != nil {
		return base{}, err
	}
	required := common.Required
	if f, ok := ctx.Schema().Field(name); ok && f.Required {
		required = true
	}
	label := common.Label
	if label == "" {
		if f, ok := ctx.Schema().Field(name); ok && f.Label != "" {
			label = f.Label
		}
	}
	return base{ctx: ctx, name: name, label: label, required: required, release: release}, nil
}

// Name returns the bound schema name.
func (b *base) Name() string { return b.name }

// Error returns the validation message for the bound name, or "".
func (b *base) Error() string { return b.ctx.Form().Error(b.name) }

// Release detaches the binding from the store.
func (b *base) Release() {
	if b.release != nil {
		b.release()
	}
}

func (b *base) raw() any { return b.ctx.Form().Value(b.name) }

func (b *base) write(value any) error { return b.ctx.Form().SetValue(b.name, value) }

func (b *base) view(kind view.Kind) view.Field {
	return view.Field{
		Kind:     kind,
		Name:     b.name,
		Label:    b.label,
		Required: b.required,
		Error:    b.Error(),
	}
}

// schemaChoices returns the choices the schema declares for name: its UI
// options, else its enum.
func schemaChoices(ctx *orchestrator.Context, name string) []schema.Option {
	if f, ok := ctx.Schema().Field(name); ok {
		return f.Choices()
	}
	return nil
}

// groupOptions returns configured, or else the schema's choice values.
func groupOptions(ctx *orchestrator.Context, name string, configured []string) []string {
	if len(configured) > 0 {
		return slices.Clone(configured)
	}
	choices := schemaChoices(ctx, name)
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		out = append(out, c.Value)
	}
	return out
}
