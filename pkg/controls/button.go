package controls

import (
	"context"
	"errors"

	"github.com/goliatone/go-dynform/internal/i18n"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/view"
)

// ErrNilContext is returned when a control is built without a context.
var ErrNilContext = errors.New("controls: context is required")

// SubmitButtonOptions configures a SubmitButton.
type SubmitButtonOptions struct {
	Label        string
	LoadingLabel string
}

// SubmitButton triggers SubmitForm and is disabled while a submission runs.
type SubmitButton struct {
	ctx  *orchestrator.Context
	opts SubmitButtonOptions
}

// NewSubmitButton builds a button bound to ctx.
func NewSubmitButton(ctx *orchestrator.Context, opts SubmitButtonOptions) (*SubmitButton, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if opts.Label == "" {
		opts.Label = ctx.T(i18n.KeySubmit)
	}
	if opts.LoadingLabel == "" {
		opts.LoadingLabel = ctx.T(i18n.KeyLoading)
	}
	return &SubmitButton{ctx: ctx, opts: opts}, nil
}

// IsLoading is loading || isSubmitting.
func (b *SubmitButton) IsLoading() bool { return b.ctx.IsLoading() }

// Press submits the form unless a submission is already running, in which
// case it reports false and does nothing.
func (b *SubmitButton) Press(ctx context.Context) (orchestrator.Result, bool) {
	if b.IsLoading() {
		return orchestrator.Result{Status: orchestrator.StatusBusy}, false
	}
	res := b.ctx.SubmitForm(ctx)
	return res, res.Status != orchestrator.StatusBusy
}

// View snapshots the button.
func (b *SubmitButton) View() view.Button {
	loading := b.IsLoading()
	label := b.opts.Label
	if loading {
		label = b.opts.LoadingLabel
	}
	return view.Button{Label: label, Loading: loading, Disabled: loading}
}

// Node implements view.Component.
func (b *SubmitButton) Node() view.Node { return view.ButtonNode(b.View()) }
