// Package controls holds the non-field components of a form: the error and
// success banners and the submit button.
package controls

import (
	"strings"

	"github.com/goliatone/go-dynform/internal/i18n"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/view"
)

type slot int

const (
	errorSlot slot = iota
	successSlot
)

// Banner shows one submission message slot and clears it on dismissal.
type Banner struct {
	ctx  *orchestrator.Context
	slot slot
}

// NewErrorBanner observes the error slot.
func NewErrorBanner(ctx *orchestrator.Context) (*Banner, error) {
	return newBanner(ctx, errorSlot)
}

// NewSuccessBanner observes the success slot.
func NewSuccessBanner(ctx *orchestrator.Context) (*Banner, error) {
	return newBanner(ctx, successSlot)
}

func newBanner(ctx *orchestrator.Context, s slot) (*Banner, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return &Banner{ctx: ctx, slot: s}, nil
}

func (b *Banner) raw() string {
	state := b.ctx.State()
	if b.slot == errorSlot {
		return state.Error
	}
	return state.Success
}

// Text returns the sanitized message, or "". A slot holding only markup
// shows the localized default for the slot instead of going blank.
func (b *Banner) Text() string {
	raw := b.raw()
	if text := plainText(raw); text != "" || strings.TrimSpace(raw) == "" {
		return text
	}
	if b.slot == errorSlot {
		return b.ctx.T(i18n.KeyGenericError)
	}
	return b.ctx.T(i18n.KeySubmissionAccepted)
}

// Visible reports whether the banner renders anything.
func (b *Banner) Visible() bool { return b.Text() != "" }

// Dismiss clears the slot.
func (b *Banner) Dismiss() {
	if b.slot == errorSlot {
		b.ctx.SetError("")
		return
	}
	b.ctx.SetSuccess("")
}

// Kind returns the banner's view kind.
func (b *Banner) Kind() view.Kind {
	if b.slot == errorSlot {
		return view.KindErrorBanner
	}
	return view.KindSuccessBanner
}

// View snapshots the banner.
func (b *Banner) View() view.Banner {
	text := b.Text()
	v := view.Banner{Kind: b.Kind(), Text: text, Visible: text != ""}
	if v.Visible {
		v.DismissLabel = b.ctx.T(i18n.KeyDismiss)
	}
	return v
}

// Node implements view.Component.
func (b *Banner) Node() view.Node { return view.BannerNode(b.View()) }
