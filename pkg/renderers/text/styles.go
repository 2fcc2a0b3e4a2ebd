package text

import (
	"maps"

	"github.com/charmbracelet/lipgloss"
)

// Token names understood by the text renderer. Theme manifests override them
// through their Tokens map.
const (
	TokenTextPrimary     = "text.primary"
	TokenTextMuted       = "text.muted"
	TokenFormLabel       = "form.label"
	TokenStatusError     = "status.error"
	TokenStatusSuccess   = "status.success"
	TokenButtonText      = "button.text"
	TokenButtonPrimaryBg = "button.primary.bg"
	TokenButtonBusyBg    = "button.disabled.bg"
)

// DefaultTokens are used for any token a theme leaves unset.
var DefaultTokens = map[string]string{
	TokenTextPrimary:     "#E6E6E6",
	TokenTextMuted:       "#8A8A8A",
	TokenFormLabel:       "#7AA2F7",
	TokenStatusError:     "#F7768E",
	TokenStatusSuccess:   "#9ECE6A",
	TokenButtonText:      "#1A1B26",
	TokenButtonPrimaryBg: "#7AA2F7",
	TokenButtonBusyBg:    "#565F89",
}

// Styles is the set of Lip Gloss styles used to draw a screen.
type Styles struct {
	Title         lipgloss.Style
	Label         lipgloss.Style
	Value         lipgloss.Style
	Placeholder   lipgloss.Style
	Error         lipgloss.Style
	ErrorBanner   lipgloss.Style
	SuccessBanner lipgloss.Style
	Button        lipgloss.Style
	ButtonBusy    lipgloss.Style
}

// NewStyles builds styles for r from tokens layered over DefaultTokens.
func NewStyles(r *lipgloss.Renderer, tokens map[string]string) Styles {
	merged := maps.Clone(DefaultTokens)
	for k, v := range tokens {
		if v != "" {
			merged[k] = v
		}
	}
	color := func(token string) lipgloss.Color { return lipgloss.Color(merged[token]) }

	return Styles{
		Title:         r.NewStyle().Bold(true).Foreground(color(TokenTextPrimary)),
		Label:         r.NewStyle().Bold(true).Foreground(color(TokenFormLabel)),
		Value:         r.NewStyle().Foreground(color(TokenTextPrimary)),
		Placeholder:   r.NewStyle().Italic(true).Foreground(color(TokenTextMuted)),
		Error:         r.NewStyle().Foreground(color(TokenStatusError)),
		ErrorBanner:   r.NewStyle().Bold(true).Foreground(color(TokenStatusError)),
		SuccessBanner: r.NewStyle().Bold(true).Foreground(color(TokenStatusSuccess)),
		Button:        r.NewStyle().Bold(true).Foreground(color(TokenButtonText)).Background(color(TokenButtonPrimaryBg)).Padding(0, 1),
		ButtonBusy:    r.NewStyle().Foreground(color(TokenButtonText)).Background(color(TokenButtonBusyBg)).Padding(0, 1),
	}
}
