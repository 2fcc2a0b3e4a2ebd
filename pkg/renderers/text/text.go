// Package text renders form screens as styled plain text for terminals and
// logs. Layout lives in a pongo2 template; colours come from Lip Gloss styles
// resolved from go-theme tokens.
package text

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/muesli/termenv"

	"github.com/goliatone/go-dynform/internal/i18n"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/view"
)

// Name is the registry name of the renderer.
const Name = "text"

const screenTemplate = "screen.tpl"

//go:embed templates/*.tpl
var embedded embed.FS

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates      fs.FS
	output         io.Writer
	profile        *termenv.Profile
	selector       theme.ThemeSelector
	defaultTheme   string
	defaultVariant string
	sliderWidth    int
}

// WithTemplates replaces the bundled templates. The FS must contain screen.tpl.
func WithTemplates(files fs.FS) Option {
	return func(c *config) {
		if files != nil {
			c.templates = files
		}
	}
}

// WithOutput sets the writer whose terminal capabilities decide the colour
// profile. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithColorProfile forces a colour profile; termenv.Ascii disables styling.
func WithColorProfile(p termenv.Profile) Option {
	return func(c *config) { c.profile = &p }
}

// WithThemeSelector resolves tokens through selector, using the defaults
// when render options do not name a theme.
func WithThemeSelector(selector theme.ThemeSelector, defaultTheme, defaultVariant string) Option {
	return func(c *config) {
		c.selector = selector
		c.defaultTheme = defaultTheme
		c.defaultVariant = defaultVariant
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	cfg      config
	lip      *lipgloss.Renderer
	template *pongo2.Template
}

var _ render.Renderer = (*Renderer)(nil)

// New builds a text renderer.
func New(opts ...Option) (*Renderer, error) {
	cfg := config{output: os.Stdout, sliderWidth: 20}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templates != nil {
		if err := Validate(cfg.templates); err != nil {
			return nil, err
		}
	} else {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("text: templates: %w", err)
		}
		cfg.templates = sub
	}

	set := pongo2.NewSet("dynform-text", pongo2.NewFSLoader(cfg.templates))
	tpl, err := set.FromFile(screenTemplate)
	if err != nil {
		return nil, fmt.Errorf("text: load %s: %w", screenTemplate, err)
	}

	lip := lipgloss.NewRenderer(cfg.output)
	if cfg.profile != nil {
		lip.SetColorProfile(*cfg.profile)
	}
	return &Renderer{cfg: cfg, lip: lip, template: tpl}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string { return Name }

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, screen []view.Node, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens, err := r.tokens(options)
	if err != nil {
		return nil, err
	}
	styles := NewStyles(r.lip, tokens)

	items := make([]pongo2.Context, 0, len(screen))
	for _, node := range screen {
		if item := r.item(styles, options.Locale, node); item != nil {
			items = append(items, item)
		}
	}
	data := pongo2.Context{"items": items}
	if options.Title != "" {
		data["title"] = styles.Title.Render(options.Title)
	}

	out, err := r.template.Execute(data)
	if err != nil {
		return nil, fmt.Errorf("text: execute %s: %w", screenTemplate, err)
	}
	return []byte(out), nil
}

func (r *Renderer) tokens(options render.Options) (map[string]string, error) {
	tokens := maps.Clone(DefaultTokens)
	if r.cfg.selector == nil {
		return tokens, nil
	}
	name := firstNonEmpty(options.Theme, r.cfg.defaultTheme)
	variant := firstNonEmpty(options.Variant, r.cfg.defaultVariant)
	selection, err := r.cfg.selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("text: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return tokens, nil
	}
	maps.Copy(tokens, selection.Manifest.Tokens)
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		maps.Copy(tokens, v.Tokens)
	}
	return tokens, nil
}

func (r *Renderer) item(s Styles, locale string, node view.Node) pongo2.Context {
	switch {
	case node.Banner != nil:
		if !node.Banner.Visible {
			return nil
		}
		style := s.SuccessBanner
		marker := "✓"
		if node.Banner.Kind == view.KindErrorBanner {
			style, marker = s.ErrorBanner, "✗"
		}
		return pongo2.Context{"block": style.Render(marker + " " + node.Banner.Text)}
	case node.Button != nil:
		style := s.Button
		if node.Button.Loading {
			style = s.ButtonBusy
		}
		return pongo2.Context{"block": style.Render(node.Button.Label)}
	case node.Field != nil:
		return r.field(s, locale, *node.Field)
	}
	return nil
}

func (r *Renderer) field(s Styles, locale string, f view.Field) pongo2.Context {
	label := f.Label
	if label == "" {
		label = f.Name
	}
	if f.Required {
		label += " " + i18n.T(nil, locale, i18n.KeyRequiredMark)
	}
	item := pongo2.Context{"label": s.Label.Render(label)}
	if f.HasError() {
		item["error"] = s.Error.Render(f.Error)
	}

	value := func(display, placeholder string) string {
		if display == "" {
			return s.Placeholder.Render(placeholder)
		}
		return s.Value.Render(display)
	}

	var lines []string
	switch f.Kind {
	case view.KindText:
		switch {
		case f.Secure:
			lines = []string{s.Value.Render("••••••••")}
		case f.Multiline && f.Display != "":
			for _, line := range strings.Split(f.Display, "\n") {
				lines = append(lines, s.Value.Render(line))
			}
		default:
			lines = []string{value(f.Display, f.Placeholder)}
		}
	case view.KindCheckbox:
		checked, _ := f.Value.(bool)
		lines = []string{s.Value.Render(box(checked, "[x]", "[ ]"))}
	case view.KindCheckboxGroup:
		for _, o := range f.Options {
			lines = append(lines, s.Value.Render(box(o.Selected, "[x]", "[ ]")+" "+o.Label))
		}
	case view.KindRadioGroup:
		for _, o := range f.Options {
			lines = append(lines, s.Value.Render(box(o.Selected, "(•)", "( )")+" "+o.Label))
		}
	case view.KindSelect:
		lines = []string{value(f.Display, f.Placeholder)}
		if f.Open {
			if f.SearchPlaceholder != "" {
				lines = append(lines, "⌕ "+value(f.Search, f.SearchPlaceholder))
			}
			if len(f.Options) == 0 {
				lines = append(lines, s.Placeholder.Render(i18n.T(nil, locale, i18n.KeyNoOptions)))
			}
			for _, o := range f.Options {
				lines = append(lines, s.Value.Render(box(o.Selected, "›", " ")+" "+o.Label))
			}
		}
	case view.KindFileUpload:
		for _, file := range f.Files {
			lines = append(lines, s.Value.Render("• "+file.DisplayName()))
		}
		lines = append(lines, s.Placeholder.Render("["+f.Placeholder+"]"))
	case view.KindDatePicker:
		lines = []string{value(f.Display, f.Placeholder)}
	case view.KindSlider:
		lines = []string{s.Value.Render(r.slider(f))}
	}
	item["lines"] = lines
	return item
}

func (r *Renderer) slider(f view.Field) string {
	width := r.cfg.sliderWidth
	value, _ := f.Value.(float64)
	pos := 0
	if f.Max > f.Min {
		pos = int((value - f.Min) / (f.Max - f.Min) * float64(width))
	}
	pos = max(0, min(pos, width))
	bar := strings.Repeat("─", pos) + "●" + strings.Repeat("─", width-pos)
	return fmt.Sprintf("%s %s %s  %s", trimFloat(f.Min), bar, trimFloat(f.Max), f.Display)
}

func box(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}

func trimFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ErrTemplateMissing is returned when a template override lacks screen.tpl.
var ErrTemplateMissing = errors.New("text: screen.tpl not found")

// Validate reports whether files can serve as a template override.
func Validate(files fs.FS) error {
	if _, err := fs.Stat(files, screenTemplate); err != nil {
		return fmt.Errorf("%w: %v", ErrTemplateMissing, err)
	}
	return nil
}
