package text

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/schema"
	"github.com/goliatone/go-dynform/pkg/testsupport"
	"github.com/goliatone/go-dynform/pkg/view"
)

func plainRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(append([]Option{WithColorProfile(termenv.Ascii)}, opts...)...)
	require.NoError(t, err)
	return r
}

func sampleScreen() []view.Node {
	return []view.Node{
		view.BannerNode(view.Banner{Kind: view.KindErrorBanner, Text: "Sunucu hatası", Visible: true}),
		view.FieldNode(view.Field{Kind: view.KindText, Name: "name", Label: "Ad", Required: true, Value: "Ada", Display: "Ada"}),
		view.FieldNode(view.Field{Kind: view.KindText, Name: "email", Label: "E-posta", Placeholder: "ornek@site.com",
			Error: "Geçerli bir e-posta girin"}),
		view.FieldNode(view.Field{Kind: view.KindCheckbox, Name: "newsletter", Label: "Bülten", Value: true}),
		view.FieldNode(view.Field{Kind: view.KindRadioGroup, Name: "plan", Label: "Plan", Options: []view.Option{
			{Label: "free", Value: "free"}, {Label: "pro", Value: "pro", Selected: true},
		}}),
		view.FieldNode(view.Field{Kind: view.KindSlider, Name: "volume", Label: "Ses", Value: 50.0, Display: "50", Min: 0, Max: 100, Step: 1}),
		view.BannerNode(view.Banner{Kind: view.KindSuccessBanner}),
		view.ButtonNode(view.Button{Label: "Gönder"}),
	}
}

func TestRender_PlainScreen(t *testing.T) {
	r := plainRenderer(t)
	out, err := r.Render(context.Background(), sampleScreen(), render.Options{Title: "Profil", Locale: "tr"})
	require.NoError(t, err)

	testsupport.AssertGolden(t, filepath.Join("testdata", "plain_screen.golden"), out)
}

func TestRender_OpenSelectAndFiles(t *testing.T) {
	r := plainRenderer(t)
	screen := []view.Node{
		view.FieldNode(view.Field{Kind: view.KindSelect, Name: "city", Label: "Şehir", Placeholder: "Seçiniz...", Open: true,
			Options: []view.Option{{Label: "Ankara", Value: "06"}, {Label: "İzmir", Value: "35", Selected: true}}}),
		view.FieldNode(view.Field{Kind: view.KindSelect, Name: "tags", Label: "Etiket", Placeholder: "Seçiniz...", Open: true,
			SearchPlaceholder: "Ara..."}),
		view.FieldNode(view.Field{Kind: view.KindSelect, Name: "lang", Label: "Dil", Placeholder: "Seçiniz...", Open: true,
			Search: "go", SearchPlaceholder: "Ara...", Options: []view.Option{{Label: "Go", Value: "go"}}}),
		view.FieldNode(view.Field{Kind: view.KindFileUpload, Name: "docs", Label: "Belgeler", Placeholder: "Dosyaları Seç",
			Files: []schema.FileDescriptor{{URI: "file:///tmp/cv.pdf"}}}),
		view.FieldNode(view.Field{Kind: view.KindText, Name: "password", Label: "Şifre", Secure: true}),
		view.ButtonNode(view.Button{Label: "Gönderiliyor...", Loading: true, Disabled: true}),
	}
	out, err := r.Render(context.Background(), screen, render.Options{Locale: "tr"})
	require.NoError(t, err)

	got := string(out)
	for _, want := range []string{
		"  Seçiniz...\n",
		"  › İzmir\n",
		"    Ankara\n",
		"  ⌕ Ara...\n  Sonuç bulunamadı\n",
		"  ⌕ go\n    Go\n",
		"  • cv.pdf\n",
		"  [Dosyaları Seç]\n",
		"  ••••••••\n",
		" Gönderiliyor... ",
	} {
		require.Contains(t, got, want)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
	calls     [][2]string
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, s.err
}

func TestRender_ThemeTokens(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{TokenStatusError: "#FF0000"},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{TokenFormLabel: "#00FF00"}},
			},
		},
	}}
	r := plainRenderer(t, WithThemeSelector(selector, "acme", "light"))

	tokens, err := r.tokens(render.Options{Variant: "dark"})
	require.NoError(t, err)
	require.Equal(t, "#FF0000", tokens[TokenStatusError])
	require.Equal(t, "#00FF00", tokens[TokenFormLabel])
	require.Equal(t, DefaultTokens[TokenStatusSuccess], tokens[TokenStatusSuccess])
	require.Equal(t, [][2]string{{"acme", "dark"}}, selector.calls)

	selector.err = errors.New("no such theme")
	_, err = r.Render(context.Background(), sampleScreen(), render.Options{})
	require.ErrorContains(t, err, "no such theme")
}

func TestNew_TemplateOverride(t *testing.T) {
	custom := fstest.MapFS{
		"screen.tpl": {Data: []byte(`{% for item in items %}{{ item.label }}|{% endfor %}`)},
	}
	r := plainRenderer(t, WithTemplates(custom))
	out, err := r.Render(context.Background(), []view.Node{
		view.FieldNode(view.Field{Kind: view.KindText, Name: "a", Label: "A"}),
		view.FieldNode(view.Field{Kind: view.KindText, Name: "b"}),
	}, render.Options{})
	require.NoError(t, err)
	require.Equal(t, "A|b|", string(out))

	_, err = New(WithTemplates(fstest.MapFS{}))
	require.ErrorIs(t, err, ErrTemplateMissing)
}

func TestRender_CancelledContext(t *testing.T) {
	r := plainRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Render(ctx, sampleScreen(), render.Options{})
	require.ErrorIs(t, err, context.Canceled)
}
