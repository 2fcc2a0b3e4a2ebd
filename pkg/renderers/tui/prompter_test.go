package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dynform"
	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/fields"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/schema"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	multiIdx  [][]int
	confirm   []bool
	textAreas []string
	passwords []string
	infos     []string
	inputCfgs []InputConfig
	selectCfg []SelectConfig
	inputPos  int
	selectPos int
	multiPos  int
	confPos   int
	textPos   int
	passPos   int
	failWith  error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputCfgs = append(s.inputCfgs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confPos]
	s.confPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfg = append(s.selectCfg, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func profileSchema() *schema.Schema {
	return schema.MustNew(
		schema.Field{Name: "name", Type: schema.TypeString, Label: "Ad", Required: true},
		schema.Field{Name: "password", Type: schema.TypeString, Label: "Şifre", MinLength: schema.Int(6),
			Messages: map[string]string{schema.RuleMinLength: "En az 6 karakter"}},
		schema.Field{Name: "terms", Type: schema.TypeBoolean, Label: "Koşullar"},
		schema.Field{Name: "interests", Type: schema.TypeStrings, Enum: []string{"Spor", "Müzik", "Seyahat"}},
		schema.Field{Name: "gender", Type: schema.TypeString, Enum: []string{"Kadın", "Erkek"}},
		schema.Field{Name: "city", Type: schema.TypeString},
		schema.Field{Name: "birthday", Type: schema.TypeDate},
		schema.Field{Name: "volume", Type: schema.TypeNumber, Minimum: schema.Float(0), Maximum: schema.Float(100)},
	)
}

func bindProfile(t *testing.T, form *dynform.Form) {
	t.Helper()
	_, err := form.Text("name", fields.TextOptions{})
	require.NoError(t, err)
	_, err = form.Text("password", fields.TextOptions{Secure: true})
	require.NoError(t, err)
	_, err = form.Checkbox("terms", fields.CheckboxOptions{})
	require.NoError(t, err)
	_, err = form.CheckboxGroup("interests", fields.GroupOptions{Options: []string{"Spor", "Müzik", "Seyahat"}})
	require.NoError(t, err)
	_, err = form.RadioGroup("gender", fields.GroupOptions{Options: []string{"Kadın", "Erkek"}})
	require.NoError(t, err)
	_, err = form.Select("city", fields.SelectOptions{Options: []fields.SelectOption{
		{Label: "Ankara", Value: "06"}, {Label: "İzmir", Value: "35"},
	}})
	require.NoError(t, err)
	_, err = form.DatePicker("birthday", fields.DatePickerOptions{})
	require.NoError(t, err)
	_, err = form.Slider("volume", fields.SliderOptions{Minimum: 0, Maximum: 100})
	require.NoError(t, err)
}

func TestFill_PromptsEveryBindingAndReprompts(t *testing.T) {
	var submitted any
	form, err := dynform.New(profileSchema(),
		orchestrator.WithDryRun(true),
		orchestrator.WithOnSuccess(func(data any) { submitted = data }),
	)
	require.NoError(t, err)
	t.Cleanup(form.Close)
	bindProfile(t, form)

	driver := &stubDriver{
		inputs:    []string{"", "Ada", "15.03.1990", "120"},
		passwords: []string{"abc", "abcdef"},
		confirm:   []bool{true},
		multiIdx:  [][]int{{0, 2}},
		selectIdx: []int{1, 1},
	}
	res, err := New(WithPromptDriver(driver)).Fill(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, orchestrator.StatusDryRun, res.Status)

	want := map[string]any{
		"name":      "Ada",
		"password":  "abcdef",
		"terms":     true,
		"interests": []string{"Spor", "Seyahat"},
		"gender":    "Erkek",
		"city":      "35",
		"birthday":  time.Date(1990, time.March, 15, 0, 0, 0, 0, time.Local),
		"volume":    100.0,
	}
	if diff := cmp.Diff(want, form.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, submitted); diff != "" {
		t.Fatalf("submitted mismatch (-want +got):\n%s", diff)
	}

	require.Equal(t, []string{
		"✗ Geçersiz Ad: This field is required",
		"✗ Geçersiz Şifre: En az 6 karakter",
	}, driver.infos)
	require.Equal(t, "02.01.2006", driver.inputCfgs[2].Help)
	require.Equal(t, "0 – 100", driver.inputCfgs[3].Help)
}

func TestFill_PrintsServerErrorBanner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"isSuccess":false,"error":{"message":"Kayıt başarısız"}}`))
	}))
	t.Cleanup(srv.Close)

	s := schema.MustNew(schema.Field{Name: "name", Type: schema.TypeString, Label: "Ad", Required: true})
	form, err := dynform.New(s, orchestrator.WithEndpoint(srv.URL), orchestrator.WithLocale("en"))
	require.NoError(t, err)
	t.Cleanup(form.Close)
	_, err = form.ErrorBanner()
	require.NoError(t, err)
	_, err = form.Text("name", fields.TextOptions{})
	require.NoError(t, err)
	_, err = form.SuccessBanner()
	require.NoError(t, err)
	_, err = form.SubmitButton(controls.SubmitButtonOptions{})
	require.NoError(t, err)

	driver := &stubDriver{inputs: []string{"Ada"}}
	res, err := New(WithPromptDriver(driver)).Fill(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, orchestrator.StatusFailed, res.Status)
	require.Equal(t, []string{"✗ Kayıt başarısız"}, driver.infos)
}

func TestFill_ReportsAcceptedSubmission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"isSuccess":true,"data":{"id":1}}`))
	}))
	t.Cleanup(srv.Close)

	s := schema.MustNew(schema.Field{Name: "name", Type: schema.TypeString, Label: "Ad", Required: true})
	form, err := dynform.New(s, orchestrator.WithEndpoint(srv.URL), orchestrator.WithLocale("en"))
	require.NoError(t, err)
	t.Cleanup(form.Close)
	_, err = form.Text("name", fields.TextOptions{})
	require.NoError(t, err)
	_, err = form.SuccessBanner()
	require.NoError(t, err)

	driver := &stubDriver{inputs: []string{"Ada"}}
	res, err := New(WithPromptDriver(driver)).Fill(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, orchestrator.StatusSucceeded, res.Status)
	require.Equal(t, []string{"✓ Form submitted successfully"}, driver.infos)
}

func TestFill_SearchableSelectUsesFoldedFilter(t *testing.T) {
	s := schema.MustNew(schema.Field{Name: "country", Type: schema.TypeString, Label: "Ülke", UI: &schema.UIHints{
		Options: []schema.Option{{Label: "Türkiye", Value: "tr"}, {Label: "Germany", Value: "de"}},
	}})
	form, err := dynform.New(s, orchestrator.WithDryRun(true))
	require.NoError(t, err)
	t.Cleanup(form.Close)
	country, err := form.Select("country", fields.SelectOptions{Search: true})
	require.NoError(t, err)

	driver := &stubDriver{selectIdx: []int{1}}
	res, err := New(WithPromptDriver(driver)).Fill(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, orchestrator.StatusDryRun, res.Status)
	require.Equal(t, "de", country.Value())

	require.Len(t, driver.selectCfg, 1)
	cfg := driver.selectCfg[0]
	require.Equal(t, []string{"Türkiye", "Germany"}, cfg.Options)
	require.Equal(t, "Ara...", cfg.Help)
	require.NotNil(t, cfg.Filter)
	require.True(t, cfg.Filter("Germany", "GER"))
	require.False(t, cfg.Filter("Türkiye", "ger"))
}

func TestFill_ImagesOnlyRejectsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	avatar := filepath.Join(dir, "avatar.png")
	require.NoError(t, os.WriteFile(notes, []byte("hello"), 0o600))
	require.NoError(t, os.WriteFile(avatar, []byte("\x89PNG\r\n\x1a\n"), 0o600))

	s := schema.MustNew(schema.Field{Name: "avatar", Type: schema.TypeFiles, Label: "Avatar", MinItems: schema.Int(1)})
	form, err := dynform.New(s, orchestrator.WithDryRun(true))
	require.NoError(t, err)
	t.Cleanup(form.Close)
	upload, err := form.FileUpload("avatar", fields.FileUploadOptions{ImagesOnly: true})
	require.NoError(t, err)

	driver := &stubDriver{inputs: []string{notes, avatar}}
	res, err := New(WithPromptDriver(driver)).Fill(context.Background(), form)
	require.NoError(t, err)
	require.Equal(t, orchestrator.StatusDryRun, res.Status)
	require.Len(t, driver.infos, 1)
	require.Equal(t, "✗ Geçersiz Avatar: Yalnızca görsel dosyaları seçilebilir: notes.txt", driver.infos[0])
	require.True(t, driver.inputCfgs[0].Suggest)
	require.Len(t, upload.Files(), 1)
	require.Equal(t, "image/png", upload.Files()[0].Type)
}

func TestFill_DriverFailureEndsSession(t *testing.T) {
	form, err := dynform.New(profileSchema(), orchestrator.WithDryRun(true))
	require.NoError(t, err)
	t.Cleanup(form.Close)
	bindProfile(t, form)

	driver := &stubDriver{failWith: ErrAborted}
	_, err = New(WithPromptDriver(driver)).Fill(context.Background(), form)
	require.ErrorIs(t, err, ErrAborted)
	require.Empty(t, driver.infos)
}

func TestFill_GivesUpAfterMaxRounds(t *testing.T) {
	s := schema.MustNew(
		schema.Field{Name: "name", Type: schema.TypeString},
		schema.Field{Name: "token", Type: schema.TypeString, Required: true},
	)
	form, err := dynform.New(s, orchestrator.WithDryRun(true))
	require.NoError(t, err)
	t.Cleanup(form.Close)
	_, err = form.Text("name", fields.TextOptions{})
	require.NoError(t, err)

	driver := &stubDriver{inputs: []string{"Ada"}}
	res, err := New(WithPromptDriver(driver), WithMaxRounds(2)).Fill(context.Background(), form)
	require.ErrorIs(t, err, ErrTooManyRounds)
	require.Equal(t, orchestrator.StatusInvalid, res.Status)
	require.Contains(t, res.Fields, "token")
	require.Equal(t, 1, driver.inputPos)
	require.Equal(t, []string{"✗ Lütfen işaretli alanları düzeltin."}, driver.infos)
}

func TestFill_NilForm(t *testing.T) {
	_, err := New(WithPromptDriver(&stubDriver{})).Fill(context.Background(), nil)
	require.ErrorIs(t, err, ErrNilForm)
}
