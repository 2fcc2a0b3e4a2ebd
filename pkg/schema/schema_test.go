package schema

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func loginSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := New(
		Field{
			Name:     "email",
			Type:     TypeString,
			Required: true,
			Format:   FormatEmail,
			Messages: map[string]string{RuleFormat: "Enter a valid e-mail address"},
		},
		Field{
			Name:      "password",
			Type:      TypeString,
			Required:  true,
			MinLength: Int(6),
			Messages:  map[string]string{RuleMinLength: "Password must be at least 6 characters"},
		},
		Field{Name: "rememberMe", Type: TypeBoolean},
	)
	if err != nil {
		t.Fatalf("new schema: %v", err)
	}
	return s
}

func TestNew_RejectsInvalidDeclarations(t *testing.T) {
	cases := map[string][]Field{
		"empty name":     {{Type: TypeString}},
		"missing type":   {{Name: "a"}},
		"unknown type":   {{Name: "a", Type: "color"}},
		"duplicate":      {{Name: "a", Type: TypeString}, {Name: "a", Type: TypeBoolean}},
		"bad pattern":    {{Name: "a", Type: TypeString, Pattern: "("}},
		"format on bool": {{Name: "a", Type: TypeBoolean, Format: FormatEmail}},
		"email+pattern":  {{Name: "a", Type: TypeString, Format: FormatEmail, Pattern: ".*"}},
		"inverted range": {{Name: "a", Type: TypeNumber, Minimum: Float(5), Maximum: Float(1)}},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := New(fields...); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSchema_Accessors(t *testing.T) {
	s := loginSchema(t)

	if diff := cmp.Diff([]string{"email", "password", "rememberMe"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !s.Has("email") || s.Has("missing") {
		t.Fatalf("unexpected Has results")
	}
	field, ok := s.Field("password")
	if !ok || *field.MinLength != 6 {
		t.Fatalf("unexpected field: %+v", field)
	}
	*field.MinLength = 1
	again, _ := s.Field("password")
	if *again.MinLength != 6 {
		t.Fatalf("Field must return a copy")
	}

	var nilSchema *Schema
	if nilSchema.Has("email") || nilSchema.Validate(map[string]any{"x": 1}) != nil {
		t.Fatalf("nil schema should be empty")
	}
}

func TestValidate_UsesDeclaredMessages(t *testing.T) {
	s := loginSchema(t)

	got := s.Validate(map[string]any{
		"email":    "not-an-email",
		"password": "123",
	})
	want := map[string]string{
		"email":    "Enter a valid e-mail address",
		"password": "Password must be at least 6 characters",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_PassingValues(t *testing.T) {
	s := loginSchema(t)

	got := s.Validate(map[string]any{
		"email":      "user@example.com",
		"password":   "secret-password",
		"rememberMe": true,
		"unknown":    struct{}{},
	})
	if got != nil {
		t.Fatalf("expected no errors, got %v", got)
	}
}

func TestValidate_RequiredFallsBackToDefaultMessage(t *testing.T) {
	s := MustNew(Field{Name: "name", Type: TypeString, Required: true})

	got := s.Validate(map[string]any{"name": "   "})
	if got["name"] != DefaultRequiredMessage {
		t.Fatalf("expected default required message, got %q", got["name"])
	}
	if got := s.Validate(nil); got["name"] != DefaultRequiredMessage {
		t.Fatalf("missing value should be required, got %v", got)
	}
}

func TestValidate_OptionalEmptyValuesSkipRules(t *testing.T) {
	s := MustNew(
		Field{Name: "nickname", Type: TypeString, MinLength: Int(3)},
		Field{Name: "tags", Type: TypeStrings, MinItems: Int(2)},
	)
	if got := s.Validate(map[string]any{"nickname": "", "tags": []string{}}); got != nil {
		t.Fatalf("optional empty values must pass, got %v", got)
	}
}

func TestValidate_RequiredBooleanIsAcceptance(t *testing.T) {
	s := MustNew(Field{
		Name:     "terms",
		Type:     TypeBoolean,
		Required: true,
		Messages: map[string]string{RuleRequired: "You must accept the terms"},
	})
	if got := s.Validate(map[string]any{"terms": false}); got["terms"] != "You must accept the terms" {
		t.Fatalf("unexpected result: %v", got)
	}
	if got := s.Validate(map[string]any{"terms": true}); got != nil {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestValidate_StringListRules(t *testing.T) {
	s := MustNew(Field{
		Name:     "interests",
		Type:     TypeStrings,
		Required: true,
		Enum:     []string{"sports", "music", "art"},
		MaxItems: Int(2),
		Messages: map[string]string{
			RuleEnum:     "Unknown interest",
			RuleMaxItems: "Pick at most two",
		},
	})

	if got := s.Validate(map[string]any{"interests": []string{"sports", "cooking"}}); got["interests"] != "Unknown interest" {
		t.Fatalf("expected enum failure, got %v", got)
	}
	if got := s.Validate(map[string]any{"interests": []any{"sports", "music", "art"}}); got["interests"] != "Pick at most two" {
		t.Fatalf("expected maxItems failure, got %v", got)
	}
	if got := s.Validate(map[string]any{"interests": []string{"art"}}); got != nil {
		t.Fatalf("expected pass, got %v", got)
	}
}

func TestValidate_NumericBounds(t *testing.T) {
	s := MustNew(
		Field{Name: "age", Type: TypeInteger, Minimum: Float(18), Maximum: Float(99)},
		Field{
			Name:     "volume",
			Type:     TypeNumber,
			Maximum:  Float(100),
			Messages: map[string]string{RuleMaximum: "Too loud"},
		},
	)

	got := s.Validate(map[string]any{"age": 12, "volume": 150.5})
	if got["age"] == "" {
		t.Fatalf("expected age error")
	}
	if got["volume"] != "Too loud" {
		t.Fatalf("expected volume error, got %q", got["volume"])
	}
	if got := s.Validate(map[string]any{"age": int64(30), "volume": float32(10)}); got != nil {
		t.Fatalf("expected pass, got %v", got)
	}
}

func TestValidate_NonFiniteNumbers(t *testing.T) {
	s := MustNew(
		Field{Name: "ratio", Type: TypeNumber},
		Field{Name: "volume", Type: TypeNumber, Messages: map[string]string{RuleType: "Enter a number"}},
	)

	got := s.Validate(map[string]any{"ratio": math.NaN(), "volume": math.Inf(1)})
	if got["ratio"] != errNotFinite.Error() {
		t.Fatalf("expected finite-number message, got %q", got["ratio"])
	}
	if got["volume"] != "Enter a number" {
		t.Fatalf("expected declared type message, got %q", got["volume"])
	}
}

func TestValidate_Dates(t *testing.T) {
	s := MustNew(Field{
		Name:     "birthday",
		Type:     TypeDate,
		Required: true,
		Messages: map[string]string{RuleType: "Pick a date"},
	})

	if got := s.Validate(map[string]any{"birthday": time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)}); got != nil {
		t.Fatalf("expected pass, got %v", got)
	}
	if got := s.Validate(map[string]any{"birthday": "1990-05-01"}); got != nil {
		t.Fatalf("expected date-only string to pass, got %v", got)
	}
	if got := s.Validate(map[string]any{"birthday": "someday"}); got["birthday"] != "Pick a date" {
		t.Fatalf("expected type failure, got %v", got)
	}
	if got := s.Validate(map[string]any{"birthday": time.Time{}}); got["birthday"] != DefaultRequiredMessage {
		t.Fatalf("zero time counts as missing, got %v", got)
	}
}

func TestValidate_Files(t *testing.T) {
	s := MustNew(Field{
		Name:     "avatar",
		Type:     TypeFiles,
		Required: true,
		MaxItems: Int(1),
		Messages: map[string]string{RuleMaxItems: "Only one photo"},
	})

	if got := s.Validate(map[string]any{"avatar": []FileDescriptor{{URI: "file:///a.png", Name: "a.png", Type: "image/png"}}}); got != nil {
		t.Fatalf("expected pass, got %v", got)
	}
	if got := s.Validate(map[string]any{"avatar": []FileDescriptor{{URI: ""}}}); got["avatar"] == "" {
		t.Fatalf("expected failure for empty uri")
	}
	if got := s.Validate(map[string]any{"avatar": []FileDescriptor{}}); got["avatar"] != DefaultRequiredMessage {
		t.Fatalf("empty list counts as missing, got %v", got)
	}
	got := s.Validate(map[string]any{"avatar": []FileDescriptor{{URI: "a"}, {URI: "b"}}})
	if got["avatar"] != "Only one photo" {
		t.Fatalf("expected maxItems message, got %q", got["avatar"])
	}
}

func TestFileDescriptor_Helpers(t *testing.T) {
	d := FileDescriptor{URI: "file:///tmp/photos/cat.JPG", Type: "IMAGE/jpeg"}
	if !d.IsImage() {
		t.Fatalf("expected image")
	}
	if d.DisplayName() != "cat.JPG" {
		t.Fatalf("unexpected display name %q", d.DisplayName())
	}
	d.Name = "kitty.jpg"
	if d.DisplayName() != "kitty.jpg" {
		t.Fatalf("expected explicit name")
	}
}
