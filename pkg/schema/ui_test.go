package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestField_DefaultWidget(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		want  Widget
	}{
		{"plain string", Field{Type: TypeString}, WidgetText},
		{"short enum", Field{Type: TypeString, Enum: []string{"a", "b"}}, WidgetRadio},
		{"long enum", Field{Type: TypeString, Enum: []string{"a", "b", "c", "d", "e"}}, WidgetSelect},
		{"boolean", Field{Type: TypeBoolean}, WidgetCheckbox},
		{"bounded number", Field{Type: TypeNumber, Minimum: Float(0), Maximum: Float(10)}, WidgetSlider},
		{"open number", Field{Type: TypeInteger}, WidgetText},
		{"date", Field{Type: TypeDate}, WidgetDate},
		{"files", Field{Type: TypeFiles}, WidgetFile},
		{"few strings", Field{Type: TypeStrings, Enum: []string{"x", "y"}}, WidgetCheckboxGroup},
		{"free strings", Field{Type: TypeStrings}, WidgetMultiSelect},
		{"explicit hint", Field{Type: TypeString, UI: &UIHints{Widget: WidgetPassword}}, WidgetPassword},
	}
	for _, tc := range cases {
		if got := tc.field.DefaultWidget(); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestField_Choices(t *testing.T) {
	f := Field{Type: TypeString, Enum: []string{"34", "06"}}
	if diff := cmp.Diff([]Option{{Label: "34", Value: "34"}, {Label: "06", Value: "06"}}, f.Choices()); diff != "" {
		t.Fatalf("enum choices mismatch (-want +got):\n%s", diff)
	}
	f.UI = &UIHints{Options: []Option{{Label: "İstanbul", Value: "34"}}}
	if diff := cmp.Diff([]Option{{Label: "İstanbul", Value: "34"}}, f.Choices()); diff != "" {
		t.Fatalf("ui choices mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_RejectsMismatchedWidgets(t *testing.T) {
	bad := []Field{
		{Name: "a", Type: TypeBoolean, UI: &UIHints{Widget: WidgetSlider}},
		{Name: "b", Type: TypeString, UI: &UIHints{Widget: "carousel"}},
		{Name: "c", Type: TypeString, UI: &UIHints{Widget: WidgetSelect, Direction: "left"}},
		{Name: "d", Type: TypeStrings, UI: &UIHints{Widget: WidgetRadio}},
	}
	for _, f := range bad {
		if _, err := New(f); err == nil {
			t.Errorf("expected %q to be rejected", f.Name)
		}
	}
	if _, err := New(Field{Name: "ok", Type: TypeDate, UI: &UIHints{Widget: WidgetTime}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
