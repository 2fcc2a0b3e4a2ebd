package schema

import "fmt"

// Widget names the binding a field is rendered with.
type Widget string

const (
	WidgetText          Widget = "text"
	WidgetTextarea      Widget = "textarea"
	WidgetPassword      Widget = "password"
	WidgetCheckbox      Widget = "checkbox"
	WidgetCheckboxGroup Widget = "checkbox_group"
	WidgetRadio         Widget = "radio"
	WidgetSelect        Widget = "select"
	WidgetMultiSelect   Widget = "multiselect"
	WidgetFile          Widget = "file"
	WidgetDate          Widget = "date"
	WidgetTime          Widget = "time"
	WidgetDateTime      Widget = "datetime"
	WidgetSlider        Widget = "slider"
)

// Option is a {label, value} choice for select widgets.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// UIHints carry presentation choices. They never affect validation.
type UIHints struct {
	Widget      Widget   `json:"widget,omitempty" yaml:"widget,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Lines       int      `json:"lines,omitempty" yaml:"lines,omitempty"`
	Search      bool     `json:"search,omitempty" yaml:"search,omitempty"`
	Direction   string   `json:"direction,omitempty" yaml:"direction,omitempty"`
	Disabled    bool     `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	ImagesOnly  bool     `json:"imagesOnly,omitempty" yaml:"imagesOnly,omitempty"`
	Multiple    bool     `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Step        float64  `json:"step,omitempty" yaml:"step,omitempty"`
}

// Choices returns the UI options, or the enum values as {v, v} pairs.
func (f Field) Choices() []Option {
	if f.UI != nil && len(f.UI.Options) > 0 {
		return append([]Option(nil), f.UI.Options...)
	}
	out := make([]Option, 0, len(f.Enum))
	for _, v := range f.Enum {
		out = append(out, Option{Label: v, Value: v})
	}
	return out
}

// DefaultWidget infers a widget from the field's type and rules when no hint
// is given.
func (f Field) DefaultWidget() Widget {
	if f.UI != nil && f.UI.Widget != "" {
		return f.UI.Widget
	}
	hasChoices := len(f.Enum) > 0 || (f.UI != nil && len(f.UI.Options) > 0)
	switch f.Type {
	case TypeBoolean:
		return WidgetCheckbox
	case TypeNumber, TypeInteger:
		if f.Minimum != nil && f.Maximum != nil {
			return WidgetSlider
		}
		return WidgetText
	case TypeDate:
		return WidgetDate
	case TypeFiles:
		return WidgetFile
	case TypeStrings:
		if hasChoices && len(f.Choices()) <= 6 {
			return WidgetCheckboxGroup
		}
		return WidgetMultiSelect
	default:
		if hasChoices {
			if len(f.Choices()) <= 4 {
				return WidgetRadio
			}
			return WidgetSelect
		}
		return WidgetText
	}
}

func (h *UIHints) validate(f Field) error {
	if h == nil {
		return nil
	}
	switch h.Widget {
	case "":
	case WidgetText, WidgetTextarea, WidgetPassword:
		if f.Type != TypeString && f.Type != TypeNumber && f.Type != TypeInteger {
			return fmt.Errorf("schema: field %q: widget %q needs a scalar type", f.Name, h.Widget)
		}
	case WidgetCheckbox:
		if f.Type != TypeBoolean {
			return fmt.Errorf("schema: field %q: widget %q needs a boolean", f.Name, h.Widget)
		}
	case WidgetCheckboxGroup, WidgetMultiSelect:
		if f.Type != TypeStrings {
			return fmt.Errorf("schema: field %q: widget %q needs a strings field", f.Name, h.Widget)
		}
	case WidgetRadio, WidgetSelect:
		if f.Type != TypeString {
			return fmt.Errorf("schema: field %q: widget %q needs a string field", f.Name, h.Widget)
		}
	case WidgetFile:
		if f.Type != TypeFiles {
			return fmt.Errorf("schema: field %q: widget %q needs a files field", f.Name, h.Widget)
		}
	case WidgetDate, WidgetTime, WidgetDateTime:
		if f.Type != TypeDate {
			return fmt.Errorf("schema: field %q: widget %q needs a date field", f.Name, h.Widget)
		}
	case WidgetSlider:
		if f.Type != TypeNumber && f.Type != TypeInteger {
			return fmt.Errorf("schema: field %q: widget %q needs a numeric field", f.Name, h.Widget)
		}
	default:
		return fmt.Errorf("schema: field %q: unknown widget %q", f.Name, h.Widget)
	}
	switch h.Direction {
	case "", "auto", "top", "bottom":
	default:
		return fmt.Errorf("schema: field %q: unknown direction %q", f.Name, h.Direction)
	}
	if h.Step < 0 || h.Lines < 0 {
		return fmt.Errorf("schema: field %q: step and lines must not be negative", f.Name)
	}
	return nil
}
