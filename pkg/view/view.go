// Package view holds the render-ready snapshots produced by bindings,
// banners and the submit button. Renderers consume these and nothing else.
package view

import "github.com/goliatone/go-dynform/pkg/schema"

// Kind names a component type.
type Kind string

const (
	KindText          Kind = "text"
	KindCheckbox      Kind = "checkbox"
	KindCheckboxGroup Kind = "checkbox_group"
	KindRadioGroup    Kind = "radio_group"
	KindSelect        Kind = "select"
	KindFileUpload    Kind = "file_upload"
	KindDatePicker    Kind = "date_picker"
	KindSlider        Kind = "slider"
	KindErrorBanner   Kind = "error_banner"
	KindSuccessBanner Kind = "success_banner"
	KindSubmitButton  Kind = "submit_button"
)

// Option is one choice of a group or select.
type Option struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected,omitempty"`
}

// Field is the snapshot of one field binding.
type Field struct {
	Kind        Kind   `json:"kind"`
	Name        string `json:"name"`
	Label       string `json:"label,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
	// Value is the raw stored value; Display is its human-readable form.
	Value   any    `json:"value,omitempty"`
	Display string `json:"display,omitempty"`
	// Error is the validation message for Name, or "".
	Error string `json:"error,omitempty"`

	Options  []Option `json:"options,omitempty"`
	Multiple bool     `json:"multiple,omitempty"`

	Multiline bool `json:"multiline,omitempty"`
	Secure    bool `json:"secure,omitempty"`
	Lines     int  `json:"lines,omitempty"`

	Search            string `json:"search,omitempty"`
	SearchPlaceholder string `json:"searchPlaceholder,omitempty"`
	Direction         string `json:"direction,omitempty"`
	Open              bool   `json:"open,omitempty"`

	Files      []schema.FileDescriptor `json:"files,omitempty"`
	ImagesOnly bool                    `json:"imagesOnly,omitempty"`

	Mode          string `json:"mode,omitempty"`
	PickerVisible bool   `json:"pickerVisible,omitempty"`

	Min  float64 `json:"min,omitempty"`
	Max  float64 `json:"max,omitempty"`
	Step float64 `json:"step,omitempty"`
}

// HasError reports whether the binding should render its error line.
func (f Field) HasError() bool { return f.Error != "" }

// Banner is the snapshot of an error or success banner.
type Banner struct {
	Kind         Kind   `json:"kind"`
	Text         string `json:"text,omitempty"`
	Visible      bool   `json:"visible"`
	DismissLabel string `json:"dismissLabel,omitempty"`
}

// Button is the snapshot of the submit button.
type Button struct {
	Label    string `json:"label"`
	Loading  bool   `json:"loading"`
	Disabled bool   `json:"disabled"`
}

// Node is one entry of a screen. Exactly one of Field, Banner or Button is set.
type Node struct {
	Kind   Kind    `json:"kind"`
	Field  *Field  `json:"field,omitempty"`
	Banner *Banner `json:"banner,omitempty"`
	Button *Button `json:"button,omitempty"`
}

// Component is anything that can be placed on a screen.
type Component interface {
	Node() Node
}

// FieldNode wraps f.
func FieldNode(f Field) Node { return Node{Kind: f.Kind, Field: &f} }

// BannerNode wraps b.
func BannerNode(b Banner) Node { return Node{Kind: b.Kind, Banner: &b} }

// ButtonNode wraps b.
func ButtonNode(b Button) Node { return Node{Kind: KindSubmitButton, Button: &b} }

// Screen snapshots components in order.
func Screen(components ...Component) []Node {
	out := make([]Node, 0, len(components))
	for _, c := range components {
		if c == nil {
			continue
		}
		out = append(out, c.Node())
	}
	return out
}
