package dynform

import (
	"fmt"

	"github.com/goliatone/go-dynform/pkg/controls"
	"github.com/goliatone/go-dynform/pkg/fields"
	"github.com/goliatone/go-dynform/pkg/schema"
)

// Scaffold adds one binding per schema field, using each field's widget hint
// or inferred widget, framed by the error banner at the top and the success
// banner and submit button at the bottom.
func (f *Form) Scaffold() error {
	if _, err := f.ErrorBanner(); err != nil {
		return err
	}
	for _, field := range f.ctx.Schema().Fields() {
		if err := f.bind(field); err != nil {
			return fmt.Errorf("dynform: bind %q: %w", field.Name, err)
		}
	}
	if _, err := f.SuccessBanner(); err != nil {
		return err
	}
	_, err := f.SubmitButton(controls.SubmitButtonOptions{})
	return err
}

func (f *Form) bind(field schema.Field) error {
	ui := schema.UIHints{}
	if field.UI != nil {
		ui = *field.UI
	}
	common := fields.Common{Label: field.Label, Required: field.Required}
	var err error

	switch field.DefaultWidget() {
	case schema.WidgetText:
		_, err = f.Text(field.Name, fields.TextOptions{Common: common, Placeholder: ui.Placeholder})
	case schema.WidgetTextarea:
		_, err = f.Text(field.Name, fields.TextOptions{Common: common, Placeholder: ui.Placeholder, Multiline: true, Lines: ui.Lines})
	case schema.WidgetPassword:
		_, err = f.Text(field.Name, fields.TextOptions{Common: common, Placeholder: ui.Placeholder, Secure: true})
	case schema.WidgetCheckbox:
		_, err = f.Checkbox(field.Name, fields.CheckboxOptions{Common: common})
	case schema.WidgetCheckboxGroup:
		_, err = f.CheckboxGroup(field.Name, fields.GroupOptions{Common: common})
	case schema.WidgetRadio:
		_, err = f.RadioGroup(field.Name, fields.GroupOptions{Common: common})
	case schema.WidgetSelect, schema.WidgetMultiSelect:
		_, err = f.Select(field.Name, fields.SelectOptions{
			Common:      common,
			Placeholder: ui.Placeholder,
			Multiple:    field.Type == schema.TypeStrings,
			Search:      ui.Search,
			Disabled:    ui.Disabled,
			Direction:   fields.Direction(ui.Direction),
		})
	case schema.WidgetFile:
		_, err = f.FileUpload(field.Name, fields.FileUploadOptions{
			Common:     common,
			Multiple:   ui.Multiple || field.MaxItems == nil || *field.MaxItems > 1,
			ImagesOnly: ui.ImagesOnly,
		})
	case schema.WidgetDate:
		_, err = f.DatePicker(field.Name, fields.DatePickerOptions{Common: common, Mode: fields.ModeDate, Placeholder: ui.Placeholder})
	case schema.WidgetTime:
		_, err = f.DatePicker(field.Name, fields.DatePickerOptions{Common: common, Mode: fields.ModeTime, Placeholder: ui.Placeholder})
	case schema.WidgetDateTime:
		_, err = f.DatePicker(field.Name, fields.DatePickerOptions{Common: common, Mode: fields.ModeDateTime, Placeholder: ui.Placeholder})
	case schema.WidgetSlider:
		opts := fields.SliderOptions{Common: common, Step: ui.Step}
		if field.Minimum != nil {
			opts.Minimum = *field.Minimum
		}
		if field.Maximum != nil {
			opts.Maximum = *field.Maximum
		}
		_, err = f.Slider(field.Name, opts)
	default:
		err = fmt.Errorf("unsupported widget %q", field.DefaultWidget())
	}
	return err
}
