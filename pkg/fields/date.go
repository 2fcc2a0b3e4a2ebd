package fields

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-dynform/internal/i18n"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/view"
)

// DateMode selects which parts of a date are picked and shown.
type DateMode string

const (
	ModeDate     DateMode = "date"
	ModeTime     DateMode = "time"
	ModeDateTime DateMode = "datetime"
)

// DatePickerOptions configures a DatePicker binding.
type DatePickerOptions struct {
	Common
	Mode        DateMode
	Placeholder string
	// KeepOpen leaves the picker visible after a pick.
	KeepOpen bool
	// Now supplies the initial picker position when no value is set.
	Now func() time.Time
}

// DatePicker binds a single time.Time value.
type DatePicker struct {
	base
	opts    DatePickerOptions
	visible bool
}

// NewDatePicker binds a date picker to name.
func NewDatePicker(ctx *orchestrator.Context, name string, opts DatePickerOptions) (*DatePicker, error) {
	b, err := newBase(ctx, name, opts.Common)
	if err != nil {
		return nil, err
	}
	switch opts.Mode {
	case "":
		opts.Mode = ModeDate
	case ModeDate, ModeTime, ModeDateTime:
	default:
		return nil, fmt.Errorf("fields: unknown date mode %q", opts.Mode)
	}
	if opts.Placeholder == "" {
		opts.Placeholder = ctx.T(i18n.KeyDatePlaceholder)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &DatePicker{base: b, opts: opts}, nil
}

// Value returns the picked time and whether one is set.
func (d *DatePicker) Value() (time.Time, bool) { return asTime(d.raw()) }

// Initial is the time the picker opens at: the value, or now.
func (d *DatePicker) Initial() time.Time {
	if t, ok := d.Value(); ok {
		return t
	}
	return d.opts.Now()
}

// Show opens the picker.
func (d *DatePicker) Show() { d.visible = true }

// Hide closes the picker without changing the value.
func (d *DatePicker) Hide() { d.visible = false }

// Visible reports whether the picker is open.
func (d *DatePicker) Visible() bool { return d.visible }

// Pick records t and closes the picker unless KeepOpen is set.
func (d *DatePicker) Pick(t time.Time) error {
	d.visible = d.opts.KeepOpen
	return d.write(t)
}

// Clear removes the value.
func (d *DatePicker) Clear() error { return d.write(nil) }

// Layout is the display layout for the mode and locale.
func (d *DatePicker) Layout() string {
	layouts := i18n.Layouts(d.ctx.Locale())
	switch d.opts.Mode {
	case ModeTime:
		return layouts.Time
	case ModeDateTime:
		return layouts.DateTime
	default:
		return layouts.Date
	}
}

// Format renders the value, or the placeholder when unset.
func (d *DatePicker) Format() string {
	t, ok := d.Value()
	if !ok {
		return d.opts.Placeholder
	}
	return t.Format(d.Layout())
}

// Parse reads typed input in the display layout. Time-only input keeps the
// date of the current value.
func (d *DatePicker) Parse(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	parsed, err := time.ParseInLocation(d.Layout(), input, time.Local)
	if err != nil {
		if t, ok := asTime(input); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}
	if d.opts.Mode == ModeTime {
		base := d.Initial()
		parsed = time.Date(base.Year(), base.Month(), base.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), 0, base.Location())
	}
	return parsed, nil
}

// View snapshots the binding.
func (d *DatePicker) View() view.Field {
	v := d.view(view.KindDatePicker)
	if t, ok := d.Value(); ok {
		v.Value = t
	}
	v.Display = d.Format()
	v.Placeholder = d.opts.Placeholder
	v.Mode = string(d.opts.Mode)
	v.PickerVisible = d.visible
	return v
}

// Node implements view.Component.
func (d *DatePicker) Node() view.Node { return view.FieldNode(d.View()) }
