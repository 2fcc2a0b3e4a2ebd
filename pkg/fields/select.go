package fields

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/goliatone/go-dynform/internal/i18n"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/view"
)

// Direction is where the option list opens relative to the control.
type Direction string

const (
	DirectionAuto   Direction = "auto"
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
)

// DefaultListHeight is the option list height used to resolve DirectionAuto.
const DefaultListHeight = 300

// Resolve returns the concrete direction given the free space below and
// above the control. Auto opens downwards unless the list does not fit there
// and there is more room above.
func (d Direction) Resolve(below, above float64) Direction {
	switch d {
	case DirectionTop, DirectionBottom:
		return d
	}
	if below >= DefaultListHeight || below >= above {
		return DirectionBottom
	}
	return DirectionTop
}

// SelectOption is a {label, value} pair.
type SelectOption struct {
	Label string
	Value string
}

// SelectOptions configures a Select binding. Empty Options fall back to the
// schema's choices for the bound name.
type SelectOptions struct {
	Common
	Options     []SelectOption
	Placeholder string
	Multiple    bool
	Search      bool
	// SearchPlaceholder is shown in an empty search box.
	SearchPlaceholder string
	Disabled          bool
	Direction         Direction
	// OnChange is called with the new value after every write.
	OnChange func(value any)
}

// Select binds a single value or, with Multiple, a list of values.
type Select struct {
	base
	opts   SelectOptions
	search string
	open   bool
}

// NewSelect binds a select to name.
func NewSelect(ctx *orchestrator.Context, name string, opts SelectOptions) (*Select, error) {
	b, err := newBase(ctx, name, opts.Common)
	if err != nil {
		return nil, err
	}
	opts.Options = slices.Clone(opts.Options)
	if len(opts.Options) == 0 {
		for _, c := range schemaChoices(ctx, name) {
			opts.Options = append(opts.Options, SelectOption{Label: c.Label, Value: c.Value})
		}
	}
	if opts.Direction == "" {
		opts.Direction = DirectionAuto
	}
	if opts.Placeholder == "" {
		opts.Placeholder = ctx.T(i18n.KeySelectPlaceholder)
	}
	if opts.Search && opts.SearchPlaceholder == "" {
		opts.SearchPlaceholder = ctx.T(i18n.KeySearchPlaceholder)
	}
	return &Select{base: b, opts: opts}, nil
}

// Value returns the selected value in single mode, or the first selected
// value in multiple mode.
func (s *Select) Value() string {
	if s.opts.Multiple {
		if values := s.Values(); len(values) > 0 {
			return values[0]
		}
		return ""
	}
	return asString(s.raw())
}

// Values returns the selected values.
func (s *Select) Values() []string {
	if s.opts.Multiple {
		return asStrings(s.raw())
	}
	if v := asString(s.raw()); v != "" {
		return []string{v}
	}
	return nil
}

// Select picks value. In single mode it replaces the selection and closes
// the list; in multiple mode it adds value when absent.
func (s *Select) Select(value string) error {
	if err := s.check(value); err != nil {
		return err
	}
	if !s.opts.Multiple {
		s.open = false
		s.search = ""
		return s.commit(value)
	}
	values := s.Values()
	if slices.Contains(values, value) {
		return nil
	}
	return s.commit(append(values, value))
}

// Deselect removes value in multiple mode and clears the selection in single
// mode when it matches.
func (s *Select) Deselect(value string) error {
	if s.opts.Disabled {
		return ErrDisabled
	}
	if !s.opts.Multiple {
		if s.Value() != value {
			return nil
		}
		return s.commit("")
	}
	values := s.Values()
	i := slices.Index(values, value)
	if i < 0 {
		return nil
	}
	return s.commit(slices.Delete(values, i, i+1))
}

// Toggle selects value when absent and deselects it otherwise.
func (s *Select) Toggle(value string) error {
	if slices.Contains(s.Values(), value) {
		return s.Deselect(value)
	}
	return s.Select(value)
}

// Clear empties the selection.
func (s *Select) Clear() error {
	if s.opts.Disabled {
		return ErrDisabled
	}
	if s.opts.Multiple {
		return s.commit([]string{})
	}
	return s.commit("")
}

func (s *Select) check(value string) error {
	if s.opts.Disabled {
		return ErrDisabled
	}
	if _, ok := s.option(value); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, value)
	}
	return nil
}

func (s *Select) commit(value any) error {
	if err := s.write(value); err != nil {
		return err
	}
	if s.opts.OnChange != nil {
		s.opts.OnChange(value)
	}
	return nil
}

func (s *Select) option(value string) (SelectOption, bool) {
	for _, o := range s.opts.Options {
		if o.Value == value {
			return o, true
		}
	}
	return SelectOption{}, false
}

// Open shows the option list unless disabled.
func (s *Select) Open() {
	if !s.opts.Disabled {
		s.open = true
	}
}

// Close hides the option list and resets the search query.
func (s *Select) Close() {
	s.open = false
	s.search = ""
}

// IsOpen reports whether the option list is shown.
func (s *Select) IsOpen() bool { return s.open }

// SetSearch sets the filter query. It is ignored unless search is enabled.
func (s *Select) SetSearch(query string) {
	if s.opts.Search {
		s.search = query
	}
}

// Filtered returns the options whose label matches the search query.
func (s *Select) Filtered() []SelectOption {
	query := strings.TrimSpace(s.search)
	if query == "" {
		return slices.Clone(s.opts.Options)
	}
	out := make([]SelectOption, 0, len(s.opts.Options))
	for _, o := range s.opts.Options {
		if MatchLabel(o.Label, query) {
			out = append(out, o)
		}
	}
	return out
}

// MatchLabel reports whether label contains query under Unicode case folding.
func MatchLabel(label, query string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(label), fold.String(strings.TrimSpace(query)))
}

// Labels returns the labels of the selected values, in selection order.
func (s *Select) Labels() []string {
	values := s.Values()
	out := make([]string, 0, len(values))
	for _, v := range values {
		if o, ok := s.option(v); ok {
			out = append(out, o.Label)
		} else {
			out = append(out, v)
		}
	}
	return out
}

// View snapshots the binding. Options reflect the current search filter.
func (s *Select) View() view.Field {
	v := s.view(view.KindSelect)
	selected := s.Values()
	if s.opts.Multiple {
		v.Value = selected
	} else {
		v.Value = s.Value()
	}
	v.Display = strings.Join(s.Labels(), ", ")
	v.Placeholder = s.opts.Placeholder
	v.Multiple = s.opts.Multiple
	v.Disabled = s.opts.Disabled
	v.Direction = string(s.opts.Direction)
	v.Search = s.search
	if s.opts.Search {
		v.SearchPlaceholder = s.opts.SearchPlaceholder
	}
	v.Open = s.open
	for _, o := range s.Filtered() {
		v.Options = append(v.Options, view.Option{
			Label:    o.Label,
			Value:    o.Value,
			Selected: slices.Contains(selected, o.Value),
		})
	}
	return v
}

// Node implements view.Component.
func (s *Select) Node() view.Node { return view.FieldNode(s.View()) }

// Searchable reports whether the binding filters options by a query.
func (s *Select) Searchable() bool { return s.opts.Search }

// Multiple reports whether the binding holds a list.
func (s *Select) Multiple() bool { return s.opts.Multiple }

// Options returns every option regardless of the search filter.
func (s *Select) Options() []SelectOption { return slices.Clone(s.opts.Options) }
