// Package formstate is the value and error container behind a form.
//
// A Store holds the current value of every named field, the defaults it was
// seeded with, the latest validation message per field and the touched and
// submitting flags. Every SetValue revalidates the written field, so bindings
// always read an up-to-date message for their name.
package formstate

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/events"
)

// Validator evaluates a full value map and returns one message per failing
// field. A nil or empty map means the values are valid.
type Validator interface {
	Has(name string) bool
	Validate(values map[string]any) map[string]string
}

// SubmitFunc receives a snapshot of valid values.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Change is the payload published to subscribers.
type Change struct {
	Field      string
	Value      any
	Errors     map[string]string
	Submitting bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBroker replaces the change broker, e.g. to share one across stores.
func WithBroker(b *events.Broker[Change]) Option {
	return func(s *Store) {
		if b != nil {
			s.broker = b
		}
	}
}

// Store is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	validator  Validator
	defaults   map[string]any
	values     map[string]any
	errors     map[string]string
	touched    map[string]bool
	registered map[string]int

	submitting  bool
	submitCount int

	broker *events.Broker[Change]
	logger *zap.Logger
}

// New seeds a store with defaults.
func New(v Validator, defaults map[string]any, opts ...Option) (*Store, error) {
	if v == nil {
		return nil, ErrNilValidator
	}
	s := &Store{
		validator:  v,
		defaults:   cloneValues(defaults),
		values:     cloneValues(defaults),
		errors:     map[string]string{},
		touched:    map[string]bool{},
		registered: map[string]int{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.broker == nil {
		s.broker = events.NewBroker[Change]()
	}
	return s, nil
}

// Register attaches a binding to name and returns its release func. Names the
// validator does not declare are rejected so a typo cannot silently lose
// validation feedback.
func (s *Store) Register(name string) (func(), error) {
	if !s.validator.Has(name) {
		return nil, unknownField(name)
	}
	s.mu.Lock()
	s.registered[name]++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.registered[name] <= 1 {
				delete(s.registered, name)
				return
			}
			s.registered[name]--
		})
	}, nil
}

// Registered lists the names with at least one attached binding.
func (s *Store) Registered() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.registered))
	for name := range s.registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value returns the current value for name.
func (s *Store) Value(name string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneValue(s.values[name])
}

// Values returns a snapshot of every value.
func (s *Store) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneValues(s.values)
}

// Defaults returns a snapshot of the default values.
func (s *Store) Defaults() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneValues(s.defaults)
}

// SetValue writes value under name, marks it touched and revalidates it.
func (s *Store) SetValue(name string, value any) error {
	if !s.validator.Has(name) {
		return unknownField(name)
	}

	s.mu.Lock()
	s.values[name] = cloneValue(value)
	s.touched[name] = true
	errorsChanged := s.revalidateLocked(name)
	s.mu.Unlock()

	s.notify(events.ValueChanged, name)
	if errorsChanged {
		s.notify(events.ErrorsChanged, name)
	}
	return nil
}

func (s *Store) revalidateLocked(name string) bool {
	msg, failed := s.validator.Validate(s.values)[name]
	prev, had := s.errors[name]
	switch {
	case failed:
		s.errors[name] = msg
		return !had || prev != msg
	case had:
		delete(s.errors, name)
		return true
	}
	return false
}

// Trigger validates the named fields (every declared value when none are
// given) and records their messages. It reports whether they all passed.
func (s *Store) Trigger(names ...string) bool {
	s.mu.Lock()
	all := s.validator.Validate(s.values)
	valid := true
	if len(names) == 0 {
		s.errors = cloneErrors(all)
		valid = len(all) == 0
	}
	for _, name := range names {
		if msg, failed := all[name]; failed {
			s.errors[name] = msg
			valid = false
		} else {
			delete(s.errors, name)
		}
	}
	s.mu.Unlock()

	s.notify(events.ErrorsChanged, "")
	return valid
}

// Error returns the message recorded for name, or "".
func (s *Store) Error(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors[name]
}

// Errors returns a snapshot of every recorded message.
func (s *Store) Errors() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneErrors(s.errors)
}

// SetError records a message for name, e.g. one reported by a server.
func (s *Store) SetError(name, message string) error {
	if !s.validator.Has(name) {
		return unknownField(name)
	}
	s.mu.Lock()
	s.errors[name] = message
	s.mu.Unlock()
	s.notify(events.ErrorsChanged, name)
	return nil
}

// ClearErrors removes the messages for names, or all messages when none are
// given.
func (s *Store) ClearErrors(names ...string) {
	s.mu.Lock()
	if len(names) == 0 {
		s.errors = map[string]string{}
	} else {
		for _, name := range names {
			delete(s.errors, name)
		}
	}
	s.mu.Unlock()
	s.notify(events.ErrorsChanged, "")
}

// Touched reports whether name was written since the last reset.
func (s *Store) Touched(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.touched[name]
}

// Dirty reports whether name differs from its default.
func (s *Store) Dirty(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !reflect.DeepEqual(s.values[name], s.defaults[name])
}

// IsDirty reports whether any value differs from its default.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !reflect.DeepEqual(s.values, s.defaults)
}

// IsSubmitting reports whether HandleSubmit is running.
func (s *Store) IsSubmitting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submitting
}

// SubmitCount returns how many submits were attempted since the last reset.
func (s *Store) SubmitCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submitCount
}

// HandleSubmit validates every field. On failure it records all messages and
// returns a *ValidationError without calling fn; otherwise it calls fn with a
// snapshot of the values. The submitting flag is held for the whole call.
func (s *Store) HandleSubmit(ctx context.Context, fn SubmitFunc) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitting
	}
	s.submitting = true
	s.submitCount++
	failed := s.validator.Validate(s.values)
	s.errors = cloneErrors(failed)
	values := cloneValues(s.values)
	s.mu.Unlock()

	s.notify(events.SubmittingChanged, "")
	s.notify(events.ErrorsChanged, "")

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
		s.notify(events.SubmittingChanged, "")
	}()

	if len(failed) > 0 {
		s.logger.Debug("form validation failed", zap.Int("fields", len(failed)))
		return &ValidationError{Fields: cloneErrors(failed)}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if fn == nil {
		return nil
	}
	return fn(ctx, values)
}

// Reset restores the defaults and clears errors, touched flags and the
// submit count.
func (s *Store) Reset() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	s.logger.Debug("form reset")
	s.notify(events.FormReset, "")
}

// ResetTo replaces the defaults with values and resets to them.
func (s *Store) ResetTo(values map[string]any) {
	s.mu.Lock()
	s.defaults = cloneValues(values)
	s.resetLocked()
	s.mu.Unlock()
	s.logger.Debug("form defaults replaced", zap.Int("values", len(values)))
	s.notify(events.FormReset, "")
}

func (s *Store) resetLocked() {
	s.values = cloneValues(s.defaults)
	s.errors = map[string]string{}
	s.touched = map[string]bool{}
	s.submitCount = 0
}

// Subscribe streams changes until ctx is done or the store is closed.
func (s *Store) Subscribe(ctx context.Context) <-chan events.Event[Change] {
	return s.broker.Subscribe(ctx)
}

// Close releases every subscriber.
func (s *Store) Close() {
	s.broker.Close()
}

func (s *Store) notify(kind events.Kind, field string) {
	s.mu.RLock()
	change := Change{
		Field:      field,
		Errors:     cloneErrors(s.errors),
		Submitting: s.submitting,
	}
	if field != "" {
		change.Value = cloneValue(s.values[field])
	}
	s.mu.RUnlock()
	s.broker.Publish(kind, change)
}
