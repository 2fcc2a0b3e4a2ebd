package orchestrator

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-dynform/internal/i18n"
	"github.com/goliatone/go-dynform/pkg/events"
	"github.com/goliatone/go-dynform/pkg/formstate"
	"github.com/goliatone/go-dynform/pkg/schema"
)

// SubmissionState is the state shared with banners and the submit button.
type SubmissionState struct {
	Loading bool
	Error   string
	Success string
}

// Context owns one form instance: its value store, its submission state and
// the submit procedure. Bindings, banners and buttons receive it explicitly.
type Context struct {
	cfg       config
	schema    *schema.Schema
	store     *formstate.Store
	transport Transport

	mu    sync.RWMutex
	state SubmissionState

	inFlight atomic.Bool
	broker   *events.Broker[SubmissionState]
}

// New builds a Context for s. A missing endpoint is not an error here; it is
// reported when a submit is attempted.
func New(s *schema.Schema, opts ...Option) (*Context, error) {
	if s == nil {
		return nil, ErrSchemaRequired
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	store, err := formstate.New(s, cfg.defaults,
		formstate.WithLogger(cfg.logger),
		formstate.WithBroker(events.NewBroker[formstate.Change](events.WithClock(cfg.now))),
	)
	if err != nil {
		return nil, err
	}

	transport := cfg.transport
	if transport == nil {
		ht := NewHTTPTransport(cfg.httpClient, cfg.headers)
		ht.MaxResponseBytes = cfg.maxResponse
		transport = ht
	}

	return &Context{
		cfg:       cfg,
		schema:    s,
		store:     store,
		transport: transport,
		broker:    events.NewBroker[SubmissionState](events.WithClock(cfg.now)),
	}, nil
}

// Schema returns the schema the form validates against.
func (c *Context) Schema() *schema.Schema { return c.schema }

// Form returns the value and error container.
func (c *Context) Form() *formstate.Store { return c.store }

// Endpoint returns the configured submission target.
func (c *Context) Endpoint() string { return c.cfg.endpoint }

// DryRun reports whether submissions skip the network.
func (c *Context) DryRun() bool { return c.cfg.dryRun }

// Locale returns the configured locale tag, defaulting to the catalog default.
func (c *Context) Locale() string {
	if c.cfg.locale == "" {
		return i18n.Default.String()
	}
	return c.cfg.locale
}

// T resolves a message key for the configured locale.
func (c *Context) T(key string, args ...any) string {
	var t i18n.Translator
	if c.cfg.translator != nil {
		t = c.cfg.translator
	}
	return i18n.T(t, c.Locale(), key, args...)
}

// State returns a snapshot of the submission state.
func (c *Context) State() SubmissionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// IsLoading reports loading || the store's submitting flag.
func (c *Context) IsLoading() bool {
	return c.State().Loading || c.store.IsSubmitting()
}

// SetLoading sets the loading flag.
func (c *Context) SetLoading(loading bool) {
	c.update(func(s *SubmissionState) { s.Loading = loading })
}

// SetError sets the error slot; "" clears it.
func (c *Context) SetError(msg string) {
	c.update(func(s *SubmissionState) { s.Error = msg })
}

// SetSuccess sets the success slot; "" clears it.
func (c *Context) SetSuccess(msg string) {
	c.update(func(s *SubmissionState) { s.Success = msg })
}

func (c *Context) update(fn func(*SubmissionState)) {
	c.mu.Lock()
	prev := c.state
	fn(&c.state)
	next := c.state
	c.mu.Unlock()
	if prev != next {
		c.broker.Publish(events.StateChanged, next)
	}
}

// SetDefaults replaces the default values and resets the form to them.
func (c *Context) SetDefaults(values map[string]any) {
	c.store.ResetTo(values)
}

// Subscribe streams submission state changes until ctx is done.
func (c *Context) Subscribe(ctx context.Context) <-chan events.Event[SubmissionState] {
	return c.broker.Subscribe(ctx)
}

// Close releases all subscribers of the context and its store.
func (c *Context) Close() {
	c.broker.Close()
	c.store.Close()
}
