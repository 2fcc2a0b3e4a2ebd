package orchestrator

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/goliatone/go-dynform/pkg/orchestrator"

// SuccessFunc receives the response data, or the raw values in dry-run mode.
type SuccessFunc func(data any)

// ErrorFunc receives the message shown in the error banner.
type ErrorFunc func(message string)

// Translator resolves localized messages. The bundled Turkish/English
// catalog is used for keys it cannot resolve.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Option customises a Context.
type Option func(*config)

type config struct {
	endpoint           string
	onSuccess          SuccessFunc
	onError            ErrorFunc
	defaults           map[string]any
	resetOnSuccess     bool
	successMessage     string
	customErrorMessage string
	dryRun             bool
	hidden             map[string]any

	transport   Transport
	httpClient  *http.Client
	headers     http.Header
	maxResponse int64
	logger      *zap.Logger
	tracer      trace.Tracer
	locale      string
	translator  Translator
	now         func() time.Time
}

func defaultConfig() config {
	return config{
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
}

// WithEndpoint sets the URL submissions are POSTed to.
func WithEndpoint(url string) Option {
	return func(c *config) { c.endpoint = url }
}

// WithOnSuccess registers the success callback.
func WithOnSuccess(fn SuccessFunc) Option {
	return func(c *config) { c.onSuccess = fn }
}

// WithOnError registers the error callback.
func WithOnError(fn ErrorFunc) Option {
	return func(c *config) { c.onError = fn }
}

// WithDefaultValues seeds the form values and the reset target.
func WithDefaultValues(values map[string]any) Option {
	return func(c *config) { c.defaults = values }
}

// WithResetOnSuccess resets the form to its defaults after a successful
// submission.
func WithResetOnSuccess(enabled bool) Option {
	return func(c *config) { c.resetOnSuccess = enabled }
}

// WithSuccessMessage sets the text shown in the success banner.
func WithSuccessMessage(msg string) Option {
	return func(c *config) { c.successMessage = msg }
}

// WithCustomErrorMessage sets the fallback used when neither the server nor
// the transport supplied a message.
func WithCustomErrorMessage(msg string) Option {
	return func(c *config) { c.customErrorMessage = msg }
}

// WithDryRun validates and calls onSuccess with the raw values without any
// network I/O.
func WithDryRun(enabled bool) Option {
	return func(c *config) { c.dryRun = enabled }
}

// WithHiddenValues merges fixed values (tokens, versions) into every POST
// body. Form values win on name collisions.
func WithHiddenValues(values map[string]any) Option {
	return func(c *config) {
		if len(values) == 0 {
			return
		}
		if c.hidden == nil {
			c.hidden = make(map[string]any, len(values))
		}
		for k, v := range values {
			c.hidden[k] = v
		}
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(t Transport) Option {
	return func(c *config) { c.transport = t }
}

// WithHTTPClient sets the client used by the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) { c.httpClient = client }
}

// WithMaxResponseBytes bounds the response body read by the default
// transport.
func WithMaxResponseBytes(n int64) Option {
	return func(c *config) { c.maxResponse = n }
}

// WithHeader adds a request header for the default transport.
func WithHeader(key, value string) Option {
	return func(c *config) {
		if c.headers == nil {
			c.headers = http.Header{}
		}
		c.headers.Add(key, value)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for submit spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithLocale selects the locale for built-in messages (e.g. "tr", "en-US").
func WithLocale(locale string) Option {
	return func(c *config) { c.locale = locale }
}

// WithTranslator overrides built-in message lookup.
func WithTranslator(t Translator) Option {
	return func(c *config) { c.translator = t }
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
