package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/internal/i18n"
	"github.com/goliatone/go-dynform/pkg/formstate"
)

// Status is the outcome of one SubmitForm call.
type Status string

const (
	// StatusInvalid: validation failed; nothing else happened.
	StatusInvalid Status = "invalid"
	// StatusDryRun: values were valid and handed to onSuccess without I/O.
	StatusDryRun Status = "dry_run"
	// StatusSucceeded: the endpoint accepted the submission.
	StatusSucceeded Status = "succeeded"
	// StatusFailed: the attempt failed and the error slot was set.
	StatusFailed Status = "failed"
	// StatusBusy: another submission was in flight; nothing happened.
	StatusBusy Status = "busy"
)

// Result describes a submit attempt. Failures are already reflected in the
// submission state; Result exists for callers that want to branch on them.
type Result struct {
	Status     Status
	AttemptID  string
	Data       any
	Message    string
	Fields     map[string]string
	StatusCode int
	Err        error
}

// SubmitForm validates the form and, when valid, either hands the values to
// onSuccess (dry-run) or POSTs them to the endpoint. It never returns an
// error: failures land in the error slot and the onError callback. A call
// made while another is in flight returns StatusBusy without side effects.
func (c *Context) SubmitForm(ctx context.Context) Result {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Result{Status: StatusBusy}
	}
	defer c.inFlight.Store(false)

	attempt := uuid.NewString()
	logger := c.cfg.logger.With(zap.String("attempt_id", attempt))

	ctx, span := c.cfg.tracer.Start(ctx, "dynform.submit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("dynform.attempt_id", attempt),
			attribute.Bool("dynform.dry_run", c.cfg.dryRun),
		),
	)
	defer span.End()

	result := Result{AttemptID: attempt}
	err := c.store.HandleSubmit(ctx, func(ctx context.Context, values map[string]any) error {
		result = c.submit(ctx, attempt, values, logger)
		return nil
	})

	var verr *formstate.ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Debug("submission blocked by validation", zap.Int("fields", len(verr.Fields)))
		span.SetAttributes(attribute.Int("dynform.invalid_fields", len(verr.Fields)))
		span.SetStatus(codes.Error, "validation failed")
		return Result{Status: StatusInvalid, AttemptID: attempt, Fields: verr.Fields, Err: err}
	case errors.Is(err, formstate.ErrSubmitting):
		return Result{Status: StatusBusy, AttemptID: attempt}
	case err != nil:
		result = c.fail(attempt, logger, err.Error(), err)
	}

	span.SetAttributes(attribute.String("dynform.status", string(result.Status)))
	if result.StatusCode != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", result.StatusCode))
	}
	if result.Status == StatusFailed {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Message)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return result
}

func (c *Context) submit(ctx context.Context, attempt string, values map[string]any, logger *zap.Logger) Result {
	if c.cfg.dryRun {
		logger.Debug("dry run submission", zap.Any("values", values))
		if c.cfg.onSuccess != nil {
			c.cfg.onSuccess(values)
		}
		return Result{Status: StatusDryRun, AttemptID: attempt, Data: values}
	}

	endpoint := strings.TrimSpace(c.cfg.endpoint)
	if endpoint == "" {
		return c.fail(attempt, logger, c.T(i18n.KeyMissingEndpoint), ErrMissingEndpoint)
	}

	c.update(func(s *SubmissionState) {
		s.Loading = true
		s.Error = ""
	})
	defer c.SetLoading(false)

	logger = logger.With(zap.String("endpoint", endpoint))
	resp, err := c.transport.Submit(ctx, Request{
		AttemptID: attempt,
		Endpoint:  endpoint,
		Values:    c.payload(values),
	})
	if err != nil {
		return c.fail(attempt, logger, err.Error(), fmt.Errorf("%w: %w", ErrTransport, err))
	}

	if !resp.Accepted() {
		msg := firstNonEmpty(resp.ErrorMessage, resp.ErrorText)
		r := c.fail(attempt, logger, msg, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode))
		r.StatusCode = resp.StatusCode
		return r
	}

	logger.Info("submission accepted", zap.Int("status", resp.StatusCode))
	if c.cfg.onSuccess != nil {
		c.cfg.onSuccess(resp.Data)
	}
	if c.cfg.successMessage != "" {
		c.SetSuccess(c.cfg.successMessage)
	}
	if c.cfg.resetOnSuccess {
		c.store.Reset()
		c.store.ClearErrors()
	}
	return Result{
		Status:     StatusSucceeded,
		AttemptID:  attempt,
		Data:       resp.Data,
		Message:    c.cfg.successMessage,
		StatusCode: resp.StatusCode,
	}
}

// fail resolves the displayed message as primary, then the custom message,
// then the localized generic message, and reports it.
func (c *Context) fail(attempt string, logger *zap.Logger, primary string, cause error) Result {
	msg := firstNonEmpty(primary, c.cfg.customErrorMessage, c.T(i18n.KeyGenericError))
	logger.Warn("submission failed", zap.String("message", msg), zap.Error(cause))
	c.SetError(msg)
	if c.cfg.onError != nil {
		c.cfg.onError(msg)
	}
	return Result{Status: StatusFailed, AttemptID: attempt, Message: msg, Err: cause}
}

func (c *Context) payload(values map[string]any) map[string]any {
	if len(c.cfg.hidden) == 0 {
		return values
	}
	out := make(map[string]any, len(values)+len(c.cfg.hidden))
	for k, v := range c.cfg.hidden {
		out[k] = v
	}
	for k, v := range values {
		out[k] = v
	}
	return out
}

func firstNonEmpty(candidates ...string) string {
	for _, s := range candidates {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
