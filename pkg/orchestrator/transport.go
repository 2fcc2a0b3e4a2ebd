package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// DefaultMaxResponseBytes caps how much of a response body is read.
const DefaultMaxResponseBytes int64 = 16 << 20

// Request is one submission handed to a Transport.
type Request struct {
	AttemptID string
	Endpoint  string
	Values    map[string]any
}

// Response is the decoded submission envelope.
type Response struct {
	StatusCode int
	IsSuccess  bool
	Data       any
	// ErrorMessage is error.message from the envelope.
	ErrorMessage string
	// ErrorText is the top-level errorMessage from the envelope.
	ErrorText string
}

// OK reports whether the HTTP status is 2xx.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Accepted reports whether the submission succeeded end to end.
func (r *Response) Accepted() bool {
	return r.OK() && r.IsSuccess
}

// Transport delivers a submission. Errors are transport or decoding failures;
// server-side rejections are returned as a Response.
type Transport interface {
	Submit(ctx context.Context, req Request) (*Response, error)
}

// Envelope is the JSON body exchanged with submission endpoints.
type Envelope struct {
	IsSuccess    bool           `json:"isSuccess"`
	Data         any            `json:"data,omitempty"`
	Error        *EnvelopeError `json:"error,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
}

// EnvelopeError is the nested error object of an Envelope.
type EnvelopeError struct {
	Message string `json:"message"`
}

// HTTPTransport POSTs values as JSON.
type HTTPTransport struct {
	Client  *http.Client
	Headers http.Header
	// MaxResponseBytes bounds the response body; larger bodies fail with
	// ErrResponseTooLarge. Zero means DefaultMaxResponseBytes.
	MaxResponseBytes int64
}

// NewHTTPTransport builds a transport; a nil client gets a default timeout.
func NewHTTPTransport(client *http.Client, headers http.Header) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPTransport{Client: client, Headers: headers.Clone()}
}

// Submit issues a single POST and decodes the envelope.
func (t *HTTPTransport) Submit(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req.Values)
	if err != nil {
		return nil, fmt.Errorf("encode values: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for key, values := range t.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.AttemptID != "" {
		httpReq.Header.Set("X-Request-ID", req.AttemptID)
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	limit := t.MaxResponseBytes
	if limit <= 0 {
		limit = DefaultMaxResponseBytes
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(raw)) > limit {
		return nil, fmt.Errorf("%w: status %d, limit %d bytes", ErrResponseTooLarge, resp.StatusCode, limit)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		IsSuccess:  env.IsSuccess,
		Data:       env.Data,
		ErrorText:  env.ErrorMessage,
	}
	if env.Error != nil {
		out.ErrorMessage = env.Error.Message
	}
	return out, nil
}
