package orchestrator

import "errors"

var (
	// ErrSchemaRequired is returned by New when no schema is supplied.
	ErrSchemaRequired = errors.New("orchestrator: schema is required")
	// ErrMissingEndpoint marks a submit attempted without an endpoint outside
	// dry-run mode. It is reported through the error slot, never at New.
	ErrMissingEndpoint = errors.New("orchestrator: endpoint is required unless dry-run is enabled")
	// ErrTransport wraps network and decoding failures.
	ErrTransport = errors.New("orchestrator: transport failure")
	// ErrResponseTooLarge marks a response body over the transport limit.
	ErrResponseTooLarge = errors.New("orchestrator: response body too large")
	// ErrRejected marks a response that was not ok or not isSuccess.
	ErrRejected = errors.New("orchestrator: submission rejected")
)
