package models

import "fmt"

// FailureKind classifies why a resolution failed. The kind is stable and
// machine-readable; the message on ResolveError is for humans.
type FailureKind string

const (
	FailInvalidInput   FailureKind = "invalid_input"
	FailUnreachable    FailureKind = "unreachable"
	FailIncompleteData FailureKind = "incomplete_data"
	FailUpstream       FailureKind = "upstream_rejected"
	FailUnknown        FailureKind = "unknown"
)

// AttemptOutcome describes how a single fetch channel attempt ended.
type AttemptOutcome string

const (
	AttemptSuccess      AttemptOutcome = "success"
	AttemptHTTPError    AttemptOutcome = "http_error"
	AttemptNetworkError AttemptOutcome = "network_error"
	AttemptShortBody    AttemptOutcome = "short_body"
)

// FetchAttempt records one channel attempt, kept only for diagnostics.
type FetchAttempt struct {
	Channel    string         `json:"channel"`
	Outcome    AttemptOutcome `json:"outcome"`
	Status     int            `json:"status,omitempty"`
	BodyLength int            `json:"body_length"`
}

// ResolveError is the only error type a Resolver surfaces to callers.
type ResolveError struct {
	Kind     FailureKind
	Message  string
	Attempts []FetchAttempt
	Err      error
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// NewResolveError builds a classified failure with a human-readable message.
func NewResolveError(kind FailureKind, message string, err error) *ResolveError {
	return &ResolveError{Kind: kind, Message: message, Err: err}
}
