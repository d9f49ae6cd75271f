package mcp

import "fmt"

// OutcomeKind is the closed failure taxonomy shared by every adapter.
type OutcomeKind string

const (
	KindUnknownTool      OutcomeKind = "UnknownTool"
	KindValidation       OutcomeKind = "ValidationError"
	KindNotFound         OutcomeKind = "NotFound"
	KindAlreadyExists    OutcomeKind = "AlreadyExists"
	KindConflict         OutcomeKind = "Conflict"
	KindPermissionDenied OutcomeKind = "PermissionDenied"
	KindThrottled        OutcomeKind = "Throttled"
	KindInvalidRequest   OutcomeKind = "InvalidRequest"
	KindUnavailable      OutcomeKind = "Unavailable"
	KindPartialFailure   OutcomeKind = "PartialFailure"
	KindUnknown          OutcomeKind = "Unknown"
)

// Envelope is the uniform result wrapper returned for every call,
// valid or not. Exactly one of the ok/error shapes is populated.
type Envelope struct {
	Status  string         `json:"status"`
	Data    any            `json:"data,omitempty"`
	Kind    OutcomeKind    `json:"kind,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

const (
	statusOK    = "ok"
	statusError = "error"
)

func OK(data any) Envelope {
	return Envelope{Status: statusOK, Data: data}
}

func Failure(kind OutcomeKind, message string, details map[string]any) Envelope {
	return Envelope{Status: statusError, Kind: kind, Message: message, Details: details}
}

func (e Envelope) IsError() bool {
	return e.Status == statusError
}

// KindError lets a handler pin the taxonomy kind for a failure it
// detects itself, e.g. a lookup that returned an empty result set.
type KindError struct {
	Kind    OutcomeKind
	Message string
}

func (e *KindError) Error() string {
	return e.Message
}

func NotFoundf(format string, args ...any) error {
	return &KindError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidRequestf(format string, args ...any) error {
	return &KindError{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// PartialFailureError reports a create flow whose primary resource now
// exists but whose followup step failed. The resource is not rolled
// back; the caller retries only the missing step.
type PartialFailureError struct {
	Step       string
	ResourceID string
	Err        error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("resource %s created but %s failed: %v", e.ResourceID, e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
