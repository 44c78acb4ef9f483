package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a gateway session is missing or expired.
	ErrSessionNotFound = errors.New("session not found or expired")
	// ErrConfirmationRequired gates destructive actions behind an explicit confirm step.
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrSubmissionInFlight rejects re-entrant submits while a dialog is submitting.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	// ErrDialogNotOpen rejects submits against a dialog that has not been opened.
	ErrDialogNotOpen = errors.New("dialog is not open")
)

// ErrorKind classifies user-presentable failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindPermission
	KindNotFound
	KindConflict
)

// Error is a failure already translated for presentation. Call sites in the
// data-access layer produce these so no raw status code or transport error
// ever reaches a rendering path.
type Error struct {
	Kind    ErrorKind
	Field   string // set for validation errors tied to a single field group
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// NewValidationError reports a local validation failure for a field group.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// PermissionDenied translates a 401/403 into a human-readable message.
func PermissionDenied(action string) *Error {
	return &Error{Kind: KindPermission, Message: "you don't have permission to " + action}
}

// NotFound translates a 404 into entity-specific messaging.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Conflict surfaces a backend business-rule rejection, verbatim when the
// backend supplied a message.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unknown wraps network and decoding failures behind a generic per-operation
// fallback message.
func Unknown(operation string, cause error) *Error {
	return &Error{Kind: KindUnknown, Message: "could not " + operation, cause: cause}
}

// KindOf extracts the classification of err, KindUnknown if untranslated.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
