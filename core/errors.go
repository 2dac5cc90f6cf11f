package core

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies adapter failures so callers can branch on the failure class
// without string matching.
type Kind int

const (
	// KindUnclassified covers anything not matched below.
	KindUnclassified Kind = iota
	// KindValidation marks malformed or missing caller input.
	KindValidation
	// KindFetch marks remote image retrieval failures.
	KindFetch
	// KindProvider marks errors or malformed shapes returned by the
	// generative service.
	KindProvider
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindFetch:
		return "fetch"
	case KindProvider:
		return "provider"
	default:
		return "unclassified"
	}
}

// Error is the unified failure type flowing through the pipeline. TurnIndex
// carries the originating turn position when the failure arose while
// processing a specific history turn, -1 otherwise. Err preserves the
// underlying cause for diagnostics.
type Error struct {
	Kind      Kind
	Message   string
	TurnIndex int
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.TurnIndex >= 0 {
		return fmt.Sprintf("turn %d: %s", e.TurnIndex, e.Message)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// NewValidationError reports malformed or missing input.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, TurnIndex: -1}
}

// NewFetchError reports a failed remote image retrieval, carrying the URL and
// the underlying transport cause. The message is sanitized so raw response
// bytes can never leak into error text.
func NewFetchError(url string, cause error) *Error {
	return &Error{
		Kind:      KindFetch,
		Message:   Sanitize(fmt.Sprintf("failed to fetch image from URL: %s: %v", url, cause)),
		TurnIndex: -1,
		Err:       cause,
	}
}

// NewProviderError reports a failure surfaced by the generative service.
func NewProviderError(msg string, cause error) *Error {
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{Kind: KindProvider, Message: Sanitize(msg), TurnIndex: -1, Err: cause}
}

// WithTurn annotates err with the originating turn position without changing
// its kind. Non-*Error values are wrapped as unclassified.
func WithTurn(err error, index int) error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{Kind: e.Kind, Message: e.Message, TurnIndex: index, Err: err}
	}
	return &Error{Kind: KindUnclassified, Message: Sanitize(err.Error()), TurnIndex: index, Err: err}
}

// Classify wraps err as an *Error with a guaranteed printable message. An
// existing *Error keeps its kind and turn annotation; anything else becomes
// KindUnclassified. The original error is always preserved as the cause.
func Classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{Kind: e.Kind, Message: Sanitize(e.Message), TurnIndex: e.TurnIndex, Err: err}
	}
	return &Error{Kind: KindUnclassified, Message: Sanitize(err.Error()), TurnIndex: -1, Err: err}
}

// KindOf returns the classification of err, or KindUnclassified for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

// Sanitize strips C0 and C1 control characters so a message that embedded raw
// binary content stays printable in log and error channels.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, s)
}
