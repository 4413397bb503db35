package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for transport mapping.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindInsufficientBalance
	KindStateConflict
	KindGateway
	KindInternal
)

// Error is the typed failure returned by all core services. Controllers never
// inspect raw errors; the error middleware maps Kind to an HTTP status.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps a failure kind to its transport status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInsufficientBalance:
		return 400
	case KindNotFound:
		return 404
	case KindStateConflict:
		return 409
	case KindGateway:
		return 402
	default:
		return 500
	}
}

func Validation(message string, details map[string]interface{}) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func InsufficientBalance(requested, available int) *Error {
	return &Error{
		Kind:    KindInsufficientBalance,
		Message: "insufficient token balance",
		Details: map[string]interface{}{
			"requested": requested,
			"available": available,
		},
	}
}

func StateConflict(message string) *Error {
	return &Error{Kind: KindStateConflict, Message: message}
}

func Gateway(reason string, err error) *Error {
	return &Error{Kind: KindGateway, Message: reason, Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// From extracts a typed Error if err carries one.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is a typed Error of the given kind.
func IsKind(err error, kind Kind) bool {
	if appErr, ok := From(err); ok {
		return appErr.Kind == kind
	}
	return false
}
