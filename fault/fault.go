// Package fault defines the error taxonomy shared by every layer.
//
// Four categories cover the whole system: validation (malformed input,
// field-tagged), not-found (the entity the caller asked for is absent),
// business (domain-rule violations, currently unused by any rule), and
// system (everything else). Validation failures are raised before any
// store access; absence of secondary relationships is never an error.
package fault

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation creates a field-tagged validation error.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports that the primary entity of a query is absent.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// BusinessError reports a domain-rule violation. No rule raises it
// today; it exists so callers can rely on a stable classification.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// SystemError wraps store unavailability, configuration failures, and
// exhausted retries. Its cause never leaves the process boundary.
type SystemError struct {
	Message string
	Err     error
}

func (e *SystemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

// System wraps err as a system error.
func System(message string, err error) *SystemError {
	return &SystemError{Message: message, Err: err}
}

// TypeOf returns the stable classification name for an error.
// Unrecognized errors classify as SystemError.
func TypeOf(err error) string {
	var (
		ve *ValidationError
		nf *NotFoundError
		be *BusinessError
	)
	switch {
	case errors.As(err, &ve):
		return "ValidationError"
	case errors.As(err, &nf):
		return "NotFoundError"
	case errors.As(err, &be):
		return "BusinessError"
	default:
		return "SystemError"
	}
}

// HTTPStatus maps an error to its boundary status code:
// validation and business errors are caller-fixable (400), not-found
// is resource-absent (404), everything else is opaque (500).
func HTTPStatus(err error) int {
	switch TypeOf(err) {
	case "ValidationError", "BusinessError":
		return http.StatusBadRequest
	case "NotFoundError":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
