// Package serrors provides semantic error kinds used across the storefront.
// Components attach a kind to the errors they return so the HTTP layer can map
// failures to status codes without knowing where they came from.
package serrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It allows distinguishing semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name. Kinds are comparable and can be used with errors.Is/As through the
// serrors.Error wrapper.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden indicates the caller presented a credential that is not accepted,
	// e.g. a mismatching webhook key.
	ErrForbidden = NewKind("FORBIDDEN")
	// ErrBadRequest indicates the client sent missing or malformed input.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrConflict indicates a state conflict such as a duplicate email.
	ErrConflict = NewKind("CONFLICT")
	// ErrInternal indicates an internal server error.
	ErrInternal = NewKind("INTERNAL")
	// ErrTimeout indicates the operation timed out.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrUnavailable indicates the service is temporarily unavailable.
	ErrUnavailable = NewKind("UNAVAILABLE")

	// ErrConfiguration indicates a required setting (credential, endpoint) is absent.
	ErrConfiguration = NewKind("CONFIGURATION")
	// ErrPaymentRequired indicates the payment provider needs further action from
	// the buyer before the money is captured.
	ErrPaymentRequired = NewKind("PAYMENT_REQUIRED")
	// ErrPayment indicates the payment provider rejected or failed the request.
	ErrPayment = NewKind("PAYMENT")
	// ErrRegistration indicates the registrar refused or failed a registration.
	// It is recorded on results and never returned past the registrar client.
	ErrRegistration = NewKind("REGISTRATION")
	// ErrTransport indicates a network failure or timeout talking to a collaborator.
	ErrTransport = NewKind("TRANSPORT")
	// ErrPersistence indicates a storage write or read failure.
	ErrPersistence = NewKind("PERSISTENCE")
)

// Error represents a semantic error carrying a kind (sentinel), an optional
// wrapped error and an optional message. It supports errors.Is/errors.As and
// unwrapping.
//
// Error string formatting:
//   - If both msg and err are set: "<msg>: <err>"
//   - If only msg is set: "<msg>"
//   - If only err is set: "<err>"
//   - If neither set: the kind's Error() string.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and message.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind that wraps err.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error { return e.err }

// Is matches against either the kind sentinel or the wrapped error chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As enables type assertions against either the kind sentinel or the wrapped
// error chain.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }

// KindOf returns the outermost semantic kind found in err's chain, or nil when
// err carries none.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.kind
	}

	return nil
}

// MessageOf returns the message of the outermost *Error in err's chain, falling
// back to err.Error().
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) && se.msg != "" {
		return se.msg
	}
	if err == nil {
		return ""
	}

	return err.Error()
}

// ValidationError lists per-field problems found in a request. It is wrapped
// with ErrBadRequest by Validation.
type ValidationError struct {
	Fields map[string]string
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}

	return strings.Join(parts, "; ")
}

// Add records a problem for field. The first problem per field wins.
func (v *ValidationError) Add(field, problem string) {
	if v.Fields == nil {
		v.Fields = map[string]string{}
	}
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = problem
	}
}

// Empty reports whether no problems were recorded.
func (v *ValidationError) Empty() bool { return len(v.Fields) == 0 }

// Validation wraps v as an ErrBadRequest error with msg, or returns nil when v
// has no problems.
func Validation(v *ValidationError, msg string) error {
	if v == nil || v.Empty() {
		return nil
	}

	return Wrap(ErrBadRequest, v, "%s", msg)
}
