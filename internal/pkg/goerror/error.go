package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned by repositories when no row matched.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned by repositories on a unique violation.
	ErrConflict = errors.New("resource conflict")
)

// Type classifies errors into the buckets the transport layer cares about.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "validation"
	case TypeBusiness:
		return "business"
	case TypeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Code is the stable identifier of a failure. It decides the HTTP status and
// is what API clients switch on.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeTooManyRequest
	CodeUnauthorized
	CodeForbidden
	CodeTimeout
	// CodeRejected covers a wrong one-time code or an unknown/consumed reset token.
	CodeRejected
	// CodeExpired marks a code or reset token used past its expiry.
	CodeExpired
	// CodeNotVerified marks a reset token that was never verified.
	CodeNotVerified
	CodeUnavailable
)

var codeNames = map[Code]string{
	CodeInternal:       "INTERNAL",
	CodeInvalidFormat:  "INVALID_FORMAT",
	CodeInvalidInput:   "INVALID_INPUT",
	CodeNotFound:       "NOT_FOUND",
	CodeConflict:       "CONFLICT",
	CodeTooManyRequest: "TOO_MANY_REQUESTS",
	CodeUnauthorized:   "UNAUTHORIZED",
	CodeForbidden:      "FORBIDDEN",
	CodeTimeout:        "TIMEOUT",
	CodeRejected:       "REJECTED",
	CodeExpired:        "EXPIRED",
	CodeNotVerified:    "NOT_VERIFIED",
	CodeUnavailable:    "UNAVAILABLE",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[CodeInternal]
}

// ParseCode is the inverse of Code.String. Unknown names map to CodeInternal.
func ParseCode(name string) Code {
	for c, n := range codeNames {
		if n == name {
			return c
		}
	}
	return CodeInternal
}

// Error is a structured error used across the application.
//
// It wraps an optional cause while carrying a user-facing message, a type, a
// stable code and optional per-field details.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "Validation violation"
	case TypeBusiness:
		return "Business rule violation"
	default:
		return "Internal error"
	}
}

// String returns a verbose representation for logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s msg=%q cause=%v", e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string { return e.msg }

// Type returns the error type.
func (e *Error) Type() Type { return e.errType }

// Code returns the stable error code.
func (e *Error) Code() Code { return e.code }

// Fields returns per-field details, if any.
func (e *Error) Fields() map[string]string { return e.fields }

func (e *Error) Unwrap() error { return e.err }

// Expired reports whether the error should be flagged as an expiry to the caller.
func (e *Error) Expired() bool { return e.code == CodeExpired }

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat, CodeInvalidInput, CodeRejected, CodeExpired, CodeNotVerified:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTimeout:
		return http.StatusRequestTimeout
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithField returns a copy of e with an extra detail field.
func (e *Error) WithField(key, value string) *Error {
	cp := *e
	cp.fields = make(map[string]string, len(e.fields)+1)
	for k, v := range e.fields {
		cp.fields[k] = v
	}
	cp.fields[key] = value
	return &cp
}

func newError(err error, msg string, et Type, code Code) *Error {
	return &Error{err: err, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error wrapping err.
func NewServer(err error) error {
	return newError(err, "Internal server error", TypeServer, CodeInternal)
}

// NewServerMsg creates a server-type error with a custom user-facing message.
func NewServerMsg(err error, msg string) error {
	return newError(err, msg, TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with the given message and code.
func NewBusiness(msg string, code Code) error {
	return newError(nil, msg, TypeBusiness, code)
}

// NewInvalidInput creates a validation error. When err is nil the variadic
// kv pairs become the field map; an odd kv length degrades to an invalid
// format error.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return newError(err, "Validation error", TypeValidation, CodeInvalidInput)
	}

	if len(kv)%2 != 0 {
		return newError(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}

	e := newError(nil, "Validation error", TypeValidation, CodeInvalidInput)
	e.fields = make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		e.fields[kv[i]] = kv[i+1]
	}

	return e
}

// NewInvalidInputMsg creates a validation error whose message is shown as is.
func NewInvalidInputMsg(msg string) error {
	return newError(nil, msg, TypeValidation, CodeInvalidInput)
}

// NewInvalidFormat creates a validation error for a malformed request body.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) == 0 {
		return newError(nil, "Invalid request body", TypeValidation, CodeInvalidFormat)
	}
	return newError(nil, msgs[0], TypeValidation, CodeInvalidFormat)
}

// CodeOf extracts the Code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.code
	}
	return CodeInternal
}
