package resetclient

import (
	"errors"
	"strconv"
)

// Error kinds returned by Client and Controller. Match them with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidCode  = errors.New("invalid code")
	ErrInvalidToken = errors.New("invalid reset token")
	ErrExpired      = errors.New("expired")
	ErrNotVerified  = errors.New("token not verified")
	ErrThrottled    = errors.New("throttled")
	ErrUpstream     = errors.New("upstream error")
)

// APIError is a failure answered by the server, or produced locally before
// any request was made.
type APIError struct {
	Kind       error
	Status     int
	Message    string
	Expired    bool
	Fields     map[string]string
	RetryAfter int

	// Cause is the transport failure behind an ErrUpstream, if any.
	Cause error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func localError(kind error, msg string) *APIError {
	return &APIError{Kind: kind, Message: msg}
}

// errorBody is the server's failure envelope.
type errorBody struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Expired bool              `json:"expired"`
	Error   map[string]string `json:"error"`
}

// kindOf maps a failure envelope to an error kind. rejected is the kind a
// REJECTED code means on the calling endpoint.
func kindOf(status int, body errorBody, rejected error) error {
	if body.Expired {
		return ErrExpired
	}

	switch body.Code {
	case "INVALID_INPUT", "INVALID_FORMAT":
		return ErrValidation
	case "NOT_FOUND":
		return ErrNotFound
	case "FORBIDDEN":
		return ErrForbidden
	case "REJECTED":
		return rejected
	case "EXPIRED":
		return ErrExpired
	case "NOT_VERIFIED":
		return ErrNotVerified
	case "TOO_MANY_REQUESTS":
		return ErrThrottled
	}

	switch {
	case status == 404:
		return ErrNotFound
	case status == 403:
		return ErrForbidden
	case status == 429:
		return ErrThrottled
	case status >= 400 && status < 500:
		return ErrValidation
	default:
		return ErrUpstream
	}
}

func retryAfter(fields map[string]string) int {
	n, err := strconv.Atoi(fields["retryAfter"])
	if err != nil {
		return 0
	}
	return n
}
