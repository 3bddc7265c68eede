package sfapi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed operation independently of the resource.
type ErrorKind int

// Error kinds.
const (
	// KindRequestFailed covers transport failures and undecodable responses.
	KindRequestFailed ErrorKind = iota
	// KindNotFound is an HTTP 404.
	KindNotFound
	// KindConflict is an HTTP 409 on operations that report duplicates.
	KindConflict
	// KindValidationFailed is a response with the API error flag set.
	KindValidationFailed
	// KindConstructionFailed means the request could not be built and was never sent.
	KindConstructionFailed
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindRequestFailed:
		return "request failed"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "already exists"
	case KindValidationFailed:
		return "validation failed"
	case KindConstructionFailed:
		return "cannot create request"
	default:
		return "unknown"
	}
}

// Sentinels usable with errors.Is against any *RequestError.
var (
	// ErrRequestFailed matches KindRequestFailed and KindValidationFailed.
	ErrRequestFailed       = errors.New("request failed")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("already exists")
	ErrValidationFailed    = errors.New("validation failed")
	ErrCannotCreateRequest = errors.New("cannot create request")
)

// Decoding and argument errors.
var (
	ErrUnexpectedValue    = errors.New("unexpected value")
	ErrMissingContentType = errors.New("missing Content-Type header")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// Credential provider errors.
var (
	ErrCannotLoadCredentials = errors.New("cannot load credentials")
	ErrInvalidCredentials    = errors.New("invalid credentials configuration")
)

// Facade construction errors.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrBaseURLRequired = errors.New("base URL is required")
)

// ValidationErrors is the structured error detail returned by the API. It is
// either a flat list of messages or a field to messages mapping.
type ValidationErrors struct {
	Messages []string            `json:"messages,omitempty" yaml:"messages,omitempty"`
	Fields   map[string][]string `json:"fields,omitempty"   yaml:"fields,omitempty"`
}

// Empty reports whether no detail was extracted.
func (v *ValidationErrors) Empty() bool {
	return v == nil || (len(v.Messages) == 0 && len(v.Fields) == 0)
}

// RequestError is returned by every resource operation.
type RequestError struct {
	Resource   string
	Operation  string
	Kind       ErrorKind
	Request    *Request
	StatusCode int
	Message    string
	Validation *ValidationErrors
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	var builder strings.Builder

	builder.WriteString("cannot ")
	builder.WriteString(e.Operation)

	if e.Resource != "" {
		builder.WriteString(" ")
		builder.WriteString(e.Resource)
	}

	switch {
	case e.Kind == KindNotFound:
		builder.WriteString(": not found")
	case e.Kind == KindConflict:
		builder.WriteString(": already exists")
	case e.Message != "":
		builder.WriteString(": ")
		builder.WriteString(e.Message)
	case e.Err != nil:
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}

	return builder.String()
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return e.Kind == KindRequestFailed || e.Kind == KindValidationFailed
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrValidationFailed:
		return e.Kind == KindValidationFailed
	case ErrCannotCreateRequest:
		return e.Kind == KindConstructionFailed
	default:
		return false
	}
}

// AsRequestError extracts a *RequestError from err.
func AsRequestError(err error) (*RequestError, bool) {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr, true
	}

	return nil, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error reports an already existing resource.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidationFailed checks if the API rejected the request with its error flag.
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// NewRequestError builds a RequestError. It exists mostly for transports and
// tests living outside this package.
func NewRequestError(resource, operation string, kind ErrorKind, req *Request, cause error) *RequestError {
	return &RequestError{
		Resource:  resource,
		Operation: operation,
		Kind:      kind,
		Request:   req,
		Err:       cause,
	}
}

// invalidArgument wraps ErrInvalidArgument with detail.
func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
