// Package fault classifies provider errors into the small set of kinds the
// provisioning workflow reasons about.
package fault

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/aws/smithy-go"
)

type Kind int

const (
	KindProvider Kind = iota
	KindValidation
	KindAuthorization
	KindConflict
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	case KindTransport:
		return "transport"
	default:
		return "provider"
	}
}

// Error is the typed failure returned by every AWS call site.
type Error struct {
	Kind Kind
	Op   string
	Code string // provider error code, empty when not from the provider
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	case e.Op == "":
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an Error of the given kind without a provider cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Err: errors.New(msg)}
}

// Wrap classifies err and attaches op. Nil stays nil; an err that is
// already an *Error keeps its kind and code.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return &Error{Kind: fe.Kind, Op: op, Code: fe.Code, Err: err}
	}
	kind, code := Classify(err)
	return &Error{Kind: kind, Op: op, Code: code, Err: err}
}

// KindOf returns the kind of err, or KindProvider when err carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	kind, _ := Classify(err)
	return kind
}

// Is reports whether err is a fault of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

type httpStatusError interface {
	HTTPStatusCode() int
}

// Classify maps a raw SDK or transport error onto a Kind.
func Classify(err error) (Kind, string) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTransport, ""
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		if kind, ok := CodeKind(code); ok {
			return kind, code
		}
		if apiErr.ErrorFault() == smithy.FaultServer {
			return KindTransport, code
		}
		return KindProvider, code
	}

	var statusErr httpStatusError
	if errors.As(err, &statusErr) && statusErr.HTTPStatusCode() >= 500 {
		return KindTransport, ""
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransport, ""
	}

	return KindProvider, ""
}

// CodeKind maps a provider error code to a Kind. PutTargets reports
// per-entry failures as bare codes, so this is exported separately.
func CodeKind(code string) (Kind, bool) {
	switch code {
	case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation",
		"InvalidClientTokenId", "ExpiredToken", "ExpiredTokenException",
		"RegionDisabledException", "UnrecognizedClientException":
		return KindAuthorization, true
	case "EntityAlreadyExists", "ResourceAlreadyExistsException":
		return KindConflict, true
	case "Throttling", "ThrottlingException", "TooManyRequestsException",
		"RequestLimitExceeded", "ServiceUnavailable", "ServiceUnavailableException",
		"InternalFailure", "InternalException", "RequestTimeout", "RequestTimeoutException":
		return KindTransport, true
	case "ValidationError", "ValidationException", "MalformedPolicyDocument",
		"InvalidInput", "InvalidEventPatternException":
		return KindValidation, true
	}
	return KindProvider, false
}
