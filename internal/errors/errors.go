package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error into the taxonomy the process exit code is
// derived from. Every error hostctl reports maps to exactly one Kind.
type Kind int

const (
	// KindInternal is the fallback for errors nothing else claims.
	KindInternal Kind = iota
	// KindUsage covers bad invocations: missing required input, a blocked
	// or cancelled confirmation, a missing secret in non-interactive mode.
	KindUsage
	// KindAuth covers missing or rejected credentials.
	KindAuth
	// KindConfig covers local store read/write failures and references to
	// profiles that do not exist.
	KindConfig
	// KindAPIMethod covers remote operations the provider rejected.
	KindAPIMethod
	// KindAPIProtocol covers responses the provider sent that we could not
	// interpret.
	KindAPIProtocol
	// KindNetwork covers timeouts, transport faults and non-2xx statuses.
	KindNetwork
)

// Exit codes, stable across releases. Scripts depend on these.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitAuth     = 3
	ExitAPI      = 4
	ExitConfig   = 5
	ExitNetwork  = 6
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindAuth:
		return "auth"
	case KindConfig:
		return "config"
	case KindAPIMethod:
		return "api"
	case KindAPIProtocol:
		return "protocol"
	case KindNetwork:
		return "network"
	default:
		return "internal"
	}
}

// Error is the one error type hostctl surfaces to users. It carries a
// taxonomy Kind, a human message, optional detail and suggestion lines,
// and the provider's own error code when the remote side supplied one.
type Error struct {
	Kind       Kind
	Message    string
	Details    string
	Suggestion string
	Code       string // provider error code, e.g. "AUTH_ERROR"
	Err        error
}

func (e *Error) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf(" [%s]", e.Code))
	}
	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}
	if e.Suggestion != "" {
		parts = append(parts, "\n  Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Usagef creates a usage error.
func Usagef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUsage, Message: fmt.Sprintf(format, args...)}
}

// Authf creates an authentication error.
func Authf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuth, Message: fmt.Sprintf(format, args...)}
}

// Configf creates a local configuration error.
func Configf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// Networkf creates a network/transport error.
func Networkf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and a message to an underlying error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain. Errors that are not
// *Error classify as KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps an error to the process exit code contract.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch KindOf(err) {
	case KindUsage:
		return ExitUsage
	case KindAuth:
		return ExitAuth
	case KindConfig:
		return ExitConfig
	case KindAPIMethod, KindAPIProtocol:
		return ExitAPI
	case KindNetwork:
		return ExitNetwork
	default:
		return ExitInternal
	}
}

// ProviderCode returns the provider's error code from an error chain,
// or "" when the error did not originate from the remote API.
func ProviderCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
