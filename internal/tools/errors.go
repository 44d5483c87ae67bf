package tools

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/ebaymcp/ebaymcp/internal/ebay"
)

// ConfigurationError reports required environment variables that are unset
// or empty. It surfaces as a hard failure of the invocation.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required environment variable(s): %s", strings.Join(e.Missing, ", "))
}

// ValidationError reports tool arguments rejected before any remote call.
type ValidationError struct {
	Param string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func missingParam(name string) *ValidationError {
	return &ValidationError{Param: name, Err: fmt.Errorf("missing required parameter '%s'", name)}
}

func invalidJSON(name string, cause error) *ValidationError {
	return &ValidationError{Param: name, Err: fmt.Errorf("parameter '%s' must be valid JSON: %w", name, cause)}
}

// Remote failure kinds reported in the error payload.
const (
	KindAPI            = "APIError"
	KindArgument       = "ArgumentError"
	KindAuthentication = "AuthenticationError"
	KindTimeout        = "Timeout"
	KindNetwork        = "NetworkError"
	KindPanic          = "Panic"
	KindRemote         = "RemoteCallError"
)

// RemoteCallError is a failure raised by the underlying SDK call. Invocations
// absorb it into an error payload instead of returning it.
type RemoteCallError struct {
	Kind string
	Err  error
}

func (e *RemoteCallError) Error() string {
	return e.Err.Error()
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

func newRemoteCallError(err error) *RemoteCallError {
	return &RemoteCallError{Kind: classifyFailure(err), Err: err}
}

// panicError carries a recovered panic value and the goroutine stack.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func classifyFailure(err error) string {
	var (
		pe       *panicError
		apiErr   *ebay.APIError
		argErr   *ebay.ArgumentError
		tokenErr *oauth2.RetrieveError
		netErr   net.Error
		urlErr   *url.Error
	)
	switch {
	case errors.As(err, &pe):
		return KindPanic
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &argErr):
		return KindArgument
	case errors.As(err, &tokenErr):
		return KindAuthentication
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return KindTimeout
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		return KindNetwork
	default:
		return KindRemote
	}
}
