package relaypath

import (
	"fmt"

	"github.com/relaypath/relaypath/internal/reqparser"
)

// Error is a simple status+message error value, for handlers that want to
// report a failure without building an HttpError.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// The following make up the closed error vocabulary the core distinguishes.
// ParseReject and MalformedEscape wrap the lower-level detail produced by
// internal/reqparser and internal/uri; UnbalancedPattern and
// DuplicatePattern are startup-time registration errors — a malformed
// route pattern is a programming error, so Router.Handle panics with one
// of these rather than returning it, aborting registration immediately;
// Unmatched and DeadlineExpired are carried as plain values, never
// panicked, since they happen during normal operation.

// ParseRejectError reports that a byte violated the request grammar in the
// parser's current state.
type ParseRejectError struct {
	reqparser.RejectInfo
}

func (e *ParseRejectError) Error() string {
	return fmt.Sprintf("parse rejected in state %s at byte %#x", e.State, e.Byte)
}

// MalformedEscapeError reports a truncated or non-hex percent-escape
// encountered while decoding a URI field.
type MalformedEscapeError struct {
	Field string
}

func (e *MalformedEscapeError) Error() string {
	return fmt.Sprintf("malformed percent-escape in %s", e.Field)
}

// UnbalancedPatternError reports a route pattern with mismatched <>{}[]
// brackets, detected at registration time.
type UnbalancedPatternError struct {
	Pattern string
}

func (e *UnbalancedPatternError) Error() string {
	return fmt.Sprintf("route pattern %q has unbalanced brackets", e.Pattern)
}

// DuplicatePatternError reports that a (method, pattern) pair was
// registered more than once.
type DuplicatePatternError struct {
	Method  Method
	Pattern string
}

func (e *DuplicatePatternError) Error() string {
	return fmt.Sprintf("duplicate pattern %q for method %s", e.Pattern, e.Method)
}

// ErrUnmatched is returned by callers that want an error value for an empty
// resolve() chain; the router itself never returns it — resolve simply
// yields an empty Chain, no exception.
type unmatchedError struct{}

func (unmatchedError) Error() string { return "no route matched" }

// ErrUnmatched is the sentinel value for a resolve() miss.
var ErrUnmatched error = unmatchedError{}

// DeadlineExpiredError reports a driver-level read deadline expiry,
// synthesized as 408 without ever invoking the router.
type DeadlineExpiredError struct{}

func (DeadlineExpiredError) Error() string { return "read deadline expired" }
