// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure so callers can tell bad input apart from broken
// infrastructure.
type Kind int

const (
	KindUnknown Kind = iota
	KindIO
	KindNetwork
	KindMalformed
	KindCircuitNotFound
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindNetwork:
		return "network error"
	case KindMalformed:
		return "malformed response"
	case KindCircuitNotFound:
		return "circuit not found"
	default:
		return "unknown error"
	}
}

// Sentinels for use with errors.Is. They match any *Error of the same Kind.
var (
	IOError           = &Error{Kind: KindIO}
	NetworkError      = &Error{Kind: KindNetwork}
	MalformedResponse = &Error{Kind: KindMalformed}
	CircuitNotFound   = &Error{Kind: KindCircuitNotFound}
)

// Ops of the circuit resolution failures. Friendly words them differently.
const (
	OpFindCircuit   = "find circuit"
	OpLookupCircuit = "lookup circuit"
)

// Error is the single error type surfaced by the cache, fetch, parse and
// resolve layers.
type Error struct {
	Kind Kind
	// Op is what was being attempted, e.g. "write cache" or "fetch".
	Op string
	// Resource is the path, URL or identifier the operation was acting on.
	Resource string
	// StatusCode is set for NetworkError failures caused by an HTTP status.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.Resource != "" {
		fmt.Fprintf(&b, " %s", e.Resource)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Resource == "" && t.Err == nil && t.Kind == e.Kind
}

// New constructs an *Error.
func New(kind Kind, op, resource string, err error) *Error {
	return &Error{Kind: kind, Op: op, Resource: resource, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// IsInfrastructure is true for the kinds that are fatal to the current
// operation and have no fallback.
func IsInfrastructure(err error) bool {
	switch KindOf(err) {
	case KindIO, KindNetwork, KindMalformed:
		return true
	}
	return false
}

// Friendly renders err as a single line suitable for an end user.
func Friendly(err error) string {
	var fe *Error
	if !errors.As(err, &fe) {
		return err.Error()
	}

	switch fe.Kind {
	case KindCircuitNotFound:
		if fe.Op == OpLookupCircuit {
			return fmt.Sprintf("unknown circuit %q", fe.Resource)
		}
		return fmt.Sprintf("no race found for circuit %q", fe.Resource)
	case KindNetwork:
		if fe.StatusCode != 0 {
			return fmt.Sprintf("the schedule API returned status %d for %s", fe.StatusCode, fe.Resource)
		}
		return fmt.Sprintf("unable to reach the schedule API (%s): %v", fe.Resource, fe.Err)
	case KindMalformed:
		return fmt.Sprintf("unexpected response from the schedule API (%s): %v", fe.Resource, fe.Err)
	case KindIO:
		return fmt.Sprintf("cache failure at %s: %v", fe.Resource, fe.Err)
	}
	return fe.Error()
}
