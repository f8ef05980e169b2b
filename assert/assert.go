// Package assert evaluates runtime invariants and logs failures.
//
// The engine uses it to audit the balance equation after every successful
// mutation. A failed assertion is reported as an error, never a panic, so an
// impossible state surfaces on the diagnostic channel without taking the run
// down with it.
package assert

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"settler/log"
)

// ErrAssertionFailed is the sentinel error for failed assertions.
var ErrAssertionFailed = errors.New("assertion failed")

// AssertionError represents a failed assertion with its labels.
type AssertionError struct {
	Component string
	Operation string
	Message   string
	Details   string
}

// Error returns the formatted assertion failure message.
func (entry *AssertionError) Error() string {
	if entry == nil {
		return ErrAssertionFailed.Error()
	}

	if entry.Details == "" {
		return "assertion failed: " + entry.Message
	}

	return "assertion failed: " + entry.Message + " (" + entry.Details + ")"
}

// Unwrap returns the sentinel assertion error for errors.Is.
func (entry *AssertionError) Unwrap() error {
	return ErrAssertionFailed
}

// Asserter evaluates invariants for one component and logs failures.
type Asserter struct {
	logger    log.Logger
	component string
}

// New creates an Asserter bound to a logger and a component label.
func New(logger log.Logger, component string) *Asserter {
	if logger == nil {
		logger = log.NewNop()
	}

	return &Asserter{
		logger:    logger,
		component: component,
	}
}

// That returns an error if ok is false.
func (asserter *Asserter) That(ctx context.Context, operation string, ok bool, msg string, kv ...any) error {
	if ok {
		return nil
	}

	return asserter.fail(ctx, operation, msg, kv...)
}

func (asserter *Asserter) fail(ctx context.Context, operation, msg string, kv ...any) error {
	entry := &AssertionError{
		Component: asserter.component,
		Operation: operation,
		Message:   msg,
		Details:   formatKV(kv),
	}

	asserter.logger.Log(ctx, log.LevelError, "invariant violated",
		log.String("component", entry.Component),
		log.String("operation", entry.Operation),
		log.String("message", entry.Message),
		log.String("details", entry.Details),
	)

	return entry
}

// formatKV renders alternating key/value pairs as "k=v" tokens. An odd
// trailing key is rendered without a value.
func formatKV(kv []any) string {
	if len(kv) == 0 {
		return ""
	}

	parts := make([]string, 0, (len(kv)+1)/2)

	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			parts = append(parts, fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
		} else {
			parts = append(parts, fmt.Sprintf("%v", kv[i]))
		}
	}

	return strings.Join(parts, " ")
}
