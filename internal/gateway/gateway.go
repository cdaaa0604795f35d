// Package gateway defines the LLM gateway contract (C3):
// an opaque callable (prompt template, variables) -> parsed issue
// list. It is the only place in revcrew allowed to block on network
// I/O, and the only place that partitions failures into retryable and
// fatal.
package gateway

import (
	"context"
	"fmt"

	"github.com/codenerd-labs/revcrew/internal/issue"
)

// Variables are the fixed keys every agent call supplies.
type Variables struct {
	FormatInstructions string
	FilePath           string
	FileType           string
	Code               string
	Diff               string
}

// Result is the structured object the gateway returns: a record
// containing an issues list; any other shape is an error.
type Result struct {
	Issues []issue.Issue
}

// Gateway is the abstract LLM call contract. Implementations must be
// safe for concurrent use.
type Gateway interface {
	Invoke(ctx context.Context, promptTemplate string, vars Variables) (Result, error)
}

// TransientError wraps a retryable gateway failure.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return fmt.Sprintf("gateway: transient error: %v", e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

// FatalError wraps a non-retryable gateway failure.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return fmt.Sprintf("gateway: fatal error: %v", e.Err) }
func (e *FatalError) Unwrap() error { return e.Err }

// NewTransientError builds a retryable error from the given cause.
func NewTransientError(err error) error { return &TransientError{Err: err} }

// NewFatalError builds a non-retryable error from the given cause.
func NewFatalError(err error) error { return &FatalError{Err: err} }
