// Package diag accumulates semantic diagnostics while the checker walks a
// program, and never aborts the walk on the first error. It is modeled
// directly on the teacher's fmterr package: a Sink accumulator plus an
// Appender handle that reports into it, except positions are source.Span values
// instead of go/token.Pos, since this front-end is not built on go/parser.
package diag

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/wshca/simit/source"
)

// Diagnostic is one reported error: a message anchored to a source span.
type Diagnostic struct {
	Span    source.Span
	Message string
	// Internal marks a diagnostic as an invariant violation rather than a
	// user-facing semantic error (spec §7, plane 2).
	Internal bool
}

// Error lets a Diagnostic satisfy the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// Sink accumulates diagnostics for the whole compilation. Order of
// collected diagnostics is the order in which the walk encounters them.
type Sink struct {
	diags []Diagnostic
}

// NewAppender returns an Appender that reports into this sink.
func (s *Sink) NewAppender() *Appender {
	return &Appender{sink: s}
}

// Report appends a diagnostic directly. Returns false always, so callers
// can write `return false, sink.Report(...)`-style one-liners.
func (s *Sink) Report(span source.Span, message string) bool {
	s.diags = append(s.diags, Diagnostic{Span: span, Message: message})
	return false
}

// Diagnostics returns all diagnostics collected so far, in report order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diags
}

// Empty reports whether no diagnostic has been recorded.
func (s *Sink) Empty() bool {
	return len(s.diags) == 0
}

// String renders all diagnostics, one per line, for test failure output
// and for CLI-less debugging.
func (s *Sink) String() string {
	lines := make([]string, len(s.diags))
	for i, d := range s.diags {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// Internal marks an error as an internal invariant violation (spec §7,
// plane 2): a state the parser should have made impossible, not a
// user-facing mistake. Grounded on fmterr.Internal.
func Internal(err error) error {
	return errors.Wrap(err, "internal error: this is a bug in the checker, please report it")
}
