package diag

import (
	"fmt"

	"github.com/wshca/simit/source"
)

// Appender appends diagnostics anchored at a span. It is the handle the
// checker actually carries around (one per program context), mirroring
// fmterr.Appender.
type Appender struct {
	sink *Sink
}

// Appendf records a diagnostic at span. Always returns false, so a
// caller can return its result directly as "not ok".
func (a *Appender) Appendf(span source.Span, format string, args ...any) bool {
	a.sink.Report(span, fmt.Sprintf(format, args...))
	return false
}

// AppendInternalf records an internal-invariant diagnostic (spec §7).
func (a *Appender) AppendInternalf(span source.Span, format string, args ...any) bool {
	a.sink.diags = append(a.sink.diags, Diagnostic{
		Span:     span,
		Message:  fmt.Sprintf(format, args...),
		Internal: true,
	})
	return false
}

// Undeclared reports the stable "undeclared <kind> '<name>'" diagnostic
// form named in spec §6.
func (a *Appender) Undeclared(span source.Span, kind, name string) bool {
	return a.Appendf(span, "undeclared %s '%s'", kind, name)
}

// MultipleDefs reports the stable "multiple definitions of <kind> '<name>'"
// diagnostic form named in spec §6.
func (a *Appender) MultipleDefs(span source.Span, kind, name string) bool {
	return a.Appendf(span, "multiple definitions of %s '%s'", kind, name)
}

// Sink returns the underlying sink, for callers that need the final
// diagnostic list after the walk completes.
func (a *Appender) Sink() *Sink {
	return a.sink
}
