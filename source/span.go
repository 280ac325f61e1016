// Package source provides the position value threaded through HIR nodes,
// diagnostics, and IR source references.
package source

import "fmt"

// Span is a source range: the position where a construct begins and
// where it ends, both inclusive of their own line/column.
type Span struct {
	LineBegin, ColBegin int
	LineEnd, ColEnd     int
}

// NoSpan is returned by synthetic nodes that have no source position.
var NoSpan = Span{}

// String renders the span the way compiler diagnostics conventionally do:
// "line.col-line.col" when the span covers more than one position, or
// "line.col" for a single point.
func (s Span) String() string {
	if s.LineBegin == s.LineEnd && s.ColBegin == s.ColEnd {
		return fmt.Sprintf("%d.%d", s.LineBegin, s.ColBegin)
	}
	return fmt.Sprintf("%d.%d-%d.%d", s.LineBegin, s.ColBegin, s.LineEnd, s.ColEnd)
}
