// Package hir defines the high-level intermediate representation the
// parser emits (spec §1, §4.5): the tree the checker walks top-down,
// registering declarations and lowering each expression/statement into
// ir.Type. Lexing and parsing into this tree are out of the core's scope;
// this package stands in for that external collaborator's output
// contract.
package hir

import "github.com/wshca/simit/source"

// Node is the common interface of every HIR node: it carries the source
// span the parser recorded for it (spec §6: "each node carries a source
// span").
type Node interface {
	Span() source.Span
}

// Base is embedded by every concrete node and supplies Span().
type Base struct {
	Sp source.Span
}

// Span returns the node's source span.
func (b Base) Span() source.Span { return b.Sp }

// Program is the root of an HIR tree: the top-level declarations in
// source order (spec §4.6.4).
type Program struct {
	Decls []Decl
}

// Decl is a top-level declaration: an element kind, an extern set, or a
// function/procedure (spec §4.6.4).
type Decl interface {
	Node
	isDecl()
}
