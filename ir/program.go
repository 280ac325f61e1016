package ir

import "github.com/wshca/simit/hir"

// ProgramContext is the checker's frozen result (spec §6): the element
// kind and function registries, plus a side-map recording the inferred
// type(s) of every expression node the checker visited. Once Check
// returns, none of this is mutated again.
type ProgramContext struct {
	Elements map[string]*ElementType
	Funcs    map[string]*FuncSig

	// ExprTypes is the parallel annotation the checker produces instead
	// of mutating the HIR tree in place: a multi-result expression (a
	// call or map with more than one result) maps to more than one Type.
	ExprTypes map[hir.Expr][]Type
}

// TypeOf returns the inferred type(s) of expr, or nil if the checker
// never visited expr (e.g. it was part of a subtree abandoned after an
// earlier diagnostic). An expression whose own check failed maps to the
// invalid type.
func (p *ProgramContext) TypeOf(expr hir.Expr) []Type {
	return p.ExprTypes[expr]
}
