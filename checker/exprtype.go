package checker

import "github.com/wshca/simit/ir"

// ExprType is the type of an expression: almost always exactly one
// ir.Type, but zero for a void procedure call used where a value is
// required, and more than one for a direct reference to a multi-result
// call or map (spec §4.6.2; grounded on the original checker's
// Expr::Type, a vector of types rather than a single one).
type ExprType []ir.Type

// single builds a one-element ExprType, the overwhelmingly common case.
func single(t ir.Type) ExprType {
	return ExprType{t}
}

// ok reports whether this is exactly one defined type: the shape every
// operator except call/map/assignment requires of its operands.
func (e ExprType) ok() bool {
	return len(e) == 1 && ir.IsValid(e[0])
}

// first returns the first type, or the invalid type if e is empty.
func (e ExprType) first() ir.Type {
	if len(e) == 0 {
		return ir.Invalid()
	}
	return e[0]
}
