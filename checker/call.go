package checker

import (
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// checkCallExpr is "f(args...)" (spec §4.6.2): arity and per-argument
// type must match the callee's declared signature. Each argument is
// checked regardless of earlier failures, so a call with several bad
// arguments reports one diagnostic per argument, not just the first.
func (c *Context) checkCallExpr(e *hir.CallExpr) ExprType {
	fn, ok := c.function(e.Func)
	if !ok {
		c.appender.Undeclared(e.FuncSpan, "function", e.Func)
		return single(ir.Invalid())
	}

	argTypes := make([]ExprType, len(e.Args))
	for i, a := range e.Args {
		argTypes[i] = c.checkExpr(a)
	}

	// An intrinsic declared with zero arguments accepts any actual
	// argument list: the checker has no declared signature to check
	// against, so it skips straight past the arity mismatch it would
	// otherwise report (spec §4.6.2, grounded on the original's
	// func.getKind() == ir::Func::Intrinsic && funcArgs.size() == 0).
	suppressArity := fn.Intrinsic && len(fn.Arguments) == 0
	if len(e.Args) != len(fn.Arguments) {
		if !suppressArity {
			c.appender.Appendf(e.Span(), "passed in %d arguments but function '%s' expects %d", len(e.Args), fn.Name, len(fn.Arguments))
		}
	} else {
		for i, a := range e.Args {
			c.checkCallArg(a, argTypes[i], fn.Arguments[i].Type, fn.Name)
		}
	}

	return ExprType(fn.ResultTypes())
}

// checkCallArg validates one actual argument against its formal
// parameter's declared type (spec §4.6.2, shared by CallExpr and the
// synthesized map-reduce call).
func (c *Context) checkCallArg(actual hir.Expr, actualType ExprType, wantType ir.Type, funcName string) {
	if len(actualType) == 0 {
		c.appender.Appendf(actual.Span(), "must pass a non-void value as argument")
		return
	}
	if len(actualType) != 1 {
		c.appender.Appendf(actual.Span(), "cannot pass multiple values of types %s as a single argument", exprTypeString(actualType))
		return
	}
	if !ir.IsValid(actualType[0]) || !ir.IsValid(wantType) {
		return
	}
	if !ir.Equal(actualType[0], wantType) {
		c.appender.Appendf(actual.Span(), "expected argument of type %s but got an argument of type %s", wantType.String(), actualType[0].String())
	}
}

// checkMapExpr is "map f(partials...) to target [reduce +]" (spec
// §4.6.2): the checker synthesizes the assembly function's implicit
// argument list — the mapped-over set's element, plus, for an edge set
// whose element does not already complete f's argument count, a tuple of
// the neighbor element type — and checks it against f's signature the
// same way an ordinary call is checked. An edge set mapped to a function
// that takes no neighbor tuple is therefore accepted.
func (c *Context) checkMapExpr(e *hir.MapExpr) ExprType {
	partialTypes := make([]ExprType, len(e.PartialActuals))
	actuals := make([]ir.Type, 0, len(e.PartialActuals)+2)
	actualExprs := make([]hir.Expr, 0, len(e.PartialActuals)+2)
	for i, p := range e.PartialActuals {
		partialTypes[i] = c.checkExpr(p)
		if !partialTypes[i].ok() {
			c.appender.Appendf(p.Span(), "must pass a single value as argument")
			continue
		}
		actuals = append(actuals, partialTypes[i].first())
		actualExprs = append(actualExprs, p)
	}

	fn, fnOk := c.function(e.Func)
	if !fnOk {
		c.appender.Undeclared(e.FuncSpan, "function", e.Func)
	}

	if !c.symbols.has(e.Target, false) {
		c.appender.Undeclared(e.TargetSpan, "set", e.Target)
		return single(ir.Invalid())
	}
	targetVar, _ := c.symbols.get(e.Target)
	targetSet, ok := targetVar.Type.(*ir.SetType)
	if !ok {
		c.appender.Appendf(e.TargetSpan, "map operation can only be applied to sets")
		return single(ir.Invalid())
	}
	if !fnOk {
		return single(ir.Invalid())
	}

	actuals = append(actuals, targetSet.Elem)
	actualExprs = append(actualExprs, nil)

	if targetSet.IsEdgeSet() && len(actuals) != len(fn.Arguments) {
		neighborElem := targetSet.Endpoints[0]
		actuals = append(actuals, &ir.TupleType{Elem: neighborElem, Length: len(targetSet.Endpoints)})
		actualExprs = append(actualExprs, nil)
	}

	if len(actuals) != len(fn.Arguments) {
		c.appender.Appendf(e.Span(), "map operation passes %d arguments to assembly function but function '%s' expects %d arguments", len(actuals), fn.Name, len(fn.Arguments))
		return ExprType(fn.ResultTypes())
	}

	for i, actual := range actuals {
		want := fn.Arguments[i].Type
		if !ir.IsValid(actual) || !ir.IsValid(want) {
			continue
		}
		if !ir.Equal(actual, want) {
			span := e.TargetSpan
			if actualExprs[i] != nil {
				span = actualExprs[i].Span()
			}
			c.appender.Appendf(span, "map operation passes argument of type %s to assembly function but function '%s' expects argument of type %s", actual.String(), fn.Name, want.String())
		}
	}

	return ExprType(fn.ResultTypes())
}
