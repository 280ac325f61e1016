package checker

import (
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// checkMulExpr is "X * Y", linear-algebra multiplication (spec §4.6.2):
// the result shape depends on the operands' orders, following the same
// case table as the original checker's visit(MulExpr).
func (c *Context) checkMulExpr(e *hir.MulExpr) ExprType {
	lt, lok := isNumericTensor(c.checkExpr(e.X))
	if !lok {
		c.appender.Appendf(e.X.Span(), "expected left operand of multiplication operation to be a numeric tensor but got an operand of type %s", exprTypeString(c.exprTypes[e.X]))
	}
	rt, rok := isNumericTensor(c.checkExpr(e.Y))
	if !rok {
		c.appender.Appendf(e.Y.Span(), "expected right operand of multiplication operation to be a numeric tensor but got an operand of type %s", exprTypeString(c.exprTypes[e.Y]))
	}
	if !lok || !rok {
		return single(ir.Invalid())
	}

	if !ir.Equal(lt.Component, rt.Component) {
		c.appender.Appendf(e.Span(), "cannot multiply tensors containing elements of type '%s' and type '%s'", lt.Component.String(), rt.Component.String())
		return single(ir.Invalid())
	}

	switch {
	case lt.Order() == 0 || rt.Order() == 0:
		if lt.Order() > 0 {
			return single(lt)
		}
		return single(rt)

	case lt.Order() == 1 && rt.Order() == 1:
		if lt.ColumnVector && rt.ColumnVector {
			c.appender.Appendf(e.Span(), "cannot multiply two column vectors")
			return single(ir.Invalid())
		}
		if !lt.ColumnVector && !rt.ColumnVector {
			c.appender.Appendf(e.Span(), "cannot multiply two row vectors")
			return single(ir.Invalid())
		}
		if !lt.Domains[0].Equal(rt.Domains[0]) {
			c.appender.Appendf(e.Span(), "cannot multiply vectors of type %s and type %s", lt.String(), rt.String())
			return single(ir.Invalid())
		}
		var domains []ir.IndexDomain
		if lt.ColumnVector {
			domains = []ir.IndexDomain{lt.Domains[0], rt.Domains[0]}
		}
		return single(&ir.TensorType{Component: lt.Component, Domains: domains})

	case lt.Order() == 2 && rt.Order() == 1:
		if !lt.Domains[1].Equal(rt.Domains[0]) {
			c.appender.Appendf(e.Span(), "cannot multiply a matrix of type %s by a vector of type %s", lt.String(), rt.String())
			return single(ir.Invalid())
		}
		if !rt.ColumnVector {
			c.appender.Appendf(e.Span(), "cannot multiply a matrix by a row vector")
		}
		return single(&ir.TensorType{Component: lt.Component, Domains: []ir.IndexDomain{lt.Domains[0]}, ColumnVector: true})

	case lt.Order() == 1 && rt.Order() == 2:
		if !lt.Domains[0].Equal(rt.Domains[0]) {
			c.appender.Appendf(e.Span(), "cannot multiply a vector of type %s by a matrix of type %s", lt.String(), rt.String())
			return single(ir.Invalid())
		}
		if lt.ColumnVector {
			c.appender.Appendf(e.Span(), "cannot multiply a column vector by a matrix")
		}
		return single(&ir.TensorType{Component: lt.Component, Domains: []ir.IndexDomain{rt.Domains[1]}})

	case lt.Order() == 2 && rt.Order() == 2:
		if !lt.Domains[1].Equal(rt.Domains[0]) {
			c.appender.Appendf(e.Span(), "cannot multiply matrices of type %s and type %s", lt.String(), rt.String())
			return single(ir.Invalid())
		}
		return single(&ir.TensorType{Component: lt.Component, Domains: []ir.IndexDomain{lt.Domains[0], rt.Domains[1]}})

	default:
		c.appender.Appendf(e.Span(), "cannot multiply tensors of order 3 or greater using *")
		return single(ir.Invalid())
	}
}

// checkDivExpr is "X / Y" (spec §4.6.2): a non-scalar tensor may only be
// divided by a scalar, never by another non-scalar tensor.
func (c *Context) checkDivExpr(e *hir.DivExpr) ExprType {
	lt, lok := isNumericTensor(c.checkExpr(e.X))
	if !lok {
		c.appender.Appendf(e.X.Span(), "expected left operand of division operation to be a numeric tensor but got an operand of type %s", exprTypeString(c.exprTypes[e.X]))
	}
	rt, rok := isNumericTensor(c.checkExpr(e.Y))
	if !rok {
		c.appender.Appendf(e.Y.Span(), "expected right operand of division operation to be a numeric tensor but got an operand of type %s", exprTypeString(c.exprTypes[e.Y]))
	}
	if !lok || !rok {
		return single(ir.Invalid())
	}
	if !ir.Equal(lt.Component, rt.Component) {
		c.appender.Appendf(e.Span(), "cannot divide tensors containing elements of type '%s' and type '%s'", lt.Component.String(), rt.Component.String())
		return single(ir.Invalid())
	}
	if lt.Order() > 0 && rt.Order() > 0 {
		c.appender.Appendf(e.Span(), "division of a non-scalar tensor of type %s by a non-scalar tensor of type %s is not supported", lt.String(), rt.String())
		return single(ir.Invalid())
	}
	if lt.Order() > 0 {
		return single(lt)
	}
	return single(rt)
}
