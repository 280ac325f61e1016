package checker

import (
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// checkExpr infers the type of an expression, dispatching on its
// concrete HIR node kind (spec §4.6.2). It always returns a non-nil
// ExprType; a failed sub-check returns ExprType{ir.Invalid()} so parent
// nodes can tell "checked, and it's wrong" apart from "never checked"
// without a second return value, matching the error-recovery model
// (spec §4.1).
func (c *Context) checkExpr(e hir.Expr) ExprType {
	t := c.inferExpr(e)
	c.exprTypes[e] = t
	return t
}

func (c *Context) inferExpr(e hir.Expr) ExprType {
	switch x := e.(type) {
	case *hir.VarExpr:
		return c.checkVarExpr(x)
	case *hir.IntLiteral:
		return single(ir.Scalar(ir.Int()))
	case *hir.FloatLiteral:
		return single(ir.Scalar(ir.Float()))
	case *hir.BoolLiteral:
		return single(ir.Scalar(ir.Bool()))
	case *hir.IntVectorLiteral, *hir.FloatVectorLiteral, *hir.NDTensorLiteral:
		return single(c.checkDenseLiteral(e))
	case *hir.NegExpr:
		return c.checkNegExpr(x)
	case *hir.NotExpr:
		return c.checkNotExpr(x)
	case *hir.TransposeExpr:
		return c.checkTransposeExpr(x)
	case *hir.OrExpr:
		return c.checkBinaryBoolean(x.X, x.Y)
	case *hir.AndExpr:
		return c.checkBinaryBoolean(x.X, x.Y)
	case *hir.XorExpr:
		return c.checkBinaryBoolean(x.X, x.Y)
	case *hir.AddExpr:
		return c.checkBinaryElwise(x.X, x.Y)
	case *hir.SubExpr:
		return c.checkBinaryElwise(x.X, x.Y)
	case *hir.ElwiseMulExpr:
		return c.checkBinaryElwise(x.X, x.Y)
	case *hir.ElwiseDivExpr:
		return c.checkBinaryElwise(x.X, x.Y)
	case *hir.MulExpr:
		return c.checkMulExpr(x)
	case *hir.DivExpr:
		return c.checkDivExpr(x)
	case *hir.EqExpr:
		return c.checkEqExpr(x)
	case *hir.CallExpr:
		return c.checkCallExpr(x)
	case *hir.MapExpr:
		return c.checkMapExpr(x)
	case *hir.TensorReadExpr:
		return c.checkTensorReadExpr(x)
	case *hir.TupleReadExpr:
		c.appender.AppendInternalf(x.Span(), "tuple reads should have been parsed as tensor reads")
		return single(ir.Invalid())
	case *hir.FieldReadExpr:
		return c.checkFieldReadExpr(x)
	default:
		c.appender.AppendInternalf(e.Span(), "unhandled expression %T", e)
		return single(ir.Invalid())
	}
}

// checkVarExpr is a bare identifier reference (spec §4.6.2). Its access
// permission must match whether this particular reference is an
// assignment target (c.writeTarget, set by checkAssignStmt) or an
// ordinary read, grounded on the original checker's isWritable()/
// isReadable() check in visit(VarExpr::Ptr).
func (c *Context) checkVarExpr(e *hir.VarExpr) ExprType {
	v, ok := c.symbols.get(e.Name)
	if !ok {
		c.appender.Undeclared(e.Span(), "variable or constant", e.Name)
		return single(ir.Invalid())
	}
	if c.writeTarget == hir.Expr(e) {
		if !v.Access.Writable() {
			c.appender.Appendf(e.Span(), "'%s' is not writable", e.Name)
		}
	} else if !v.Access.Readable() {
		c.appender.Appendf(e.Span(), "'%s' is not readable", e.Name)
	}
	return single(v.Type)
}

// checkNegExpr is unary "-X" (spec §4.6.2): preserves X's type, which
// must be a numeric tensor.
func (c *Context) checkNegExpr(e *hir.NegExpr) ExprType {
	xt := c.checkExpr(e.X)
	tensor, ok := isNumericTensor(xt)
	if !ok {
		c.appender.Appendf(e.X.Span(), "expected operand of tensor negation to be a numeric tensor but got an operand of type %s", exprTypeString(xt))
		return single(ir.Invalid())
	}
	return single(tensor)
}

// checkNotExpr is unary "not X": always produces bool, regardless of
// whether X actually checked to bool (spec §4.6.2, matching the
// original's always-bool retType so a bad operand doesn't cascade into
// "the whole expression has no type").
func (c *Context) checkNotExpr(e *hir.NotExpr) ExprType {
	xt := c.checkExpr(e.X)
	if !isBool(xt) {
		c.appender.Appendf(e.X.Span(), "expected a boolean operand but got an operand of type %s", exprTypeString(xt))
	}
	return single(ir.Scalar(ir.Bool()))
}

// checkTransposeExpr is "X'" (spec §4.6.2): order-0 unchanged, order-1
// flips the column-vector flag, order-2 swaps the two dimensions; order
// 3+ is rejected.
func (c *Context) checkTransposeExpr(e *hir.TransposeExpr) ExprType {
	xt := c.checkExpr(e.X)
	tensor, ok := xt.first().(*ir.TensorType)
	if !xt.ok() || !ok || tensor.Order() > 2 {
		c.appender.Appendf(e.X.Span(), "operand of tensor transpose must be a tensor of order 2 or less, but got an operand of type %s", exprTypeString(xt))
		return single(ir.Invalid())
	}
	switch tensor.Order() {
	case 0:
		return single(tensor)
	case 1:
		return single(&ir.TensorType{Component: tensor.Component, Domains: tensor.Domains, ColumnVector: !tensor.ColumnVector})
	default:
		return single(&ir.TensorType{
			Component: tensor.Component,
			Domains:   []ir.IndexDomain{tensor.Domains[1], tensor.Domains[0]},
		})
	}
}

// checkBinaryBoolean checks "X op Y" for boolean operators or/and/xor
// (spec §4.6.2): always produces bool, each operand independently
// diagnosed if it fails to check to bool.
func (c *Context) checkBinaryBoolean(x, y hir.Expr) ExprType {
	xt := c.checkExpr(x)
	yt := c.checkExpr(y)
	if !isBool(xt) {
		c.appender.Appendf(x.Span(), "expected left operand of boolean operation to be a boolean but got an operand of type %s", exprTypeString(xt))
	}
	if !isBool(yt) {
		c.appender.Appendf(y.Span(), "expected right operand of boolean operation to be a boolean but got an operand of type %s", exprTypeString(yt))
	}
	return single(ir.Scalar(ir.Bool()))
}

// checkBinaryElwise checks add/sub/.*/.div (spec §4.6.2): both operands
// must be numeric tensors; if either has order 0, the two need only
// share a component type; otherwise their full shape must match. The
// result is whichever operand has nonzero order (both must be
// order-compatible already), mirroring typeCheckBinaryElwise's
// retType = (ltype->order() > 0) ? lhsType : rhsType.
func (c *Context) checkBinaryElwise(x, y hir.Expr) ExprType {
	xt := c.checkExpr(x)
	yt := c.checkExpr(y)
	lt, lok := isNumericTensor(xt)
	if !lok {
		c.appender.Appendf(x.Span(), "expected left operand of element-wise operation to be a numeric tensor but got an operand of type %s", exprTypeString(xt))
	}
	rt, rok := isNumericTensor(yt)
	if !rok {
		c.appender.Appendf(y.Span(), "expected right operand of element-wise operation to be a numeric tensor but got an operand of type %s", exprTypeString(yt))
	}
	if !lok || !rok {
		return single(ir.Invalid())
	}

	hasScalar := lt.Order() == 0 || rt.Order() == 0
	compatible := false
	if hasScalar {
		compatible = ir.Equal(lt.Component, rt.Component)
	} else {
		compatible = ir.Equal(lt, rt)
	}
	if !compatible {
		c.appender.Appendf(x.Span(), "cannot perform element-wise operation on tensors of type %s and type %s", lt.String(), rt.String())
		return single(ir.Invalid())
	}
	if lt.Order() > 0 {
		return single(lt)
	}
	return single(rt)
}

// checkEqExpr checks a chained comparison "X op Y [op Z ...]" (spec
// §4.6.2): every operand must be scalar and every operand must agree on
// type with the first; always produces bool.
func (c *Context) checkEqExpr(e *hir.EqExpr) ExprType {
	var repType ir.Type
	for _, operand := range e.Operands {
		ot := c.checkExpr(operand)
		if !ot.ok() || !isScalarType(ot.first()) {
			c.appender.Appendf(operand.Span(), "comparison operations can only be performed on scalar values, not values of type %s", exprTypeString(ot))
			continue
		}
		if repType == nil {
			repType = ot.first()
		} else if !ir.Equal(repType, ot.first()) {
			c.appender.Appendf(operand.Span(), "value of type %s cannot be compared to value of type %s", ot.first().String(), repType.String())
		}
	}
	return single(ir.Scalar(ir.Bool()))
}

// --- shared helpers ---------------------------------------------------

func isBool(t ExprType) bool {
	if !t.ok() {
		return false
	}
	typ := t.first()
	if tensor, ok := typ.(*ir.TensorType); ok && tensor.IsScalar() {
		typ = tensor.Component
	}
	return typ != nil && typ.Kind() == ir.BoolKind
}

func isScalarType(t ir.Type) bool {
	if t == nil || !t.Defined() {
		return false
	}
	if ir.IsScalarKind(t.Kind()) {
		return true
	}
	tensor, ok := t.(*ir.TensorType)
	return ok && tensor.IsScalar()
}

// isNumericTensor reports whether t is a single, defined, non-boolean
// tensor, returning it for convenience.
func isNumericTensor(t ExprType) (*ir.TensorType, bool) {
	if !t.ok() {
		return nil, false
	}
	tensor, ok := t.first().(*ir.TensorType)
	if !ok || !tensor.IsNumeric() {
		return nil, false
	}
	return tensor, true
}

func exprTypeString(t ExprType) string {
	switch len(t) {
	case 0:
		return "void"
	case 1:
		return t[0].String()
	default:
		s := "("
		for i, e := range t {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ")"
	}
}
