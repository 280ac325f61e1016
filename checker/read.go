package checker

import (
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// checkTensorReadExpr is "X(params)" (spec §4.6.2). The grammar produces
// one node for both tensor indexing and tuple indexing; which one a
// given read performs is decided here, from X's inferred type, exactly
// as the original checker's single visit(TensorReadExpr) dispatches on
// lhsType before branching into tensor- or tuple-shaped logic.
func (c *Context) checkTensorReadExpr(e *hir.TensorReadExpr) ExprType {
	lhs := c.checkExpr(e.Tensor)
	if !lhs.ok() {
		return single(ir.Invalid())
	}

	switch t := lhs.first().(type) {
	case *ir.TensorType:
		return c.checkTensorIndex(e, t)
	case *ir.TupleType:
		return c.checkTupleIndex(e, t)
	default:
		c.appender.Appendf(e.Tensor.Span(), "cannot access elements from objects of type %s", lhs.first().String())
		return single(ir.Invalid())
	}
}

func (c *Context) checkTensorIndex(e *hir.TensorReadExpr, tensor *ir.TensorType) ExprType {
	if tensor.Order() != len(e.Params) {
		c.appender.Appendf(e.Span(), "tensor access expected %d indices but got %d", tensor.Order(), len(e.Params))
		return single(ir.Invalid())
	}

	outer := tensor.OuterDims()
	var dims []ir.IndexDomain
	lastWasSlice := false
	for i, p := range e.Params {
		switch param := p.(type) {
		case hir.SliceParam:
			dims = append(dims, tensor.Domains[i])
			lastWasSlice = true
			continue
		case hir.ExprParam:
			lastWasSlice = false
			idxType := c.checkExpr(param.X)
			if !idxType.ok() {
				continue
			}
			c.checkIndexKind(param.X, idxType.first(), outer[i])
		}
	}

	if len(dims) == 0 {
		return single(tensor.BlockType())
	}
	columnVector := len(dims) == 1 && !lastWasSlice
	return single(&ir.TensorType{Component: tensor.Component, Domains: dims, ColumnVector: columnVector})
}

// checkIndexKind validates that an index expression's type matches its
// axis's index set: a Range axis wants an int; a Set axis accepts either
// an int or the set's element type (spec §4.6.2).
func (c *Context) checkIndexKind(indexExpr hir.Expr, idxType ir.Type, axis ir.IndexSet) {
	switch a := axis.(type) {
	case ir.RangeIndexSet:
		if !isIntType(idxType) {
			c.appender.Appendf(indexExpr.Span(), "expected an integral index but got an index of type %s", idxType.String())
		}
	case ir.SetIndexSet:
		if isIntType(idxType) {
			return
		}
		if !ir.Equal(a.Set.Elem, idxType) {
			c.appender.Appendf(indexExpr.Span(), "expected an integral index or an index of type %s but got an index of type %s", a.Set.Elem.String(), idxType.String())
		}
	}
}

func isIntType(t ir.Type) bool {
	if tensor, ok := t.(*ir.TensorType); ok && tensor.IsScalar() {
		t = tensor.Component
	}
	return t != nil && t.Defined() && t.Kind() == ir.IntKind
}

func (c *Context) checkTupleIndex(e *hir.TensorReadExpr, tuple *ir.TupleType) ExprType {
	if len(e.Params) != 1 {
		c.appender.Appendf(e.Span(), "tuple access expects exactly one index but got %d", len(e.Params))
		return single(tuple.Elem)
	}
	param, ok := e.Params[0].(hir.ExprParam)
	if !ok {
		c.appender.Appendf(e.Span(), "tuple access expects an integral index")
		return single(tuple.Elem)
	}
	idxType := c.checkExpr(param.X)
	if !idxType.ok() || !isIntType(idxType.first()) {
		c.appender.Appendf(param.X.Span(), "tuple access expects an integral index but got an index of type %s", exprTypeString(idxType))
	}
	return single(tuple.Elem)
}

// checkFieldReadExpr is "Operand.Field" (spec §4.6.2). A field read on a
// bare element value yields the field's declared type; a field read on
// a set value yields a tensor indexed by that set, since the field is
// really a column of per-element data (only scalar/vector fields may be
// read this way).
func (c *Context) checkFieldReadExpr(e *hir.FieldReadExpr) ExprType {
	lhs := c.checkExpr(e.Operand)
	if !lhs.ok() {
		return single(ir.Invalid())
	}

	var elem *ir.ElementType
	switch t := lhs.first().(type) {
	case *ir.ElementType:
		elem = t
	case *ir.SetType:
		if e, ok := t.Elem.(*ir.ElementType); ok {
			elem = e
		}
	}
	if elem == nil {
		c.appender.Appendf(e.Operand.Span(), "field accesses are only valid for sets and elements")
		return single(ir.Invalid())
	}

	field, ok := elem.Field(e.Field)
	if !ok {
		c.appender.Appendf(e.FieldSpan, "undefined field '%s'", e.Field)
		return single(ir.Invalid())
	}

	if _, isElem := lhs.first().(*ir.ElementType); isElem {
		return single(field.Type)
	}

	set := lhs.first().(*ir.SetType)
	varExpr, ok := e.Operand.(*hir.VarExpr)
	if !ok {
		c.appender.AppendInternalf(e.Operand.Span(), "set field read operand must be a variable reference")
		return single(ir.Invalid())
	}
	fieldTensor, ok := field.Type.(*ir.TensorType)
	order := 0
	if ok {
		order = fieldTensor.Order()
	}
	if order > 1 {
		c.appender.Appendf(e.Span(), "cannot read from non-scalar and non-vector set fields")
		return single(ir.Invalid())
	}
	domain := ir.IndexDomain{ir.SetIndexSet{Name: varExpr.Name, Set: set}}
	component := field.Type
	if ok {
		component = fieldTensor.Component
	}
	return single(&ir.TensorType{Component: component, Domains: []ir.IndexDomain{domain}, ColumnVector: true})
}
