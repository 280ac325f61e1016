package checker

import (
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// checkIndexSetExpr lowers one tensor-dimension index set (spec §4.6.1).
func (c *Context) checkIndexSetExpr(e hir.IndexSetExpr) ir.IndexSet {
	switch is := e.(type) {
	case *hir.RangeIndexSetExpr:
		return ir.RangeIndexSet{Length: is.Length}
	case *hir.DynamicIndexSetExpr:
		return ir.DynamicIndexSet{}
	case *hir.SetIndexSetExpr:
		if !c.symbols.has(is.Name, false) {
			c.appender.Undeclared(is.Span(), "set", is.Name)
			return nil
		}
		v, _ := c.symbols.get(is.Name)
		set, ok := v.Type.(*ir.SetType)
		if !ok {
			c.appender.Appendf(is.Span(), "'%s' is not a set", is.Name)
			return nil
		}
		return ir.SetIndexSet{Name: is.Name, Set: set}
	default:
		c.appender.AppendInternalf(e.Span(), "unhandled index set expression %T", e)
		return nil
	}
}

// checkTypeExpr lowers a type expression into its ir.Type (spec §4.6.1).
// It returns ir.Invalid() (never nil) so callers can propagate the
// result without a separate ok check.
func (c *Context) checkTypeExpr(e hir.TypeExpr) ir.Type {
	switch t := e.(type) {
	case *hir.ScalarTypeExpr:
		typ := ir.ScalarFromString(t.Name)
		if typ == nil {
			c.appender.AppendInternalf(t.Span(), "unknown scalar type %q", t.Name)
			return ir.Invalid()
		}
		return typ

	case *hir.ElementTypeExpr:
		elem, ok := c.element(t.Name)
		if !ok {
			c.appender.Undeclared(t.Span(), "element type", t.Name)
			return ir.Invalid()
		}
		return elem

	case *hir.TupleTypeExpr:
		elemExpr, ok := t.Element.(*hir.ElementTypeExpr)
		if !ok {
			c.appender.Appendf(t.Span(), "tuple element type must be an element type")
			return ir.Invalid()
		}
		elem := c.checkTypeExpr(elemExpr)
		if !ir.IsValid(elem) {
			return ir.Invalid()
		}
		if t.Length <= 0 {
			c.appender.Appendf(t.Span(), "tuple length must be positive")
			return ir.Invalid()
		}
		return &ir.TupleType{Elem: elem, Length: t.Length}

	case *hir.SetTypeExpr:
		return c.checkSetTypeExpr(t)

	case *hir.NDTensorTypeExpr:
		return c.checkTensorTypeExpr(t)

	default:
		c.appender.AppendInternalf(e.Span(), "unhandled type expression %T", e)
		return ir.Invalid()
	}
}

// checkSetTypeExpr lowers "set{Elem}" or "set{Elem}(e1, e2, ...)" (spec
// §4.6.1). Endpoint lowering is independent per endpoint, so failures in
// one endpoint don't suppress checking the rest: each bad endpoint
// reports its own diagnostic as it is checked, and the failures are
// collected with multierr only to decide that the set type is invalid,
// matching how an edge-set declaration can name several distinct bad
// endpoints in one pass.
func (c *Context) checkSetTypeExpr(t *hir.SetTypeExpr) ir.Type {
	elem := c.checkTypeExpr(t.Element)
	if _, ok := elem.(*ir.ElementType); !ok {
		c.appender.Appendf(t.Element.Span(), "set element type must be an element type")
		return ir.Invalid()
	}

	endpoints, err := c.checkEndpoints(t.Endpoints)
	if err != nil {
		return ir.Invalid()
	}

	if len(endpoints) > 0 && !c.opts.AllowHeterogeneousEdges {
		for _, ep := range endpoints[1:] {
			if !ir.Equal(ep, endpoints[0]) {
				c.appender.Appendf(t.Span(), "edge set endpoints must all have the same element type")
				return ir.Invalid()
			}
		}
	}

	return &ir.SetType{Elem: elem, Endpoints: endpoints}
}

// checkTensorTypeExpr lowers "tensor[d1,d2,...](Block)" (spec §4.6.1,
// §3). The block component may itself be a tensor type, producing the
// nested-dimension form the checker flattens via IndexDomain. A blocked
// tensor's block must have either order 0 or exactly as many dimensions
// as the outer index-set list, and a column-vector-marked type must end
// up order 1. Both conditions are reported as diagnostics instead of
// being left to panic on an out-of-range block dimension.
func (c *Context) checkTensorTypeExpr(t *hir.NDTensorTypeExpr) ir.Type {
	outer := make([]ir.IndexSet, 0, len(t.IndexSets))
	ok := true
	for _, ise := range t.IndexSets {
		is := c.checkIndexSetExpr(ise)
		if is == nil {
			ok = false
			continue
		}
		outer = append(outer, is)
	}

	block := c.checkTypeExpr(t.Block)
	if !ok || !ir.IsValid(block) {
		return ir.Invalid()
	}

	var component ir.Type
	var domains []ir.IndexDomain
	if len(outer) == 0 {
		if b, isTensor := block.(*ir.TensorType); isTensor {
			component, domains = b.Component, b.Domains
		} else {
			component = block
		}
	} else {
		blockTensor, isTensor := block.(*ir.TensorType)
		component = block
		if isTensor {
			component = blockTensor.Component
		}
		domains = make([]ir.IndexDomain, len(outer))
		if isTensor && blockTensor.Order() > 0 {
			if blockTensor.Order() != len(outer) {
				c.appender.Appendf(t.Span(), "blocked tensor type must contain same number of dimensions as its blocks")
				return ir.Invalid()
			}
			for i, o := range outer {
				domains[i] = append(ir.IndexDomain{o}, blockTensor.Domains[i]...)
			}
		} else {
			for i, o := range outer {
				domains[i] = ir.IndexDomain{o}
			}
		}
	}

	result := &ir.TensorType{Component: component, Domains: domains, ColumnVector: t.ColumnVector}
	if t.ColumnVector && result.Order() != 1 {
		c.appender.Appendf(t.Span(), "tensor type declared with %d dimensions but column vector type must strictly contain one", result.Order())
		return ir.Invalid()
	}
	return result
}
