package checker

import (
	"fmt"

	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// checkDenseLiteral infers the shape and scalar kind of a dense tensor
// literal (spec §4.7): IntVectorLiteral and FloatVectorLiteral are the
// base case (a single row of scalars); NDTensorLiteral nests literals
// one rank down and requires every nested literal to agree on both kind
// and shape. A transposed literal must be order 1: the grammar only
// allows a trailing "'" on a single row.
func (c *Context) checkDenseLiteral(e hir.Expr) ir.Type {
	kind, dims, err := denseShape(e)
	if err != nil {
		c.appender.Appendf(e.Span(), "%s", err)
		return ir.Invalid()
	}

	transposed := false
	switch lit := e.(type) {
	case *hir.IntVectorLiteral:
		transposed = lit.Transposed
	case *hir.FloatVectorLiteral:
		transposed = lit.Transposed
	case *hir.NDTensorLiteral:
		transposed = lit.Transposed
	}
	if transposed && len(dims) != 1 {
		c.appender.AppendInternalf(e.Span(), "transpose marker on a literal of order %d", len(dims))
		return ir.Invalid()
	}

	component := ir.Int()
	if kind == ir.FloatKind {
		component = ir.Float()
	}
	domains := make([]ir.IndexDomain, len(dims))
	for i, d := range dims {
		domains[i] = ir.IndexDomain{ir.RangeIndexSet{Length: d}}
	}
	return &ir.TensorType{Component: component, Domains: domains, ColumnVector: transposed}
}

// denseShape recursively infers a literal's (kind, shape): shape[0] is
// the outermost dimension, matching the nesting order the literal was
// written in, e.g. "[[1,2,3],[4,5,6]]" infers shape [2, 3].
func denseShape(e hir.Expr) (ir.Kind, []int, error) {
	switch lit := e.(type) {
	case *hir.IntVectorLiteral:
		return ir.IntKind, []int{len(lit.Vals)}, nil
	case *hir.FloatVectorLiteral:
		return ir.FloatKind, []int{len(lit.Vals)}, nil
	case *hir.NDTensorLiteral:
		if len(lit.Elems) == 0 {
			return ir.InvalidKind, nil, fmt.Errorf("tensor literal must have at least one element")
		}
		kind, dims, err := denseShape(lit.Elems[0])
		if err != nil {
			return ir.InvalidKind, nil, err
		}
		for _, elem := range lit.Elems[1:] {
			k, d, err := denseShape(elem)
			if err != nil {
				return ir.InvalidKind, nil, err
			}
			if k != kind {
				return ir.InvalidKind, nil, fmt.Errorf("tensor literal mixes int and float elements")
			}
			if !sameDims(d, dims) {
				return ir.InvalidKind, nil, fmt.Errorf("tensor literal rows have inconsistent dimensions")
			}
		}
		return kind, append([]int{len(lit.Elems)}, dims...), nil
	default:
		return ir.InvalidKind, nil, fmt.Errorf("not a dense tensor literal: %T", e)
	}
}

func sameDims(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
