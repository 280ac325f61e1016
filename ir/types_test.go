package ir_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wshca/simit/ir"
)

func TestScalarEquality(t *testing.T) {
	if !ir.Equal(ir.Int(), ir.Int()) {
		t.Error("int should equal int")
	}
	if ir.Equal(ir.Int(), ir.Float()) {
		t.Error("int should not equal float")
	}
	if ir.Equal(ir.Invalid(), ir.Invalid()) {
		t.Error("invalid type must never compare equal, even to itself (spec §4.2)")
	}
}

func points() *ir.SetType {
	return &ir.SetType{Elem: &ir.ElementType{Name: "Point", Fields: []ir.Field{
		{Name: "b", Type: ir.Float()},
		{Name: "c", Type: ir.Float()},
	}}}
}

func TestSetTypeEquality(t *testing.T) {
	p1 := points()
	p2 := points()
	if !ir.Equal(p1, p2) {
		t.Error("structurally identical vertex sets should be equal")
	}

	springs1 := &ir.SetType{
		Elem:      &ir.ElementType{Name: "Spring"},
		Endpoints: []ir.Type{p1, p1},
	}
	springs2 := &ir.SetType{
		Elem:      &ir.ElementType{Name: "Spring"},
		Endpoints: []ir.Type{p2, p2},
	}
	if !ir.Equal(springs1, springs2) {
		t.Error("edge sets with identical endpoints in the same order should be equal")
	}

	bars := func() *ir.SetType {
		return &ir.SetType{Elem: &ir.ElementType{Name: "Bar"}}
	}
	mixedOrder := &ir.SetType{
		Elem:      &ir.ElementType{Name: "Spring"},
		Endpoints: []ir.Type{p1, bars()},
	}
	reversed := &ir.SetType{
		Elem:      &ir.ElementType{Name: "Spring"},
		Endpoints: []ir.Type{bars(), p1},
	}
	if ir.Equal(mixedOrder, reversed) {
		t.Error("endpoint order is significant: swapping endpoints must not compare equal")
	}

	asymmetric := &ir.SetType{
		Elem:      &ir.ElementType{Name: "Bar"},
		Endpoints: []ir.Type{p1, p1},
	}
	if ir.Equal(springs1, asymmetric) {
		t.Error("sets with different element types should not be equal")
	}
}

func TestTensorEqualityIncludesColumnVectorFlag(t *testing.T) {
	p := points()
	col := ir.Tensor(ir.Float(), []ir.IndexDomain{{ir.SetIndexSet{Name: "points", Set: p}}}, true)
	row := ir.Tensor(ir.Float(), []ir.IndexDomain{{ir.SetIndexSet{Name: "points", Set: p}}}, false)
	if ir.Equal(col, row) {
		t.Error("tensors differing only in column-vector flag must not be equal (spec §4.2)")
	}
	col2 := ir.Tensor(ir.Float(), []ir.IndexDomain{{ir.SetIndexSet{Name: "points", Set: p}}}, true)
	if !ir.Equal(col, col2) {
		t.Error("structurally identical column vectors should be equal")
	}
}

func TestIndexSetIdentityVsSetTypeStructure(t *testing.T) {
	p := points()
	a := ir.SetIndexSet{Name: "points", Set: p}
	b := ir.SetIndexSet{Name: "vertices", Set: points()}
	if a.Equal(b) {
		t.Error("two distinct extern sets of identical shape must remain distinct index sets")
	}
	if !a.Equal(ir.SetIndexSet{Name: "points", Set: p}) {
		t.Error("same symbol name must compare equal as an index set")
	}
}

func TestBlockTypeRecovery(t *testing.T) {
	p := points()
	// tensor[points](tensor[points](float)): a sparse matrix block type.
	inner := ir.Tensor(ir.Float(), []ir.IndexDomain{{ir.SetIndexSet{Name: "points", Set: p}}}, false)
	outer := ir.Tensor(ir.Float(), []ir.IndexDomain{
		{ir.SetIndexSet{Name: "points", Set: p}, ir.SetIndexSet{Name: "points", Set: p}},
	}, false)
	want := inner
	got := outer.BlockType()
	if diff := cmp.Diff(want.String(), got.String()); diff != "" {
		t.Errorf("BlockType() mismatch (-want +got):\n%s", diff)
	}

	leaf := ir.Tensor(ir.Float(), []ir.IndexDomain{{ir.SetIndexSet{Name: "points", Set: p}}}, false)
	if !ir.Equal(leaf.BlockType(), ir.Float()) {
		t.Errorf("BlockType of an order-0 inner block should be the scalar component, got %v", leaf.BlockType())
	}
}

func TestTupleTypeEquality(t *testing.T) {
	elem := &ir.ElementType{Name: "Point"}
	a := &ir.TupleType{Elem: elem, Length: 2}
	b := &ir.TupleType{Elem: elem, Length: 2}
	c := &ir.TupleType{Elem: elem, Length: 3}
	if !ir.Equal(a, b) {
		t.Error("tuples of same element type and length should be equal")
	}
	if ir.Equal(a, c) {
		t.Error("tuples of different length should not be equal")
	}
}
