// Package ir defines the typed intermediate representation the checker
// lowers HIR into: scalars, tensors with index-set dimensions and block
// nesting, element records, sets, edge sets, and tuples (spec §3).
package ir

import (
	"fmt"
	"strings"
)

// Type is the common interface of every IR type. Structural equality is
// Equal; Defined distinguishes a real type from the "previous error, do
// not re-report" placeholder (spec §4.2) which compares unequal to
// everything, including itself.
type Type interface {
	Kind() Kind
	Defined() bool
	// Equal reports structural equality, per the rules of spec §3/§4.2.
	Equal(other Type) bool
	String() string
}

// invalidType is the type published when a sub-check has already failed:
// it suppresses cascading diagnostics at parent nodes (spec §4.1).
type invalidType struct{}

var invalidT = invalidType{}

// Invalid returns the shared undefined/invalid type.
func Invalid() Type { return invalidT }

func (invalidType) Kind() Kind            { return InvalidKind }
func (invalidType) Defined() bool         { return false }
func (invalidType) Equal(Type) bool       { return false }
func (invalidType) String() string        { return "invalid" }

// IsValid reports whether typ is defined, i.e. not the Invalid placeholder.
func IsValid(typ Type) bool {
	return typ != nil && typ.Defined()
}

// Equal is the free-function form used throughout the checker; it never
// panics on a nil receiver and always treats an undefined operand as
// unequal, matching spec §4.2 ("compares unequal to everything").
func Equal(a, b Type) bool {
	if a == nil || b == nil || !a.Defined() || !b.Defined() {
		return false
	}
	return a.Equal(b)
}

// --- Scalar -----------------------------------------------------------

// scalarType's kind is one of IntKind, FloatKind, BoolKind.
type scalarType struct {
	kind Kind
}

func (s scalarType) Kind() Kind    { return s.kind }
func (scalarType) Defined() bool   { return true }
func (s scalarType) String() string {
	return s.kind.String()
}
func (s scalarType) Equal(other Type) bool {
	o, ok := other.(scalarType)
	return ok && o.kind == s.kind
}

var (
	intT   = scalarType{kind: IntKind}
	floatT = scalarType{kind: FloatKind}
	boolT  = scalarType{kind: BoolKind}
)

// Int returns the shared int scalar type.
func Int() Type { return intT }

// Float returns the shared float scalar type.
func Float() Type { return floatT }

// Bool returns the shared bool scalar type.
func Bool() Type { return boolT }

// ScalarFromString resolves "int"/"float"/"bool" to a scalar type, or nil
// for anything else.
func ScalarFromString(name string) Type {
	switch name {
	case "int":
		return intT
	case "float":
		return floatT
	case "bool":
		return boolT
	default:
		return nil
	}
}

// --- IndexSet -----------------------------------------------------------

// IndexSet is the domain of one tensor axis: a statically-known range, a
// reference to a named set symbol, or the dynamic wildcard (spec §3).
type IndexSet interface {
	isIndexSet()
	Equal(other IndexSet) bool
	String() string
}

// RangeIndexSet is a statically-known range of length N.
type RangeIndexSet struct {
	Length int
}

func (RangeIndexSet) isIndexSet() {}
func (r RangeIndexSet) String() string {
	return fmt.Sprintf("%d", r.Length)
}
func (r RangeIndexSet) Equal(other IndexSet) bool {
	o, ok := other.(RangeIndexSet)
	return ok && o.Length == r.Length
}

// SetIndexSet references a named set symbol. Two SetIndexSets are the same
// index set only if they name the same symbol: this is identity, not the
// structural equality SetType.Equal uses (spec §3: tensor dimensions name
// the enclosing set, distinct extern sets of identical shape are still
// distinct index sets).
type SetIndexSet struct {
	Name string
	Set  *SetType
}

func (SetIndexSet) isIndexSet() {}
func (s SetIndexSet) String() string { return s.Name }
func (s SetIndexSet) Equal(other IndexSet) bool {
	o, ok := other.(SetIndexSet)
	return ok && o.Name == s.Name
}

// DynamicIndexSet is the dynamic/wildcard index set ("*").
type DynamicIndexSet struct{}

func (DynamicIndexSet) isIndexSet()         {}
func (DynamicIndexSet) String() string      { return "*" }
func (DynamicIndexSet) Equal(other IndexSet) bool {
	_, ok := other.(DynamicIndexSet)
	return ok
}

// IndexDomain is one axis's nesting chain: the outer dimension followed by
// the block-nesting dimensions produced by nested tensor-typed tensors
// (spec §3). IndexDomain[0] is always the outer dimension.
type IndexDomain []IndexSet

func (d IndexDomain) Equal(other IndexDomain) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if !d[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (d IndexDomain) String() string {
	parts := make([]string, len(d))
	for i, is := range d {
		parts[i] = is.String()
	}
	return strings.Join(parts, ".")
}

// --- Tensor -------------------------------------------------------------

// TensorType is a component scalar type, an ordered list of index domains
// (one per axis), and a column-vector flag significant only at order 1
// (spec §3). A scalar tensor (order 0) is assignment-compatible with its
// component type but is represented distinctly here so that Kind() always
// reports TensorKind for anything constructed via Tensor(...); callers
// that need "is this effectively scalar" use Order() == 0.
type TensorType struct {
	Component    Type
	Domains      []IndexDomain
	ColumnVector bool
}

// Tensor constructs a tensor type. component must be a scalar type.
func Tensor(component Type, domains []IndexDomain, columnVector bool) *TensorType {
	return &TensorType{Component: component, Domains: domains, ColumnVector: columnVector}
}

// Scalar constructs an order-0 tensor, i.e. the tensor form of a bare
// scalar type (spec §3: "a scalar tensor (order 0) equals its component
// type for assignment compatibility").
func Scalar(component Type) *TensorType {
	return &TensorType{Component: component}
}

func (*TensorType) Kind() Kind    { return TensorKind }
func (*TensorType) Defined() bool { return true }

// Order is the number of axes: len(Domains).
func (t *TensorType) Order() int { return len(t.Domains) }

// IsScalar reports whether the tensor is order 0, i.e. assignment-
// compatible with its bare component type.
func (t *TensorType) IsScalar() bool { return t.Order() == 0 }

// IsNumeric reports whether the tensor's component type supports the
// numeric operators (spec §3 invariant 5: booleans are disallowed).
func (t *TensorType) IsNumeric() bool {
	return t.Component != nil && t.Component.Defined() && t.Component.Kind() != BoolKind
}

// OuterDims returns the outer (first-level) index set of each axis.
func (t *TensorType) OuterDims() []IndexSet {
	out := make([]IndexSet, len(t.Domains))
	for i, d := range t.Domains {
		out[i] = d[0]
	}
	return out
}

// BlockType strips one level of block nesting from every axis. If every
// axis's domain is a single index set, the block is the scalar leaf
// (spec §3 invariant 4: "the inner block is order-0"); otherwise the
// block is a tensor of the same order with each domain's outer dimension
// removed.
func (t *TensorType) BlockType() Type {
	if len(t.Domains) == 0 {
		return t.Component
	}
	allLeaf := true
	for _, d := range t.Domains {
		if len(d) > 1 {
			allLeaf = false
			break
		}
	}
	if allLeaf {
		return t.Component
	}
	inner := make([]IndexDomain, len(t.Domains))
	for i, d := range t.Domains {
		inner[i] = d[1:]
	}
	return &TensorType{Component: t.Component, Domains: inner}
}

func (t *TensorType) Equal(other Type) bool {
	o, ok := other.(*TensorType)
	if !ok {
		return false
	}
	if t.ColumnVector != o.ColumnVector {
		return false
	}
	if !Equal(t.Component, o.Component) {
		return false
	}
	if len(t.Domains) != len(o.Domains) {
		return false
	}
	for i := range t.Domains {
		if !t.Domains[i].Equal(o.Domains[i]) {
			return false
		}
	}
	return true
}

func (t *TensorType) String() string {
	if t.Order() == 0 {
		return t.Component.String()
	}
	dims := make([]string, len(t.Domains))
	for i, d := range t.Domains {
		dims[i] = d.String()
	}
	suffix := ""
	if t.ColumnVector {
		suffix = "'"
	}
	return fmt.Sprintf("tensor[%s](%s)%s", strings.Join(dims, ","), t.Component.String(), suffix)
}

// --- Element --------------------------------------------------------------

// Field is one (name, type) pair of an element record.
type Field struct {
	Name string
	Type Type
}

// ElementType is a named record of fields (spec §3). Equality is nominal:
// two element types are the same type only if they share a name, since
// element kinds are registered once, globally, by name (spec §3
// Lifecycle).
type ElementType struct {
	Name   string
	Fields []Field
}

func (*ElementType) Kind() Kind    { return ElementKind }
func (*ElementType) Defined() bool { return true }

func (e *ElementType) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (e *ElementType) Equal(other Type) bool {
	o, ok := other.(*ElementType)
	return ok && o.Name == e.Name
}

func (e *ElementType) String() string {
	return e.Name
}

// --- Set ------------------------------------------------------------------

// SetType is an element type plus an ordered list of endpoint sets (empty
// for a vertex set, k entries for a k-ary edge set). Two set types with
// identical endpoints in the same order are identical (spec §3); endpoint
// order is significant.
type SetType struct {
	Elem      Type
	Endpoints []Type
}

func (*SetType) Kind() Kind    { return SetKind }
func (*SetType) Defined() bool { return true }

// IsEdgeSet reports whether this set has endpoints, i.e. is an edge set.
func (s *SetType) IsEdgeSet() bool { return len(s.Endpoints) > 0 }

func (s *SetType) Equal(other Type) bool {
	o, ok := other.(*SetType)
	if !ok {
		return false
	}
	if !Equal(s.Elem, o.Elem) {
		return false
	}
	if len(s.Endpoints) != len(o.Endpoints) {
		return false
	}
	for i := range s.Endpoints {
		if !Equal(s.Endpoints[i], o.Endpoints[i]) {
			return false
		}
	}
	return true
}

func (s *SetType) String() string {
	if len(s.Endpoints) == 0 {
		return fmt.Sprintf("set{%s}", s.Elem.String())
	}
	parts := make([]string, len(s.Endpoints))
	for i, e := range s.Endpoints {
		parts[i] = e.String()
	}
	return fmt.Sprintf("set{%s}(%s)", s.Elem.String(), strings.Join(parts, ","))
}

// --- Tuple ------------------------------------------------------------------

// TupleType is an element type and a positive fixed length (spec §3
// invariant 2).
type TupleType struct {
	Elem   Type
	Length int
}

func (*TupleType) Kind() Kind    { return TupleKind }
func (*TupleType) Defined() bool { return true }

func (t *TupleType) Equal(other Type) bool {
	o, ok := other.(*TupleType)
	return ok && t.Length == o.Length && Equal(t.Elem, o.Elem)
}

func (t *TupleType) String() string {
	return fmt.Sprintf("(%s*%d)", t.Elem.String(), t.Length)
}
