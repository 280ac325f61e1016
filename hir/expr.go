package hir

import "github.com/wshca/simit/source"

// Expr is any expression (spec §4.6.2). Every concrete expression node
// below implements it via the embedded Base plus a marker method.
type Expr interface {
	Node
	isExpr()
}

// VarExpr is a bare identifier reference (spec §4.6.2): a variable, a
// function argument/result, or the induction variable of a ForStmt.
type VarExpr struct {
	Base
	Name string
}

func (*VarExpr) isExpr() {}

// --- Literals ---------------------------------------------------------

// IntLiteral is a bare integer constant.
type IntLiteral struct {
	Base
	Val int
}

func (*IntLiteral) isExpr() {}

// FloatLiteral is a bare float constant.
type FloatLiteral struct {
	Base
	Val float64
}

func (*FloatLiteral) isExpr() {}

// BoolLiteral is "true" or "false".
type BoolLiteral struct {
	Base
	Val bool
}

func (*BoolLiteral) isExpr() {}

// IntVectorLiteral is a dense literal row, e.g. "[1, 2, 3]", of ints.
// Transposed marks a trailing "'" making it a column vector.
type IntVectorLiteral struct {
	Base
	Vals       []int
	Transposed bool
}

func (*IntVectorLiteral) isExpr() {}

// FloatVectorLiteral is the float analog of IntVectorLiteral.
type FloatVectorLiteral struct {
	Base
	Vals       []float64
	Transposed bool
}

func (*FloatVectorLiteral) isExpr() {}

// NDTensorLiteral is a nested dense literal, e.g. "[[1,2],[3,4]]"; each
// element is itself a literal expression one rank down (spec §4.7).
// Shape and scalar kind are inferred recursively by the checker, not
// carried on the node.
type NDTensorLiteral struct {
	Base
	Elems      []Expr
	Transposed bool
}

func (*NDTensorLiteral) isExpr() {}

// --- Unary --------------------------------------------------------------

// NegExpr is unary "-X" (spec §4.6.2): preserves X's type.
type NegExpr struct {
	Base
	X Expr
}

func (*NegExpr) isExpr() {}

// NotExpr is unary "not X": X must check to bool.
type NotExpr struct {
	Base
	X Expr
}

func (*NotExpr) isExpr() {}

// TransposeExpr is "X'": swaps row/column-vector orientation at order 1,
// swaps the two axes at order 2; order 3 and above is rejected (spec
// §4.6.2).
type TransposeExpr struct {
	Base
	X Expr
}

func (*TransposeExpr) isExpr() {}

// --- Binary ---------------------------------------------------------------

// BinaryExpr is the shared shape of every two-operand elementwise or
// algebraic operator; the named types below embed it so the checker can
// type-switch on the concrete operator while sharing field access.
type BinaryExpr struct {
	Base
	X, Y Expr
}

func (*BinaryExpr) isExpr() {}

// OrExpr is "X or Y": boolean, both operands must check to bool.
type OrExpr struct{ BinaryExpr }

// AndExpr is "X and Y": boolean.
type AndExpr struct{ BinaryExpr }

// XorExpr is "X xor Y": boolean.
type XorExpr struct{ BinaryExpr }

// AddExpr is "X + Y": elementwise add, numeric tensors, identical shape
// unless one operand is a scalar.
type AddExpr struct{ BinaryExpr }

// SubExpr is "X - Y": elementwise subtract.
type SubExpr struct{ BinaryExpr }

// ElwiseMulExpr is "X .* Y": elementwise multiply, identical shape unless
// one operand is a scalar.
type ElwiseMulExpr struct{ BinaryExpr }

// ElwiseDivExpr is "X ./ Y": elementwise divide.
type ElwiseDivExpr struct{ BinaryExpr }

// MulExpr is "X * Y": linear-algebra multiply (scalar*tensor, matrix*
// vector, matrix*matrix, vector(row)*vector(col) inner product); see
// spec §4.6.2's multiplication shape table.
type MulExpr struct{ BinaryExpr }

// DivExpr is "X / Y": tensor-by-scalar division, or scalar/scalar.
type DivExpr struct{ BinaryExpr }

// EqExpr is a chained comparison "X op Y [op Z ...]" for op in
// {==, !=, <, <=, >, >=}: the original grammar allows chaining, so the
// node holds an operator and an ordered operand list rather than a
// strict binary pair.
type EqExpr struct {
	Base
	Op       string
	Operands []Expr
}

func (*EqExpr) isExpr() {}

// --- Calls, reads, map -----------------------------------------------------

// CallExpr invokes a declared function, "f(args...)" (spec §4.6.2):
// result arity depends on the callee's signature.
type CallExpr struct {
	Base
	Func     string
	FuncSpan source.Span
	Args     []Expr
}

func (*CallExpr) isExpr() {}

// MapExpr is "map f(partials...) to target [reduce +]" (spec §4.6.2):
// the checker synthesizes the call's implicit argument list from
// target's element type and (for an edge set) its homogeneous endpoint
// type, then checks it like an ordinary call against f's signature.
type MapExpr struct {
	Base
	Func           string
	FuncSpan       source.Span
	Target         string
	TargetSpan     source.Span
	PartialActuals []Expr
	Reduction      string // "" for no reduction, else the accumulating operator
}

func (*MapExpr) isExpr() {}

// ReadParam is one parameter of a tensor read: either a checkable index
// expression or the ":" full-slice wildcard (spec §4.6.2).
type ReadParam interface {
	isReadParam()
}

// SliceParam is the ":" wildcard parameter.
type SliceParam struct{}

func (SliceParam) isReadParam() {}

// ExprParam is an index expression parameter; it must check to int.
type ExprParam struct {
	X Expr
}

func (ExprParam) isReadParam() {}

// TensorReadExpr is "Tensor(i, :, j)" (spec §4.6.2): each non-slice
// parameter indexes into the tensor's matching outer dimension, and
// slice parameters pass that axis through unindexed.
type TensorReadExpr struct {
	Base
	Tensor Expr
	Params []ReadParam
}

func (*TensorReadExpr) isExpr() {}

// TupleReadExpr is "Tuple(i)" (spec §4.6.2): i must check to int, and the
// result is the tuple's element type.
type TupleReadExpr struct {
	Base
	Tuple Expr
	Index Expr
}

func (*TupleReadExpr) isExpr() {}

// FieldReadExpr is "Operand.Field" (spec §4.6.2): Operand must check to
// an element type that declares Field, or to a set whose element type
// declares it.
type FieldReadExpr struct {
	Base
	Operand   Expr
	Field     string
	FieldSpan source.Span
}

func (*FieldReadExpr) isExpr() {}
