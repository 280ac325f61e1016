package checker

import (
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// checkStmts checks a statement block in the current scope;
// checkScopedStmts checks one in its own nested scope, so names declared
// inside (locals) don't leak to the caller (spec §3, §4.6.3).
func (c *Context) checkStmts(stmts []hir.Stmt) {
	for _, s := range stmts {
		c.checkStmt(s)
	}
}

func (c *Context) checkScopedStmts(stmts []hir.Stmt) {
	c.symbols.push()
	c.checkStmts(stmts)
	c.symbols.pop()
}

func (c *Context) checkStmt(s hir.Stmt) {
	switch st := s.(type) {
	case *hir.AssignStmt:
		c.checkAssignStmt(st)
	case *hir.VarDecl:
		c.checkVarOrConstDecl(st.Var, st.Init, false, st.Span())
	case *hir.ConstDecl:
		c.checkVarOrConstDecl(st.Var, st.Init, true, st.Span())
	case *hir.WhileStmt:
		c.checkWhileStmt(st)
	case *hir.IfStmt:
		c.checkIfStmt(st)
	case *hir.ForStmt:
		c.checkForStmt(st)
	case *hir.PrintStmt:
		c.checkPrintStmt(st)
	default:
		c.appender.AppendInternalf(s.Span(), "unhandled statement %T", s)
	}
}

func (c *Context) checkWhileStmt(s *hir.WhileStmt) {
	condType := c.checkExpr(s.Cond)
	c.checkScopedStmts(s.Body)
	if !isBool(condType) {
		c.appender.Appendf(s.Cond.Span(), "expected a boolean conditional expression but got an expression of type %s", exprTypeString(condType))
	}
}

func (c *Context) checkIfStmt(s *hir.IfStmt) {
	condType := c.checkExpr(s.Cond)
	c.checkScopedStmts(s.Then)
	if s.Else != nil {
		c.checkScopedStmts(s.Else)
	}
	if !isBool(condType) {
		c.appender.Appendf(s.Cond.Span(), "expected a boolean conditional expression but got an expression of type %s", exprTypeString(condType))
	}
}

func (c *Context) checkForStmt(s *hir.ForStmt) {
	c.symbols.push()
	c.checkRangeDomain(s.Domain)
	c.symbols.add(ir.Var{Name: s.LoopVar, Type: ir.Scalar(ir.Int()), Access: ir.Read})
	c.checkStmts(s.Body)
	c.symbols.pop()
}

func (c *Context) checkRangeDomain(d *hir.RangeDomain) {
	lowerType := c.checkExpr(d.Lower)
	upperType := c.checkExpr(d.Upper)
	if !lowerType.ok() || !isIntType(lowerType.first()) {
		c.appender.Appendf(d.Lower.Span(), "expected lower bound of for-loop range to be integral but got an expression of type %s", exprTypeString(lowerType))
	}
	if !upperType.ok() || !isIntType(upperType.first()) {
		c.appender.Appendf(d.Upper.Span(), "expected upper bound of for-loop range to be integral but got an expression of type %s", exprTypeString(upperType))
	}
}

func (c *Context) checkPrintStmt(s *hir.PrintStmt) {
	t := c.checkExpr(s.Expr)
	if len(t) == 1 && !ir.IsValid(t[0]) {
		// The operand already reported its own error.
		return
	}
	if !t.ok() {
		c.appender.Appendf(s.Expr.Span(), "cannot print an expression of type %s", exprTypeString(t))
		return
	}
	if _, ok := t.first().(*ir.TensorType); !ok {
		c.appender.Appendf(s.Expr.Span(), "cannot print an expression of type %s", exprTypeString(t))
	}
}

// checkAssignStmt is "lhs1, lhs2, ... = rhs" (spec §4.6.3). A bare
// variable on the left that has never been declared is implicitly
// declared here, with the right-hand side's type (Simit has no separate
// declaration syntax for an assignment target's first use). Every other
// target is checked for write permission, not read permission: a
// TensorReadExpr or FieldReadExpr target ("A(i,j) = ...", "s.f = ...")
// propagates the write mark down to the VarExpr it ultimately indexes
// into, grounded on the original checker's markCheckWritable.
func (c *Context) checkAssignStmt(s *hir.AssignStmt) {
	rhsType := c.checkExpr(s.RHS)

	lhsTypes := make([]ir.Type, len(s.LHS))
	for i, lhs := range s.LHS {
		varExpr, isVar := lhs.(*hir.VarExpr)
		var lt ExprType
		if isVar && !c.symbols.has(varExpr.Name, false) {
			// First use of a bare name on an assignment target: it is not
			// required to already be declared.
			lt = ExprType{ir.Invalid()}
		} else {
			c.writeTarget = writeTargetOf(lhs)
			lt = c.checkExpr(lhs)
			c.writeTarget = nil
		}
		if lt.ok() {
			lhsTypes[i] = lt.first()
		}
	}

	if len(s.LHS) != len(rhsType) {
		c.appender.Appendf(s.Span(), "cannot assign an expression returning %d values to %d targets", len(rhsType), len(s.LHS))
	} else {
		for i, lt := range lhsTypes {
			if lt == nil || !ir.IsValid(lt) {
				continue
			}
			rt := rhsType[i]
			if !ir.IsValid(rt) {
				continue
			}
			if ir.Equal(lt, rt) {
				continue
			}
			if !assignableWithScalarInit(lt, rt) {
				c.appender.Appendf(s.LHS[i].Span(), "cannot assign a value of type %s to a target of type %s", rt.String(), lt.String())
			}
		}
	}

	for i, lhs := range s.LHS {
		varExpr, isVar := lhs.(*hir.VarExpr)
		if !isVar || c.symbols.has(varExpr.Name, false) {
			continue
		}
		varType := ir.Invalid()
		if len(s.LHS) == len(rhsType) {
			varType = rhsType[i]
		}
		c.symbols.add(ir.Var{Name: varExpr.Name, Type: varType, Access: ir.ReadWrite})
	}
}

// assignableWithScalarInit allows initializing a tensor-typed target
// with a bare scalar of the same component type (spec §4.6.3: "allow
// initialization of tensors with scalars"). A bare scalar target, such
// as a fully indexed tensor element, likewise accepts an order-0 tensor
// of that scalar type.
func assignableWithScalarInit(target, value ir.Type) bool {
	valueTensor, ok := value.(*ir.TensorType)
	if !ok || !valueTensor.IsScalar() {
		return false
	}
	if ir.IsScalarKind(target.Kind()) {
		return ir.Equal(target, valueTensor.Component)
	}
	targetTensor, ok := target.(*ir.TensorType)
	if !ok {
		return false
	}
	return ir.Equal(targetTensor.Component, valueTensor.Component)
}

// checkVarOrConstDecl checks "var x : T = init" / "const x : T = init"
// (spec §4.6.3). A constant's declared type tolerates the "block-type
// slack" of stripping leading/trailing unit dimensions from both the
// declared type's and the initializer's outer dimensions before
// comparing, which a plain var's declaration does not.
func (c *Context) checkVarOrConstDecl(decl *hir.IdentDecl, init hir.Expr, isConst bool, _ interface{}) {
	varType := ir.Invalid()
	if decl.Type != nil {
		varType = c.checkTypeExpr(decl.Type)
	}

	var initType ExprType
	if init != nil {
		initType = c.checkExpr(init)
	}

	// "var x = init" with no type annotation infers x's type from init.
	if decl.Type == nil && initType.ok() {
		varType = initType.first()
	}

	if c.symbols.has(decl.Name, true) {
		c.appender.MultipleDefs(decl.Span(), "variable or constant", decl.Name)
		return
	}

	access := ir.ReadWrite
	if isConst {
		access = ir.Read
	}
	c.symbols.add(ir.Var{Name: decl.Name, Type: varType, Access: access})

	if !ir.IsValid(varType) {
		return
	}
	if initType == nil {
		return
	}
	if initType.ok() && ir.Equal(varType, initType.first()) {
		return
	}

	targetTensor, targetIsTensor := varType.(*ir.TensorType)
	if !initType.ok() {
		c.appender.Appendf(decl.Span(), "cannot initialize a variable or constant of type %s with an expression of type %s", varType.String(), exprTypeString(initType))
		return
	}
	initTensor, initIsTensor := initType.first().(*ir.TensorType)
	if !targetIsTensor || !initIsTensor {
		c.appender.Appendf(decl.Span(), "cannot initialize a variable or constant of type %s with an expression of type %s", varType.String(), initType.first().String())
		return
	}

	if initTensor.IsScalar() && ir.Equal(targetTensor.Component, initTensor.Component) {
		return
	}

	if isConst && ir.Equal(targetTensor.BlockType(), initTensor.BlockType()) {
		varDims := stripUnitDims(targetTensor.OuterDims())
		initDims := stripUnitDims(initTensor.OuterDims())
		if sameIndexSets(varDims, initDims) {
			return
		}
	}

	c.appender.Appendf(decl.Span(), "cannot initialize a variable or constant of type %s with an expression of type %s", varType.String(), initTensor.String())
}

// stripUnitDims drops leading and trailing index sets of length exactly
// 1: the "block-type slack" that lets a constant declared as
// tensor[3,1](float) be initialized from a tensor[3](float) literal,
// since a unit dimension at either end carries no information the block
// type didn't already supply.
func stripUnitDims(dims []ir.IndexSet) []ir.IndexSet {
	lo := 0
	for lo < len(dims) {
		if r, ok := dims[lo].(ir.RangeIndexSet); ok && r.Length == 1 {
			lo++
			continue
		}
		break
	}
	hi := len(dims)
	for hi > lo {
		if r, ok := dims[hi-1].(ir.RangeIndexSet); ok && r.Length == 1 {
			hi--
			continue
		}
		break
	}
	return dims[lo:hi]
}

func sameIndexSets(a, b []ir.IndexSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// writeTargetOf finds the VarExpr an assignment target ultimately writes
// through, recursing into a TensorReadExpr's tensor or a FieldReadExpr's
// operand the same way the original checker's markCheckWritable walks
// down to the base variable of "A(i,j) = ..." or "s.f = ...". Returns
// nil for a target shape that isn't rooted in a bare variable at all.
func writeTargetOf(e hir.Expr) hir.Expr {
	switch x := e.(type) {
	case *hir.VarExpr:
		return x
	case *hir.TensorReadExpr:
		return writeTargetOf(x.Tensor)
	case *hir.FieldReadExpr:
		return writeTargetOf(x.Operand)
	default:
		return nil
	}
}
