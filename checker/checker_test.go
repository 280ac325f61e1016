package checker_test

import (
	"strings"
	"testing"

	"github.com/wshca/simit/checker"
	"github.com/wshca/simit/diag"
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

func procedure(name string, body []hir.Stmt) *hir.FuncDecl {
	return &hir.FuncDecl{Name: name, Body: body}
}

func program(decls ...hir.Decl) *hir.Program {
	return &hir.Program{Decls: decls}
}

func mustNoDiags(t *testing.T, diags []diag.Diagnostic) {
	t.Helper()
	if len(diags) != 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.Error())
		}
		t.Fatalf("expected zero diagnostics, got:\n%s", strings.Join(msgs, "\n"))
	}
}

func floatVec(vals ...float64) *hir.FloatVectorLiteral {
	return &hir.FloatVectorLiteral{Vals: vals}
}

func row(vals ...float64) hir.Expr {
	return floatVec(vals...)
}

func TestShapeErrorMultiplyingTwoRowVectors(t *testing.T) {
	body := []hir.Stmt{
		&hir.VarDecl{Var: &hir.IdentDecl{Name: "row_vec"}, Init: row(1, 2, 3)},
		&hir.AssignStmt{
			LHS: []hir.Expr{&hir.VarExpr{Name: "x"}},
			RHS: &hir.MulExpr{BinaryExpr: hir.BinaryExpr{
				X: &hir.VarExpr{Name: "row_vec"},
				Y: &hir.VarExpr{Name: "row_vec"},
			}},
		},
	}
	prog := program(procedure("main", body))

	_, diags := checker.Check(prog, checker.Options{})
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0].Message, "cannot multiply two row vectors") {
		t.Errorf("unexpected diagnostic: %s", diags[0].Message)
	}
}

func TestMultipleDiagnosticsInOnePass(t *testing.T) {
	body := []hir.Stmt{
		&hir.PrintStmt{Expr: &hir.VarExpr{Name: "a"}},
		&hir.PrintStmt{Expr: &hir.VarExpr{Name: "b"}},
		&hir.PrintStmt{Expr: &hir.VarExpr{Name: "c"}},
	}
	prog := program(procedure("main", body))

	_, diags := checker.Check(prog, checker.Options{})
	if len(diags) != 3 {
		t.Fatalf("expected exactly three diagnostics, got %d: %v", len(diags), diags)
	}
	for i, name := range []string{"a", "b", "c"} {
		want := "undeclared variable or constant '" + name + "'"
		if diags[i].Message != want {
			t.Errorf("diagnostic %d: got %q, want %q", i, diags[i].Message, want)
		}
	}
}

func TestUndeclaredElementField(t *testing.T) {
	node := &hir.ElementTypeDecl{
		Name: "Node",
		Fields: []*hir.Field{
			{Decl: &hir.IdentDecl{Name: "x", Type: &hir.ScalarTypeExpr{Name: "float"}}},
		},
	}
	nodes := &hir.ExternDecl{Var: &hir.IdentDecl{
		Name: "nodes",
		Type: &hir.SetTypeExpr{Element: &hir.ElementTypeExpr{Name: "Node"}},
	}}
	main := procedure("main", []hir.Stmt{
		&hir.PrintStmt{Expr: &hir.FieldReadExpr{
			Operand: &hir.VarExpr{Name: "nodes"},
			Field:   "zzz",
		}},
	})
	prog := program(node, nodes, main)

	_, diags := checker.Check(prog, checker.Options{})
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Message != "undefined field 'zzz'" {
		t.Errorf("unexpected diagnostic: %s", diags[0].Message)
	}
}

func TestBlockTypeSlackForConstants(t *testing.T) {
	tensor33 := &hir.NDTensorTypeExpr{
		IndexSets: []hir.IndexSetExpr{&hir.RangeIndexSetExpr{Length: 3}, &hir.RangeIndexSetExpr{Length: 3}},
		Block:     &hir.ScalarTypeExpr{Name: "float"},
	}
	identityLit := &hir.NDTensorLiteral{Elems: []hir.Expr{
		floatVec(1, 0, 0),
		floatVec(0, 1, 0),
		floatVec(0, 0, 1),
	}}

	tensor31 := &hir.NDTensorTypeExpr{
		IndexSets: []hir.IndexSetExpr{&hir.RangeIndexSetExpr{Length: 3}, &hir.RangeIndexSetExpr{Length: 1}},
		Block:     &hir.ScalarTypeExpr{Name: "float"},
	}
	oneRowLit := &hir.NDTensorLiteral{Elems: []hir.Expr{floatVec(1, 2, 3)}}

	t.Run("const identity matrix", func(t *testing.T) {
		main := procedure("main", []hir.Stmt{
			&hir.ConstDecl{Var: &hir.IdentDecl{Name: "I", Type: tensor33}, Init: identityLit},
		})
		_, diags := checker.Check(program(main), checker.Options{})
		mustNoDiags(t, diags)
	})

	t.Run("var identity matrix", func(t *testing.T) {
		main := procedure("main", []hir.Stmt{
			&hir.VarDecl{Var: &hir.IdentDecl{Name: "I", Type: tensor33}, Init: identityLit},
		})
		_, diags := checker.Check(program(main), checker.Options{})
		mustNoDiags(t, diags)
	})

	t.Run("const unit-dim slack accepted", func(t *testing.T) {
		main := procedure("main", []hir.Stmt{
			&hir.ConstDecl{Var: &hir.IdentDecl{Name: "v", Type: tensor31}, Init: oneRowLit},
		})
		_, diags := checker.Check(program(main), checker.Options{})
		mustNoDiags(t, diags)
	})
}

func TestMapReduceAssemblyAndMultiply(t *testing.T) {
	pointFields := []*hir.Field{
		{Decl: &hir.IdentDecl{Name: "b", Type: &hir.ScalarTypeExpr{Name: "float"}}},
		{Decl: &hir.IdentDecl{Name: "c", Type: &hir.ScalarTypeExpr{Name: "float"}}},
	}
	point := &hir.ElementTypeDecl{Name: "Point", Fields: pointFields}
	spring := &hir.ElementTypeDecl{Name: "Spring", Fields: []*hir.Field{
		{Decl: &hir.IdentDecl{Name: "a", Type: &hir.ScalarTypeExpr{Name: "float"}}},
	}}
	points := &hir.ExternDecl{Var: &hir.IdentDecl{
		Name: "points",
		Type: &hir.SetTypeExpr{Element: &hir.ElementTypeExpr{Name: "Point"}},
	}}
	springs := &hir.ExternDecl{Var: &hir.IdentDecl{
		Name: "springs",
		Type: &hir.SetTypeExpr{
			Element:   &hir.ElementTypeExpr{Name: "Spring"},
			Endpoints: []*hir.Endpoint{{SetName: "points"}, {SetName: "points"}},
		},
	}}

	assemblyResultType := &hir.NDTensorTypeExpr{
		IndexSets: []hir.IndexSetExpr{
			&hir.SetIndexSetExpr{Name: "points"},
			&hir.SetIndexSetExpr{Name: "points"},
		},
		Block: &hir.ScalarTypeExpr{Name: "float"},
	}
	f := &hir.FuncDecl{
		Name: "f",
		Args: []*hir.IdentDecl{
			{Name: "s", Type: &hir.ElementTypeExpr{Name: "Spring"}},
			{Name: "p", Type: &hir.TupleTypeExpr{Element: &hir.ElementTypeExpr{Name: "Point"}, Length: 2}},
		},
		Results: []*hir.IdentDecl{
			{Name: "A", Type: assemblyResultType},
		},
	}

	main := procedure("main", []hir.Stmt{
		&hir.AssignStmt{
			LHS: []hir.Expr{&hir.VarExpr{Name: "A"}},
			RHS: &hir.MapExpr{Func: "f", Target: "springs", Reduction: "+"},
		},
		&hir.AssignStmt{
			LHS: []hir.Expr{&hir.VarExpr{Name: "b"}},
			RHS: &hir.FieldReadExpr{Operand: &hir.VarExpr{Name: "points"}, Field: "b"},
		},
		&hir.AssignStmt{
			LHS: []hir.Expr{&hir.VarExpr{Name: "x"}},
			RHS: &hir.MulExpr{BinaryExpr: hir.BinaryExpr{
				X: &hir.VarExpr{Name: "A"},
				Y: &hir.VarExpr{Name: "b"},
			}},
		},
		&hir.AssignStmt{
			LHS: []hir.Expr{&hir.FieldReadExpr{Operand: &hir.VarExpr{Name: "points"}, Field: "c"}},
			RHS: &hir.VarExpr{Name: "x"},
		},
	})

	prog := program(point, spring, points, springs, f, main)
	pctx, diags := checker.Check(prog, checker.Options{})
	mustNoDiags(t, diags)

	fn, ok := pctx.Funcs["f"]
	if !ok {
		t.Fatalf("expected function 'f' to be registered")
	}
	if len(fn.Arguments) != 2 {
		t.Fatalf("expected f to keep its declared 2-argument signature, got %d", len(fn.Arguments))
	}

	xExpr := findAssignRHS(main, 2)
	got := pctx.TypeOf(xExpr)
	if len(got) != 1 {
		t.Fatalf("expected a single inferred type for A*b, got %v", got)
	}
	tensor, ok := got[0].(*ir.TensorType)
	if !ok {
		t.Fatalf("expected A*b to infer to a tensor type, got %T", got[0])
	}
	if !tensor.ColumnVector {
		t.Errorf("expected A*b to be a column vector")
	}
	if tensor.Order() != 1 {
		t.Errorf("expected A*b to be order 1, got %d", tensor.Order())
	}
}

func findAssignRHS(f *hir.FuncDecl, i int) hir.Expr {
	return f.Body[i].(*hir.AssignStmt).RHS
}

func TestBlockedTensorDimensionMismatchDiagnosed(t *testing.T) {
	points := &hir.ExternDecl{Var: &hir.IdentDecl{
		Name: "points",
		Type: &hir.SetTypeExpr{Element: &hir.ElementTypeExpr{Name: "Point"}},
	}}
	node := &hir.ElementTypeDecl{Name: "Point"}

	// tensor[points,points](tensor[3](float)): the block has order 1 but
	// two outer dimensions are declared, which must be diagnosed rather
	// than index the block's single domain entry out of range.
	badType := &hir.NDTensorTypeExpr{
		IndexSets: []hir.IndexSetExpr{
			&hir.SetIndexSetExpr{Name: "points"},
			&hir.SetIndexSetExpr{Name: "points"},
		},
		Block: &hir.NDTensorTypeExpr{
			IndexSets: []hir.IndexSetExpr{&hir.RangeIndexSetExpr{Length: 3}},
			Block:     &hir.ScalarTypeExpr{Name: "float"},
		},
	}
	main := procedure("main", []hir.Stmt{
		&hir.VarDecl{Var: &hir.IdentDecl{Name: "A", Type: badType}},
	})
	prog := program(node, points, main)

	_, diags := checker.Check(prog, checker.Options{})
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	want := "blocked tensor type must contain same number of dimensions as its blocks"
	if diags[0].Message != want {
		t.Errorf("unexpected diagnostic: got %q, want %q", diags[0].Message, want)
	}
}

func TestColumnVectorMustBeOrderOne(t *testing.T) {
	badType := &hir.NDTensorTypeExpr{
		IndexSets:    []hir.IndexSetExpr{&hir.RangeIndexSetExpr{Length: 3}, &hir.RangeIndexSetExpr{Length: 3}},
		Block:        &hir.ScalarTypeExpr{Name: "float"},
		ColumnVector: true,
	}
	main := procedure("main", []hir.Stmt{
		&hir.VarDecl{Var: &hir.IdentDecl{Name: "v", Type: badType}},
	})
	prog := program(main)

	_, diags := checker.Check(prog, checker.Options{})
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	want := "tensor type declared with 2 dimensions but column vector type must strictly contain one"
	if diags[0].Message != want {
		t.Errorf("unexpected diagnostic: got %q, want %q", diags[0].Message, want)
	}
}

func TestAssignToConstIsNotWritable(t *testing.T) {
	main := procedure("main", []hir.Stmt{
		&hir.ConstDecl{Var: &hir.IdentDecl{Name: "k"}, Init: &hir.FloatLiteral{Val: 1}},
		&hir.AssignStmt{
			LHS: []hir.Expr{&hir.VarExpr{Name: "k"}},
			RHS: &hir.FloatLiteral{Val: 2},
		},
	})
	prog := program(main)

	_, diags := checker.Check(prog, checker.Options{})
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	want := "'k' is not writable"
	if diags[0].Message != want {
		t.Errorf("unexpected diagnostic: got %q, want %q", diags[0].Message, want)
	}
}

func TestAssignThroughTensorReadPropagatesWriteMarkToConstBase(t *testing.T) {
	tensor3 := &hir.NDTensorTypeExpr{
		IndexSets: []hir.IndexSetExpr{&hir.RangeIndexSetExpr{Length: 3}},
		Block:     &hir.ScalarTypeExpr{Name: "float"},
	}
	main := procedure("main", []hir.Stmt{
		&hir.ConstDecl{Var: &hir.IdentDecl{Name: "A", Type: tensor3}},
		&hir.AssignStmt{
			LHS: []hir.Expr{&hir.TensorReadExpr{
				Tensor: &hir.VarExpr{Name: "A"},
				Params: []hir.ReadParam{hir.ExprParam{X: &hir.IntLiteral{Val: 0}}},
			}},
			RHS: &hir.FloatLiteral{Val: 5},
		},
	})
	prog := program(main)

	_, diags := checker.Check(prog, checker.Options{})
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	want := "'A' is not writable"
	if diags[0].Message != want {
		t.Errorf("unexpected diagnostic: got %q, want %q", diags[0].Message, want)
	}
}

func TestIntrinsicWithZeroArgsSuppressesArityCheck(t *testing.T) {
	tic := &hir.FuncDecl{
		Name:      "tic",
		Intrinsic: true,
		Results:   []*hir.IdentDecl{{Name: "r", Type: &hir.ScalarTypeExpr{Name: "float"}}},
	}
	main := procedure("main", []hir.Stmt{
		&hir.AssignStmt{
			LHS: []hir.Expr{&hir.VarExpr{Name: "t"}},
			RHS: &hir.CallExpr{Func: "tic", Args: []hir.Expr{&hir.FloatLiteral{Val: 1}}},
		},
	})
	prog := program(tic, main)

	_, diags := checker.Check(prog, checker.Options{})
	mustNoDiags(t, diags)
}
