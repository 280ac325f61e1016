package hir

// IdentDecl is a name bound to a type: a function argument or result, an
// extern set, or a var/const declaration's target (spec §4.5).
type IdentDecl struct {
	Base
	Name  string
	Type  TypeExpr
	Inout bool // significant only for function arguments (spec §4.6.4)
}

// Field is one member of an ElementTypeDecl, "name : type".
type Field struct {
	Base
	Decl *IdentDecl
}

// ElementTypeDecl declares an element kind and its fields (spec §4.6.4).
// Element kinds are registered once, globally, by name; a second
// declaration with the same name is a multiple-definition error.
type ElementTypeDecl struct {
	Base
	Name   string
	Fields []*Field
}

func (*ElementTypeDecl) isDecl() {}

// ExternDecl declares a module-level extern set or tensor (spec §4.6.4).
type ExternDecl struct {
	Base
	Var *IdentDecl
}

func (*ExternDecl) isDecl() {}

// FuncDecl declares a function or procedure: its signature and body
// (spec §4.6.4). A function with no Results is checked as a procedure.
// Intrinsic marks a function the checker registers without a body being
// meaningfully checkable against its declared signature (built-ins
// supplied by the runtime rather than written in Simit); a call to an
// intrinsic declared with zero arguments suppresses the arity check
// (spec §4.6.2, grounded on the original's Func::Intrinsic).
type FuncDecl struct {
	Base
	Name      string
	Args      []*IdentDecl
	Results   []*IdentDecl
	Body      []Stmt
	Intrinsic bool
}

func (*FuncDecl) isDecl() {}

// VarDecl is a local (or global) mutable variable declaration, with an
// optional initializer (spec §4.6.3). It is a Stmt, not a top-level Decl:
// it can occur inside a function body.
type VarDecl struct {
	Base
	Var  *IdentDecl
	Init Expr // nil if there is no initializer
}

func (*VarDecl) isStmt() {}

// ConstDecl is a local constant declaration (spec §4.6.3). Unlike
// VarDecl, its declared type (if any) tolerates the "block-type slack"
// of stripping leading/trailing unit dimensions from both the declared
// and the initializer's inferred outer dimensions before comparing them.
type ConstDecl struct {
	Base
	Var  *IdentDecl
	Init Expr // nil if there is no initializer
}

func (*ConstDecl) isStmt() {}
