package checker

import (
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// checkElementTypeDecl registers an element kind and its fields (spec
// §4.6.4). A field whose declared type failed to check is dropped
// rather than registered with an invalid type, so later field lookups
// against this element type don't cascade the same error.
func (c *Context) checkElementTypeDecl(d *hir.ElementTypeDecl) {
	fields := make([]ir.Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		typ := c.checkTypeExpr(f.Decl.Type)
		if !ir.IsValid(typ) {
			continue
		}
		fields = append(fields, ir.Field{Name: f.Decl.Name, Type: typ})
	}

	if c.hasElement(d.Name) {
		c.appender.MultipleDefs(d.Span(), "element type", d.Name)
		return
	}
	c.addElement(&ir.ElementType{Name: d.Name, Fields: fields})
}

// checkExternDecl registers a module-level extern set or tensor (spec
// §4.6.4) as a global symbol.
func (c *Context) checkExternDecl(d *hir.ExternDecl) {
	typ := c.checkTypeExpr(d.Var.Type)

	if c.symbols.has(d.Var.Name, false) {
		c.appender.MultipleDefs(d.Span(), "variable or constant", d.Var.Name)
		return
	}
	c.symbols.add(ir.Var{Name: d.Var.Name, Type: typ, Access: ir.ReadWrite})
}

// checkFuncDecl checks a function or procedure's signature and body
// (spec §4.6.4). Arguments and results each get their own scope entry
// before the body is checked, so the body can reference them by name;
// a function with any ill-typed argument or result is not registered,
// matching the original's "don't register a signature the checker
// couldn't fully make sense of."
func (c *Context) checkFuncDecl(d *hir.FuncDecl) {
	c.symbols.push()

	ok := true
	args := make([]ir.Var, 0, len(d.Args))
	for _, a := range d.Args {
		typ := c.checkTypeExpr(a.Type)
		if !ir.IsValid(typ) {
			ok = false
			continue
		}
		access := ir.Read
		if a.Inout {
			access = ir.ReadWrite
		}
		v := ir.Var{Name: a.Name, Type: typ, Access: access}
		c.symbols.add(v)
		args = append(args, v)
	}

	results := make([]ir.Var, 0, len(d.Results))
	for _, r := range d.Results {
		typ := c.checkTypeExpr(r.Type)
		if !ir.IsValid(typ) {
			ok = false
			continue
		}
		v := ir.Var{Name: r.Name, Type: typ, Access: ir.ReadWrite}
		c.symbols.add(v)
		results = append(results, v)
	}

	c.checkStmts(d.Body)
	c.symbols.pop()

	if !ok {
		return
	}

	if c.hasFunc(d.Name) {
		c.appender.MultipleDefs(d.Span(), "function or procedure", d.Name)
		return
	}
	c.addFunc(&ir.FuncSig{Name: d.Name, Arguments: args, Results: results, Intrinsic: d.Intrinsic})
}
