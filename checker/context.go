// Package checker lowers an hir.Program into a typed ir.ProgramContext,
// performing name resolution, type inference, and map-reduce assembly
// validation in a single pass that never aborts on the first error
// (spec §1, §4).
package checker

import (
	"golang.org/x/exp/maps"

	"github.com/wshca/simit/diag"
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// Options configures a Check call (spec §4.9's "configuration" ambient
// concern: no environment variables or flags, just a plain struct).
type Options struct {
	// AllowHeterogeneousEdges relaxes the "edge sets have exactly one
	// neighbor element type" invariant (spec §4.6.2 Map-reduce, Open
	// Question). When false (the default), an edge-set type whose
	// endpoints have differing element types is rejected; when true it
	// is accepted. Map-reduce assembly still builds its neighbor tuple
	// from the first endpoint's element type either way.
	AllowHeterogeneousEdges bool
}

// scope is one level of the symbol table's scope stack: a name to Var
// binding. The table's has method in localOnly mode consults only the
// innermost scope.
type scope struct {
	symbols map[string]ir.Var
}

func newScope() *scope {
	return &scope{symbols: make(map[string]ir.Var)}
}

// symbolTable is a stack of nested lexical scopes: function bodies push a
// scope on entry and pop it on exit, and control-flow bodies (if/while/
// for) do the same (spec §3 "Symbol table").
type symbolTable struct {
	scopes []*scope
}

func newSymbolTable() *symbolTable {
	return &symbolTable{scopes: []*scope{newScope()}}
}

func (t *symbolTable) push() {
	t.scopes = append(t.scopes, newScope())
}

func (t *symbolTable) pop() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// has reports whether name is bound. If localOnly, only the innermost
// scope is checked, which is how declaration statements detect a
// same-scope redeclaration while still permitting shadowing an outer
// binding (spec §3 invariant: "declaring the same name twice in the same
// scope is a multiple-definition error; shadowing an outer scope is not").
func (t *symbolTable) has(name string, localOnly bool) bool {
	if localOnly {
		_, ok := t.scopes[len(t.scopes)-1].symbols[name]
		return ok
	}
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if _, ok := t.scopes[i].symbols[name]; ok {
			return true
		}
	}
	return false
}

// get returns the innermost binding of name.
func (t *symbolTable) get(name string) (ir.Var, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if v, ok := t.scopes[i].symbols[name]; ok {
			return v, true
		}
	}
	return ir.Var{}, false
}

// add binds name in the innermost scope, shadowing any outer binding.
func (t *symbolTable) add(v ir.Var) {
	t.scopes[len(t.scopes)-1].symbols[v.Name] = v
}

// Context is the checker's working state for one Check call: the
// element-kind and function registries, the live symbol table, the
// diagnostic appender, and the side-map of expression types the checker
// publishes for downstream consumers (spec §6). Once Check returns, the
// registries and side-map are frozen; nothing mutates a Context after
// that point (spec §3 Lifecycle: "immutable once registered").
type Context struct {
	opts Options

	elements map[string]*ir.ElementType
	funcs    map[string]*ir.FuncSig
	symbols  *symbolTable

	appender *diag.Appender

	exprTypes map[hir.Expr]ExprType

	// writeTarget is the VarExpr, if any, that an in-progress checkExpr
	// call is checking as an assignment target rather than an ordinary
	// read (spec §4.6.2, grounded on markCheckWritable/checkWritable):
	// set for the duration of checking one assignment's LHS, nil
	// otherwise.
	writeTarget hir.Expr
}

func newContext(opts Options, appender *diag.Appender) *Context {
	return &Context{
		opts:      opts,
		elements:  make(map[string]*ir.ElementType),
		funcs:     make(map[string]*ir.FuncSig),
		symbols:   newSymbolTable(),
		appender:  appender,
		exprTypes: make(map[hir.Expr]ExprType),
	}
}

// ElementNames returns the registered element-kind names, in a
// deterministic (sorted) order (spec §4.9 domain stack: x/exp/maps keeps
// registry iteration order-independent of Go's randomized map order).
func (c *Context) ElementNames() []string {
	names := maps.Keys(c.elements)
	sortStrings(names)
	return names
}

// FuncNames returns the registered function names, sorted.
func (c *Context) FuncNames() []string {
	names := maps.Keys(c.funcs)
	sortStrings(names)
	return names
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func (c *Context) hasElement(name string) bool {
	_, ok := c.elements[name]
	return ok
}

func (c *Context) element(name string) (*ir.ElementType, bool) {
	e, ok := c.elements[name]
	return e, ok
}

func (c *Context) addElement(e *ir.ElementType) {
	c.elements[e.Name] = e
}

func (c *Context) hasFunc(name string) bool {
	_, ok := c.funcs[name]
	return ok
}

func (c *Context) function(name string) (*ir.FuncSig, bool) {
	f, ok := c.funcs[name]
	return f, ok
}

func (c *Context) addFunc(f *ir.FuncSig) {
	c.funcs[f.Name] = f
}

// ProgramContext converts the working Context into the frozen result
// returned by Check.
func (c *Context) ProgramContext() *ir.ProgramContext {
	elements := make(map[string]*ir.ElementType, len(c.elements))
	for k, v := range c.elements {
		elements[k] = v
	}
	funcs := make(map[string]*ir.FuncSig, len(c.funcs))
	for k, v := range c.funcs {
		funcs[k] = v
	}
	exprTypes := make(map[hir.Expr][]ir.Type, len(c.exprTypes))
	for k, v := range c.exprTypes {
		exprTypes[k] = []ir.Type(v)
	}
	return &ir.ProgramContext{
		Elements:  elements,
		Funcs:     funcs,
		ExprTypes: exprTypes,
	}
}
