package checker

import (
	"github.com/wshca/simit/diag"
	"github.com/wshca/simit/hir"
	"github.com/wshca/simit/ir"
)

// Check lowers prog into a typed ir.ProgramContext, in a single top-to-
// bottom pass over its top-level declarations (spec §1, §4). It never
// stops at the first error: every diagnostic the walk produces is
// returned, in the order the walk encountered them.
//
// Declarations are visited in source order and only the declarations
// seen so far are resolvable — Simit has no forward-declaration pass,
// so a function that calls another function must follow it in the
// source (spec §4.6.4).
func Check(prog *hir.Program, opts Options) (*ir.ProgramContext, []diag.Diagnostic) {
	sink := &diag.Sink{}
	appender := sink.NewAppender()
	ctx := newContext(opts, appender)

	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *hir.ElementTypeDecl:
			ctx.checkElementTypeDecl(decl)
		case *hir.ExternDecl:
			ctx.checkExternDecl(decl)
		case *hir.FuncDecl:
			ctx.checkFuncDecl(decl)
		default:
			appender.AppendInternalf(d.Span(), "unhandled top-level declaration %T", d)
		}
	}

	return ctx.ProgramContext(), sink.Diagnostics()
}
